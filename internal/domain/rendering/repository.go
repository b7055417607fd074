package rendering

import (
	"context"

	"github.com/google/uuid"

	"github.com/docgen/backend/internal/domain/shared"
)

// TemplateRepository defines persistence operations for render templates
type TemplateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)
	FindByEntityType(ctx context.Context, entityType EntityType, filter shared.Filter) ([]*Template, error)
	Save(ctx context.Context, template *Template) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecordRepository defines read operations over business records.
// FindByIDs performs a set-membership load: records whose ids are not in the
// given list are not returned, and no error is raised for missing ids.
type RecordRepository interface {
	FindByID(ctx context.Context, entityType EntityType, id uuid.UUID) (*Record, error)
	FindByIDs(ctx context.Context, entityType EntityType, ids []uuid.UUID) ([]*Record, error)
	Save(ctx context.Context, record *Record) error
}
