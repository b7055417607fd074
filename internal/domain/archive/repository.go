package archive

import (
	"context"

	"github.com/google/uuid"
)

// ArtifactRepository defines persistence operations for stored documents
type ArtifactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Artifact, error)
	Save(ctx context.Context, artifact *Artifact) error
	Delete(ctx context.Context, id uuid.UUID) error
}
