package rendering

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/docgen/backend/internal/domain/shared"
)

// Record is a business record to be rendered. Its field map is filled from
// storage and may be extended by enrichment hooks before rendering; the
// rendering pipeline itself never writes to it.
type Record struct {
	shared.BaseEntity
	EntityType EntityType
	CreatedBy  *uuid.UUID
	Fields     map[string]any
}

// NewRecord creates a record of the given entity type
func NewRecord(entityType EntityType) (*Record, error) {
	if !entityType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Entity type is required")
	}
	return &Record{
		BaseEntity: shared.NewBaseEntity(),
		EntityType: entityType,
		Fields:     make(map[string]any),
	}, nil
}

// Get returns a field value by name
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Set stores a field value, used by enrichment hooks
func (r *Record) Set(name string, value any) {
	if r.Fields == nil {
		r.Fields = make(map[string]any)
	}
	r.Fields[name] = value
}

// DisplayName returns the record's display name, falling back to its id
func (r *Record) DisplayName() string {
	if v, ok := r.Fields["name"]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return r.ID.String()
}
