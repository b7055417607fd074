package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DeferredJobRepository defines persistence operations for deferred jobs
type DeferredJobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DeferredJob, error)
	// FindDue returns pending jobs whose run-at time has passed, oldest first
	FindDue(ctx context.Context, now time.Time, limit int) ([]*DeferredJob, error)
	Save(ctx context.Context, job *DeferredJob) error
	Delete(ctx context.Context, id uuid.UUID) error
}
