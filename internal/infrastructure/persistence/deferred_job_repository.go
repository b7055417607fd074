package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/docgen/backend/internal/domain/scheduling"
	"github.com/docgen/backend/internal/domain/shared"
	"github.com/docgen/backend/internal/infrastructure/persistence/models"
)

// GormDeferredJobRepository implements DeferredJobRepository using GORM
type GormDeferredJobRepository struct {
	db *gorm.DB
}

// NewGormDeferredJobRepository creates a new GormDeferredJobRepository
func NewGormDeferredJobRepository(db *gorm.DB) *GormDeferredJobRepository {
	return &GormDeferredJobRepository{db: db}
}

// FindByID finds a deferred job by ID
func (r *GormDeferredJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.DeferredJob, error) {
	var model models.DeferredJobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindDue returns pending jobs whose run-at time has passed, oldest first
func (r *GormDeferredJobRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]*scheduling.DeferredJob, error) {
	if limit <= 0 {
		limit = 50
	}

	var jobModels []models.DeferredJobModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND run_at <= ?", string(scheduling.JobStatusPending), now).
		Order("run_at ASC").
		Limit(limit).
		Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]*scheduling.DeferredJob, 0, len(jobModels))
	for i := range jobModels {
		job, err := jobModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Save saves a deferred job (insert or update)
func (r *GormDeferredJobRepository) Save(ctx context.Context, job *scheduling.DeferredJob) error {
	model, err := models.DeferredJobModelFromDomain(job)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a deferred job by ID
func (r *GormDeferredJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DeferredJobModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormDeferredJobRepository implements DeferredJobRepository
var _ scheduling.DeferredJobRepository = (*GormDeferredJobRepository)(nil)
