package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/docgen/backend/internal/domain/rendering"
	"github.com/docgen/backend/internal/domain/shared"
	"github.com/docgen/backend/internal/infrastructure/persistence/models"
)

// GormRecordRepository implements RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByID finds a record of an entity type by ID
func (r *GormRecordRepository) FindByID(ctx context.Context, entityType rendering.EntityType, id uuid.UUID) (*rendering.Record, error) {
	var model models.RecordModel
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND id = ?", string(entityType), id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByIDs loads records by set membership: ids not present in storage are
// simply absent from the result, no error is raised for them
func (r *GormRecordRepository) FindByIDs(ctx context.Context, entityType rendering.EntityType, ids []uuid.UUID) ([]*rendering.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var recordModels []models.RecordModel
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND id IN ?", string(entityType), ids).
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*rendering.Record, 0, len(recordModels))
	for i := range recordModels {
		record, err := recordModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Save saves a record (insert or update)
func (r *GormRecordRepository) Save(ctx context.Context, record *rendering.Record) error {
	model, err := models.RecordModelFromDomain(record)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormRecordRepository implements RecordRepository
var _ rendering.RecordRepository = (*GormRecordRepository)(nil)
