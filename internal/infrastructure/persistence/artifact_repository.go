package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/docgen/backend/internal/domain/archive"
	"github.com/docgen/backend/internal/domain/shared"
	"github.com/docgen/backend/internal/infrastructure/persistence/models"
)

// GormArtifactRepository implements ArtifactRepository using GORM
type GormArtifactRepository struct {
	db *gorm.DB
}

// NewGormArtifactRepository creates a new GormArtifactRepository
func NewGormArtifactRepository(db *gorm.DB) *GormArtifactRepository {
	return &GormArtifactRepository{db: db}
}

// FindByID finds an artifact by ID
func (r *GormArtifactRepository) FindByID(ctx context.Context, id uuid.UUID) (*archive.Artifact, error) {
	var model models.ArtifactModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save saves an artifact (insert or update)
func (r *GormArtifactRepository) Save(ctx context.Context, artifact *archive.Artifact) error {
	model := models.ArtifactModelFromDomain(artifact)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an artifact by ID
func (r *GormArtifactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ArtifactModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormArtifactRepository implements ArtifactRepository
var _ archive.ArtifactRepository = (*GormArtifactRepository)(nil)
