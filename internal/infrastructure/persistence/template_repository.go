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

// TemplateSortFields defines allowed sort fields for render templates
var TemplateSortFields = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"entity_type": true,
	"status":      true,
	"is_default":  true,
}

// GormTemplateRepository implements TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID finds a template by ID
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*rendering.Template, error) {
	var model models.TemplateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEntityType finds templates bound to an entity type
func (r *GormTemplateRepository) FindByEntityType(ctx context.Context, entityType rendering.EntityType, filter shared.Filter) ([]*rendering.Template, error) {
	var templateModels []models.TemplateModel
	query := r.db.WithContext(ctx).
		Model(&models.TemplateModel{}).
		Where("entity_type = ?", string(entityType))
	query = r.applyFilter(query, filter)

	if err := query.Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]*rendering.Template, len(templateModels))
	for i := range templateModels {
		templates[i] = templateModels[i].ToDomain()
	}
	return templates, nil
}

// Save saves a template (insert or update)
func (r *GormTemplateRepository) Save(ctx context.Context, template *rendering.Template) error {
	model := models.TemplateModelFromDomain(template)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a template by ID
func (r *GormTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TemplateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormTemplateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "is_default":
			query = query.Where("is_default = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	sortField := ValidateSortField(filter.OrderBy, TemplateSortFields, "created_at")
	return query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
}

// Ensure GormTemplateRepository implements TemplateRepository
var _ rendering.TemplateRepository = (*GormTemplateRepository)(nil)
