package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/docgen/backend/internal/domain/archive"
	"github.com/docgen/backend/internal/domain/shared"
)

// ArtifactModel is the GORM model for artifacts table
type ArtifactModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	Name        string     `gorm:"type:varchar(255);not null"`
	MimeType    string     `gorm:"column:mime_type;type:varchar(100);not null"`
	Role        string     `gorm:"type:varchar(50);index"`
	RelatedType string     `gorm:"column:related_type;type:varchar(100)"`
	RelatedID   *uuid.UUID `gorm:"column:related_id;type:uuid"`
	Contents    []byte     `gorm:"type:bytea"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
	Version     int        `gorm:"not null;default:1"`
}

// TableName returns the table name for ArtifactModel
func (ArtifactModel) TableName() string {
	return "artifacts"
}

// ToDomain converts ArtifactModel to domain Artifact
func (m *ArtifactModel) ToDomain() *archive.Artifact {
	return &archive.Artifact{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:        m.Name,
		MimeType:    m.MimeType,
		Role:        archive.Role(m.Role),
		RelatedType: m.RelatedType,
		RelatedID:   m.RelatedID,
		Contents:    m.Contents,
	}
}

// ArtifactModelFromDomain creates an ArtifactModel from domain Artifact
func ArtifactModelFromDomain(a *archive.Artifact) *ArtifactModel {
	return &ArtifactModel{
		ID:          a.ID,
		Name:        a.Name,
		MimeType:    a.MimeType,
		Role:        string(a.Role),
		RelatedType: a.RelatedType,
		RelatedID:   a.RelatedID,
		Contents:    a.Contents,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Version:     a.Version,
	}
}
