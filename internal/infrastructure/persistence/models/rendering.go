package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/docgen/backend/internal/domain/rendering"
	"github.com/docgen/backend/internal/domain/shared"
)

// TemplateModel is the GORM model for render_templates table
type TemplateModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	EntityType     string     `gorm:"column:entity_type;type:varchar(100);not null;index"`
	Name           string     `gorm:"type:varchar(200);not null"`
	Body           string     `gorm:"type:text;not null"`
	Header         string     `gorm:"type:text"`
	Footer         string     `gorm:"type:text"`
	PrintHeader    bool       `gorm:"column:print_header;not null;default:false"`
	PrintFooter    bool       `gorm:"column:print_footer;not null;default:false"`
	HeaderPosition int        `gorm:"column:header_position;not null;default:0"`
	FooterPosition int        `gorm:"column:footer_position;not null;default:0"`
	Orientation    string     `gorm:"type:varchar(20);not null;default:'PORTRAIT'"`
	PageFormat     string     `gorm:"column:page_format;type:varchar(20);not null;default:'A4'"`
	PageWidth      int        `gorm:"column:page_width;not null;default:0"`
	PageHeight     int        `gorm:"column:page_height;not null;default:0"`
	MarginTop      int        `gorm:"column:margin_top;not null;default:10"`
	MarginRight    int        `gorm:"column:margin_right;not null;default:10"`
	MarginBottom   int        `gorm:"column:margin_bottom;not null;default:10"`
	MarginLeft     int        `gorm:"column:margin_left;not null;default:10"`
	FontFace       string     `gorm:"column:font_face;type:varchar(100)"`
	IsDefault      bool       `gorm:"column:is_default;not null;default:false"`
	Status         string     `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CreatedBy      *uuid.UUID `gorm:"column:created_by;type:uuid"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
	Version        int        `gorm:"not null;default:1"`
}

// TableName returns the table name for TemplateModel
func (TemplateModel) TableName() string {
	return "render_templates"
}

// ToDomain converts TemplateModel to domain Template
func (m *TemplateModel) ToDomain() *rendering.Template {
	return &rendering.Template{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		EntityType:     rendering.EntityType(m.EntityType),
		Name:           m.Name,
		Body:           m.Body,
		Header:         m.Header,
		Footer:         m.Footer,
		PrintHeader:    m.PrintHeader,
		PrintFooter:    m.PrintFooter,
		HeaderPosition: m.HeaderPosition,
		FooterPosition: m.FooterPosition,
		Orientation:    rendering.Orientation(m.Orientation),
		PageFormat:     rendering.PageFormat(m.PageFormat),
		PageWidth:      m.PageWidth,
		PageHeight:     m.PageHeight,
		Margins: rendering.Margins{
			Top:    m.MarginTop,
			Right:  m.MarginRight,
			Bottom: m.MarginBottom,
			Left:   m.MarginLeft,
		},
		FontFace:  m.FontFace,
		IsDefault: m.IsDefault,
		Status:    rendering.TemplateStatus(m.Status),
		CreatedBy: m.CreatedBy,
	}
}

// TemplateModelFromDomain creates a TemplateModel from domain Template
func TemplateModelFromDomain(t *rendering.Template) *TemplateModel {
	return &TemplateModel{
		ID:             t.ID,
		EntityType:     string(t.EntityType),
		Name:           t.Name,
		Body:           t.Body,
		Header:         t.Header,
		Footer:         t.Footer,
		PrintHeader:    t.PrintHeader,
		PrintFooter:    t.PrintFooter,
		HeaderPosition: t.HeaderPosition,
		FooterPosition: t.FooterPosition,
		Orientation:    string(t.Orientation),
		PageFormat:     string(t.PageFormat),
		PageWidth:      t.PageWidth,
		PageHeight:     t.PageHeight,
		MarginTop:      t.Margins.Top,
		MarginRight:    t.Margins.Right,
		MarginBottom:   t.Margins.Bottom,
		MarginLeft:     t.Margins.Left,
		FontFace:       t.FontFace,
		IsDefault:      t.IsDefault,
		Status:         string(t.Status),
		CreatedBy:      t.CreatedBy,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		Version:        t.Version,
	}
}

// RecordModel is the GORM model for records table
type RecordModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	EntityType string     `gorm:"column:entity_type;type:varchar(100);not null;index"`
	CreatedBy  *uuid.UUID `gorm:"column:created_by;type:uuid;index"`
	Fields     []byte     `gorm:"type:jsonb"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`
}

// TableName returns the table name for RecordModel
func (RecordModel) TableName() string {
	return "records"
}

// ToDomain converts RecordModel to domain Record
func (m *RecordModel) ToDomain() (*rendering.Record, error) {
	fields := make(map[string]any)
	if len(m.Fields) > 0 {
		if err := json.Unmarshal(m.Fields, &fields); err != nil {
			return nil, err
		}
	}
	return &rendering.Record{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		EntityType: rendering.EntityType(m.EntityType),
		CreatedBy:  m.CreatedBy,
		Fields:     fields,
	}, nil
}

// RecordModelFromDomain creates a RecordModel from domain Record
func RecordModelFromDomain(r *rendering.Record) (*RecordModel, error) {
	fields, err := json.Marshal(r.Fields)
	if err != nil {
		return nil, err
	}
	return &RecordModel{
		ID:         r.ID,
		EntityType: string(r.EntityType),
		CreatedBy:  r.CreatedBy,
		Fields:     fields,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}
