package dto

import (
	"time"

	"github.com/docgen/backend/internal/domain/rendering"
)

// MarginsPayload carries page margins in millimeters
type MarginsPayload struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// CreateTemplateRequest is the body for creating a render template
type CreateTemplateRequest struct {
	EntityType     string          `json:"entity_type" binding:"required"`
	Name           string          `json:"name" binding:"required,max=200"`
	Body           string          `json:"body" binding:"required"`
	Header         string          `json:"header"`
	Footer         string          `json:"footer"`
	PrintHeader    bool            `json:"print_header"`
	PrintFooter    bool            `json:"print_footer"`
	HeaderPosition int             `json:"header_position"`
	FooterPosition int             `json:"footer_position"`
	Orientation    string          `json:"orientation" binding:"omitempty,oneof=PORTRAIT LANDSCAPE"`
	PageFormat     string          `json:"page_format"`
	PageWidth      int             `json:"page_width"`
	PageHeight     int             `json:"page_height"`
	Margins        *MarginsPayload `json:"margins"`
	FontFace       string          `json:"font_face"`
}

// TemplateResponse describes a render template
type TemplateResponse struct {
	ID             string         `json:"id"`
	EntityType     string         `json:"entity_type"`
	Name           string         `json:"name"`
	PrintHeader    bool           `json:"print_header"`
	PrintFooter    bool           `json:"print_footer"`
	HeaderPosition int            `json:"header_position"`
	FooterPosition int            `json:"footer_position"`
	Orientation    string         `json:"orientation"`
	PageFormat     string         `json:"page_format"`
	PageWidth      int            `json:"page_width,omitempty"`
	PageHeight     int            `json:"page_height,omitempty"`
	Margins        MarginsPayload `json:"margins"`
	FontFace       string         `json:"font_face,omitempty"`
	Status         string         `json:"status"`
	IsDefault      bool           `json:"is_default"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewTemplateResponse converts a domain template, markup bodies excluded
func NewTemplateResponse(t *rendering.Template) TemplateResponse {
	return TemplateResponse{
		ID:             t.ID.String(),
		EntityType:     t.EntityType.String(),
		Name:           t.Name,
		PrintHeader:    t.PrintHeader,
		PrintFooter:    t.PrintFooter,
		HeaderPosition: t.HeaderPosition,
		FooterPosition: t.FooterPosition,
		Orientation:    t.Orientation.String(),
		PageFormat:     t.PageFormat.String(),
		PageWidth:      t.PageWidth,
		PageHeight:     t.PageHeight,
		Margins: MarginsPayload{
			Top:    t.Margins.Top,
			Right:  t.Margins.Right,
			Bottom: t.Margins.Bottom,
			Left:   t.Margins.Left,
		},
		FontFace:  t.FontFace,
		Status:    t.Status.String(),
		IsDefault: t.IsDefault,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
