package rendering

import (
	"strings"

	"github.com/google/uuid"

	"github.com/docgen/backend/internal/domain/shared"
)

// Template is the aggregate root for a render template. A template is bound
// to one entity type and may only render records of that type.
type Template struct {
	shared.BaseAggregateRoot
	EntityType     EntityType
	Name           string
	Body           string
	Header         string
	Footer         string
	PrintHeader    bool
	PrintFooter    bool
	HeaderPosition int // distance from the top edge in mm
	FooterPosition int // distance from the bottom edge in mm
	Orientation    Orientation
	PageFormat     PageFormat
	PageWidth      int // mm, only meaningful when PageFormat is Custom
	PageHeight     int // mm, only meaningful when PageFormat is Custom
	Margins        Margins
	FontFace       string // empty means use the configured default
	Status         TemplateStatus
	CreatedBy      *uuid.UUID
	IsDefault      bool
}

// NewTemplate creates a new render template
func NewTemplate(entityType EntityType, name, body string) (*Template, error) {
	if !entityType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Entity type is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Template name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Template name cannot exceed 200 characters")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Template body cannot be empty")
	}

	return &Template{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EntityType:        entityType,
		Name:              strings.TrimSpace(name),
		Body:              body,
		Orientation:       OrientationPortrait,
		PageFormat:        PageFormatA4,
		Margins:           DefaultMargins(),
		Status:            TemplateStatusActive,
	}, nil
}

// SetPageLayout updates the page orientation and format. Custom formats
// require explicit dimensions in millimeters.
func (t *Template) SetPageLayout(orientation Orientation, format PageFormat, width, height int) error {
	if !orientation.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid page orientation")
	}
	if !format.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid page format")
	}
	if format == PageFormatCustom && (width <= 0 || height <= 0) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Custom page format requires positive width and height")
	}
	t.Orientation = orientation
	t.PageFormat = format
	if format == PageFormatCustom {
		t.PageWidth = width
		t.PageHeight = height
	} else {
		t.PageWidth = 0
		t.PageHeight = 0
	}
	t.IncrementVersion()
	return nil
}

// SetHeader configures the header markup. When repeat is true the header is
// rendered on every page at the given position, otherwise it appears once at
// the top of the content flow.
func (t *Template) SetHeader(markup string, repeat bool, position int) error {
	if position < 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Header position cannot be negative")
	}
	t.Header = markup
	t.PrintHeader = repeat
	t.HeaderPosition = position
	t.IncrementVersion()
	return nil
}

// SetFooter configures the footer markup rendered on every page when enabled
func (t *Template) SetFooter(markup string, enabled bool, position int) error {
	if position < 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Footer position cannot be negative")
	}
	t.Footer = markup
	t.PrintFooter = enabled
	t.FooterPosition = position
	t.IncrementVersion()
	return nil
}

// SetMargins updates the page margins
func (t *Template) SetMargins(m Margins) {
	t.Margins = m
	t.IncrementVersion()
}

// SetFontFace overrides the document font. Empty restores the configured default.
func (t *Template) SetFontFace(face string) {
	t.FontFace = strings.TrimSpace(face)
	t.IncrementVersion()
}

// UpdateBody replaces the template body markup
func (t *Template) UpdateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Template body cannot be empty")
	}
	t.Body = body
	t.IncrementVersion()
	return nil
}

// Activate marks the template as usable
func (t *Template) Activate() {
	t.Status = TemplateStatusActive
	t.IncrementVersion()
}

// Deactivate marks the template as not usable
func (t *Template) Deactivate() {
	t.Status = TemplateStatusInactive
	t.IncrementVersion()
}

// IsActive returns true if the template can be used for rendering
func (t *Template) IsActive() bool {
	return t.Status == TemplateStatusActive
}

// CanRender reports whether the template may render records of the given type
func (t *Template) CanRender(entityType EntityType) bool {
	return t.EntityType == entityType
}

// ResolvePageSize returns the page size the template renders onto.
// Named formats resolve by name, Custom resolves to explicit dimensions,
// an unset format falls back to A4.
func (t *Template) ResolvePageSize() PageSize {
	if t.PageFormat == PageFormatCustom {
		return PageSize{Width: t.PageWidth, Height: t.PageHeight}
	}
	if t.PageFormat == "" {
		return PageSize{Format: PageFormatA4.String()}
	}
	return PageSize{Format: t.PageFormat.String()}
}
