package rendering

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EntityType identifies the kind of business record a template renders.
// The set is open: any non-empty identifier loaded from storage is accepted,
// the constants below cover the built-in record kinds.
type EntityType string

const (
	EntityTypeContact     EntityType = "Contact"
	EntityTypeLead        EntityType = "Lead"
	EntityTypeAccount     EntityType = "Account"
	EntityTypeOpportunity EntityType = "Opportunity"
	EntityTypeCampaign    EntityType = "Campaign"
	EntityTypeInvoice     EntityType = "Invoice"
	EntityTypeQuote       EntityType = "Quote"
)

// IsValid checks if the EntityType carries a usable identifier
func (t EntityType) IsValid() bool {
	return strings.TrimSpace(string(t)) != ""
}

// String returns the string representation of EntityType
func (t EntityType) String() string {
	return string(t)
}

// Label returns a human-readable label for the entity type,
// splitting camel-cased identifiers into title-cased words
func (t EntityType) Label() string {
	var b strings.Builder
	for i, r := range string(t) {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return cases.Title(language.English, cases.NoLower).String(b.String())
}

// Orientation represents the page orientation for rendering
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// IsValid checks if the Orientation is a valid value
func (o Orientation) IsValid() bool {
	switch o {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// String returns the string representation of Orientation
func (o Orientation) String() string {
	return string(o)
}

// Code returns the single-letter orientation code used by the renderer
func (o Orientation) Code() string {
	if o == OrientationLandscape {
		return "L"
	}
	return "P"
}

// PageFormat represents the page size a template renders onto
type PageFormat string

const (
	PageFormatA3     PageFormat = "A3" // 297mm x 420mm
	PageFormatA4     PageFormat = "A4" // 210mm x 297mm
	PageFormatA5     PageFormat = "A5" // 148mm x 210mm
	PageFormatLetter PageFormat = "Letter"
	PageFormatLegal  PageFormat = "Legal"
	PageFormatCustom PageFormat = "Custom" // dimensions come from the template
)

// IsValid checks if the PageFormat is a valid value
func (f PageFormat) IsValid() bool {
	switch f {
	case PageFormatA3, PageFormatA4, PageFormatA5, PageFormatLetter, PageFormatLegal, PageFormatCustom:
		return true
	}
	return false
}

// String returns the string representation of PageFormat
func (f PageFormat) String() string {
	return string(f)
}

// Dimensions returns the page dimensions in millimeters (width, height).
// Custom returns zeros; the template supplies its own dimensions.
func (f PageFormat) Dimensions() (width, height int) {
	switch f {
	case PageFormatA3:
		return 297, 420
	case PageFormatA4:
		return 210, 297
	case PageFormatA5:
		return 148, 210
	case PageFormatLetter:
		return 216, 279
	case PageFormatLegal:
		return 216, 356
	case PageFormatCustom:
		return 0, 0
	default:
		return 210, 297
	}
}

// AllPageFormats returns all valid PageFormat values
func AllPageFormats() []PageFormat {
	return []PageFormat{
		PageFormatA3, PageFormatA4, PageFormatA5, PageFormatLetter, PageFormatLegal, PageFormatCustom,
	}
}

// TemplateStatus represents the status of a render template
type TemplateStatus string

const (
	TemplateStatusActive   TemplateStatus = "ACTIVE"
	TemplateStatusInactive TemplateStatus = "INACTIVE"
)

// IsValid checks if the TemplateStatus is a valid value
func (s TemplateStatus) IsValid() bool {
	switch s {
	case TemplateStatusActive, TemplateStatusInactive:
		return true
	}
	return false
}

// String returns the string representation of TemplateStatus
func (s TemplateStatus) String() string {
	return string(s)
}
