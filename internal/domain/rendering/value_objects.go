package rendering

import "github.com/docgen/backend/internal/domain/shared"

// Margins represents the page margins in millimeters
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// NewMargins creates a new Margins value object
func NewMargins(top, right, bottom, left int) (Margins, error) {
	if top < 0 || right < 0 || bottom < 0 || left < 0 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot be negative")
	}
	if top > 100 || right > 100 || bottom > 100 || left > 100 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot exceed 100mm")
	}
	return Margins{
		Top:    top,
		Right:  right,
		Bottom: bottom,
		Left:   left,
	}, nil
}

// DefaultMargins returns the default page margins
func DefaultMargins() Margins {
	return Margins{
		Top:    10,
		Right:  10,
		Bottom: 10,
		Left:   10,
	}
}

// IsZero returns true if all margins are zero
func (m Margins) IsZero() bool {
	return m.Top == 0 && m.Right == 0 && m.Bottom == 0 && m.Left == 0
}

// Equals checks if two Margins are equal
func (m Margins) Equals(other Margins) bool {
	return m.Top == other.Top &&
		m.Right == other.Right &&
		m.Bottom == other.Bottom &&
		m.Left == other.Left
}

// PageSize is the resolved physical page size a document section uses.
// Format names a standard size; Width/Height carry explicit millimeter
// dimensions when Format is empty.
type PageSize struct {
	Format string `json:"format,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// IsCustom returns true when the size carries explicit dimensions
func (s PageSize) IsCustom() bool {
	return s.Format == ""
}
