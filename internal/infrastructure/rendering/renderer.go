package rendering

import (
	"context"

	"github.com/docgen/backend/internal/domain/rendering"
)

// DocumentBuilder assembles one paginated document. Calls configure fonts,
// margins and headers, open page groups and append HTML to the content flow;
// Output serializes the accumulated document to PDF bytes.
//
// Page groups keep each record's pages together in bulk documents: a new
// group always starts on a fresh page.
type DocumentBuilder interface {
	// SetFont sets the document font face and size in points
	SetFont(face string, size float64)
	// SetMargins sets the left, top and right page margins in millimeters
	SetMargins(left, top, right int)
	// SetAutoPageBreak enables automatic page breaks with the given bottom margin in millimeters
	SetAutoPageBreak(bottom int)
	// SetHeader installs a header repeated on every page, positioned in millimeters from the top edge
	SetHeader(html string, position int)
	// DisableHeader removes any repeating header
	DisableHeader()
	// SetFooter installs a footer repeated on every page, positioned in millimeters from the bottom edge
	SetFooter(html string, position int)
	// DisableFooter removes any repeating footer
	DisableFooter()
	// StartPageGroup opens a new page group; following content starts on a fresh page
	StartPageGroup()
	// AddPage starts a new page with the given orientation code ("P" or "L") and size
	AddPage(orientation string, size rendering.PageSize)
	// WriteHTML appends markup to the current content flow
	WriteHTML(html string)
	// Output serializes the document to PDF bytes
	Output(ctx context.Context) ([]byte, error)
}

// DocumentEngine creates document builders and owns the underlying
// rendering backend's resources.
type DocumentEngine interface {
	NewDocument() DocumentBuilder
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout   = "RENDER_TIMEOUT"
	ErrCodeRenderFailed    = "RENDER_FAILED"
	ErrCodeInvalidMarkup   = "INVALID_MARKUP"
	ErrCodeInvalidPageSize = "INVALID_PAGE_SIZE"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
