package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrValidationMismatch  = NewDomainError("VALIDATION_MISMATCH", "Template is not bound to this entity type")
	ErrVolumeLimitExceeded = NewDomainError("VOLUME_LIMIT_EXCEEDED", "Record count exceeds the configured maximum")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Error codes used across the domain
const (
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeForbidden           = "FORBIDDEN"
	CodeValidationMismatch  = "VALIDATION_MISMATCH"
	CodeVolumeLimitExceeded = "VOLUME_LIMIT_EXCEEDED"
	CodeRenderFailed        = "RENDER_FAILED"
)
