package dto

import (
	"net/http"
	"time"

	"github.com/docgen/backend/internal/domain/archive"
	"github.com/docgen/backend/internal/domain/shared"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:            http.StatusNotFound,
	shared.CodeForbidden:           http.StatusForbidden,
	shared.CodeInvalidInput:        http.StatusBadRequest,
	shared.CodeValidationMismatch:  http.StatusBadRequest,
	shared.CodeVolumeLimitExceeded: http.StatusUnprocessableEntity,
	shared.CodeRenderFailed:        http.StatusInternalServerError,
	"INVALID_STATE":                http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RenderOneRequest is the body for rendering a single record
type RenderOneRequest struct {
	TemplateID string         `json:"template_id" binding:"required,uuid"`
	Inline     bool           `json:"inline"`
	Data       map[string]any `json:"data"`
}

// MailMergeRequest is the body for merging an explicit record list
type MailMergeRequest struct {
	EntityType string   `json:"entity_type" binding:"required"`
	RecordIDs  []string `json:"record_ids" binding:"required,min=1,dive,uuid"`
	TemplateID string   `json:"template_id" binding:"required,uuid"`
	Name       string   `json:"name" binding:"required"`
	CampaignID string   `json:"campaign_id" binding:"omitempty,uuid"`
}

// MassRenderRequest is the body for rendering a bulk record selection
type MassRenderRequest struct {
	EntityType string   `json:"entity_type" binding:"required"`
	IDs        []string `json:"ids" binding:"required,dive,uuid"`
	TemplateID string   `json:"template_id" binding:"required,uuid"`
	// EnforceACL defaults to true when omitted
	EnforceACL *bool `json:"enforce_acl"`
}

// ArtifactResponse describes a stored document
type ArtifactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	Role      string    `json:"role,omitempty"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// NewArtifactResponse converts a domain artifact, contents excluded
func NewArtifactResponse(a *archive.Artifact) ArtifactResponse {
	return ArtifactResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		MimeType:  a.MimeType,
		Role:      a.Role.String(),
		Size:      a.Size(),
		CreatedAt: a.CreatedAt,
	}
}
