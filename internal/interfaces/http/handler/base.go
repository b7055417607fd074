package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docgen/backend/internal/domain/shared"
	infra "github.com/docgen/backend/internal/infrastructure/rendering"
	"github.com/docgen/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, shared.CodeInvalidInput, message)
}

// HandleError maps domain and renderer errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	var renderErr *infra.RenderError
	if errors.As(err, &renderErr) {
		h.Error(c, http.StatusInternalServerError, shared.CodeRenderFailed, renderErr.Message)
		return
	}

	h.Error(c, http.StatusInternalServerError, "ERR_INTERNAL", "Internal server error")
}
