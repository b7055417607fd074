package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docgen/backend/internal/domain/rendering"
	"github.com/docgen/backend/internal/domain/shared"
	"github.com/docgen/backend/internal/interfaces/http/dto"
	"github.com/docgen/backend/internal/interfaces/http/middleware"
)

// TemplateHandler serves render-template management endpoints
type TemplateHandler struct {
	BaseHandler
	templates rendering.TemplateRepository
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templates rendering.TemplateRepository) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List returns templates bound to an entity type.
// GET /templates?entity_type=Contact
func (h *TemplateHandler) List(c *gin.Context) {
	entityType := rendering.EntityType(c.Query("entity_type"))
	if !entityType.IsValid() {
		h.BadRequest(c, "entity_type query parameter is required")
		return
	}

	filter := shared.NewFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	templates, err := h.templates.FindByEntityType(c.Request.Context(), entityType, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]dto.TemplateResponse, len(templates))
	for i, tpl := range templates {
		out[i] = dto.NewTemplateResponse(tpl)
	}
	h.Success(c, out)
}

// Get returns one template.
// GET /templates/:id
func (h *TemplateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid template id")
		return
	}

	tpl, err := h.templates.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewTemplateResponse(tpl))
}

// Create stores a new render template.
// POST /templates
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tpl, err := rendering.NewTemplate(rendering.EntityType(req.EntityType), req.Name, req.Body)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if req.Orientation != "" || req.PageFormat != "" {
		orientation := tpl.Orientation
		if req.Orientation != "" {
			orientation = rendering.Orientation(req.Orientation)
		}
		format := tpl.PageFormat
		if req.PageFormat != "" {
			format = rendering.PageFormat(req.PageFormat)
		}
		if err := tpl.SetPageLayout(orientation, format, req.PageWidth, req.PageHeight); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	if err := tpl.SetHeader(req.Header, req.PrintHeader, req.HeaderPosition); err != nil {
		h.HandleError(c, err)
		return
	}
	if err := tpl.SetFooter(req.Footer, req.PrintFooter, req.FooterPosition); err != nil {
		h.HandleError(c, err)
		return
	}
	if req.Margins != nil {
		margins, err := rendering.NewMargins(req.Margins.Top, req.Margins.Right, req.Margins.Bottom, req.Margins.Left)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		tpl.SetMargins(margins)
	}
	if req.FontFace != "" {
		tpl.SetFontFace(req.FontFace)
	}

	actor := middleware.GetActor(c)
	if actor.UserID != uuid.Nil {
		userID := actor.UserID
		tpl.CreatedBy = &userID
	}

	if err := h.templates.Save(c.Request.Context(), tpl); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewTemplateResponse(tpl))
}

// Delete removes a template.
// DELETE /templates/:id
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid template id")
		return
	}

	if err := h.templates.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(204)
}
