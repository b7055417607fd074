package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	app "github.com/docgen/backend/internal/application/rendering"
	"github.com/docgen/backend/internal/domain/archive"
	"github.com/docgen/backend/internal/domain/rendering"
	"github.com/docgen/backend/internal/interfaces/http/dto"
	"github.com/docgen/backend/internal/interfaces/http/middleware"
)

// RenderHandler serves the rendering endpoints
type RenderHandler struct {
	BaseHandler
	service   *app.Service
	templates rendering.TemplateRepository
	records   rendering.RecordRepository
	artifacts archive.ArtifactRepository
	logger    *zap.Logger
}

// NewRenderHandler creates a new RenderHandler
func NewRenderHandler(
	service *app.Service,
	templates rendering.TemplateRepository,
	records rendering.RecordRepository,
	artifacts archive.ArtifactRepository,
	logger *zap.Logger,
) *RenderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderHandler{
		service:   service,
		templates: templates,
		records:   records,
		artifacts: artifacts,
		logger:    logger,
	}
}

// RenderRecord renders a single record as a PDF.
// POST /render/:entity_type/:id
// The response streams the document inline or as an attachment.
func (h *RenderHandler) RenderRecord(c *gin.Context) {
	entityType := rendering.EntityType(c.Param("entity_type"))
	if !entityType.IsValid() {
		h.BadRequest(c, "entity type is required")
		return
	}
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid record id")
		return
	}

	var req dto.RenderOneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		h.BadRequest(c, "invalid template id")
		return
	}

	record, err := h.records.FindByID(c.Request.Context(), entityType, recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	tpl, err := h.templates.FindByID(c.Request.Context(), templateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	actor := middleware.GetActor(c)
	data, name, err := h.service.RenderOne(c.Request.Context(), actor, record, tpl, req.Data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	disposition := "attachment"
	if req.Inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, name))
	c.Data(http.StatusOK, "application/pdf", data)
}

// MailMerge renders an explicit record list into one stored document.
// POST /render/mail-merge
func (h *RenderHandler) MailMerge(c *gin.Context) {
	var req dto.MailMergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entityType := rendering.EntityType(req.EntityType)
	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		h.BadRequest(c, "invalid template id")
		return
	}
	ids, err := parseUUIDs(req.RecordIDs)
	if err != nil {
		h.BadRequest(c, "invalid record id")
		return
	}
	var campaignID *uuid.UUID
	if req.CampaignID != "" {
		id, err := uuid.Parse(req.CampaignID)
		if err != nil {
			h.BadRequest(c, "invalid campaign id")
			return
		}
		campaignID = &id
	}

	tpl, err := h.templates.FindByID(c.Request.Context(), templateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// The caller provides an already-authorized list; load it in request order
	loaded, err := h.records.FindByIDs(c.Request.Context(), entityType, ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	records := orderByIDs(loaded, ids)

	artifact, err := h.service.MailMerge(c.Request.Context(), entityType, records, tpl, req.Name, campaignID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewArtifactResponse(artifact))
}

// MassRender renders a bulk record selection into one stored document.
// POST /render/mass
func (h *RenderHandler) MassRender(c *gin.Context) {
	var req dto.MassRenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		h.BadRequest(c, "invalid template id")
		return
	}
	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		h.BadRequest(c, "invalid record id")
		return
	}

	enforceACL := true
	if req.EnforceACL != nil {
		enforceACL = *req.EnforceACL
	}

	actor := middleware.GetActor(c)
	artifact, err := h.service.MassRender(c.Request.Context(), actor,
		rendering.EntityType(req.EntityType), ids, templateID, enforceACL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewArtifactResponse(artifact))
}

// DownloadArtifact streams a stored document.
// GET /artifacts/:id/download?inline=true
func (h *RenderHandler) DownloadArtifact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid artifact id")
		return
	}

	artifact, err := h.artifacts.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	disposition := "attachment"
	if c.Query("inline") == "true" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, artifact.Name))
	c.Data(http.StatusOK, artifact.MimeType, artifact.Contents)
}

// GetArtifact returns artifact metadata without its contents.
// GET /artifacts/:id
func (h *RenderHandler) GetArtifact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid artifact id")
		return
	}

	artifact, err := h.artifacts.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewArtifactResponse(artifact))
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// orderByIDs arranges records in the order of the requested id list
func orderByIDs(records []*rendering.Record, ids []uuid.UUID) []*rendering.Record {
	byID := make(map[uuid.UUID]*rendering.Record, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	ordered := make([]*rendering.Record, 0, len(records))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			ordered = append(ordered, rec)
		}
	}
	return ordered
}
