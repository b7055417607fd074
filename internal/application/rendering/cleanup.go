package rendering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docgen/backend/internal/domain/archive"
)

const (
	// CleanupHandlerName is the deferred-job handler deleting expired mass-render artifacts
	CleanupHandlerName = "artifactCleanup"
	// CleanupQueue tags cleanup jobs for the maintenance queue
	CleanupQueue = "maintenance"
	// DefaultArtifactRetention is how long mass-render artifacts live when not configured
	DefaultArtifactRetention = time.Hour
)

// CleanupHandler deletes mass-render artifacts once their retention passes.
//
// The handler is idempotent and never returns an error: a missing or
// malformed payload id, an already-deleted artifact, or an artifact whose
// role is not "Mass Pdf" all end the run silently. Jobs may be retried or
// duplicated without harm.
type CleanupHandler struct {
	artifacts archive.ArtifactRepository
	logger    *zap.Logger
}

// NewCleanupHandler creates a cleanup handler
func NewCleanupHandler(artifacts archive.ArtifactRepository, logger *zap.Logger) *CleanupHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupHandler{
		artifacts: artifacts,
		logger:    logger,
	}
}

// Handle processes one cleanup job payload
func (h *CleanupHandler) Handle(ctx context.Context, payload map[string]any) error {
	raw, ok := payload["id"].(string)
	if !ok || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}

	artifact, err := h.artifacts.FindByID(ctx, id)
	if err != nil || artifact == nil {
		return nil
	}
	if !artifact.IsReclaimable() {
		return nil
	}

	if err := h.artifacts.Delete(ctx, id); err != nil {
		h.logger.Warn("artifact cleanup delete failed",
			zap.String("artifact_id", id.String()),
			zap.Error(err))
		return nil
	}

	h.logger.Info("artifact cleaned up", zap.String("artifact_id", id.String()))
	return nil
}
