package rendering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docgen/backend/internal/domain/archive"
	"github.com/docgen/backend/internal/domain/rendering"
	"github.com/docgen/backend/internal/domain/shared"
	"github.com/docgen/backend/internal/infrastructure/auth"
	infra "github.com/docgen/backend/internal/infrastructure/rendering"
	"github.com/docgen/backend/internal/infrastructure/telemetry"
)

const (
	// pdfMimeType of every produced artifact
	pdfMimeType = "application/pdf"
	// templateScope is the entity type name templates are access-checked under
	templateScope = "Template"
)

// Config carries deployment settings for the render service
type Config struct {
	// MassMaxCount caps how many records one mass render may cover, zero disables the cap
	MassMaxCount int
	// ArtifactRetention is how long mass-render artifacts live before cleanup
	ArtifactRetention time.Duration
}

// JobScheduler enqueues deferred handler invocations
type JobScheduler interface {
	Schedule(ctx context.Context, handler string, payload map[string]any, runAt time.Time, queue string) error
}

// Service renders business records into PDF documents: single records for
// download or inline display, explicit record lists as mail-merge documents,
// and bulk selections as retained mass-render artifacts.
type Service struct {
	templates rendering.TemplateRepository
	records   rendering.RecordRepository
	artifacts archive.ArtifactRepository
	enrichers *infra.EnricherRegistry
	engine    infra.DocumentEngine
	composer  *Composer
	access    *auth.AccessPolicy
	scheduler JobScheduler
	config    Config
	logger    *zap.Logger
}

// NewService creates a render service
func NewService(
	templates rendering.TemplateRepository,
	records rendering.RecordRepository,
	artifacts archive.ArtifactRepository,
	enrichers *infra.EnricherRegistry,
	engine infra.DocumentEngine,
	composer *Composer,
	access *auth.AccessPolicy,
	scheduler JobScheduler,
	config Config,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		templates: templates,
		records:   records,
		artifacts: artifacts,
		enrichers: enrichers,
		engine:    engine,
		composer:  composer,
		access:    access,
		scheduler: scheduler,
		config:    config,
		logger:    logger,
	}
}

// RenderOne renders a single record through a template and returns the PDF
// bytes together with a filesystem-safe file name. The template must be bound
// to the record's entity type, and the actor must be able to read both the
// record and the template.
func (s *Service) RenderOne(ctx context.Context, actor *auth.Actor, record *rendering.Record, tpl *rendering.Template, extra map[string]any) ([]byte, string, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "render", "render_one")
	defer span.End()

	if record == nil || tpl == nil {
		return nil, "", shared.ErrInvalidInput
	}
	telemetry.SetAttribute(span, "entity_type", record.EntityType.String())
	telemetry.SetAttribute(span, "template_id", tpl.ID.String())

	if !tpl.CanRender(record.EntityType) {
		return nil, "", shared.ErrValidationMismatch
	}
	if !tpl.IsActive() {
		return nil, "", shared.NewDomainError("INVALID_STATE", "Template is not active")
	}
	if !s.access.CanRead(actor, record.EntityType.String(), record.CreatedBy) {
		return nil, "", shared.ErrForbidden
	}
	if !s.access.CanRead(actor, templateScope, tpl.CreatedBy) {
		return nil, "", shared.ErrForbidden
	}

	if err := s.enrichers.Enrich(ctx, record); err != nil {
		telemetry.RecordError(span, err)
		return nil, "", err
	}

	doc := s.engine.NewDocument()
	if err := s.composer.Compose(ctx, record, tpl, doc, extra); err != nil {
		telemetry.RecordError(span, err)
		return nil, "", err
	}

	data, err := doc.Output(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, "", err
	}

	name := SanitizeFileName(record.DisplayName()) + ".pdf"

	s.logger.Info("record rendered",
		zap.String("entity_type", record.EntityType.String()),
		zap.String("record_id", record.ID.String()),
		zap.Int("bytes", len(data)))

	return data, name, nil
}

// MailMerge renders an explicit, pre-authorized record list into one document
// with one page group per record and stores it as a "Mail Merge" artifact,
// optionally associated with a campaign. The artifact is kept indefinitely.
func (s *Service) MailMerge(ctx context.Context, entityType rendering.EntityType, records []*rendering.Record, tpl *rendering.Template, name string, campaignID *uuid.UUID) (*archive.Artifact, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "render", "mail_merge")
	defer span.End()

	if tpl == nil {
		return nil, shared.ErrInvalidInput
	}
	telemetry.SetAttribute(span, "entity_type", entityType.String())
	telemetry.SetAttribute(span, "record_count", len(records))

	if !tpl.CanRender(entityType) {
		return nil, shared.ErrValidationMismatch
	}
	if !tpl.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Template is not active")
	}

	data, err := s.composeMany(ctx, records, tpl, s.enrichers.Resolve(entityType))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	artifact, err := archive.NewArtifact(SanitizeFileName(name)+".pdf", pdfMimeType, data)
	if err != nil {
		return nil, err
	}
	if err := artifact.SetRole(archive.RoleMailMerge); err != nil {
		return nil, err
	}
	if campaignID != nil {
		artifact.RelateTo(rendering.EntityTypeCampaign.String(), *campaignID)
	}

	if err := s.artifacts.Save(ctx, artifact); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("mail merge completed",
		zap.String("entity_type", entityType.String()),
		zap.Int("records", len(records)),
		zap.String("artifact_id", artifact.ID.String()))

	return artifact, nil
}

// MassRender renders a bulk selection of records into one retained document.
//
// Gates apply in order: the volume cap before any record is loaded, template
// existence, then template read and entity-scope access when enforceACL is
// set. Records the actor cannot read are skipped silently; loaded records
// render in the order of the requested id list. The stored "Mass Pdf"
// artifact is scheduled for cleanup after the configured retention.
func (s *Service) MassRender(ctx context.Context, actor *auth.Actor, entityType rendering.EntityType, ids []uuid.UUID, templateID uuid.UUID, enforceACL bool) (*archive.Artifact, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "render", "mass_render")
	defer span.End()

	telemetry.SetAttribute(span, "entity_type", entityType.String())
	telemetry.SetAttribute(span, "requested_count", len(ids))

	if !entityType.IsValid() {
		return nil, shared.ErrInvalidInput
	}

	// Resolved before any other work; the same enricher then serves every
	// record in the compose loop. Unknown types fall back to the generic
	// enricher.
	enricher := s.enrichers.Resolve(entityType)

	if s.config.MassMaxCount > 0 && len(ids) > s.config.MassMaxCount {
		return nil, shared.ErrVolumeLimitExceeded
	}

	tpl, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if tpl == nil {
		return nil, shared.ErrNotFound
	}
	if !tpl.CanRender(entityType) {
		return nil, shared.ErrValidationMismatch
	}
	if !tpl.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Template is not active")
	}
	if enforceACL {
		if !s.access.CanRead(actor, templateScope, tpl.CreatedBy) {
			return nil, shared.ErrForbidden
		}
		if !s.access.CanAccessScope(actor, entityType.String()) {
			return nil, shared.ErrForbidden
		}
	}

	loaded, err := s.records.FindByIDs(ctx, entityType, ids)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	records := reorder(loaded, ids)

	if enforceACL {
		readable := records[:0]
		for _, rec := range records {
			if s.access.CanRead(actor, entityType.String(), rec.CreatedBy) {
				readable = append(readable, rec)
				continue
			}
			s.logger.Debug("record skipped by access policy",
				zap.String("entity_type", entityType.String()),
				zap.String("record_id", rec.ID.String()))
		}
		records = readable
	}
	telemetry.SetAttribute(span, "rendered_count", len(records))

	data, err := s.composeMany(ctx, records, tpl, enricher)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	artifact, err := archive.NewArtifact(SanitizeFileName(entityType.Label())+".pdf", pdfMimeType, data)
	if err != nil {
		return nil, err
	}
	if err := artifact.SetRole(archive.RoleMassPdf); err != nil {
		return nil, err
	}

	if err := s.artifacts.Save(ctx, artifact); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	runAt := time.Now().Add(s.retention())
	payload := map[string]any{"id": artifact.ID.String()}
	if err := s.scheduler.Schedule(ctx, CleanupHandlerName, payload, runAt, CleanupQueue); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("mass render completed",
		zap.String("entity_type", entityType.String()),
		zap.Int("requested", len(ids)),
		zap.Int("rendered", len(records)),
		zap.String("artifact_id", artifact.ID.String()),
		zap.Time("cleanup_at", runAt))

	return artifact, nil
}

// composeMany renders each record into its own page group of one document,
// enriching every record through the caller-resolved enricher. An empty
// record list yields an empty but valid document.
func (s *Service) composeMany(ctx context.Context, records []*rendering.Record, tpl *rendering.Template, enricher infra.Enricher) ([]byte, error) {
	doc := s.engine.NewDocument()
	for _, rec := range records {
		if err := infra.EnrichRecord(ctx, enricher, rec); err != nil {
			return nil, err
		}
		doc.StartPageGroup()
		if err := s.composer.Compose(ctx, rec, tpl, doc, nil); err != nil {
			return nil, err
		}
	}
	return doc.Output(ctx)
}

// retention returns the configured artifact retention with its default
func (s *Service) retention() time.Duration {
	if s.config.ArtifactRetention > 0 {
		return s.config.ArtifactRetention
	}
	return DefaultArtifactRetention
}

// reorder arranges loaded records in the order of the requested id list.
// Ids that did not load are skipped.
func reorder(records []*rendering.Record, ids []uuid.UUID) []*rendering.Record {
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
