package rendering

import (
	"context"
	"sync"

	"github.com/docgen/backend/internal/domain/rendering"
)

// Enricher loads additional fields onto a record before rendering.
// Implementations exist per entity type; the registry falls back to a
// generic no-op enricher for types without one.
type Enricher interface {
	// EntityType returns the entity type this enricher serves
	EntityType() rendering.EntityType
	// LoadAdditionalFields fills derived and related fields onto the record
	LoadAdditionalFields(ctx context.Context, record *rendering.Record) error
}

// PdfEnricher is an optional capability: enrichers implementing it get an
// extra PDF-specific pass after the general one.
type PdfEnricher interface {
	Enricher
	// LoadAdditionalFieldsForPdf fills fields only PDF output needs
	LoadAdditionalFieldsForPdf(ctx context.Context, record *rendering.Record) error
}

// EnricherRegistry manages Enricher implementations per entity type.
// Lookups for unregistered types resolve to a generic enricher, so every
// entity type can be rendered.
type EnricherRegistry struct {
	mu        sync.RWMutex
	enrichers map[rendering.EntityType]Enricher
}

// NewEnricherRegistry creates a new empty EnricherRegistry
func NewEnricherRegistry() *EnricherRegistry {
	return &EnricherRegistry{
		enrichers: make(map[rendering.EntityType]Enricher),
	}
}

// Register adds an Enricher to the registry.
// If an enricher for the same entity type already exists, it is replaced.
func (r *EnricherRegistry) Register(enricher Enricher) {
	if enricher == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enrichers[enricher.EntityType()] = enricher
}

// Resolve returns the enricher for the given entity type, falling back to
// the generic enricher when none is registered
func (r *EnricherRegistry) Resolve(entityType rendering.EntityType) Enricher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.enrichers[entityType]; ok {
		return e
	}
	return genericEnricher{entityType: entityType}
}

// HasEnricher checks if a dedicated enricher is registered for the type
func (r *EnricherRegistry) HasEnricher(entityType rendering.EntityType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.enrichers[entityType]
	return ok
}

// Enrich runs the resolved enricher's general pass and, when the enricher
// has the PDF capability, its PDF pass as well
func (r *EnricherRegistry) Enrich(ctx context.Context, record *rendering.Record) error {
	return EnrichRecord(ctx, r.Resolve(record.EntityType), record)
}

// EnrichRecord runs one enricher's general pass and, when the enricher has
// the PDF capability, its PDF pass as well. Callers rendering many records
// of one entity type resolve the enricher once and reuse it here.
func EnrichRecord(ctx context.Context, enricher Enricher, record *rendering.Record) error {
	if err := enricher.LoadAdditionalFields(ctx, record); err != nil {
		return err
	}
	if pdfEnricher, ok := enricher.(PdfEnricher); ok {
		return pdfEnricher.LoadAdditionalFieldsForPdf(ctx, record)
	}
	return nil
}

// genericEnricher serves entity types without a dedicated enricher.
// The record renders from its stored fields alone.
type genericEnricher struct {
	entityType rendering.EntityType
}

func (g genericEnricher) EntityType() rendering.EntityType {
	return g.entityType
}

func (g genericEnricher) LoadAdditionalFields(ctx context.Context, record *rendering.Record) error {
	return nil
}
