// Package auth evaluates record-level access for rendering operations.
// Scope levels are resolved per entity type from the actor's grants.
package auth

import (
	"strings"

	"github.com/google/uuid"
)

// ScopeLevel is the breadth of records an actor may read for an entity type
type ScopeLevel int

const (
	// ScopeNone denies access to the entity type entirely
	ScopeNone ScopeLevel = iota
	// ScopeOwn limits access to records the actor created
	ScopeOwn
	// ScopeAll grants access to every record of the entity type
	ScopeAll
)

// ParseScopeLevel parses a scope level name, defaulting to ScopeNone
func ParseScopeLevel(s string) ScopeLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ALL":
		return ScopeAll
	case "OWN", "SELF":
		return ScopeOwn
	default:
		return ScopeNone
	}
}

// String returns the string representation of ScopeLevel
func (l ScopeLevel) String() string {
	switch l {
	case ScopeAll:
		return "ALL"
	case ScopeOwn:
		return "OWN"
	default:
		return "NONE"
	}
}

// Actor is the authenticated principal a request runs as
type Actor struct {
	UserID uuid.UUID
	// Scopes maps entity type names to the granted scope level.
	// Entity types without an entry default to full access.
	Scopes map[string]ScopeLevel
}

// ScopeFor returns the actor's scope level for an entity type
func (a *Actor) ScopeFor(entityType string) ScopeLevel {
	if a == nil {
		return ScopeNone
	}
	if a.Scopes == nil {
		return ScopeAll
	}
	level, ok := a.Scopes[entityType]
	if !ok {
		// No scope configured for this entity type, default to full access
		return ScopeAll
	}
	return level
}

// AccessPolicy answers read-access questions for records and templates
type AccessPolicy struct{}

// NewAccessPolicy creates an access policy
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanAccessScope reports whether the actor may touch the entity type at all
func (p *AccessPolicy) CanAccessScope(actor *Actor, entityType string) bool {
	return actor.ScopeFor(entityType) > ScopeNone
}

// CanRead reports whether the actor may read a record of the given entity
// type created by the given user
func (p *AccessPolicy) CanRead(actor *Actor, entityType string, createdBy *uuid.UUID) bool {
	switch actor.ScopeFor(entityType) {
	case ScopeAll:
		return true
	case ScopeOwn:
		return actor != nil && createdBy != nil && *createdBy == actor.UserID
	default:
		return false
	}
}
