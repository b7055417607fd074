package archive

import (
	"strings"

	"github.com/google/uuid"

	"github.com/docgen/backend/internal/domain/shared"
)

// Role tags what produced an artifact and how it may be reclaimed
type Role string

const (
	RoleNone      Role = ""
	RoleMailMerge Role = "Mail Merge"
	RoleMassPdf   Role = "Mass Pdf"
)

// IsValid checks if the Role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleNone, RoleMailMerge, RoleMassPdf:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Artifact is a stored generated document
type Artifact struct {
	shared.BaseAggregateRoot
	Name        string
	MimeType    string
	Role        Role
	RelatedType string
	RelatedID   *uuid.UUID
	Contents    []byte
}

// NewArtifact creates a stored document with the given name and MIME type
func NewArtifact(name, mimeType string, contents []byte) (*Artifact, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Artifact name cannot be empty")
	}
	if strings.TrimSpace(mimeType) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Artifact MIME type cannot be empty")
	}
	return &Artifact{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		MimeType:          mimeType,
		Contents:          contents,
	}, nil
}

// SetRole tags the artifact with a producer role
func (a *Artifact) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid artifact role")
	}
	a.Role = role
	a.IncrementVersion()
	return nil
}

// RelateTo associates the artifact with a business record
func (a *Artifact) RelateTo(entityType string, id uuid.UUID) {
	a.RelatedType = entityType
	a.RelatedID = &id
	a.IncrementVersion()
}

// Size returns the stored content length in bytes
func (a *Artifact) Size() int {
	return len(a.Contents)
}

// IsReclaimable reports whether the artifact belongs to the bulk-render
// retention policy and may be deleted by the cleanup handler
func (a *Artifact) IsReclaimable() bool {
	return a.Role == RoleMassPdf
}
