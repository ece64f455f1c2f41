package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityType names the entity an audit record refers to.
type EntityType string

const (
	EntityTypeJourney      EntityType = "JOURNEY"
	EntityTypeCollaborator EntityType = "COLLABORATOR"
	EntityTypeExperience   EntityType = "EXPERIENCE"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeJourney, EntityTypeCollaborator, EntityTypeExperience:
		return true
	}
	return false
}

// AuditAction is the kind of mutation recorded.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// AuditRecord logs a mutation event on a journey-scoped entity.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	JourneyID  uuid.UUID
	EntityType EntityType
	EntityID   uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
