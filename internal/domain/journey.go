package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Invitation limits.
const (
	MaxEmailLength         = 254
	MaxInviteMessageLength = 500
)

// Journey is a trip plan shared between an owner and invited contributors.
type Journey struct {
	ID        uuid.UUID
	Title     string
	OwnerID   uuid.UUID
	CreatedAt time.Time
}

// Collaborator is a user's membership in a journey. A row in status PENDING
// is an invitation addressed by the row id.
type Collaborator struct {
	ID              uuid.UUID
	JourneyID       uuid.UUID
	UserID          uuid.UUID
	Email           string
	Role            Role
	Status          CollaboratorStatus
	InvitedAt       time.Time
	InvitedByUserID uuid.UUID
	Message         *string
	RespondedAt     *time.Time
}

// ActiveRole returns the role the collaborator currently holds.
// Only accepted collaborators hold a role.
func (c Collaborator) ActiveRole() (Role, bool) {
	if c.Status != CollaboratorStatusAccepted {
		return "", false
	}
	return c.Role, true
}

// BlocksInvite reports whether the row prevents another invitation of the
// same user to the same journey. Declined rows are kept only for audit.
func (c Collaborator) BlocksInvite() bool {
	return c.Status != CollaboratorStatusDeclined
}

// CheckRespond validates that caller may answer this invitation with decision.
func (c Collaborator) CheckRespond(caller uuid.UUID, decision InvitationDecision) error {
	if c.UserID != caller {
		return fmt.Errorf("%w: invitation is addressed to another user", ErrForbidden)
	}
	if c.Status != CollaboratorStatusPending {
		return &TransitionError{Entity: "invitation", From: string(c.Status), To: string(decision.Status())}
	}
	return nil
}

// CheckRemovable rejects removal of the owner row.
func (c Collaborator) CheckRemovable() error {
	if c.Role == RoleOwner {
		return fmt.Errorf("%w: the owner cannot be removed", ErrForbidden)
	}
	return nil
}

// PendingInvitation is an invitation enriched for the invitee's inbox.
type PendingInvitation struct {
	Collaborator
	JourneyTitle string
	InviterName  string
}
