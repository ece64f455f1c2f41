package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Field limits for experiences.
const (
	MinDay               = 1
	MaxDay               = 365
	MaxTitleLength       = 200
	MaxDescriptionLength = 4000
	MaxLocationLength    = 300
	MaxReviewNotesLength = 1000
)

// Experience is an itinerary item. A contributor's proposal is an experience
// in status PENDING; the owner's review flips the same row.
type Experience struct {
	ID                uuid.UUID
	JourneyID         uuid.UUID
	Day               int
	Title             string
	Description       string
	Location          *string
	SuggestedByUserID uuid.UUID
	ApprovalStatus    ApprovalStatus
	ReviewedByUserID  *uuid.UUID
	ReviewedAt        *time.Time
	ReviewNotes       *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// InitialStatus returns the status a new experience gets for the author's role.
// Owners skip review.
func InitialStatus(role Role) ApprovalStatus {
	if role == RoleOwner {
		return ApprovalStatusApproved
	}
	return ApprovalStatusPending
}

// CheckReview validates a review transition.
func (e Experience) CheckReview(action ReviewAction) error {
	if e.ApprovalStatus != ApprovalStatusPending {
		return &TransitionError{Entity: "suggestion", From: string(e.ApprovalStatus), To: string(action.Status())}
	}
	return nil
}

// CheckOwnChange validates that caller may edit or withdraw the suggestion:
// it must be their own and still pending.
func (e Experience) CheckOwnChange(caller uuid.UUID) error {
	if e.SuggestedByUserID != caller {
		return fmt.Errorf("%w: suggestion belongs to another user", ErrForbidden)
	}
	if e.ApprovalStatus != ApprovalStatusPending {
		return fmt.Errorf("%w: suggestion is %s", ErrForbidden, e.ApprovalStatus)
	}
	return nil
}
