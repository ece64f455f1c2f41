package invitation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

// InviteInput holds the parameters for inviting a user to a journey.
type InviteInput struct {
	JourneyID uuid.UUID
	Email     string
	Message   *string
}

// Validate checks all fields and collects all errors.
func (i InviteInput) Validate() error {
	var errs []domain.FieldError

	if i.JourneyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "journey_id", Message: "required"})
	}

	email := domain.NormalizeEmail(i.Email)
	switch {
	case email == "":
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	case len(email) > domain.MaxEmailLength:
		errs = append(errs, domain.FieldError{Field: "email", Message: fmt.Sprintf("max %d characters", domain.MaxEmailLength)})
	case strings.Count(email, "@") != 1 || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@"):
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid format"})
	}

	if i.Message != nil && utf8.RuneCountInString(strings.TrimSpace(*i.Message)) > domain.MaxInviteMessageLength {
		errs = append(errs, domain.FieldError{Field: "message", Message: fmt.Sprintf("max %d characters", domain.MaxInviteMessageLength)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RespondInput holds the invitee's answer.
type RespondInput struct {
	InvitationID uuid.UUID
	Decision     domain.InvitationDecision
}

// Validate checks all fields and collects all errors.
func (i RespondInput) Validate() error {
	var errs []domain.FieldError

	if i.InvitationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "invitation_id", Message: "required"})
	}
	if !i.Decision.IsValid() {
		errs = append(errs, domain.FieldError{Field: "decision", Message: "must be ACCEPT or DECLINE"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RemoveInput identifies a collaborator row to delete.
type RemoveInput struct {
	JourneyID      uuid.UUID
	CollaboratorID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i RemoveInput) Validate() error {
	var errs []domain.FieldError

	if i.JourneyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "journey_id", Message: "required"})
	}
	if i.CollaboratorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "collaborator_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
