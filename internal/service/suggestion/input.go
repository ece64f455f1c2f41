package suggestion

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

// Payload is the editable content of an experience.
type Payload struct {
	Day         int
	Title       string
	Description string
	Location    *string
}

func (p Payload) validate(errs []domain.FieldError) []domain.FieldError {
	if p.Day < domain.MinDay || p.Day > domain.MaxDay {
		errs = append(errs, domain.FieldError{Field: "day", Message: fmt.Sprintf("must be between %d and %d", domain.MinDay, domain.MaxDay)})
	}

	title := domain.NormalizeText(p.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("max %d characters", domain.MaxTitleLength)})
	}

	if utf8.RuneCountInString(strings.TrimSpace(p.Description)) > domain.MaxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: fmt.Sprintf("max %d characters", domain.MaxDescriptionLength)})
	}

	if p.Location != nil && utf8.RuneCountInString(strings.TrimSpace(*p.Location)) > domain.MaxLocationLength {
		errs = append(errs, domain.FieldError{Field: "location", Message: fmt.Sprintf("max %d characters", domain.MaxLocationLength)})
	}
	return errs
}

// apply copies the normalized payload onto e.
func (p Payload) apply(e *domain.Experience) {
	e.Day = p.Day
	e.Title = domain.NormalizeText(p.Title)
	e.Description = strings.TrimSpace(p.Description)
	e.Location = trimOrNil(p.Location)
}

// ProposeInput holds the parameters for proposing an experience.
type ProposeInput struct {
	JourneyID uuid.UUID
	Payload
}

// Validate checks all fields and collects all errors.
func (i ProposeInput) Validate() error {
	var errs []domain.FieldError

	if i.JourneyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "journey_id", Message: "required"})
	}
	errs = i.Payload.validate(errs)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReviewInput holds the owner's verdict on a suggestion.
type ReviewInput struct {
	JourneyID    uuid.UUID
	SuggestionID uuid.UUID
	Action       domain.ReviewAction
	Notes        *string
}

// Validate checks all fields and collects all errors.
func (i ReviewInput) Validate() error {
	var errs []domain.FieldError

	if i.JourneyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "journey_id", Message: "required"})
	}
	if i.SuggestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "suggestion_id", Message: "required"})
	}
	if !i.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "must be APPROVE or REJECT"})
	}
	if i.Notes != nil && utf8.RuneCountInString(strings.TrimSpace(*i.Notes)) > domain.MaxReviewNotesLength {
		errs = append(errs, domain.FieldError{Field: "notes", Message: fmt.Sprintf("max %d characters", domain.MaxReviewNotesLength)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateOwnInput replaces the content of the caller's pending suggestion.
type UpdateOwnInput struct {
	SuggestionID uuid.UUID
	Payload
}

// Validate checks all fields and collects all errors.
func (i UpdateOwnInput) Validate() error {
	var errs []domain.FieldError

	if i.SuggestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "suggestion_id", Message: "required"})
	}
	errs = i.Payload.validate(errs)

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
