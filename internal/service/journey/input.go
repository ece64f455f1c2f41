package journey

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/journey-planner-backend/internal/domain"
)

// CreateInput holds the parameters for creating a journey.
type CreateInput struct {
	Title string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	title := domain.NormalizeText(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("max %d characters", domain.MaxTitleLength)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Activity page sizes.
const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

// ActivityInput selects a page of a journey's change history.
type ActivityInput struct {
	JourneyID uuid.UUID
	Limit     int // 0 selects DefaultActivityLimit
}

// Validate checks all fields and collects all errors.
func (i ActivityInput) Validate() error {
	var errs []domain.FieldError

	if i.JourneyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "journey_id", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > MaxActivityLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", MaxActivityLimit)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
