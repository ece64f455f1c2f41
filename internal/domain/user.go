package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxNameLength bounds a user's display name.
const MaxNameLength = 100

// User represents an account that can own or join journeys.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	CreatedAt time.Time
}

// DisplayName returns the name, falling back to the email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
