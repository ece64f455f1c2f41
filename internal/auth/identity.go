package auth

import "github.com/google/uuid"

// Identity is the caller described by a validated access token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}
