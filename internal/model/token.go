package model

import (
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time.
type Clock func() time.Time

// TokenManager issues and validates access tokens.
type TokenManager interface {
	Issue(subject uuid.UUID, now time.Time) (string, error)
	// Validate returns an error wrapping ErrInvalidToken for any failure.
	Validate(token string, now time.Time) (uuid.UUID, error)
}
