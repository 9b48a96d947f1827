package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MinPasswordLength is the minimal password length in characters.
const MinPasswordLength = 8

// UserStore defines persistence operations for users.
// Emails passed to the store are expected to be normalized already.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	// Create stores the user in a single conditional write and returns
	// ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, user User) (User, error)
}

// User represents a registered account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}
