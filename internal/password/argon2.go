// Package password hashes user passwords with Argon2id.
package password

import (
	"fmt"

	"github.com/matthewhartstonge/argon2"

	"github.com/dtroode/findoc-server/internal/model"
)

var _ model.PasswordHasher = (*Argon2)(nil)

// Params are the Argon2id cost parameters used for new hashes.
type Params struct {
	Time   uint32
	MemKiB uint32
	Par    uint8
}

// Argon2 produces PHC-encoded Argon2id digests. The encoded digest carries
// its own salt and parameters, so Verify keeps working after Params change.
type Argon2 struct {
	config argon2.Config
}

// NewArgon2 creates a hasher with the given cost parameters.
func NewArgon2(p Params) *Argon2 {
	cfg := argon2.DefaultConfig()
	cfg.Mode = argon2.ModeArgon2id
	if p.Time > 0 {
		cfg.TimeCost = p.Time
	}
	if p.MemKiB > 0 {
		cfg.MemoryCost = p.MemKiB
	}
	if p.Par > 0 {
		cfg.Parallelism = p.Par
	}

	return &Argon2{config: cfg}
}

// Hash returns the encoded digest of password.
func (a *Argon2) Hash(password string) (string, error) {
	cfg := a.config
	encoded, err := cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(encoded), nil
}

// Verify reports whether password matches digest. Malformed digests never match.
func (a *Argon2) Verify(password, digest string) bool {
	if digest == "" {
		return false
	}

	ok, err := argon2.VerifyEncoded([]byte(password), []byte(digest))
	if err != nil {
		return false
	}

	return ok
}
