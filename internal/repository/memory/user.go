// Package memory implements the stores in process memory. Data does not
// survive a restart; it backs local development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/dtroode/findoc-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]model.User),
	}
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	return user, nil
}

// Create checks and inserts under one lock, so two concurrent creates for the
// same email cannot both succeed.
func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return model.User{}, model.ErrDuplicateEmail
	}

	r.byEmail[user.Email] = user

	return user, nil
}

// Ping always succeeds.
func (r *UserRepository) Ping(_ context.Context) error {
	return nil
}
