package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dtroode/findoc-server/internal/logger"
	"github.com/dtroode/findoc-server/internal/model"
)

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	clock        model.Clock
	logger       *logger.Logger

	decoyOnce   sync.Once
	decoyDigest string
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	clock model.Clock,
	logger *logger.Logger,
) *Auth {
	if clock == nil {
		clock = time.Now
	}
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: tokenService,
		clock:        clock,
		logger:       logger,
	}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns an access token for it.
func (a *Auth) Register(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	a.logger.Debug("Auth service: starting user registration",
		"login", email)

	if utf8.RuneCountInString(password) < model.MinPasswordLength {
		return "", model.ErrWeakCredential
	}

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"login", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    a.clock(),
	})
	if errors.Is(err, model.ErrDuplicateEmail) {
		a.logger.Info("Auth service: user already exists",
			"login", email)
		return "", err
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"login", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.tokenService.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"login", email,
		"user_id", user.ID)

	return token, nil
}

// Login checks the credentials and returns an access token. Unknown emails and
// wrong passwords both yield model.ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	a.logger.Debug("Auth service: starting user login",
		"login", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown email",
			"login", email)
		a.verifyDecoy(password)
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"login", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: password mismatch",
			"login", email)
		return "", model.ErrInvalidCredentials
	}

	token, err := a.tokenService.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed successfully",
		"login", email,
		"user_id", user.ID)

	return token, nil
}

// verifyDecoy spends the same hashing work as a real password check so that
// unknown emails are not distinguishable by response time.
func (a *Auth) verifyDecoy(password string) {
	a.decoyOnce.Do(func() {
		digest, err := a.hasher.Hash("decoy-password")
		if err == nil {
			a.decoyDigest = digest
		}
	})
	a.hasher.Verify(password, a.decoyDigest)
}
