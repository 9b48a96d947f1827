package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/findoc-server/internal/logger"
	"github.com/dtroode/findoc-server/internal/model"
)

// TokenService issues access tokens and resolves them back to user IDs.
// It owns the clock so token expiry can be tested deterministically.
type TokenService struct {
	manager model.TokenManager
	clock   model.Clock
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, clock model.Clock, logger *logger.Logger) *TokenService {
	if clock == nil {
		clock = time.Now
	}
	return &TokenService{manager: manager, clock: clock, logger: logger}
}

// Issue creates an access token for userID.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	access, err := s.manager.Issue(userID, s.clock())
	if err != nil {
		return "", fmt.Errorf("issue access: %w", err)
	}

	return access, nil
}

// GetUserID validates token and returns its subject. The returned error wraps
// model.ErrInvalidToken; the detailed reason is only logged.
func (s *TokenService) GetUserID(_ context.Context, token string) (uuid.UUID, error) {
	userID, err := s.manager.Validate(token, s.clock())
	if err != nil {
		s.logger.Debug("Token service: rejected access token",
			"reason", err.Error())
		if !errors.Is(err, model.ErrInvalidToken) {
			err = fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
		}
		return uuid.Nil, err
	}

	return userID, nil
}
