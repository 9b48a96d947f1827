package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/findoc-server/internal/api/http/response"
	"github.com/dtroode/findoc-server/internal/logger"
	"github.com/dtroode/findoc-server/internal/model"
)

const maxCredentialsBytes = 64 << 10

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Auth handles the registration and login endpoints.
type Auth struct {
	authService AuthService
	validator   *Validator
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, validator *Validator, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		validator:   validator,
		logger:      logger,
	}
}

// Register handles POST /auth/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, maxCredentialsBytes, &req); err != nil {
		handleError(w, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := h.validator.Struct(req); err != nil {
		handleError(w, err)
		return
	}

	token, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, model.ErrDuplicateEmail) && !errors.Is(err, model.ErrWeakCredential) {
			h.logger.Error("Auth handler: registration failed",
				"error", err.Error())
		}
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

// Login handles POST /auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, maxCredentialsBytes, &req); err != nil {
		handleError(w, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		handleError(w, err)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, model.ErrInvalidCredentials) {
			h.logger.Error("Auth handler: login failed",
				"error", err.Error())
		}
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}
