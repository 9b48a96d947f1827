package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/findoc-server/internal/mocks"
	"github.com/dtroode/findoc-server/internal/model"
	"github.com/dtroode/findoc-server/internal/testutil"
)

func TestAuth_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(s *mocks.AuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: `{"email":" Alice@Example.com ","password":"password123"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "Alice@Example.com", "password123").Return("tok", nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"access_token":"tok"}`,
		},
		{
			name: "duplicate email",
			body: `{"email":"a@b.co","password":"password123"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "a@b.co", "password123").Return("", model.ErrDuplicateEmail).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"detail":"Email already registered"}`,
		},
		{
			name: "weak password",
			body: `{"email":"a@b.co","password":"short"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "a@b.co", "short").Return("", model.ErrWeakCredential).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"Password must be at least 8 characters"}`,
		},
		{
			name: "persistence failure hides details",
			body: `{"email":"a@b.co","password":"password123"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "a@b.co", "password123").Return("", model.ErrPersistence).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"internal server error"}`,
		},
		{
			name:       "invalid email",
			body:       `{"email":"nope","password":"password123"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"email must be a valid email address"}`,
		},
		{
			name:       "malformed json",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"Malformed request body"}`,
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"request body is required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewAuthService(t)
			if tt.setup != nil {
				tt.setup(svc)
			}
			h := NewAuth(svc, NewValidator(), testutil.MakeNoopLogger())

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAuth_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(s *mocks.AuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: `{"email":"a@b.co","password":"password123"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Login", mock.Anything, "a@b.co", "password123").Return("tok", nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"access_token":"tok"}`,
		},
		{
			name: "invalid credentials",
			body: `{"email":"a@b.co","password":"wrong-password"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Login", mock.Anything, "a@b.co", "wrong-password").Return("", model.ErrInvalidCredentials).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail":"Invalid credentials"}`,
		},
		{
			name:       "missing password",
			body:       `{"email":"a@b.co"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"password is a required field"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewAuthService(t)
			if tt.setup != nil {
				tt.setup(svc)
			}
			h := NewAuth(svc, NewValidator(), testutil.MakeNoopLogger())

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Login(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
