package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dtroode/findoc-server/internal/api/http/response"
	"github.com/dtroode/findoc-server/internal/model"
)

const (
	detailInternal      = "internal server error"
	detailMalformedBody = "Malformed request body"
	detailTooLarge      = "Request body too large"
)

// handleError maps a service error to a status code and a client-safe detail.
// Internal error text never reaches the client.
func handleError(w http.ResponseWriter, err error) {
	var (
		validationErr *ValidationError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErr):
		response.Error(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &maxBytesErr):
		response.Error(w, http.StatusRequestEntityTooLarge, detailTooLarge)
	case errors.Is(err, model.ErrWeakCredential):
		response.Error(w, http.StatusBadRequest, "Password must be at least 8 characters")
	case errors.Is(err, model.ErrDuplicateEmail):
		response.Error(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, model.ErrInvalidToken):
		response.Error(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, model.ErrMalformedImport):
		response.Error(w, http.StatusBadRequest, "Malformed CSV upload")
	default:
		response.Error(w, http.StatusInternalServerError, detailInternal)
	}
}

// decodeJSON reads at most maxBytes of JSON from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBytes))
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return &ValidationError{Messages: []string{"request body is required"}}
		}
		return &ValidationError{Messages: []string{detailMalformedBody}}
	}

	return nil
}
