package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/findoc-server/internal/api/http/response"
	"github.com/dtroode/findoc-server/internal/logger"
	"github.com/dtroode/findoc-server/internal/model"
)

const (
	uploadField     = "file"
	multipartMemory = 1 << 20
)

// FinanceService reads and replaces the caller's finance document.
type FinanceService interface {
	Get(ctx context.Context, userID uuid.UUID) (model.FinanceData, error)
	Replace(ctx context.Context, userID uuid.UUID, content model.FinanceData) (model.FinanceData, error)
}

// ImportService merges uploaded CSV incomes into the caller's document.
type ImportService interface {
	Incomes(ctx context.Context, userID uuid.UUID, r io.Reader) (int, error)
}

type financeDocument struct {
	Data model.FinanceData `json:"data" validate:"required"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

// Finance handles the /v1/finance/me endpoints. Every route runs behind
// the authentication middleware.
type Finance struct {
	financeService FinanceService
	importService  ImportService
	contextManager model.ContextManager
	validator      *Validator
	maxBodyBytes   int64
	logger         *logger.Logger
}

// NewFinance creates a new Finance handler. maxBodyBytes bounds both
// document bodies and CSV uploads.
func NewFinance(
	financeService FinanceService,
	importService ImportService,
	contextManager model.ContextManager,
	validator *Validator,
	maxBodyBytes int64,
	logger *logger.Logger,
) *Finance {
	return &Finance{
		financeService: financeService,
		importService:  importService,
		contextManager: contextManager,
		validator:      validator,
		maxBodyBytes:   maxBodyBytes,
		logger:         logger,
	}
}

// Get handles GET /v1/finance/me.
func (h *Finance) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	data, err := h.financeService.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("Finance handler: get failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, financeDocument{Data: data})
}

// Put handles PUT /v1/finance/me and returns the document as stored.
func (h *Finance) Put(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req financeDocument
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		handleError(w, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		handleError(w, err)
		return
	}

	saved, err := h.financeService.Replace(r.Context(), userID, req.Data)
	if err != nil {
		h.logger.Error("Finance handler: replace failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, financeDocument{Data: saved})
}

// ImportIncomes handles POST /v1/finance/me/import/incomes with a multipart
// "file" field holding the CSV.
func (h *Finance) ImportIncomes(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			handleError(w, err)
			return
		}
		handleError(w, &ValidationError{Messages: []string{"multipart form with a file field is required"}})
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		handleError(w, &ValidationError{Messages: []string{"file is a required field"}})
		return
	}
	defer file.Close()

	imported, err := h.importService.Incomes(r.Context(), userID, file)
	if err != nil {
		if !errors.Is(err, model.ErrMalformedImport) {
			h.logger.Error("Finance handler: import failed",
				"user_id", userID,
				"error", err.Error())
		}
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, importResponse{Imported: imported})
}

func (h *Finance) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		handleError(w, model.ErrInvalidToken)
		return uuid.Nil, false
	}
	return userID, true
}
