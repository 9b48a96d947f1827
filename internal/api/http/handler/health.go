package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/findoc-server/internal/api/http/response"
	"github.com/dtroode/findoc-server/internal/logger"
)

type HealthChecker interface {
	Check(ctx context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
}

type Health struct {
	checker HealthChecker
	logger  *logger.Logger
}

func NewHealth(checker HealthChecker, logger *logger.Logger) *Health {
	return &Health{checker: checker, logger: logger}
}

// Check handles GET /health.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Check(r.Context()); err != nil {
		h.logger.Warn("Health handler: storage unavailable",
			"error", err.Error())
		response.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}

	response.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
