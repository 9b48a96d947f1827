package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/findoc-server/internal/model"
)

const pingTimeout = 2 * time.Second

// Health checks reachability of the storage backend.
type Health struct {
	pinger model.Pinger
}

func NewHealth(pinger model.Pinger) *Health {
	return &Health{pinger: pinger}
}

// Check returns nil when the storage backend answers a ping.
func (h *Health) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		return fmt.Errorf("storage ping failed: %w", err)
	}

	return nil
}
