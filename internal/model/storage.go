package model

import (
	"context"
	"io"
)

// Archive keeps raw uploads for later inspection.
type Archive interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64) error
}

// Pinger reports whether a storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
