package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(&buf, int(slog.LevelDebug), "json")

	l.With("component", "test").Debug("hello", "key", "value")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "value", rec["key"])
	assert.Equal(t, "test", rec["component"])
}

func TestNewWithFormat_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(&buf, int(slog.LevelWarn), "text")

	l.Info("skipped")
	assert.Empty(t, buf.String())

	l.Warn("kept", "n", 1)
	assert.Contains(t, buf.String(), "msg=kept")
	assert.Contains(t, buf.String(), "n=1")
}
