package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/LavaJover/shvark-topup-service/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(config.LogConfig{LogLevel: "warn", LogFormat: "json"}, &buf)

	l.Info("hidden")
	l.Warn("shown", "order_id", "TRN-1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "shown", rec["msg"])
	require.Equal(t, "TRN-1", rec["order_id"])
	require.Equal(t, "topup-service", rec["service"])
}

func TestNewSlogLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(config.LogConfig{LogLevel: "debug", LogFormat: "text"}, &buf)
	l.Debug("hello")
	require.Contains(t, buf.String(), "msg=hello")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
