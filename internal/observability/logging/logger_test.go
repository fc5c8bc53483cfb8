package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdiary/internal/handler/http/requestid"
)

/* ───────── 로그 레벨 ───────── */

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, FormatJSON, slog.LevelInfo)

	logger.Debug("this should not appear")
	logger.Info("this should appear")

	assert.NotContains(t, buf.String(), "this should not appear")
	assert.Contains(t, buf.String(), "this should appear")
}

func TestNew_JSONStructure(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, FormatJSON, slog.LevelInfo)

	logger.Info("scrape finished", "category", "IT/과학", "count", 20)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scrape finished", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "IT/과학", entry["category"])
	assert.Equal(t, float64(20), entry["count"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, FormatText, slog.LevelInfo)
	logger.Warn("collection skipped")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `msg="collection skipped"`)
}

func TestNewLogger_NotNil(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.NotNil(t, NewLogger())
	assert.NotNil(t, NewCLILogger())
}

/* ───────── 컨텍스트 ───────── */

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, FormatJSON, slog.LevelInfo)

	ctx := requestid.WithRequestID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
	WithRequestID(ctx, base).Info("test message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", entry["request_id"])
}

func TestWithRequestID_EmptyRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, FormatJSON, slog.LevelInfo)

	WithRequestID(context.Background(), base).Info("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	ctx := context.WithValue(context.Background(), loggerContextKey, "not a logger")
	assert.Equal(t, slog.Default(), FromContext(ctx))

	var buf bytes.Buffer
	logger := New(&buf, FormatJSON, slog.LevelInfo)
	FromContext(WithLogger(context.Background(), logger)).Info("via context")
	assert.Contains(t, buf.String(), "via context")
}
