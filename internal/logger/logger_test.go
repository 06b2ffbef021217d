package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_DETAILED", "true")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, "WARN", cfg.Level)
	assert.Equal(t, "text", cfg.Format)
	assert.True(t, cfg.DetailedLogging)
}

func TestLoggingWithoutInitDoesNotPanic(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		Info(ctx, "info", "k", "v")
		Warn(ctx, "warn")
		ErrorWithErr(ctx, "err", errors.New("boom"))
		Signal(ctx, "TCS", "BUY", 72)
		Fallback(ctx, "price", "TCS", nil)
	})
}

func TestOperationTimer(t *testing.T) {
	assert.NoError(t, InitWithConfig(LogConfig{Level: "DEBUG", Format: "text", DetailedLogging: true}))
	defer func() { detailedLogging = false }()

	op := StartOperation(context.Background(), "scan", "symbols", 5, "ratio", 0.5)
	assert.NotNil(t, op.GetContext())
	assert.NotPanics(t, func() { op.End("results", 5) })

	op = StartOperation(context.Background(), "scan")
	assert.NotPanics(t, func() { op.EndWithError(errors.New("failed")) })
}

func TestToAttributesSkipsUnsupported(t *testing.T) {
	attrs := toAttributes([]any{"a", "x", "b", 1, "c", struct{}{}, 42, "bad-key", "dangling"})
	assert.Len(t, attrs, 2)
}
