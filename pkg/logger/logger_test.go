package logger_test

import (
	"log/slog"
	"testing"

	"hr-platform/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestInitReplacesDefault(t *testing.T) {
	prev := logger.Log
	t.Cleanup(func() { logger.Log = prev })

	logger.Init("warn")
	assert.NotSame(t, prev, logger.Log)
	assert.Same(t, logger.Log, slog.Default())
}
