package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hoist/internal/domain/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	t.Run("debug enables debug level", func(t *testing.T) {
		logger := NewLogger(&config.RuntimeConfig{Debug: true})
		assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
	})

	t.Run("env level", func(t *testing.T) {
		t.Setenv("HOIST_LOG_LEVEL", "error")
		logger := NewLogger(&config.RuntimeConfig{})
		assert.False(t, logger.Enabled(t.Context(), slog.LevelWarn))
		assert.True(t, logger.Enabled(t.Context(), slog.LevelError))
	})

	t.Run("log file", func(t *testing.T) {
		root := t.TempDir()
		logger := NewLogger(&config.RuntimeConfig{ProjectRoot: root, LogFile: "logs/hoist.log"})
		logger.Info("deployed", "proxy", "0xabc")

		data, err := os.ReadFile(filepath.Join(root, "logs", "hoist.log"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "proxy=0xabc")
	})
}
