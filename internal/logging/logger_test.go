package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/garagebill/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Off(t *testing.T) {
	for _, path := range []string{"", PathOff} {
		logger, cleanup, err := New(config.LogConfig{Path: path})
		require.NoError(t, err)
		cleanup()
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "garagebill.log")

	logger, cleanup, err := New(config.LogConfig{Level: "debug", Path: path, Format: "json"})
	require.NoError(t, err)
	defer cleanup()

	logger.Info("invoice saved")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "invoice saved", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, cleanup, err := New(config.LogConfig{Level: "warn", Path: path})
	require.NoError(t, err)
	defer cleanup()

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, cleanup, err := New(config.LogConfig{Level: "loud", Path: path})
	require.NoError(t, err)
	defer cleanup()
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_CleanupClosesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, cleanup, err := New(config.LogConfig{Path: path})
	require.NoError(t, err)

	logger.Info("before close")
	require.NoError(t, logger.Sync())
	cleanup()

	assert.Error(t, logger.Sync())
}
