package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFormatsMessageAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: "info", Output: &buf})

	log.Debug("hidden %d", 1)
	log.Info("play %s cached for game %d", "abc", 747962)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "play abc cached for game 747962", record["msg"])
}

func TestLoggerWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: "debug", Output: &buf}).With("request_id", "r-1")

	log.Warn("100%% literal")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "r-1", record["request_id"])
	assert.Equal(t, "100%% literal", record["msg"])
}

func TestGetLoggerLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, getLoggerLevel("WARN"))
	assert.Equal(t, slog.LevelError, getLoggerLevel("error"))
	assert.Equal(t, slog.LevelDebug, getLoggerLevel("unknown"))
}
