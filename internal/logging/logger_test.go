package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv(debugEnvVar, "")
	assert.False(t, DebugEnabled())

	t.Setenv(debugEnvVar, "1")
	assert.True(t, DebugEnabled())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNew_TextRespectsLevel(t *testing.T) {
	t.Setenv(debugEnvVar, "")
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Format: "text"}, &buf)

	logger.Info("task added", "name", "Pay rent")
	assert.Empty(t, buf.String())

	logger.Warn("task already completed", "name", "Pay rent")
	assert.Contains(t, buf.String(), "task already completed")
	assert.Contains(t, buf.String(), "name=\"Pay rent\"")
}

func TestNew_JSON(t *testing.T) {
	t.Setenv(debugEnvVar, "")
	var buf bytes.Buffer
	logger := New(Options{Level: "info", Format: "json"}, &buf)

	logger.Info("tasks loaded", "count", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "tasks loaded", record["msg"])
	assert.Equal(t, float64(3), record["count"])
}

func TestNew_DebugEnvForcesDebug(t *testing.T) {
	t.Setenv(debugEnvVar, "true")
	var buf bytes.Buffer
	logger := New(Options{Level: "error"}, &buf)

	logger.Debug("opening store", "descriptor", "sqlite::memory:")
	assert.Contains(t, buf.String(), "opening store")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
