package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
}

func TestInit_TextSkipsDebugUnlessVerbose(t *testing.T) {
	restoreDefault(t)
	var out bytes.Buffer

	logger := Init(Options{Stderr: &out})
	logger.Debug("debug message")
	logger.Info("info message")

	assert.NotContains(t, out.String(), "debug message")
	assert.Contains(t, out.String(), "msg=\"info message\"")
}

func TestInit_VerboseEnablesDebug(t *testing.T) {
	restoreDefault(t)
	var out bytes.Buffer

	Init(Options{Verbose: true, Stderr: &out})
	slog.Debug("look tick", "visible", true)

	assert.Contains(t, out.String(), "look tick")
	assert.Contains(t, out.String(), "visible=true")
}

func TestInit_JSONFormat(t *testing.T) {
	restoreDefault(t)
	var out bytes.Buffer

	logger := Init(Options{JSONFormat: true, Stderr: &out})
	Component(logger, "timer").Warn("callback failed", "count", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "callback failed", record["msg"])
	assert.Equal(t, "timer", record["component"])
	assert.Equal(t, float64(3), record["count"])
}

func TestComponent_NilFallsBackToDefault(t *testing.T) {
	restoreDefault(t)
	var out bytes.Buffer
	Init(Options{Stderr: &out})

	Component(nil, "idle").Info("started")
	assert.Contains(t, out.String(), "component=idle")
}
