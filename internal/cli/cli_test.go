package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var stdout, stderr bytes.Buffer
	root := NewRootCommand(&stderr)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConfigCommand_PrintsDefaultsForMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	stdout, _, err := execute(t, "config", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "# "+path)
	assert.Contains(t, stdout, "look_interval_ms: 1000")
	assert.Contains(t, stdout, "report_interval_seconds: 10")
	assert.Contains(t, stdout, "threshold: 0.5")
	assert.NoFileExists(t, path)
}

func TestConfigCommand_SaveWritesResolvedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 0.25\n"), 0o644))

	stdout, _, err := execute(t, "config", "--config", path, "--save")
	require.NoError(t, err)
	assert.Contains(t, stdout, "threshold: 0.25")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "oversize_policy: element_height")
}

func TestConfigCommand_InvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("look_interval_ms: 0\n"), 0o644))

	_, _, err := execute(t, "config", "--config", path)
	assert.ErrorContains(t, err, "lookInterval")
}

func TestSimulateCommand_PrintsReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	stdout, _, err := execute(t, "simulate", "--config", path, "--duration", "20s", "--scroll-every", "5s")
	require.NoError(t, err)

	assert.Contains(t, stdout, "report")
	assert.Contains(t, stdout, "count=5")
	assert.Contains(t, stdout, "total visible 10s in 2 reports")
}

func TestSimulateCommand_VerboseLogsTimerTransitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	_, stderr, err := execute(t, "simulate", "--config", path, "--duration", "2s", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "screentimer started")
}

func TestSimulateCommand_FallsBackToDefaultsOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 3\n"), 0o644))

	stdout, stderr, err := execute(t, "simulate", "--config", path, "--duration", "10s")
	require.NoError(t, err)
	assert.Contains(t, stderr, "settings unreadable")
	assert.Contains(t, stdout, "total visible 5s in 1 reports")
}
