package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archcanvas/internal/config"
)

func TestRunExport(t *testing.T) {
	cfg := config.DefaultConfig()

	var buf bytes.Buffer
	require.NoError(t, runExport(cfg, "yaml", &buf))
	assert.Contains(t, buf.String(), "name: frontend")

	buf.Reset()
	require.NoError(t, runExport(cfg, "png", &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.Error(t, runExport(cfg, "svg", &buf))
}

func TestExportFile(t *testing.T) {
	cfg := config.DefaultConfig()
	path := filepath.Join(t.TempDir(), "layout.json")

	require.NoError(t, exportFile(cfg, "json", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "frontend"`)

	err = exportFile(cfg, "json", filepath.Join(t.TempDir(), "missing", "layout.json"))
	assert.ErrorContains(t, err, "create output")

	// /dev/full accepts the open and fails the write
	if _, statErr := os.Stat("/dev/full"); statErr == nil {
		assert.Error(t, exportFile(cfg, "json", "/dev/full"))
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ARCHCANVAS_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	cfg, err := loadConfig(&globalFlags{zoomPivot: "pointer"})
	require.NoError(t, err)
	assert.Equal(t, "pointer", cfg.Canvas.ZoomPivot)

	_, err = loadConfig(&globalFlags{zoomPivot: "corner"})
	assert.Error(t, err)
}
