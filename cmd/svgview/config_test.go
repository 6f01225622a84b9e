package main

import (
	"errors"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 240, cfg.Window.Height)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, cfg.background)
	assert.Equal(t, svgdraw.WarnErrorMode, cfg.errorMode)
	assert.Equal(t, slog.LevelInfo, cfg.level)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
background = "#102030"
error_mode = "strict"
log_level = "debug"

[window]
width = 800
`))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 240, cfg.Window.Height)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, cfg.background)
	assert.Equal(t, svgdraw.StrictErrorMode, cfg.errorMode)
	assert.Equal(t, slog.LevelDebug, cfg.level)

	for _, src := range []string{
		`background = "none"`,
		`error_mode = "loud"`,
		`log_level = "verbose"`,
		"[window]\nwidth = 0",
		`window = 4`,
	} {
		_, err := ParseConfig([]byte(src))
		assert.Error(t, err, src)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svgview.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nheight = 100\n"), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Window.Height)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestRenderErr(t *testing.T) {
	unsupported := &svgdraw.UnsupportedError{Feature: svgdraw.FeatureImage}
	other := errors.New("disk full")

	cfg := DefaultConfig()
	require.NoError(t, cfg.resolve())
	assert.NoError(t, cfg.renderErr(errors.Join(unsupported)))
	assert.Equal(t, other, cfg.renderErr(other))

	cfg.errorMode = svgdraw.StrictErrorMode
	assert.Error(t, cfg.renderErr(unsupported))
}
