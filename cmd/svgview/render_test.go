package main

import (
	"bytes"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) *Context {
	t.Helper()
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	return &Context{Config: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestParseSize(t *testing.T) {
	size, err := parseSize("320x240")
	require.NoError(t, err)
	assert.Equal(t, f32.Pt(320, 240), size)

	size, err = parseSize("12.5X4")
	require.NoError(t, err)
	assert.Equal(t, f32.Pt(12.5, 4), size)

	for _, s := range []string{"", "320", "ax2", "2xb", "0x10", "-1x2"} {
		_, err := parseSize(s)
		assert.Error(t, err, s)
	}
}

func TestLoadBundledView(t *testing.T) {
	v, err := loadView("", testContext(t))
	require.NoError(t, err)
	size := v.NaturalSize()
	assert.Greater(t, size.X, float32(0))
	assert.Greater(t, size.Y, float32(0))
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "test.svg")
	require.NoError(t, os.WriteFile(input, testSVG, 0o644))

	cmd := Render{File: input, Output: filepath.Join(dir, "out.png"), Size: "100x100"}
	require.NoError(t, cmd.Run(testContext(t)))
	data, err := os.ReadFile(cmd.Output)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.LessOrEqual(t, img.Bounds().Dy(), 100)

	cmd = Render{File: input, Output: filepath.Join(dir, "out.pdf"), Scale: 2}
	require.NoError(t, cmd.Run(testContext(t)))
	data, err = os.ReadFile(cmd.Output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	cmd = Render{File: input, Output: filepath.Join(dir, "alt.pdf"), PDF: "contentstream"}
	require.NoError(t, cmd.Run(testContext(t)))
	data, err = os.ReadFile(cmd.Output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	cmd = Render{File: input, Output: filepath.Join(dir, "out.jpg")}
	assert.Error(t, cmd.Run(testContext(t)))
	_, err = os.Stat(cmd.Output)
	assert.True(t, os.IsNotExist(err), "no file is created for an unsupported format")
}
