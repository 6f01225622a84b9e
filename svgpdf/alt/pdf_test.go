package alt

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"gioui.org/f32"
	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer(t *testing.T) {
	app := contentstream.NewAppearance(100, 100)
	rd := NewRenderer(&app)
	triangle := []f32.Point{f32.Pt(10, 10), f32.Pt(50, 10), f32.Pt(30, 40)}
	rd.Add(svgdraw.ConvexPolygon(triangle, color.NRGBA{G: 0xff, A: 0xff}, svgdraw.Stroke{}))
	rd.Add(svgdraw.ConvexPolygon(triangle, color.NRGBA{}, svgdraw.Stroke{Width: 2, Color: color.NRGBA{R: 0xff, A: 0xff}}))
	rd.Add(svgdraw.ConvexPolygon(triangle, color.NRGBA{}, svgdraw.Stroke{}))
	rd.Add(svgdraw.Shape{})

	content := string(app.ToXFormObject(false).Content)
	assert.Equal(t, 2, bytes.Count([]byte(content), []byte("10 10 m 50 10 l 30 40 l h")))
	assert.Contains(t, content, "0 1 0 rg")
	assert.Contains(t, content, "1 0 0 RG")
	assert.Contains(t, content, "2 w")
	assert.Contains(t, content, "h f ")
	assert.Contains(t, content, "h S ")
}

func TestRender(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "svgtree", "testdata", "*.svg"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		data, err := os.ReadFile(file)
		require.NoError(t, err)
		v, err := svgdraw.New(data)
		require.NoError(t, err, file)

		var out bytes.Buffer
		err = Render(v.WithErrorMode(svgdraw.IgnoreErrorMode), &out)
		require.NoError(t, err, file)
		assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")), file)
	}
}
