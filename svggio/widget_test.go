package svggio

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"testing"

	"gioui.org/f32"
	"gioui.org/gpu/headless"
	"gioui.org/layout"
	"gioui.org/op"
	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50">
	<rect width="100" height="50" fill="red" stroke="blue"/>
	<circle cx="25" cy="25" r="10" fill="green"/>
</svg>`

func newContext(max image.Point) layout.Context {
	return layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Constraints{Max: max},
	}
}

func newView(t *testing.T) svgdraw.View {
	t.Helper()
	v, err := svgdraw.New([]byte(doc))
	require.NoError(t, err)
	return v
}

func TestSVGLayout(t *testing.T) {
	v := newView(t)

	dims := SVG{View: v}.Layout(newContext(image.Pt(1000, 1000)))
	assert.Equal(t, image.Pt(100, 50), dims.Size)

	// the size is rounded up
	dims = SVG{View: v.WithScale(0.333)}.Layout(newContext(image.Pt(1000, 1000)))
	assert.Equal(t, image.Pt(34, 17), dims.Size)

	// and constrained
	dims = SVG{View: v}.Layout(newContext(image.Pt(60, 60)))
	assert.Equal(t, image.Pt(60, 50), dims.Size)
}

func TestFitLayout(t *testing.T) {
	v := newView(t)
	for _, test := range []struct {
		max, expected image.Point
	}{
		{image.Pt(320, 240), image.Pt(320, 160)},
		{image.Pt(50, 400), image.Pt(50, 25)},
		{image.Pt(200, 100), image.Pt(200, 100)},
	} {
		dims := Fit{View: v}.Layout(newContext(test.max))
		assert.Equal(t, test.expected, dims.Size)
	}
}

func TestFitEmptyDocument(t *testing.T) {
	v, err := svgdraw.New([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		Fit{View: v}.Layout(newContext(image.Pt(320, 240)))
	})
}

func TestPainterEmptyShape(t *testing.T) {
	p := Painter{Ops: new(op.Ops)}
	assert.NotPanics(t, func() { p.Add(svgdraw.Shape{}) })
}

func square(x, y, size float32) []f32.Point {
	return []f32.Point{f32.Pt(x, y), f32.Pt(x+size, y), f32.Pt(x+size, y+size), f32.Pt(x, y+size)}
}

func TestPainter(t *testing.T) {
	w, err := headless.NewWindow(100, 100)
	if err != nil {
		t.Skipf("headless windows not supported: %v", err)
	}
	defer w.Release()

	var (
		red   = color.NRGBA{R: 0xff, A: 0xff}
		green = color.NRGBA{G: 0xff, A: 0xff}
		blue  = color.NRGBA{B: 0xff, A: 0xff}
	)
	ops := new(op.Ops)
	p := Painter{Ops: ops}
	p.Add(svgdraw.ConvexPolygon(square(10, 10, 50), red, svgdraw.Stroke{Width: 4, Color: blue}))
	p.Add(svgdraw.ConvexPolygon(square(50, 50, 40), green, svgdraw.Stroke{}))
	require.NoError(t, w.Frame(ops))

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	require.NoError(t, w.Screenshot(img))

	for _, test := range []struct {
		x, y     int
		expected color.RGBA
	}{
		{35, 35, color.RGBA{R: 0xff, A: 0xff}}, // fill
		{10, 35, color.RGBA{B: 0xff, A: 0xff}}, // stroke, drawn over the fill
		{55, 55, color.RGBA{G: 0xff, A: 0xff}}, // later shapes are on top
		{95, 5, color.RGBA{}},
	} {
		assert.Equal(t, test.expected, img.RGBAAt(test.x, test.y), "at (%d, %d)", test.x, test.y)
	}
}

func TestSVGLayoutStrict(t *testing.T) {
	v, err := svgdraw.New([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<image id="picture" width="5" height="5" href="picture.png"/>
		<rect width="5" height="5"/>
	</svg>`))
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	SVG{View: v.WithLogger(logger).WithErrorMode(svgdraw.StrictErrorMode)}.Layout(newContext(image.Pt(100, 100)))
	assert.Contains(t, logs.String(), "svg drawing stopped")

	logs.Reset()
	SVG{View: v.WithLogger(logger).WithErrorMode(svgdraw.IgnoreErrorMode)}.Layout(newContext(image.Pt(100, 100)))
	assert.Empty(t, logs.String())
}
