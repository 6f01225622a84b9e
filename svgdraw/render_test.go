package svgdraw

import (
	"bytes"
	"errors"
	"image/color"
	"log/slog"
	"testing"

	"gioui.org/f32"
	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.NRGBA{R: 0xff, A: 0xff}
	blue = color.NRGBA{B: 0xff, A: 0xff}
)

func render(t *testing.T, v View) (ShapeList, error) {
	t.Helper()
	var shapes ShapeList
	err := v.Render(&shapes)
	return shapes, err
}

func unitSquare(x, y, size float32) []f32.Point {
	return []f32.Point{
		f32.Pt(x, y), f32.Pt(x+size, y), f32.Pt(x+size, y+size), f32.Pt(x, y+size),
	}
}

func TestRenderPaintOrder(t *testing.T) {
	v := newView(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<rect width="5" height="5" fill="red"/>
		<rect x="2" y="2" width="5" height="5" fill="blue" stroke="red" stroke-width="2"/>
	</svg>`)
	shapes, err := render(t, v)
	require.NoError(t, err)

	expected := ShapeList{
		{Points: unitSquare(0, 0, 5), Fill: red},
		{Points: unitSquare(2, 2, 5), Fill: blue, Stroke: Stroke{Width: 2, Color: red}},
	}
	if diff := cmp.Diff(expected, shapes); diff != "" {
		t.Fatalf("unexpected shapes (-want +got):\n%s", diff)
	}
}

func TestRenderVisibility(t *testing.T) {
	v := newView(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<rect width="5" height="5" visibility="hidden"/>
		<g visibility="hidden"><circle r="5" stroke="blue"/></g>
		<rect width="5" height="5" display="none"/>
	</svg>`)
	shapes, err := render(t, v)
	require.NoError(t, err)
	assert.Empty(t, shapes)
}

func TestRenderIsolation(t *testing.T) {
	v := newView(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<g opacity="0.5"><rect width="5" height="5"/></g>
		<g style="mix-blend-mode: screen"><rect width="5" height="5"/></g>
		<g fill="blue">
			<rect width="5" height="5"/>
			<g><rect width="1" height="1"/></g>
		</g>
	</svg>`)
	shapes, err := render(t, v)
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	assert.Equal(t, unitSquare(0, 0, 5), shapes[0].Points)
	assert.Equal(t, unitSquare(0, 0, 1), shapes[1].Points)
}

func TestRenderInlineStyle(t *testing.T) {
	v := newView(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<g style="opacity: 0.5"><rect width="5" height="5"/></g>
		<g style="mix-blend-mode: screen"><rect width="5" height="5"/></g>
		<rect width="5" height="5" style="visibility: hidden"/>
		<rect width="5" height="5" style="fill: blue"/>
		<rect width="5" height="5" style="fill: none; stroke: red ; stroke-width: 2"/>
	</svg>`)
	shapes, err := render(t, v)
	require.NoError(t, err)

	expected := ShapeList{
		{Points: unitSquare(0, 0, 5), Fill: blue},
		{Points: unitSquare(0, 0, 5), Stroke: Stroke{Width: 2, Color: red}},
	}
	if diff := cmp.Diff(expected, shapes); diff != "" {
		t.Fatalf("unexpected shapes (-want +got):\n%s", diff)
	}
}

func TestRenderDefaults(t *testing.T) {
	v := newView(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<rect width="5" height="5" fill="none"/>
		<rect width="5" height="5" fill="none" stroke="blue" stroke-width="0"/>
	</svg>`)
	shapes, err := render(t, v)
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	for _, s := range shapes {
		assert.Equal(t, color.NRGBA{}, s.Fill)
		assert.Equal(t, Stroke{}, s.Stroke)
	}
}

func TestRenderTransforms(t *testing.T) {
	v := newView(t, `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
		<g transform="translate(10 20)"><rect width="1" height="1"/></g>
		<g transform="scale(2 3)"><rect width="1" height="1" stroke="red"/></g>
		<g transform="translate(1 1) scale(2)"><rect width="1" height="1"/></g>
	</svg>`)
	shapes, err := render(t, v)
	require.NoError(t, err)
	require.Len(t, shapes, 3)

	assert.Equal(t, unitSquare(10, 20, 1), shapes[0].Points)
	// the smallest scale is used, for the stroke as well
	assert.Equal(t, unitSquare(0, 0, 2), shapes[1].Points)
	assert.Equal(t, float32(2), shapes[1].Stroke.Width)
	// translation first, then scale
	assert.Equal(t, unitSquare(2, 2, 2), shapes[2].Points)

	shapes, err = render(t, v.WithScale(10))
	require.NoError(t, err)
	assert.Equal(t, unitSquare(100, 200, 10), shapes[0].Points)
	assert.Equal(t, float32(20), shapes[1].Stroke.Width)
}

func TestRenderScaledCurves(t *testing.T) {
	v := newView(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1">
		<circle cx="0.5" cy="0.5" r="0.3"/>
	</svg>`)
	small, err := render(t, v)
	require.NoError(t, err)
	require.Len(t, small, 1)

	// curves are flattened with the final scale in mind
	large, err := render(t, v.WithScale(640))
	require.NoError(t, err)
	require.Len(t, large, 1)
	assert.Greater(t, len(large[0].Points), 10*len(small[0].Points))
	center := f32.Pt(320, 320)
	for _, p := range large[0].Points {
		d := p.Sub(center)
		assert.InDelta(t, 192, math32.Hypot(d.X, d.Y), 5)
	}
}

func TestRenderText(t *testing.T) {
	v := newView(t, `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="30">
		<text x="0" y="20" font-size="16" fill="blue">OK</text>
	</svg>`)
	shapes, err := render(t, v)
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	for _, s := range shapes {
		assert.Equal(t, blue, s.Fill)
		assert.Greater(t, len(s.Points), 4)
	}
}

const unsupportedDoc = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
	<defs>
		<linearGradient id="lg"><stop offset="0" stop-color="red"/></linearGradient>
		<radialGradient id="rg"/>
		<pattern id="pat" width="1" height="1"><rect width="1" height="1"/></pattern>
	</defs>
	<image id="img" width="5" height="5" href="picture.png"/>
	<rect id="linear" width="5" height="5" fill="url(#lg)"/>
	<rect id="radial" width="5" height="5" fill="none" stroke="url(#rg)"/>
	<rect id="pattern" width="5" height="5" fill="url(#pat)"/>
	<rect width="5" height="5" fill="red"/>
</svg>`

func TestRenderUnsupported(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	v := newView(t, unsupportedDoc).WithLogger(logger)

	shapes, err := render(t, v)
	// only the plain rect is drawn
	require.Len(t, shapes, 1)
	assert.Equal(t, red, shapes[0].Fill)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	var got []UnsupportedError
	for _, e := range joined.Unwrap() {
		var unsupported *UnsupportedError
		require.True(t, errors.As(e, &unsupported))
		got = append(got, *unsupported)
	}
	expected := []UnsupportedError{
		{Feature: FeatureImage, NodeID: "img"},
		{Feature: FeatureLinearGradient, NodeID: "linear"},
		{Feature: FeatureRadialGradient, NodeID: "radial"},
		{Feature: FeaturePattern, NodeID: "pattern"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("unexpected errors (-want +got):\n%s", diff)
	}
	assert.Contains(t, logs.String(), "feature=\"linear gradient\"")
}

func TestRenderErrorModes(t *testing.T) {
	v := newView(t, unsupportedDoc)

	shapes, err := render(t, v.WithErrorMode(IgnoreErrorMode))
	assert.NoError(t, err)
	assert.Len(t, shapes, 1)

	shapes, err = render(t, v.WithErrorMode(StrictErrorMode))
	assert.Empty(t, shapes)
	var unsupported *UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, FeatureImage, unsupported.Feature)
}

func TestShape(t *testing.T) {
	s := ConvexPolygon(unitSquare(0, 0, 1), red, Stroke{Width: 1, Color: blue})
	s.Translate(f32.Pt(1, 2))
	s.Scale(2)
	assert.Equal(t, unitSquare(2, 4, 2), s.Points)
	assert.Equal(t, float32(2), s.Stroke.Width)

	lo, hi := s.Bounds()
	assert.Equal(t, f32.Pt(2, 4), lo)
	assert.Equal(t, f32.Pt(4, 6), hi)

	lo, hi = Shape{}.Bounds()
	assert.Equal(t, f32.Point{}, lo)
	assert.Equal(t, f32.Point{}, hi)
}
