package svgtree

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathData(t *testing.T) {
	for _, test := range []struct {
		d        string
		expected string
	}{
		{"M10 10 L20 20", "M10.000,10.000 L20.000,20.000"},
		{"M10,10 20,20", "M10.000,10.000 L20.000,20.000"},
		{"m10 10 l10 0 v10 h-10 z", "M10.000,10.000 L20.000,10.000 L20.000,20.000 L10.000,20.000 Z"},
		{"M0 0 Q 10 10 20 0 T 40 0", "M0.000,0.000 Q10.000,10.000,20.000,0.000 Q30.000,-10.000,40.000,0.000"},
		{"M0 0 C 0 10 10 10 10 0 S 20 -10 20 0", "M0.000,0.000 C0.000,10.000,10.000,10.000,10.000,0.000 C10.000,-10.000,20.000,-10.000,20.000,0.000"},
		{"M0 0 L1 1 Z L2 2", "M0.000,0.000 L1.000,1.000 Z M0.000,0.000 L2.000,2.000"},
		{"M.5.5-1-1", "M0.500,0.500 L-1.000,-1.000"},
	} {
		p, err := parsePathData(test.d)
		require.NoError(t, err, test.d)
		assert.Equal(t, test.expected, p.String(), test.d)
	}
}

func TestParsePathDataArc(t *testing.T) {
	// compact flags
	p, err := parsePathData("M0 0 a10 10 0 00 20 0")
	require.NoError(t, err)
	bbox := p.BoundingBox()
	assert.InDelta(t, 20, bbox.W, 0.05)
	assert.InDelta(t, 10, bbox.H, 0.05)

	// degenerate radius is a line
	p, err = parsePathData("M0 0 A0 10 0 0 1 20 0")
	require.NoError(t, err)
	assert.Equal(t, "M0.000,0.000 L20.000,0.000", p.String())
}

func TestParsePathDataErrors(t *testing.T) {
	for _, d := range []string{
		"10 10",
		"M10 10 L20",
		"M0 0 Z 10",
		"M0 0 A10 10 0 2 0 10 10",
	} {
		_, err := parsePathData(d)
		assert.Error(t, err, d)
	}

	// the valid prefix is kept
	p, err := parsePathData("M10 10 L20 20 L30")
	assert.Error(t, err)
	assert.Equal(t, "M10.000,10.000 L20.000,20.000", p.String())
}

func TestPathPoints(t *testing.T) {
	var p PathData
	p.addRect(0, 0, 10, 20)
	got := p.Points()
	expected := []Point{{0, 0}, {10, 0}, {10, 20}, {0, 20}}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("unexpected points (-want +got):\n%s", diff)
	}

	// flattened curves stay close to the curve and end exactly
	p = nil
	p.addEllipse(0, 0, 10, 10)
	pts := p.Points()
	require.Greater(t, len(pts), 8)
	for _, pt := range pts {
		assert.InDelta(t, 10, math.Hypot(pt.X, pt.Y), 0.1)
	}
	assert.Equal(t, Point{10, 0}, pts[len(pts)-1])
}

func TestPathPointsTolerance(t *testing.T) {
	var p PathData
	p.addEllipse(0, 0, 10, 10)
	coarse, fine := p.PointsTolerance(1), p.PointsTolerance(0.001)
	assert.Less(t, len(coarse), len(p.Points()))
	assert.Greater(t, len(fine), len(p.Points()))
	for _, pt := range fine {
		assert.InDelta(t, 10, math.Hypot(pt.X, pt.Y), 0.05)
	}
	// invalid tolerances fall back to the default
	assert.Equal(t, p.Points(), p.PointsTolerance(0))
}

func TestPathTransform(t *testing.T) {
	var p PathData
	p.addRect(0, 0, 1, 1)
	got := p.Transform(Identity.Translate(5, 5).Scale(2, 2)).Points()
	expected := []Point{{5, 5}, {7, 5}, {7, 7}, {5, 7}}
	if diff := cmp.Diff(expected, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Fatalf("unexpected points (-want +got):\n%s", diff)
	}
}

func TestBoundingBox(t *testing.T) {
	p, err := parsePathData("M0 0 C 0 10 10 10 10 0")
	require.NoError(t, err)
	bbox := p.BoundingBox()
	assert.InDelta(t, 0, bbox.X, 1e-6)
	assert.InDelta(t, 10, bbox.W, 1e-6)
	assert.InDelta(t, 7.5, bbox.H, 0.02) // control points reach 10, the curve 7.5

	assert.Equal(t, Rect{}, PathData(nil).BoundingBox())
}

func TestRectUnion(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	assert.Equal(t, r, Rect{}.Union(r))
	assert.Equal(t, r, r.Union(Rect{}))
	assert.Equal(t, Rect{-5, 0, 15, 20}, r.Union(Rect{-5, 5, 1, 15}))
	assert.Equal(t, Rect{0, 0, 20, 10}, r.Transform(Identity.Scale(2, 1)))
}

func TestMatrix(t *testing.T) {
	m := Identity.Translate(10, 0).Rotate(math.Pi / 2)
	x, y := m.Transform(1, 0)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)
	assert.True(t, m.HasTranslate())
	assert.True(t, m.HasSkew())
	assert.False(t, Identity.HasScale())
	assert.True(t, Identity.Scale(2, 1).HasScale())
}
