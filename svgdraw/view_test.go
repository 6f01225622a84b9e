package svgdraw

import (
	"errors"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newView(t *testing.T, src string) View {
	t.Helper()
	v, err := New([]byte(src))
	require.NoError(t, err)
	return v
}

const rectDoc = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50">
	<rect width="100" height="50" fill="red"/>
</svg>`

func TestNaturalSize(t *testing.T) {
	v := newView(t, rectDoc)
	_, hasScale := v.Scale()
	assert.False(t, hasScale)
	assert.Equal(t, f32.Pt(100, 50), v.NaturalSize())
	assert.Equal(t, v.NaturalSize(), v.Size())
}

func TestWithSize(t *testing.T) {
	v := newView(t, rectDoc)
	for _, target := range []f32.Point{
		f32.Pt(200, 200),
		f32.Pt(200, 50),
		f32.Pt(50, 400),
		f32.Pt(320, 240),
		f32.Pt(1, 1),
	} {
		fitted := v.WithSize(target)
		scale, ok := fitted.Scale()
		require.True(t, ok)
		assert.Equal(t, min(target.X/100, target.Y/50), scale)

		size := fitted.Size()
		const eps = 1e-4
		assert.LessOrEqual(t, size.X, target.X+eps)
		assert.LessOrEqual(t, size.Y, target.Y+eps)
		fillsOneAxis := abs(size.X-target.X) < eps || abs(size.Y-target.Y) < eps
		assert.True(t, fillsOneAxis, "%v does not fill %v", size, target)
	}
	// the original view is not modified
	_, hasScale := v.Scale()
	assert.False(t, hasScale)
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func TestWithScaleOverridesFit(t *testing.T) {
	v := newView(t, rectDoc).WithSize(f32.Pt(1000, 1000)).WithScale(3)
	scale, ok := v.Scale()
	assert.True(t, ok)
	assert.Equal(t, float32(3), scale)
	assert.Equal(t, f32.Pt(300, 150), v.Size())

	assert.Equal(t, f32.Pt(50, 25), SizeFromGroup(v.Tree().Root(), 0.5, true))
	assert.Equal(t, f32.Pt(100, 50), SizeFromGroup(v.Tree().Root(), 0.5, false))
}

func TestNewInvalid(t *testing.T) {
	for _, src := range []string{"", "not svg", "<html/>", "<svg><g></svg>"} {
		_, err := New([]byte(src))
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), src)
		assert.NotNil(t, parseErr.Unwrap())
	}
}
