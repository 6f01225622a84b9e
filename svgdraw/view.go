package svgdraw

import (
	"log/slog"

	"gioui.org/f32"
	"github.com/benoitkugler/giosvg/svgtree"
	"github.com/chewxy/math32"
)

// View is a parsed document, with its display configuration.
// It is a value type: the With methods return a modified copy,
// and the underlying tree is never modified, so that a View may be
// shared between goroutines.
type View struct {
	tree *svgtree.Tree

	scale    float32
	hasScale bool

	mode   ErrorMode
	logger *slog.Logger
}

// New parses an SVG document, using the default parser options.
// On failure, the returned error is a *ParseError.
func New(data []byte) (View, error) {
	tree, err := svgtree.Parse(data, svgtree.DefaultOptions())
	if err != nil {
		return View{}, &ParseError{Err: err}
	}
	return NewFromTree(tree), nil
}

// NewFromTree wraps an already parsed document.
func NewFromTree(tree *svgtree.Tree) View {
	return View{tree: tree, mode: WarnErrorMode}
}

// Tree returns the parsed document.
func (v View) Tree() *svgtree.Tree { return v.tree }

// WithSize returns a view scaled so that its content fits in target,
// preserving the aspect ratio.
// The document must not be empty: a zero width or height
// yields an infinite or NaN scale.
func (v View) WithSize(target f32.Point) View {
	bbox := v.tree.Root().AbsBoundingBox()
	v.scale = math32.Min(target.X/float32(bbox.Width()), target.Y/float32(bbox.Height()))
	v.hasScale = true
	return v
}

// WithScale returns a view scaled by factor, overriding
// any previous WithSize or WithScale.
func (v View) WithScale(factor float32) View {
	v.scale = factor
	v.hasScale = true
	return v
}

// WithErrorMode returns a view using mode for unsupported nodes.
// The default is WarnErrorMode.
func (v View) WithErrorMode(mode ErrorMode) View {
	v.mode = mode
	return v
}

// WithLogger returns a view logging to logger. The default is slog.Default().
func (v View) WithLogger(logger *slog.Logger) View {
	v.logger = logger
	return v
}

// Scale returns the active scale, if any.
func (v View) Scale() (float32, bool) { return v.scale, v.hasScale }

// NaturalSize returns the size of the content, without scale.
func (v View) NaturalSize() f32.Point {
	return SizeFromGroup(v.tree.Root(), 0, false)
}

// Size returns the size of the content with the active scale applied,
// that is the size to reserve in a layout.
func (v View) Size() f32.Point {
	return SizeFromGroup(v.tree.Root(), v.scale, v.hasScale)
}

// SizeFromGroup returns the size of the bounding box of g,
// multiplied by scale if hasScale is true.
func SizeFromGroup(g *svgtree.Group, scale float32, hasScale bool) f32.Point {
	bbox := g.AbsBoundingBox()
	size := f32.Pt(float32(bbox.Width()), float32(bbox.Height()))
	if hasScale {
		size = size.Mul(scale)
	}
	return size
}

// ErrorMode returns the policy applied to unsupported nodes.
func (v View) ErrorMode() ErrorMode { return v.mode }

// Logger returns the logger of the view, slog.Default() if none is set.
func (v View) Logger() *slog.Logger { return v.log() }

func (v View) log() *slog.Logger {
	if v.logger == nil {
		return slog.Default()
	}
	return v.logger
}
