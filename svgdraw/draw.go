// Package svgdraw draws a parsed SVG document on screen.
//
// A View wraps a document parsed by svgtree and resolves its display
// size: the natural size of the content, a size fitting a target
// rectangle, or an explicit scale. Render walks the document and emits
// one Shape per visible path to a Painter, which implements the actual
// draw operations, such as a Gio operation list (see svggio), a
// rasterizer to output .png images (see svgraster) or a pdf writer
// (see svgpdf).
//
// Only plain colors are supported: images, gradients and patterns are
// reported as *UnsupportedError and skipped, as well as groups which
// would require offscreen compositing.
package svgdraw

import (
	"image/color"

	"gioui.org/f32"
	"github.com/chewxy/math32"
)

// Painter receives the shapes of a document, in painting order.
type Painter interface {
	Add(s Shape)
}

// Stroke is the outline of a shape. A zero Stroke
// draws nothing.
type Stroke struct {
	Width float32
	Color color.NRGBA
}

// Shape is a closed polygon, filled then stroked.
type Shape struct {
	Points []f32.Point
	Fill   color.NRGBA
	Stroke Stroke
}

// ConvexPolygon returns a closed polygon. The points are
// not copied.
// Hosts are expected to fill it with a non-zero winding rule, which
// also handles the concave polygons produced by most paths.
func ConvexPolygon(points []f32.Point, fill color.NRGBA, stroke Stroke) Shape {
	return Shape{Points: points, Fill: fill, Stroke: stroke}
}

// Translate moves the shape by delta.
func (s *Shape) Translate(delta f32.Point) {
	for i, p := range s.Points {
		s.Points[i] = p.Add(delta)
	}
}

// Scale scales the shape, relative to the origin.
// The stroke width is scaled as well.
func (s *Shape) Scale(factor float32) {
	for i, p := range s.Points {
		s.Points[i] = p.Mul(factor)
	}
	s.Stroke.Width *= factor
}

// Bounds returns the bounding box of the points, ignoring
// the stroke width. It returns zero points for an empty shape.
func (s Shape) Bounds() (lo, hi f32.Point) {
	if len(s.Points) == 0 {
		return lo, hi
	}
	lo, hi = s.Points[0], s.Points[0]
	for _, p := range s.Points[1:] {
		lo.X, lo.Y = math32.Min(lo.X, p.X), math32.Min(lo.Y, p.Y)
		hi.X, hi.Y = math32.Max(hi.X, p.X), math32.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// ShapeList is a Painter storing the shapes.
type ShapeList []Shape

// Add implements Painter.
func (l *ShapeList) Add(s Shape) { *l = append(*l, s) }
