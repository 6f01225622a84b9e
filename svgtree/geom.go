package svgtree

import "math"

// Point is a point in user space.
type Point struct{ X, Y float64 }

// Rect defines a bounding box, such as a viewport
// or a path extent.
type Rect struct{ X, Y, W, H float64 }

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.W }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.H }

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Union returns the smallest rectangle containing r and s.
// Zero rectangles are ignored.
func (r Rect) Union(s Rect) Rect {
	if r == (Rect{}) {
		return s
	}
	if s == (Rect{}) {
		return r
	}
	minX, minY := math.Min(r.X, s.X), math.Min(r.Y, s.Y)
	maxX, maxY := math.Max(r.X+r.W, s.X+s.W), math.Max(r.Y+r.H, s.Y+s.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Transform returns the bounding box of the
// image of r by m.
func (r Rect) Transform(m Matrix2D) Rect {
	if m.IsIdentity() {
		return r
	}
	return rectFromPoints([]Point{
		m.TransformPoint(Point{r.X, r.Y}),
		m.TransformPoint(Point{r.X + r.W, r.Y}),
		m.TransformPoint(Point{r.X + r.W, r.Y + r.H}),
		m.TransformPoint(Point{r.X, r.Y + r.H}),
	})
}

func rectFromPoints(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
