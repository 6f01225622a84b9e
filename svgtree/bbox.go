package svgtree

import (
	"math"

	"golang.org/x/image/math/fixed"
)

func lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// quadAt evaluates the quadratic bezier a, b, c at t.
func quadAt(a, b, c Point, t float64) Point {
	return lerp(lerp(a, b, t), lerp(b, c, t), t)
}

// cubicAt evaluates the cubic bezier a, b, c, d at t.
func cubicAt(a, b, c, d Point, t float64) Point {
	return quadAt(lerp(a, b, t), lerp(b, c, t), lerp(c, d, t), t)
}

// solveQuadratic appends the real roots of ax^2 + bx + c.
func solveQuadratic(roots []float64, a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return roots
		}
		return append(roots, -c/b)
	}
	delta := b*b - 4*a*c
	switch {
	case delta < 0:
		return roots
	case delta == 0:
		return append(roots, -b/(2*a))
	}
	sq := math.Sqrt(delta)
	return append(roots, (-b+sq)/(2*a), (-b-sq)/(2*a))
}

// quadCritical returns the parameters where one coordinate
// of the quadratic bezier a, b, c reaches an extremum.
func quadCritical(a, b, c Point) []float64 {
	var ts []float64
	for _, axis := range [2][3]float64{{a.X, b.X, c.X}, {a.Y, b.Y, c.Y}} {
		ts = solveQuadratic(ts, 0, axis[0]-2*axis[1]+axis[2], axis[1]-axis[0])
	}
	return ts
}

// cubicCritical returns the parameters where one coordinate
// of the cubic bezier a, b, c, d reaches an extremum.
func cubicCritical(a, b, c, d Point) []float64 {
	var ts []float64
	for _, axis := range [2][4]float64{{a.X, b.X, c.X, d.X}, {a.Y, b.Y, c.Y, d.Y}} {
		p0, p1, p2, p3 := axis[0], axis[1], axis[2], axis[3]
		// derivative, divided by 3
		ts = solveQuadratic(ts, p3-3*p2+3*p1-p0, 2*(p2-2*p1+p0), p1-p0)
	}
	return ts
}

// BoundingBox returns the exact extent of the path, using the extrema
// of the curves rather than their control points,
// or an empty Rect for an empty path.
func (p PathData) BoundingBox() Rect {
	var (
		pts []Point
		cur Point
	)
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			cur = fToP(fixed.Point26_6(op))
			pts = append(pts, cur)
		case LineTo:
			cur = fToP(fixed.Point26_6(op))
			pts = append(pts, cur)
		case QuadTo:
			b, c := fToP(op[0]), fToP(op[1])
			for _, t := range quadCritical(cur, b, c) {
				if 0 < t && t < 1 {
					pts = append(pts, quadAt(cur, b, c, t))
				}
			}
			cur = c
			pts = append(pts, cur)
		case CubicTo:
			b, c, d := fToP(op[0]), fToP(op[1]), fToP(op[2])
			for _, t := range cubicCritical(cur, b, c, d) {
				if 0 < t && t < 1 {
					pts = append(pts, cubicAt(cur, b, c, d, t))
				}
			}
			cur = d
			pts = append(pts, cur)
		}
	}
	return rectFromPoints(pts)
}
