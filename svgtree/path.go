package svgtree

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
)

// This file defines the basic path structure

// Operation groups the different SVG commands
type Operation interface {
	// transform returns the operation with
	// all its points mapped by m
	transform(m Matrix2D) Operation
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (op MoveTo) transform(m Matrix2D) Operation { return MoveTo(trPoint(m, fixed.Point26_6(op))) }
func (op LineTo) transform(m Matrix2D) Operation { return LineTo(trPoint(m, fixed.Point26_6(op))) }
func (op QuadTo) transform(m Matrix2D) Operation {
	return QuadTo{trPoint(m, op[0]), trPoint(m, op[1])}
}
func (op CubicTo) transform(m Matrix2D) Operation {
	return CubicTo{trPoint(m, op[0]), trPoint(m, op[1]), trPoint(m, op[2])}
}
func (op Close) transform(Matrix2D) Operation { return op }

func trPoint(m Matrix2D, p fixed.Point26_6) fixed.Point26_6 {
	x, y := m.Transform(fixedTof(p))
	return toFixedP(x, y)
}

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(math.Round(x * 64))
	p.Y = fixed.Int26_6(math.Round(y * 64))
	return
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// PathData describes a sequence of basic SVG operations.
// Higher-level shapes are reduced to a path.
type PathData []Operation

// writeOp writes the command letter followed by the points, comma separated.
func writeOp(b *strings.Builder, cmd byte, pts ...fixed.Point26_6) {
	b.WriteByte(cmd)
	for i, pt := range pts {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%4.3f,%4.3f", float32(pt.X)/64, float32(pt.Y)/64)
	}
}

// ToSVGPath returns the path as SVG path data, with absolute commands.
func (p PathData) ToSVGPath() string {
	var b strings.Builder
	for i, op := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch op := op.(type) {
		case MoveTo:
			writeOp(&b, 'M', fixed.Point26_6(op))
		case LineTo:
			writeOp(&b, 'L', fixed.Point26_6(op))
		case QuadTo:
			writeOp(&b, 'Q', op[:]...)
		case CubicTo:
			writeOp(&b, 'C', op[:]...)
		case Close:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

// String returns a readable representation of a Path.
func (p PathData) String() string {
	return p.ToSVGPath()
}

// Start starts a new curve at the given point.
func (p *PathData) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *PathData) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *PathData) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *PathData) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *PathData) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Transform returns a copy of the path with m applied.
func (p PathData) Transform(m Matrix2D) PathData {
	out := make(PathData, len(p))
	for i, op := range p {
		out[i] = op.transform(m)
	}
	return out
}

// FlattenTolerance is the maximum distance, in user units,
// between a curve and its polyline approximation, as used by Points.
// Renderers drawing at another scale should use PointsTolerance.
// Note that coordinates are stored with a precision of 1/64 user unit,
// which limits the accuracy of tiny documents drawn at a large scale.
const FlattenTolerance = 0.05

// maximum number of line segments used for one curve
const maxFlattenSegments = 100

// Points returns the polyline approximation of the path :
// curves are replaced by line segments, and the
// points of all the subpaths are concatenated.
// Close operations do not add points.
func (p PathData) Points() []Point { return p.PointsTolerance(FlattenTolerance) }

// PointsTolerance is like Points, with curves approximated
// to within tol user units. A non positive tol is replaced by FlattenTolerance.
func (p PathData) PointsTolerance(tol float64) []Point {
	if tol <= 0 {
		tol = FlattenTolerance
	}
	var (
		out      []Point
		cur      Point
		hasStart bool
	)
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			x, y := fixedTof(fixed.Point26_6(op))
			cur, hasStart = Point{x, y}, true
			out = append(out, cur)
		case LineTo:
			x, y := fixedTof(fixed.Point26_6(op))
			cur = Point{x, y}
			out = append(out, cur)
		case QuadTo:
			if !hasStart {
				out = append(out, cur)
				hasStart = true
			}
			b, c := fToP(op[0]), fToP(op[1])
			out = flattenQuad(out, cur, b, c, tol)
			cur = c
		case CubicTo:
			if !hasStart {
				out = append(out, cur)
				hasStart = true
			}
			b, c, d := fToP(op[0]), fToP(op[1]), fToP(op[2])
			out = flattenCubic(out, cur, b, c, d, tol)
			cur = d
		case Close:
			// the polygon is implicitly closed
		}
	}
	return out
}

func fToP(a fixed.Point26_6) Point {
	x, y := fixedTof(a)
	return Point{x, y}
}

func segmentsCount(dd, tol float64) int {
	n := int(math.Ceil(math.Sqrt(dd / tol)))
	if n < 1 {
		n = 1
	} else if n > maxFlattenSegments {
		n = maxFlattenSegments
	}
	return n
}

// flattenQuad appends the points approximating the quadratic bezier
// a, b, c (a excluded).
// The error of the uniform subdivision is bounded by |a - 2b + c| / (4n^2).
func flattenQuad(out []Point, a, b, c Point, tol float64) []Point {
	dd := math.Hypot(a.X-2*b.X+c.X, a.Y-2*b.Y+c.Y)
	n := segmentsCount(dd/4, tol)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		out = append(out, quadAt(a, b, c, t))
	}
	return append(out, c)
}

// flattenCubic appends the points approximating the cubic bezier
// a, b, c, d (a excluded).
// The error of the uniform subdivision is bounded by 3/4 max(|a - 2b + c|, |b - 2c + d|) / n^2.
func flattenCubic(out []Point, a, b, c, d Point, tol float64) []Point {
	dd := math.Max(math.Hypot(a.X-2*b.X+c.X, a.Y-2*b.Y+c.Y), math.Hypot(b.X-2*c.X+d.X, b.Y-2*c.Y+d.Y))
	n := segmentsCount(dd*3/4, tol)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		out = append(out, cubicAt(a, b, c, d, t))
	}
	return append(out, d)
}
