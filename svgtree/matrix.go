package svgtree

import "math"

// Matrix2D represents an SVG style affine transformation
// [A C E]
// [B D F]
// [0 0 1]
// that is, A and D are the scale factors (sx, sy),
// B and C the skew factors (ky, kx), and E, F the translation (tx, ty).
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transformation.
var Identity = Matrix2D{A: 1, D: 1}

// Mult returns a * b: b is applied first.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate adds a translation, applied before a.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, D: 1, E: x, F: y})
}

// Scale adds a scaling, applied before a.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: x, D: y})
}

// Rotate adds a rotation of theta radians, applied before a.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	s, c := math.Sincos(theta)
	return a.Mult(Matrix2D{A: c, B: s, C: -s, D: c})
}

// SkewX adds a skew along the x axis of theta radians.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, C: math.Tan(theta), D: 1})
}

// SkewY adds a skew along the y axis of theta radians.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, B: math.Tan(theta), D: 1})
}

// Transform applies the matrix to the point (x, y).
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// TransformPoint applies the matrix to p.
func (a Matrix2D) TransformPoint(p Point) Point {
	x, y := a.Transform(p.X, p.Y)
	return Point{X: x, Y: y}
}

// HasTranslate returns true if the translation part is not zero.
func (a Matrix2D) HasTranslate() bool { return a.E != 0 || a.F != 0 }

// HasScale returns true if one of the scale factors is not 1.
func (a Matrix2D) HasScale() bool { return a.A != 1 || a.D != 1 }

// HasSkew returns true if one of the skew factors is not zero.
func (a Matrix2D) HasSkew() bool { return a.B != 0 || a.C != 0 }

// IsIdentity returns true for the identity transformation.
func (a Matrix2D) IsIdentity() bool { return a == Identity }
