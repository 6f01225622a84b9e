package svgtree

import (
	"math"
)

// maxArcSpan is the largest angle, in radians, approximated by one cubic.
const maxArcSpan = math.Pi / 8

// kappa places the control points of a quarter circle of radius 1.
const kappa = 0.5522847498

func (p *PathData) moveTo(x, y float64) { p.Start(toFixedP(x, y)) }
func (p *PathData) lineTo(x, y float64) { p.Line(toFixedP(x, y)) }
func (p *PathData) cubicTo(x1, y1, x2, y2, x, y float64) {
	p.CubeBezier(toFixedP(x1, y1), toFixedP(x2, y2), toFixedP(x, y))
}

// addRect adds a closed rectangle, clockwise from (x0, y0).
func (p *PathData) addRect(x0, y0, x1, y1 float64) {
	p.moveTo(x0, y0)
	p.lineTo(x1, y0)
	p.lineTo(x1, y1)
	p.lineTo(x0, y1)
	p.Stop(true)
}

// addRoundRect adds a rectangle whose corners are quarter ellipses
// of radii rx, ry, clamped to half the sides.
func (p *PathData) addRoundRect(x0, y0, x1, y1, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		p.addRect(x0, y0, x1, y1)
		return
	}
	rx = math.Min(rx, (x1-x0)/2)
	ry = math.Min(ry, (y1-y0)/2)
	kx, ky := rx*(1-kappa), ry*(1-kappa)

	p.moveTo(x0+rx, y0)
	p.lineTo(x1-rx, y0)
	p.cubicTo(x1-kx, y0, x1, y0+ky, x1, y0+ry)
	p.lineTo(x1, y1-ry)
	p.cubicTo(x1, y1-ky, x1-kx, y1, x1-rx, y1)
	p.lineTo(x0+rx, y1)
	p.cubicTo(x0+kx, y1, x0, y1-ky, x0, y1-ry)
	p.lineTo(x0, y0+ry)
	p.cubicTo(x0, y0+ky, x0+kx, y0, x0+rx, y0)
	p.Stop(true)
}

// addEllipse adds a closed, axis aligned ellipse, starting
// at its rightmost point.
func (p *PathData) addEllipse(cx, cy, rx, ry float64) {
	e := ellipse{cx: cx, cy: cy, rx: rx, ry: ry, cos: 1}
	p.moveTo(cx+rx, cy)
	e.appendCubics(p, 0, 2*math.Pi, 4, Point{cx + rx, cy})
	p.Stop(true)
}

// ellipse is an ellipse of center (cx, cy), radii rx, ry,
// rotated by an angle given by its sine and cosine.
type ellipse struct {
	cx, cy, rx, ry float64
	sin, cos       float64
}

// point returns the point of parametric angle theta.
func (e ellipse) point(theta float64) Point {
	x, y := e.rx*math.Cos(theta), e.ry*math.Sin(theta)
	return Point{e.cx + e.cos*x - e.sin*y, e.cy + e.sin*x + e.cos*y}
}

// tangent returns the derivative of point at theta.
func (e ellipse) tangent(theta float64) Point {
	x, y := -e.rx*math.Sin(theta), e.ry*math.Cos(theta)
	return Point{e.cos*x - e.sin*y, e.sin*x + e.cos*y}
}

// appendCubics approximates the arc from theta to theta + delta
// with n cubics, ending exactly at end. The current point of p
// must be the start of the arc.
// See L. Maisonobe, "Drawing an elliptical arc using polylines,
// quadratic or cubic Bezier curves", 2003.
func (e ellipse) appendCubics(p *PathData, theta, delta float64, n int, end Point) {
	step := delta / float64(n)
	t := math.Tan(step / 2)
	alpha := math.Sin(step) * (math.Sqrt(4+3*t*t) - 1) / 3

	from, dFrom := e.point(theta), e.tangent(theta)
	for i := 1; i <= n; i++ {
		angle := theta + step*float64(i)
		to, dTo := e.point(angle), e.tangent(angle)
		if i == n {
			to = end
		}
		p.cubicTo(from.X+alpha*dFrom.X, from.Y+alpha*dFrom.Y, to.X-alpha*dTo.X, to.Y-alpha*dTo.Y, to.X, to.Y)
		from, dFrom = to, dTo
	}
}

// vectorAngle returns the signed angle from u to v.
func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}

// arcTo adds the elliptical arc of the 'A' command, from (x0, y0) to (x, y),
// with radii rx, ry > 0 and x axis rotation phi, in degrees.
// Radii too small to join the end points are scaled up.
func (p *PathData) arcTo(x0, y0, rx, ry, phi float64, largeArc, sweep bool, x, y float64) {
	sin, cos := math.Sincos(phi * math.Pi / 180)

	// end points in the frame of the ellipse, relative to their middle
	dx, dy := (x0-x)/2, (y0-y)/2
	x1, y1 := cos*dx+sin*dy, -sin*dx+cos*dy

	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx, ry = rx*s, ry*s
	}

	var coef float64
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	if num > 0 && den > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cx1, cy1 := coef*rx*y1/ry, -coef*ry*x1/rx

	e := ellipse{
		cx: cos*cx1 - sin*cy1 + (x0+x)/2,
		cy: sin*cx1 + cos*cy1 + (y0+y)/2,
		rx: rx, ry: ry, sin: sin, cos: cos,
	}
	ux, uy := (x1-cx1)/rx, (y1-cy1)/ry
	vx, vy := (-x1-cx1)/rx, (-y1-cy1)/ry
	theta := vectorAngle(1, 0, ux, uy)
	delta := vectorAngle(ux, uy, vx, vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta) / maxArcSpan))
	if n == 0 {
		p.lineTo(x, y)
		return
	}
	e.appendCubics(p, theta, delta, n, Point{x, y})
}
