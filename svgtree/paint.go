package svgtree

import "image/color"

// Paint is either Color, *LinearGradient, *RadialGradient or *Pattern.
type Paint interface {
	isPaint()
}

func (Color) isPaint()           {}
func (*LinearGradient) isPaint() {}
func (*RadialGradient) isPaint() {}
func (*Pattern) isPaint()        {}

// Color is a plain RGB color. Opacity is stored
// separately in Fill and Stroke.
type Color struct {
	Red, Green, Blue uint8
}

// NRGBA returns the color with the given alpha.
func (c Color) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.Red, G: c.Green, B: c.Blue, A: alpha}
}

// Units is the coordinate system of gradients and patterns.
type Units uint8

// SVG bounds parameter constants
const (
	ObjectBoundingBox Units = iota
	UserSpaceOnUse
)

// SpreadMethod is the type for spread parameters
type SpreadMethod uint8

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop represents a stop in the SVG 2.0 gradient specification
type GradStop struct {
	Offset  float64
	Color   Color
	Opacity float64
}

// gradientBase holds the attributes shared by linear and
// radial gradients.
type gradientBase struct {
	ID        string
	Units     Units
	Spread    SpreadMethod
	Transform Matrix2D
	Stops     []GradStop
}

// LinearGradient holds a description of an SVG linearGradient element.
type LinearGradient struct {
	gradientBase
	X1, Y1, X2, Y2 float64
}

// RadialGradient holds a description of an SVG radialGradient element.
type RadialGradient struct {
	gradientBase
	CX, CY, R, FX, FY, FR float64
}

// Pattern holds a description of an SVG pattern element.
type Pattern struct {
	ID           string
	Rect         Rect
	Units        Units
	ContentUnits Units
	Transform    Matrix2D
	// Root holds the content of the pattern tile.
	Root *Group
}
