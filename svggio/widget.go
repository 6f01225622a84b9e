package svggio

import (
	"image"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/chewxy/math32"
)

// SVG is a widget drawing a document at the size of its view.
type SVG struct {
	View svgdraw.View
}

// Layout reserves the size of the view, rounded up and constrained by gtx,
// and draws the document in it. Shapes are positioned relative to the
// top left corner of the reserved area, and clipped to it.
//
// Unsupported nodes follow the view error mode: in WarnErrorMode they are
// logged by the view, in StrictErrorMode the drawing stops and the error
// is logged here, in IgnoreErrorMode nothing is reported.
func (s SVG) Layout(gtx layout.Context) layout.Dimensions {
	size := s.View.Size()
	sz := gtx.Constraints.Constrain(image.Pt(int(math32.Ceil(size.X)), int(math32.Ceil(size.Y))))

	defer clip.Rect{Max: sz}.Push(gtx.Ops).Pop()
	err := s.View.Render(Painter{Ops: gtx.Ops})
	if err != nil && s.View.ErrorMode() == svgdraw.StrictErrorMode {
		s.View.Logger().Error("svg drawing stopped", "error", err)
	}

	return layout.Dimensions{Size: sz}
}

// Fit is a widget drawing a document scaled to fit
// the maximum constraints, preserving its aspect ratio.
type Fit struct {
	View svgdraw.View
}

// Layout implements layout.Widget.
func (f Fit) Layout(gtx layout.Context) layout.Dimensions {
	v := f.View
	if natural := v.NaturalSize(); natural.X > 0 && natural.Y > 0 {
		area := gtx.Constraints.Max
		v = v.WithSize(f32.Pt(float32(area.X), float32(area.Y)))
	}
	return SVG{View: v}.Layout(gtx)
}
