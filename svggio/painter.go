// Package svggio displays SVG documents in Gio user interfaces.
package svggio

import (
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/benoitkugler/giosvg/svgdraw"
)

var _ svgdraw.Painter = Painter{} // assert interface conformance

// Painter records shapes in a Gio operation list.
type Painter struct {
	Ops *op.Ops
}

func (p Painter) outline(s svgdraw.Shape) clip.PathSpec {
	var path clip.Path
	path.Begin(p.Ops)
	path.MoveTo(s.Points[0])
	for _, pt := range s.Points[1:] {
		path.LineTo(pt)
	}
	path.Close()
	return path.End()
}

// Add implements svgdraw.Painter.
func (p Painter) Add(s svgdraw.Shape) {
	if len(s.Points) == 0 {
		return
	}
	if s.Fill.A != 0 {
		paint.FillShape(p.Ops, s.Fill, clip.Outline{Path: p.outline(s)}.Op())
	}
	if s.Stroke.Width > 0 && s.Stroke.Color.A != 0 {
		paint.FillShape(p.Ops, s.Stroke.Color, clip.Stroke{Path: p.outline(s), Width: s.Stroke.Width}.Op())
	}
}
