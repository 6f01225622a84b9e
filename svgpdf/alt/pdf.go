// Alternative implementation of PDF rendering,
// writing content streams with github.com/benoitkugler/pdf.
package alt

import (
	"io"

	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"github.com/chewxy/math32"
)

var _ svgdraw.Painter = Renderer{} // assert interface conformance

// Renderer writes shapes as PDF paths into an appearance stream.
// Coordinates are used as is: the caller is responsible for
// flipping the y axis, see Render.
type Renderer struct {
	pdf *contentstream.Appearance
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *contentstream.Appearance) Renderer {
	return Renderer{pdf: pdf}
}

// Render writes a one page document to w, whose page
// has the size of the view (in points), and at least 1x1.
func Render(v svgdraw.View, w io.Writer) error {
	size := v.Size()
	width, height := float64(math32.Max(size.X, 1)), float64(math32.Max(size.Y, 1))
	app := contentstream.NewAppearance(width, height)
	app.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, height}},
	)
	// unsupported nodes are already logged by the view
	renderErr := v.Render(NewRenderer(&app))
	app.Ops(contentstream.OpRestore{})

	var page model.PageObject
	app.ApplyToPageObject(&page, true)
	var doc model.Document
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, &page)
	if err := doc.Write(w, nil); err != nil {
		return err
	}
	return renderErr
}

// path writes the closed polygon
func (rd Renderer) path(s svgdraw.Shape) {
	ops := make([]contentstream.Operation, 0, len(s.Points)+1)
	ops = append(ops, contentstream.OpMoveTo{X: float64(s.Points[0].X), Y: float64(s.Points[0].Y)})
	for _, p := range s.Points[1:] {
		ops = append(ops, contentstream.OpLineTo{X: float64(p.X), Y: float64(p.Y)})
	}
	rd.pdf.Ops(append(ops, contentstream.OpClosePath{})...)
}

// Add implements svgdraw.Painter.
func (rd Renderer) Add(s svgdraw.Shape) {
	if len(s.Points) == 0 {
		return
	}
	fill := s.Fill.A != 0
	stroke := s.Stroke.Width > 0 && s.Stroke.Color.A != 0
	if fill {
		rd.pdf.SetColorFill(s.Fill)
		rd.pdf.SetFillAlpha(float64(s.Fill.A) / 0xff)
	}
	if stroke {
		rd.pdf.SetColorStroke(s.Stroke.Color)
		rd.pdf.SetStrokeAlpha(float64(s.Stroke.Color.A) / 0xff)
		rd.pdf.Ops(contentstream.OpSetLineWidth{W: float64(s.Stroke.Width)})
	}
	switch {
	case fill && stroke:
		rd.path(s)
		rd.pdf.Ops(contentstream.OpFillStroke{})
	case fill:
		rd.path(s)
		rd.pdf.Ops(contentstream.OpFill{})
	case stroke:
		rd.path(s)
		rd.pdf.Ops(contentstream.OpStroke{})
	}
}
