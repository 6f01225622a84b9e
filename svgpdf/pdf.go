// Implements a PDF backend to render SVG images,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"io"

	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/chewxy/math32"
	"github.com/jung-kurt/gofpdf"
)

var _ svgdraw.Painter = Renderer{} // assert interface conformance

// Renderer writes shapes as PDF paths on the current page.
// Coordinates are used as is, in the unit of the document.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// Render writes a one page document to w, whose page
// has the size of the view (in points), and at least 1x1.
func Render(v svgdraw.View, w io.Writer) error {
	size := v.Size()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(math32.Max(size.X, 1)), Ht: float64(math32.Max(size.Y, 1))},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// unsupported nodes are already logged by the view
	renderErr := v.Render(NewRenderer(pdf))
	if err := pdf.Output(w); err != nil {
		return err
	}
	return renderErr
}

// path writes the closed polygon
func (rd Renderer) path(s svgdraw.Shape) {
	rd.pdf.MoveTo(float64(s.Points[0].X), float64(s.Points[0].Y))
	for _, p := range s.Points[1:] {
		rd.pdf.LineTo(float64(p.X), float64(p.Y))
	}
	rd.pdf.ClosePath()
}

// drawStyle returns the gofpdf style string, or an empty string
// when nothing is visible.
func drawStyle(s svgdraw.Shape) string {
	fill := s.Fill.A != 0
	stroke := s.Stroke.Width > 0 && s.Stroke.Color.A != 0
	switch {
	case fill && stroke:
		return "FD"
	case fill:
		return "F"
	case stroke:
		return "D"
	default:
		return ""
	}
}

// Add implements svgdraw.Painter.
func (rd Renderer) Add(s svgdraw.Shape) {
	if len(s.Points) == 0 {
		return
	}
	style := drawStyle(s)
	if style == "" {
		return
	}
	if s.Fill.A != 0 {
		rd.pdf.SetFillColor(int(s.Fill.R), int(s.Fill.G), int(s.Fill.B))
	}
	if s.Stroke.Width > 0 {
		c := s.Stroke.Color
		rd.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		rd.pdf.SetLineWidth(float64(s.Stroke.Width))
	}
	rd.path(s)
	rd.pdf.DrawPath(style)
}
