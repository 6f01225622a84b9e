// Package svgebiten draws SVG documents on Ebitengine images.
package svgebiten

import (
	"image/color"

	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var _ svgdraw.Painter = Painter{} // assert interface conformance

// whiteSubImage is a 1x1 white image used as triangle source.
var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()

// Painter draws shapes on Dst.
type Painter struct {
	Dst *ebiten.Image
	// AntiAlias is passed to DrawTriangles.
	AntiAlias bool
}

func polygon(s svgdraw.Shape) *vector.Path {
	var path vector.Path
	path.MoveTo(s.Points[0].X, s.Points[0].Y)
	for _, p := range s.Points[1:] {
		path.LineTo(p.X, p.Y)
	}
	path.Close()
	return &path
}

func setVertexColors(vertices []ebiten.Vertex, c color.NRGBA) {
	r := float32(c.R) / 255
	g := float32(c.G) / 255
	b := float32(c.B) / 255
	a := float32(c.A) / 255
	for i := range vertices {
		vertices[i].SrcX, vertices[i].SrcY = 0.5, 0.5
		vertices[i].ColorR = r
		vertices[i].ColorG = g
		vertices[i].ColorB = b
		vertices[i].ColorA = a
	}
}

// fillTriangles returns the triangulation of the inside of the shape.
func fillTriangles(s svgdraw.Shape) ([]ebiten.Vertex, []uint16) {
	vertices, indices := polygon(s).AppendVerticesAndIndicesForFilling(nil, nil)
	setVertexColors(vertices, s.Fill)
	return vertices, indices
}

// strokeTriangles returns the triangulation of the outline of the shape.
func strokeTriangles(s svgdraw.Shape) ([]ebiten.Vertex, []uint16) {
	vertices, indices := polygon(s).AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:      s.Stroke.Width,
		LineCap:    vector.LineCapButt,
		LineJoin:   vector.LineJoinMiter,
		MiterLimit: 4,
	})
	setVertexColors(vertices, s.Stroke.Color)
	return vertices, indices
}

// Add implements svgdraw.Painter.
func (p Painter) Add(s svgdraw.Shape) {
	if len(s.Points) == 0 {
		return
	}
	if s.Fill.A != 0 {
		vertices, indices := fillTriangles(s)
		p.Dst.DrawTriangles(vertices, indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
			AntiAlias: p.AntiAlias,
			FillRule:  ebiten.NonZero,
		})
	}
	if s.Stroke.Width > 0 && s.Stroke.Color.A != 0 {
		vertices, indices := strokeTriangles(s)
		p.Dst.DrawTriangles(vertices, indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
			AntiAlias: p.AntiAlias,
		})
	}
}
