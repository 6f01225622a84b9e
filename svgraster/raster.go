// Implements a raster backend to render SVG images,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/draw"

	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/chewxy/math32"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ svgdraw.Painter = (*Renderer)(nil) // assert interface conformance

// Renderer draws shapes into an image.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer drawing on img,
// using a rasterx.ScannerGV.
func NewRenderer(img draw.Image) *Renderer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	scanner := rasterx.NewScannerGV(w, h, img, bounds)
	rd := &Renderer{dasher: rasterx.NewDasher(w, h, scanner), filler: rasterx.NewFiller(w, h, scanner)}
	rd.dasher.SetWinding(true)
	rd.filler.SetWinding(true)
	return rd
}

// Render draws the view on a new transparent image,
// whose size is the view size rounded up.
func Render(v svgdraw.View) (*image.RGBA, error) {
	size := v.Size()
	img := image.NewRGBA(image.Rect(0, 0, int(math32.Ceil(size.X)), int(math32.Ceil(size.Y))))
	err := v.Render(NewRenderer(img))
	return img, err
}

func toFixed(x, y float32) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// path adds the closed polygon to the given adder
func path(adder rasterx.Adder, s svgdraw.Shape) {
	adder.Start(toFixed(s.Points[0].X, s.Points[0].Y))
	for _, p := range s.Points[1:] {
		adder.Line(toFixed(p.X, p.Y))
	}
	adder.Stop(true)
}

// Add implements svgdraw.Painter, filling then stroking the shape.
func (rd *Renderer) Add(s svgdraw.Shape) {
	if len(s.Points) == 0 {
		return
	}
	if s.Fill.A != 0 {
		rd.filler.Clear()
		rd.filler.SetColor(s.Fill)
		path(rd.filler, s)
		rd.filler.Draw()
	}
	if s.Stroke.Width > 0 && s.Stroke.Color.A != 0 {
		rd.dasher.Clear()
		rd.dasher.SetStroke(
			fixed.Int26_6(s.Stroke.Width*64), 4*64, rasterx.ButtCap, rasterx.ButtCap,
			rasterx.FlatGap, rasterx.Miter, nil, 0,
		)
		rd.dasher.SetColor(s.Stroke.Color)
		path(rd.dasher, s)
		rd.dasher.Draw()
	}
}
