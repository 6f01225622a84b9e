package svgdraw

import (
	"errors"
	"image/color"

	"gioui.org/f32"
	"github.com/benoitkugler/giosvg/svgtree"
	"github.com/chewxy/math32"
)

// Render walks the document in painting order and sends
// one shape per visible path to p.
//
// Unsupported nodes are handled according to the view error mode:
// with IgnoreErrorMode they are silently skipped and Render returns nil;
// with WarnErrorMode they are logged, skipped, and returned
// (joined) once the walk is done; with StrictErrorMode the walk stops
// at the first one, which is returned.
func (v View) Render(p Painter) error {
	r := renderer{view: v, painter: p}
	r.renderGroup(v.tree.Root())
	return errors.Join(r.errs...)
}

type renderer struct {
	view    View
	painter Painter

	errs    []error
	stopped bool
}

// unsupported applies the error policy to a skipped node
func (r *renderer) unsupported(feature string, node svgtree.Node) {
	err := &UnsupportedError{Feature: feature, NodeID: node.ID()}
	switch r.view.mode {
	case IgnoreErrorMode:
		return
	case StrictErrorMode:
		r.stopped = true
	default:
		r.view.log().Warn("skipping unsupported svg node", "feature", feature, "id", node.ID())
	}
	r.errs = append(r.errs, err)
}

func (r *renderer) renderNode(node svgtree.Node) {
	switch node := node.(type) {
	case *svgtree.Group:
		if node.ShouldIsolate() {
			r.view.log().Debug("skipping isolated svg group", "id", node.ID())
			return
		}
		r.renderGroup(node)
	case *svgtree.Text:
		r.renderGroup(node.Flattened())
	case *svgtree.Path:
		if !node.Visible {
			return
		}
		r.renderPath(node)
	case *svgtree.Image:
		r.unsupported(FeatureImage, node)
	}
}

func (r *renderer) renderGroup(g *svgtree.Group) {
	for _, child := range g.Children {
		if r.stopped {
			return
		}
		r.renderNode(child)
	}
}

// resolvePaint returns the color of a paint, or the name
// of the unsupported feature.
func resolvePaint(paint svgtree.Paint) (color.NRGBA, string) {
	switch paint := paint.(type) {
	case svgtree.Color:
		return paint.NRGBA(0xff), ""
	case *svgtree.LinearGradient:
		return color.NRGBA{}, FeatureLinearGradient
	case *svgtree.RadialGradient:
		return color.NRGBA{}, FeatureRadialGradient
	default:
		return color.NRGBA{}, FeaturePattern
	}
}

// pathShape converts a path node to a shape, before any transformation.
// Curves are flattened so that the error is below svgtree.FlattenTolerance
// once the shape is scaled by scale.
// It returns the unsupported feature met, if any.
func pathShape(path *svgtree.Path, scale float32) (Shape, string) {
	var fill color.NRGBA
	if path.Fill != nil {
		var feature string
		fill, feature = resolvePaint(path.Fill.Paint)
		if feature != "" {
			return Shape{}, feature
		}
	}
	var stroke Stroke
	if path.Stroke != nil {
		col, feature := resolvePaint(path.Stroke.Paint)
		if feature != "" {
			return Shape{}, feature
		}
		stroke = Stroke{Width: float32(path.Stroke.Width), Color: col}
	}

	tol := svgtree.FlattenTolerance
	if scale > 0 {
		tol /= float64(scale)
	}
	points := path.Data.PointsTolerance(tol)
	fpoints := make([]f32.Point, len(points))
	for i, p := range points {
		fpoints[i] = f32.Pt(float32(p.X), float32(p.Y))
	}
	return ConvexPolygon(fpoints, fill, stroke), ""
}

func (r *renderer) renderPath(path *svgtree.Path) {
	// the translation is applied first, then the smallest of the two scales
	tr := path.AbsTransform()
	scale := float32(1)
	if tr.HasScale() {
		scale = math32.Min(float32(tr.A), float32(tr.D))
	}
	total := scale
	viewScale, hasViewScale := r.view.Scale()
	if hasViewScale {
		total *= viewScale
	}

	shape, feature := pathShape(path, math32.Abs(total))
	if feature != "" {
		r.unsupported(feature, path)
		return
	}
	if len(shape.Points) < 2 {
		return
	}

	if tr.HasTranslate() {
		shape.Translate(f32.Pt(float32(tr.E), float32(tr.F)))
	}
	if tr.HasScale() {
		shape.Scale(scale)
	}
	if hasViewScale {
		shape.Scale(viewScale)
	}
	r.painter.Add(shape)
}
