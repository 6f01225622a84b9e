// Package svgtree parses SVG documents into a resolved scene graph:
// a tree of groups, paths, texts and images where styles are
// computed, shapes are converted to paths, text is converted to
// glyph outlines, and every node knows its absolute transform
// and bounding box.
//
// The tree is read-only once parsed, and is meant to be consumed
// by drawing adapters such as giosvg/svgdraw.
package svgtree

// Tree is a parsed SVG document.
type Tree struct {
	// Width and Height are the document size in user units,
	// resolved from the width, height and viewBox attributes
	Width, Height float64
	ViewBox       Rect

	Titles       []string // title elements collect here
	Descriptions []string // desc elements collect here

	root *Group
}

// Root returns the root group of the document.
func (t *Tree) Root() *Group { return t.root }

// Node is one of *Group, *Path, *Text or *Image.
type Node interface {
	// ID returns the id attribute of the element (may be empty)
	ID() string
	// AbsTransform returns the transform from the node
	// coordinates to the canvas coordinates.
	AbsTransform() Matrix2D
	// AbsBoundingBox returns the bounding box of the node,
	// in canvas coordinates. Strokes are not included.
	AbsBoundingBox() Rect

	isNode()
}

type nodeBase struct {
	id           string
	absTransform Matrix2D
	absBBox      Rect
}

func (n *nodeBase) ID() string             { return n.id }
func (n *nodeBase) AbsTransform() Matrix2D { return n.absTransform }
func (n *nodeBase) AbsBoundingBox() Rect   { return n.absBBox }

func (*Group) isNode() {}
func (*Path) isNode()  {}
func (*Text) isNode()  {}
func (*Image) isNode() {}

// BlendMode is the mix-blend-mode of a group.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var blendModes = map[string]BlendMode{
	"normal":      BlendNormal,
	"multiply":    BlendMultiply,
	"screen":      BlendScreen,
	"overlay":     BlendOverlay,
	"darken":      BlendDarken,
	"lighten":     BlendLighten,
	"color-dodge": BlendColorDodge,
	"color-burn":  BlendColorBurn,
	"hard-light":  BlendHardLight,
	"soft-light":  BlendSoftLight,
	"difference":  BlendDifference,
	"exclusion":   BlendExclusion,
	"hue":         BlendHue,
	"saturation":  BlendSaturation,
	"color":       BlendColor,
	"luminosity":  BlendLuminosity,
}

// Group is a container element. Its transform
// and compositing properties apply to all its children.
type Group struct {
	nodeBase

	// Transform is the transform relative to the parent group.
	Transform Matrix2D
	Opacity   float64
	BlendMode BlendMode
	// Isolate is set by the CSS 'isolation: isolate' property.
	Isolate bool
	// ClipPath, Mask and Filter store the id of the referenced element,
	// if any.
	ClipPath, Mask, Filter string

	Children []Node
}

// ShouldIsolate returns true if the group must be composited
// offscreen before being drawn onto its parent.
func (g *Group) ShouldIsolate() bool {
	return g.Isolate ||
		g.Opacity != 1 ||
		g.ClipPath != "" ||
		g.Mask != "" ||
		g.Filter != "" ||
		g.BlendMode != BlendNormal
}

// FillRule is the rule used to decide the inside of a path.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

// Fill describes how to fill the interior of a path.
type Fill struct {
	Paint   Paint
	Opacity float64
	Rule    FillRule
}

// LineCap defines how to draw caps on the ends of lines
type LineCap uint8

const (
	ButtCap LineCap = iota
	RoundCap
	SquareCap
)

// LineJoin defines how stroke segments are joined.
type LineJoin uint8

const (
	MiterJoin LineJoin = iota
	MiterClipJoin
	RoundJoin
	BevelJoin
)

// Stroke describes how to outline a path.
type Stroke struct {
	Paint      Paint
	Width      float64
	Opacity    float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64 // nil or empty for no dashes
	DashOffset float64
}

// Path is a drawable shape. Basic shapes (rect, circle, etc...)
// are converted to paths by the parser.
type Path struct {
	nodeBase

	// Visible is false for 'visibility: hidden' paths.
	// Hidden paths still contribute to the bounding boxes.
	Visible bool
	// Fill and Stroke are nil when not painted.
	Fill   *Fill
	Stroke *Stroke
	// Data is expressed in the coordinates of the parent group.
	Data PathData
}

// TextChunk is a run of characters sharing
// the same position and font.
type TextChunk struct {
	X, Y       float64 // position of the baseline start
	Text       string
	FontFamily string
	FontSize   float64
	Bold       bool
	Italic     bool
}

// Text is a text element. The parser resolves
// it into glyph outlines, see Flattened.
type Text struct {
	nodeBase

	Chunks []TextChunk

	flattened *Group
}

// Flattened returns the glyph outlines of the text,
// as a group of paths.
func (t *Text) Flattened() *Group { return t.flattened }

// ImageKind is the format of an embedded image.
type ImageKind uint8

const (
	ImageUnknown ImageKind = iota
	ImagePNG
	ImageJPEG
	ImageGIF
	ImageWEBP
	ImageSVG
)

func (k ImageKind) String() string {
	switch k {
	case ImagePNG:
		return "png"
	case ImageJPEG:
		return "jpeg"
	case ImageGIF:
		return "gif"
	case ImageWEBP:
		return "webp"
	case ImageSVG:
		return "svg"
	default:
		return "unknown"
	}
}

// Image is a raster or vector image element.
type Image struct {
	nodeBase

	Kind ImageKind
	// Href is the link to the image content, which may be
	// a data URL
	Href string
	// View is the target rectangle, in the
	// coordinates of the parent group.
	View Rect
	// Data is the decoded content of data URLs, nil otherwise.
	Data []byte
}
