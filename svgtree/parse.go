package svgtree

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Options controls the parsing.
type Options struct {
	// ErrorMode decides what happens on unsupported
	// or invalid elements.
	ErrorMode ErrorMode
	// Logger receives the warnings. Default to slog.Default().
	Logger *slog.Logger
	// FontSize is the default font size, used when
	// no font-size property is specified.
	FontSize float64
}

// DefaultOptions returns the options used by ReadIcon.
func DefaultOptions() Options {
	return Options{ErrorMode: WarnErrorMode, FontSize: 12}
}

// builder converts the raw element tree into the scene graph
type builder struct {
	opts   Options
	logger *slog.Logger

	ids      map[string]*element
	sheet    styleSheet
	paints   map[*element]Paint
	viewport viewport

	useStack map[*element]bool // elements currently instantiated by use
}

// Parse reads an SVG document.
func Parse(data []byte, opts Options) (*Tree, error) {
	root, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 12
	}
	b := &builder{
		opts:     opts,
		logger:   opts.Logger,
		ids:      indexIDs(root),
		paints:   make(map[*element]Paint),
		useStack: make(map[*element]bool),
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.sheet = b.parseStyleSheet(root)
	return b.buildTree(root)
}

// ReadIconStream reads the SVG document from stream.
func ReadIconStream(stream io.Reader, opts Options) (*Tree, error) {
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts)
}

// ReadIcon reads the SVG document from the given file.
func ReadIcon(iconFile string, opts Options) (*Tree, error) {
	data, err := os.ReadFile(iconFile)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts)
}

func (b *builder) buildTree(root *element) (*Tree, error) {
	tree := new(Tree)
	var err error
	if vb := root.attr("viewBox"); vb != "" {
		tree.ViewBox, err = parseViewBox(vb)
		if err != nil {
			if err := b.handleError(root, fmt.Sprintf("invalid viewBox: %s", err)); err != nil {
				return nil, err
			}
			tree.ViewBox = Rect{}
		}
	}
	// percentages of the root size are resolved against the viewBox
	b.viewport = viewport{w: tree.ViewBox.W, h: tree.ViewBox.H}
	if b.viewport.w == 0 || b.viewport.h == 0 {
		b.viewport = viewport{w: 100, h: 100}
	}
	tree.Width, tree.Height = 100, 100
	if !tree.ViewBox.IsEmpty() {
		tree.Width, tree.Height = tree.ViewBox.W, tree.ViewBox.H
	}
	if v := root.attr("width"); v != "" && !strings.HasSuffix(v, "%") {
		if tree.Width, err = parseLength(v, b.viewport, widthPercentage, b.opts.FontSize); err != nil {
			return nil, &ElementError{Element: "svg", Err: err}
		}
	}
	if v := root.attr("height"); v != "" && !strings.HasSuffix(v, "%") {
		if tree.Height, err = parseLength(v, b.viewport, heightPercentage, b.opts.FontSize); err != nil {
			return nil, &ElementError{Element: "svg", Err: err}
		}
	}
	// a missing viewBox behaves as the document rect
	if tree.ViewBox.IsEmpty() {
		b.viewport = viewport{w: tree.Width, h: tree.Height}
	}

	tree.Titles, tree.Descriptions = collectMetadata(root)

	tree.root = &Group{Opacity: 1}
	tree.root.id = root.attr("id")
	tree.root.Transform = viewBoxTransform(tree.ViewBox, root.attr("preserveAspectRatio"), tree.Width, tree.Height)
	tree.root.absTransform = tree.root.Transform

	rootStyle := style{}.inherit(b.declarations(root))
	if err := b.buildChildren(root, tree.root, rootStyle); err != nil {
		return nil, err
	}
	tree.root.absBBox = childrenBoundingBox(tree.root.Children)
	return tree, nil
}

// collectMetadata returns the content of the title and desc elements
func collectMetadata(root *element) (titles, descriptions []string) {
	var walk func(*element)
	walk = func(el *element) {
		switch el.name {
		case "title":
			titles = append(titles, el.textContent())
			return
		case "desc":
			descriptions = append(descriptions, el.textContent())
			return
		}
		for _, c := range el.children {
			walk(c)
		}
	}
	walk(root)
	return titles, descriptions
}

func childrenBoundingBox(children []Node) Rect {
	var out Rect
	for _, c := range children {
		out = out.Union(c.AbsBoundingBox())
	}
	return out
}

// svgFunc converts one element, with resolved style st,
// and appends the result to parent
type svgFunc func(b *builder, el *element, parent *Group, decl declarations, st style) error

var drawFuncs map[string]svgFunc

func init() {
	// avoids initialization cycle, since use and svg build their children
	drawFuncs = map[string]svgFunc{
		"g":        groupF,
		"a":        groupF,
		"switch":   switchF,
		"svg":      nestedSvgF,
		"use":      useF,
		"path":     shapeF,
		"rect":     shapeF,
		"circle":   shapeF,
		"ellipse":  shapeF,
		"line":     shapeF,
		"polyline": shapeF,
		"polygon":  shapeF,
		"text":     textF,
		"image":    imageF,
	}
}

// elements which are never rendered directly
var nonRenderedElements = map[string]bool{
	"defs":           true,
	"title":          true,
	"desc":           true,
	"metadata":       true,
	"style":          true,
	"symbol":         true,
	"linearGradient": true,
	"radialGradient": true,
	"pattern":        true,
	"stop":           true,
	"clipPath":       true,
	"mask":           true,
	"filter":         true,
	"marker":         true,
	"script":         true,
}

func (b *builder) buildChildren(el *element, parent *Group, st style) error {
	for _, child := range el.children {
		if err := b.buildElement(child, parent, st); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildElement(el *element, parent *Group, parentStyle style) error {
	if el.isCharData() || nonRenderedElements[el.name] {
		return nil
	}
	df, ok := drawFuncs[el.name]
	if !ok {
		return b.handleError(el, "Cannot process svg element "+el.name)
	}
	decl := b.declarations(el)
	if decl["display"] == "none" {
		return nil
	}
	return df(b, el, parent, decl, parentStyle.inherit(decl))
}

// needsGroup returns true if the element has properties
// which must be carried by a group.
func needsGroup(el *element, decl declarations) bool {
	if strings.TrimSpace(el.attr("transform")) != "" {
		return true
	}
	for _, prop := range [...]string{"opacity", "clip-path", "mask", "filter", "mix-blend-mode", "isolation"} {
		if v := decl[prop]; v != "" && v != "none" && v != "normal" && v != "auto" && v != "1" {
			return true
		}
	}
	return false
}

// newGroup creates a group for el, with the given additional
// transform applied after the element transform,
// and adds it to parent.
func (b *builder) newGroup(el *element, parent *Group, decl declarations, extra Matrix2D) (*Group, error) {
	g := &Group{Opacity: 1, Transform: Identity}
	g.id = el.attr("id")
	tr, err := parseTransform(el.attr("transform"))
	if err != nil {
		if err := b.handleError(el, fmt.Sprintf("invalid transform: %s", err)); err != nil {
			return nil, err
		}
		tr = Identity
	}
	g.Transform = tr.Mult(extra)
	if v := decl["opacity"]; v != "" {
		op, err := readFraction(v)
		if err != nil {
			if err := b.handleError(el, fmt.Sprintf("invalid opacity: %s", err)); err != nil {
				return nil, err
			}
			op = 1
		}
		g.Opacity = clamp01(op)
	}
	if v := decl["mix-blend-mode"]; v != "" {
		g.BlendMode = blendModes[v]
	}
	g.Isolate = decl["isolation"] == "isolate"
	g.ClipPath, _, _ = parseFuncIRI(decl["clip-path"])
	g.Mask, _, _ = parseFuncIRI(decl["mask"])
	g.Filter, _, _ = parseFuncIRI(decl["filter"])
	g.absTransform = parent.absTransform.Mult(g.Transform)
	parent.Children = append(parent.Children, g)
	return g, nil
}

// finalizeGroup computes the bounding box of g once its children are built.
func finalizeGroup(g *Group) {
	g.absBBox = childrenBoundingBox(g.Children)
}

func groupF(b *builder, el *element, parent *Group, decl declarations, st style) error {
	g, err := b.newGroup(el, parent, decl, Identity)
	if err != nil {
		return err
	}
	defer finalizeGroup(g)
	return b.buildChildren(el, g, st)
}

// switchF renders the first direct child without
// conditional processing attributes.
func switchF(b *builder, el *element, parent *Group, decl declarations, st style) error {
	g, err := b.newGroup(el, parent, decl, Identity)
	if err != nil {
		return err
	}
	defer finalizeGroup(g)
	for _, child := range el.children {
		if child.isCharData() || child.hasAttr("requiredExtensions") || child.hasAttr("systemLanguage") {
			continue
		}
		return b.buildElement(child, g, st)
	}
	return nil
}

// nestedSvgF handles an svg element inside the document,
// which establishes a new viewport.
func nestedSvgF(b *builder, el *element, parent *Group, decl declarations, st style) error {
	lengths, err := b.readLengths(el, st, "x", "y", "width", "height")
	if err != nil {
		return b.handleError(el, err.Error())
	}
	x, y, w, h := lengths[0], lengths[1], lengths[2], lengths[3]
	if !el.hasAttr("width") {
		w = b.viewport.w
	}
	if !el.hasAttr("height") {
		h = b.viewport.h
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	extra := Identity.Translate(x, y)
	saved := b.viewport
	if vb := el.attr("viewBox"); vb != "" {
		rect, err := parseViewBox(vb)
		if err != nil {
			return b.handleError(el, fmt.Sprintf("invalid viewBox: %s", err))
		}
		extra = extra.Mult(viewBoxTransform(rect, el.attr("preserveAspectRatio"), w, h))
		b.viewport = viewport{rect.W, rect.H}
	} else {
		b.viewport = viewport{w, h}
	}
	defer func() { b.viewport = saved }()

	g, err := b.newGroup(el, parent, decl, extra)
	if err != nil {
		return err
	}
	defer finalizeGroup(g)
	return b.buildChildren(el, g, st)
}

// useF instantiates the referenced element, inside a group
// translated by (x, y).
func useF(b *builder, el *element, parent *Group, decl declarations, st style) error {
	href := el.attr("href")
	if !strings.HasPrefix(href, "#") {
		return b.handleError(el, "only local references are supported in use elements")
	}
	target, ok := b.ids[href[1:]]
	if !ok {
		return b.handleError(el, fmt.Sprintf("use element references unknown id %q", href[1:]))
	}
	if b.useStack[target] {
		return &ElementError{Element: el.name, ID: el.attr("id"), Err: errRecursiveUse}
	}
	b.useStack[target] = true
	defer delete(b.useStack, target)

	lengths, err := b.readLengths(el, st, "x", "y")
	if err != nil {
		return b.handleError(el, err.Error())
	}
	g, err := b.newGroup(el, parent, decl, Identity.Translate(lengths[0], lengths[1]))
	if err != nil {
		return err
	}
	defer finalizeGroup(g)

	if target.name == "symbol" {
		return b.instantiateSymbol(target, el, g, st)
	}
	return b.buildElement(target, g, st)
}

func (b *builder) instantiateSymbol(symbol, use *element, g *Group, st style) error {
	decl := b.declarations(symbol)
	if decl["display"] == "none" {
		return nil
	}
	inner := g
	if vb := symbol.attr("viewBox"); vb != "" {
		rect, err := parseViewBox(vb)
		if err != nil {
			return b.handleError(symbol, fmt.Sprintf("invalid viewBox: %s", err))
		}
		w, h := rect.W, rect.H
		if use.hasAttr("width") {
			w, _ = parseLength(use.attr("width"), b.viewport, widthPercentage, b.fontSize(st))
		}
		if use.hasAttr("height") {
			h, _ = parseLength(use.attr("height"), b.viewport, heightPercentage, b.fontSize(st))
		}
		inner = &Group{Opacity: 1, Transform: viewBoxTransform(rect, symbol.attr("preserveAspectRatio"), w, h)}
		inner.absTransform = g.absTransform.Mult(inner.Transform)
		g.Children = append(g.Children, inner)
		defer finalizeGroup(inner)
	}
	return b.buildChildren(symbol, inner, st.inherit(decl))
}

// fontSize returns the computed font size
func (b *builder) fontSize(st style) float64 {
	if v := st["font-size"]; v != "" {
		if f, err := parseLength(v, b.viewport, diagPercentage, b.opts.FontSize); err == nil && f > 0 {
			return f
		}
	}
	return b.opts.FontSize
}

// readLengths reads the given attributes as lengths,
// defaulting to 0
func (b *builder) readLengths(el *element, st style, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	fs := b.fontSize(st)
	for i, name := range names {
		v := el.attr(name)
		if v == "" || v == "auto" {
			continue
		}
		var asPerc percentageReference
		switch name {
		case "x", "cx", "x1", "x2", "width", "rx", "dx":
			asPerc = widthPercentage
		case "y", "cy", "y1", "y2", "height", "ry", "dy":
			asPerc = heightPercentage
		default:
			asPerc = diagPercentage
		}
		var err error
		out[i], err = parseLength(v, b.viewport, asPerc, fs)
		if err != nil {
			return nil, fmt.Errorf("invalid attribute %s: %s", name, err)
		}
	}
	return out, nil
}

// shapeF converts basic shapes and paths to a Path node.
func shapeF(b *builder, el *element, parent *Group, decl declarations, st style) error {
	data, err := b.shapeData(el, st)
	if err != nil {
		if err := b.handleError(el, err.Error()); err != nil {
			return err
		}
		// partial path data is still rendered
	}
	if len(data) == 0 {
		return nil
	}
	container := parent
	if needsGroup(el, decl) {
		g, err := b.newGroup(el, parent, decl, Identity)
		if err != nil {
			return err
		}
		defer finalizeGroup(g)
		container = g
	}
	path, err := b.newPath(el, st, data, container.absTransform)
	if err != nil {
		return err
	}
	container.Children = append(container.Children, path)
	return nil
}

// newPath resolves the fill and stroke of a path.
func (b *builder) newPath(el *element, st style, data PathData, abs Matrix2D) (*Path, error) {
	fill, err := b.resolveFill(el, st)
	if err != nil {
		return nil, err
	}
	stroke, err := b.resolveStroke(el, st)
	if err != nil {
		return nil, err
	}
	p := makePath(fill, stroke, isVisible(st), data, abs)
	p.id = el.attr("id")
	return p, nil
}

func isVisible(st style) bool {
	v := st["visibility"]
	return v != "hidden" && v != "collapse"
}

func makePath(fill *Fill, stroke *Stroke, visible bool, data PathData, abs Matrix2D) *Path {
	p := &Path{Visible: visible, Fill: fill, Stroke: stroke, Data: data}
	p.absTransform = abs
	p.absBBox = data.Transform(abs).BoundingBox()
	return p
}

func (b *builder) shapeData(el *element, st style) (PathData, error) {
	var data PathData
	switch el.name {
	case "path":
		return parsePathData(el.attr("d"))
	case "rect":
		l, err := b.readLengths(el, st, "x", "y", "width", "height", "rx", "ry")
		if err != nil {
			return nil, err
		}
		x, y, w, h, rx, ry := l[0], l[1], l[2], l[3], l[4], l[5]
		if w <= 0 || h <= 0 { // not drawn, but not an error
			return nil, nil
		}
		// a missing radius takes the value of the other one
		if !el.hasAttr("rx") || el.attr("rx") == "auto" {
			rx = ry
		}
		if !el.hasAttr("ry") || el.attr("ry") == "auto" {
			ry = rx
		}
		data.addRoundRect(x, y, x+w, y+h, rx, ry)
	case "circle", "ellipse":
		l, err := b.readLengths(el, st, "cx", "cy", "r", "rx", "ry")
		if err != nil {
			return nil, err
		}
		cx, cy, rx, ry := l[0], l[1], l[3], l[4]
		if el.name == "circle" {
			rx, ry = l[2], l[2]
		} else if !el.hasAttr("rx") {
			rx = ry
		} else if !el.hasAttr("ry") {
			ry = rx
		}
		if rx <= 0 || ry <= 0 {
			return nil, nil
		}
		data.addEllipse(cx, cy, rx, ry)
	case "line":
		l, err := b.readLengths(el, st, "x1", "y1", "x2", "y2")
		if err != nil {
			return nil, err
		}
		data.moveTo(l[0], l[1])
		data.lineTo(l[2], l[3])
	case "polyline", "polygon":
		points, err := parseNumbers(el.attr("points"))
		if len(points)%2 != 0 {
			points = points[:len(points)-1] // odd number: the last coordinate is ignored
		}
		if len(points) >= 4 {
			data.moveTo(points[0], points[1])
			for i := 2; i < len(points); i += 2 {
				data.lineTo(points[i], points[i+1])
			}
			if el.name == "polygon" {
				data.Stop(true)
			}
		}
		return data, err
	}
	return data, nil
}

func (b *builder) resolveFill(el *element, st style) (*Fill, error) {
	value, ok := st["fill"]
	if !ok {
		value = "black"
	}
	paint, alpha, err := b.resolvePaint(el, value, st)
	if err != nil {
		if _, isElementError := err.(*ElementError); isElementError {
			return nil, err
		}
		return nil, b.handleError(el, fmt.Sprintf("invalid fill: %s", err))
	}
	if paint == nil {
		return nil, nil
	}
	fill := &Fill{Paint: paint, Opacity: alpha * b.opacity(st, "fill-opacity")}
	if st["fill-rule"] == "evenodd" {
		fill.Rule = EvenOdd
	}
	return fill, nil
}

func (b *builder) resolveStroke(el *element, st style) (*Stroke, error) {
	paint, alpha, err := b.resolvePaint(el, st["stroke"], st)
	if err != nil {
		if _, isElementError := err.(*ElementError); isElementError {
			return nil, err
		}
		return nil, b.handleError(el, fmt.Sprintf("invalid stroke: %s", err))
	}
	if paint == nil {
		return nil, nil
	}
	stroke := &Stroke{
		Paint:      paint,
		Width:      1,
		Opacity:    alpha * b.opacity(st, "stroke-opacity"),
		MiterLimit: 4,
	}
	if v := st["stroke-width"]; v != "" {
		stroke.Width, err = parseLength(v, b.viewport, diagPercentage, b.fontSize(st))
		if err != nil {
			return nil, b.handleError(el, fmt.Sprintf("invalid stroke width: %s", err))
		}
	}
	if stroke.Width <= 0 {
		return nil, nil
	}
	switch st["stroke-linecap"] {
	case "round":
		stroke.Cap = RoundCap
	case "square":
		stroke.Cap = SquareCap
	}
	switch st["stroke-linejoin"] {
	case "miter-clip":
		stroke.Join = MiterClipJoin
	case "round", "arc":
		stroke.Join = RoundJoin
	case "bevel":
		stroke.Join = BevelJoin
	}
	if v := st["stroke-miterlimit"]; v != "" {
		if ml, err := strconv.ParseFloat(v, 64); err == nil && ml >= 1 {
			stroke.MiterLimit = ml
		}
	}
	if v := st["stroke-dasharray"]; v != "" && v != "none" {
		stroke.Dash = b.parseDashes(v, st)
	}
	if v := st["stroke-dashoffset"]; v != "" {
		stroke.DashOffset, _ = parseLength(v, b.viewport, diagPercentage, b.fontSize(st))
	}
	return stroke, nil
}

// parseDashes returns nil for invalid or all-zero arrays,
// which disable dashing.
func (b *builder) parseDashes(v string, st style) []float64 {
	fields := splitOnCommaOrSpace(v)
	out := make([]float64, 0, 2*len(fields))
	var sum float64
	for _, f := range fields {
		d, err := parseLength(f, b.viewport, diagPercentage, b.fontSize(st))
		if err != nil || d < 0 {
			return nil
		}
		sum += d
		out = append(out, d)
	}
	if sum == 0 {
		return nil
	}
	// an odd list is repeated to yield an even one
	if len(out)%2 == 1 {
		out = append(out, out...)
	}
	return out
}

func (b *builder) opacity(st style, prop string) float64 {
	v := st[prop]
	if v == "" {
		return 1
	}
	f, err := readFraction(v)
	if err != nil {
		return 1
	}
	return clamp01(f)
}
