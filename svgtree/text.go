package svgtree

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Text is rendered with the Go fonts, selected by
// family (monospace or not), weight and style.

var goFonts struct {
	once sync.Once
	err  error

	regular, bold, italic, boldItalic, mono, monoBold *sfnt.Font
}

func loadGoFonts() error {
	goFonts.once.Do(func() {
		for _, f := range [...]struct {
			dst **sfnt.Font
			ttf []byte
		}{
			{&goFonts.regular, goregular.TTF},
			{&goFonts.bold, gobold.TTF},
			{&goFonts.italic, goitalic.TTF},
			{&goFonts.boldItalic, gobolditalic.TTF},
			{&goFonts.mono, gomono.TTF},
			{&goFonts.monoBold, gomonobold.TTF},
		} {
			*f.dst, goFonts.err = sfnt.Parse(f.ttf)
			if goFonts.err != nil {
				return
			}
		}
	})
	return goFonts.err
}

// selectFont returns the face used for the chunk.
func selectFont(ch TextChunk) (*sfnt.Font, error) {
	if err := loadGoFonts(); err != nil {
		return nil, err
	}
	family := strings.ToLower(ch.FontFamily)
	if strings.Contains(family, "mono") || strings.Contains(family, "courier") {
		if ch.Bold {
			return goFonts.monoBold, nil
		}
		return goFonts.mono, nil
	}
	switch {
	case ch.Bold && ch.Italic:
		return goFonts.boldItalic, nil
	case ch.Bold:
		return goFonts.bold, nil
	case ch.Italic:
		return goFonts.italic, nil
	default:
		return goFonts.regular, nil
	}
}

func isBold(weight string) bool {
	switch weight {
	case "bold", "bolder":
		return true
	}
	w, err := strconv.Atoi(weight)
	return err == nil && w >= 600
}

// segmentsToPath converts a glyph outline, whose origin is
// translated to (x, y).
func segmentsToPath(segs []sfnt.Segment, x, y float64) PathData {
	var (
		p   PathData
		off = toFixedP(x, y)
	)
	for i, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if i > 0 {
				p.Stop(true)
			}
			p.Start(seg.Args[0].Add(off))
		case sfnt.SegmentOpLineTo:
			p.Line(seg.Args[0].Add(off))
		case sfnt.SegmentOpQuadTo:
			p.QuadBezier(seg.Args[0].Add(off), seg.Args[1].Add(off))
		case sfnt.SegmentOpCubeTo:
			p.CubeBezier(seg.Args[0].Add(off), seg.Args[1].Add(off), seg.Args[2].Add(off))
		}
	}
	if len(p) != 0 {
		p.Stop(true)
	}
	return p
}

// glyphOutlines returns one path per visible glyph of the chunk,
// and the total advance.
func glyphOutlines(f *sfnt.Font, ch TextChunk) (glyphs []PathData, advance float64, err error) {
	var (
		buf     sfnt.Buffer
		ppem    = fixed.Int26_6(ch.FontSize*64 + 0.5)
		x       = ch.X
		prev    sfnt.GlyphIndex
		hasPrev bool
	)
	for _, r := range ch.Text {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, 0, err
		}
		if hasPrev {
			// fonts without kerning table return an error
			if kern, err := f.Kern(&buf, prev, idx, ppem, font.HintingNone); err == nil {
				x += float64(kern) / 64
			}
		}
		segs, err := f.LoadGlyph(&buf, idx, ppem, nil)
		if err == nil && len(segs) != 0 {
			glyphs = append(glyphs, segmentsToPath(segs, x, ch.Y))
		}
		if adv, err := f.GlyphAdvance(&buf, idx, ppem, font.HintingNone); err == nil {
			x += float64(adv) / 64
		}
		prev, hasPrev = idx, true
	}
	return glyphs, x - ch.X, nil
}

// textLayout positions the character data of a text element
type textLayout struct {
	b    *builder
	text *Text
	abs  Matrix2D

	x, y     float64
	lastData *element // last character data of the text, trimmed on the right
	started  bool     // some text has already been laid out
	done     bool     // lastData has been laid out
}

var whitespaceReplacer = strings.NewReplacer("\n", "", "\r", "", "\t", " ")

// collapseWhitespace implements the default xml:space handling
func collapseWhitespace(s string) string {
	s = whitespaceReplacer.Replace(s)
	var sb strings.Builder
	prevSpace := false
	for _, r := range s {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// firstLength reads the first value of a list of
// coordinates, as used by the x, y, dx and dy attributes of text.
func (l *textLayout) firstLength(el *element, name string, st style) (float64, bool) {
	fields := splitOnCommaOrSpace(el.attr(name))
	if len(fields) == 0 {
		return 0, false
	}
	asPerc := widthPercentage
	if name == "y" || name == "dy" {
		asPerc = heightPercentage
	}
	v, err := parseLength(fields[0], l.b.viewport, asPerc, l.b.fontSize(st))
	return v, err == nil
}

func (l *textLayout) moveTo(el *element, st style) {
	if x, ok := l.firstLength(el, "x", st); ok {
		l.x = x
	}
	if y, ok := l.firstLength(el, "y", st); ok {
		l.y = y
	}
	if dx, ok := l.firstLength(el, "dx", st); ok {
		l.x += dx
	}
	if dy, ok := l.firstLength(el, "dy", st); ok {
		l.y += dy
	}
}

func (l *textLayout) walk(el *element, st style) error {
	for _, child := range el.children {
		if child.isCharData() {
			if err := l.addText(el, child, st); err != nil {
				return err
			}
			continue
		}
		switch child.name {
		case "tspan", "a":
		default:
			if err := l.b.handleError(child, "Cannot process text content element "+child.name); err != nil {
				return err
			}
			continue
		}
		decl := l.b.declarations(child)
		if decl["display"] == "none" {
			continue
		}
		cst := st.inherit(decl)
		l.moveTo(child, cst)
		if err := l.walk(child, cst); err != nil {
			return err
		}
	}
	return nil
}

func (l *textLayout) addText(el, data *element, st style) error {
	if l.done {
		return nil
	}
	s := collapseWhitespace(data.text)
	if !l.started {
		s = strings.TrimLeft(s, " ")
	}
	if data == l.lastData {
		s = strings.TrimRight(s, " ")
		l.done = true
	}
	if s == "" {
		return nil
	}
	l.started = true

	ch := TextChunk{
		X:          l.x,
		Y:          l.y,
		Text:       s,
		FontFamily: st["font-family"],
		FontSize:   l.b.fontSize(st),
		Bold:       isBold(st["font-weight"]),
		Italic:     st["font-style"] == "italic" || st["font-style"] == "oblique",
	}
	face, err := selectFont(ch)
	if err != nil {
		return err
	}
	glyphs, advance, err := glyphOutlines(face, ch)
	if err != nil {
		return l.b.handleError(el, "invalid text: "+err.Error())
	}
	var shift float64
	switch st["text-anchor"] {
	case "middle":
		shift = -advance / 2
	case "end":
		shift = -advance
	}
	if shift != 0 {
		ch.X += shift
		for i, g := range glyphs {
			glyphs[i] = g.Transform(Identity.Translate(shift, 0))
		}
	}
	l.x = ch.X + advance
	l.text.Chunks = append(l.text.Chunks, ch)

	fill, err := l.b.resolveFill(el, st)
	if err != nil {
		return err
	}
	stroke, err := l.b.resolveStroke(el, st)
	if err != nil {
		return err
	}
	visible := isVisible(st)
	for _, g := range glyphs {
		l.text.flattened.Children = append(l.text.flattened.Children, makePath(fill, stroke, visible, g, l.abs))
	}
	return nil
}

// lastCharData returns the last non blank character data of el
func lastCharData(el *element) *element {
	for i := len(el.children) - 1; i >= 0; i-- {
		child := el.children[i]
		if child.isCharData() {
			if strings.TrimSpace(child.text) != "" {
				return child
			}
			continue
		}
		if last := lastCharData(child); last != nil {
			return last
		}
	}
	return nil
}

// textF converts a text element to glyph outlines.
func textF(b *builder, el *element, parent *Group, decl declarations, st style) error {
	container := parent
	if needsGroup(el, decl) {
		g, err := b.newGroup(el, parent, decl, Identity)
		if err != nil {
			return err
		}
		defer finalizeGroup(g)
		container = g
	}

	t := &Text{flattened: &Group{Opacity: 1, Transform: Identity}}
	t.id = el.attr("id")
	t.absTransform = container.absTransform
	t.flattened.absTransform = container.absTransform

	l := textLayout{b: b, text: t, abs: container.absTransform, lastData: lastCharData(el)}
	l.moveTo(el, st)
	if err := l.walk(el, st); err != nil {
		return err
	}
	if len(t.Chunks) == 0 {
		return nil
	}
	finalizeGroup(t.flattened)
	t.absBBox = t.flattened.absBBox
	container.Children = append(container.Children, t)
	return nil
}
