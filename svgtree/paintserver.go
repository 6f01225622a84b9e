package svgtree

import (
	"fmt"
	"strconv"
	"strings"
)

// parseFuncIRI splits a value like "url(#grad) red"
// into the referenced id and the fallback.
func parseFuncIRI(v string) (id, fallback string, ok bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "url(") {
		return "", "", false
	}
	end := strings.IndexByte(v, ')')
	if end == -1 {
		return "", "", false
	}
	id = strings.Trim(strings.TrimSpace(v[4:end]), `"'`)
	id = strings.TrimPrefix(id, "#")
	return id, strings.TrimSpace(v[end+1:]), true
}

// resolvePaint converts a fill or stroke value to a paint.
// A nil paint means nothing is drawn. alpha is the opacity
// embedded in the color value.
func (b *builder) resolvePaint(el *element, value string, st style) (paint Paint, alpha float64, err error) {
	value = strings.TrimSpace(value)
	switch value {
	case "", "none":
		return nil, 0, nil
	case "currentColor", "currentcolor":
		cur := st["color"]
		if cur == "" || cur == "currentColor" {
			return Color{}, 1, nil
		}
		c, a, err := parseSVGColor(cur)
		return c, a, err
	}
	if id, fallback, ok := parseFuncIRI(value); ok {
		server, found := b.ids[id]
		if found {
			switch server.name {
			case "linearGradient", "radialGradient", "pattern":
				paint, err := b.paintServer(server)
				return paint, 1, err
			}
		}
		if fallback != "" {
			return b.resolvePaint(el, fallback, st)
		}
		// an invalid reference disables the painting
		return nil, 0, b.handleError(el, fmt.Sprintf("invalid paint server reference %q", id))
	}
	c, a, err := parseSVGColor(value)
	return c, a, err
}

// paintServer returns the cached paint server defined by el.
func (b *builder) paintServer(el *element) (Paint, error) {
	if p, ok := b.paints[el]; ok {
		return p, nil
	}
	switch el.name {
	case "linearGradient":
		return b.linearGradient(el)
	case "radialGradient":
		return b.radialGradient(el)
	default:
		return b.pattern(el)
	}
}

// hrefChain returns the element followed by the elements
// it references through href, stopping on cycles.
func (b *builder) hrefChain(el *element) []*element {
	chain := []*element{el}
	seen := map[*element]bool{el: true}
	for {
		href := strings.TrimPrefix(el.attr("href"), "#")
		next, ok := b.ids[href]
		if href == "" || !ok || seen[next] {
			return chain
		}
		chain = append(chain, next)
		seen[next] = true
		el = next
	}
}

// inheritedAttr returns the first value defined in the href chain
func inheritedAttr(chain []*element, name string) (string, bool) {
	for _, el := range chain {
		if el.hasAttr(name) {
			return el.attr(name), true
		}
	}
	return "", false
}

func (b *builder) gradientBase(el *element, chain []*element) (gradientBase, error) {
	out := gradientBase{ID: el.attr("id"), Transform: Identity}
	if v, _ := inheritedAttr(chain, "gradientUnits"); v == "userSpaceOnUse" {
		out.Units = UserSpaceOnUse
	}
	if v, _ := inheritedAttr(chain, "spreadMethod"); v == "reflect" {
		out.Spread = ReflectSpread
	} else if v == "repeat" {
		out.Spread = RepeatSpread
	}
	if v, ok := inheritedAttr(chain, "gradientTransform"); ok {
		tr, err := parseTransform(v)
		if err != nil {
			return out, err
		}
		out.Transform = tr
	}
	// stops come from the first element of the chain having some
	for _, g := range chain {
		var stops []GradStop
		for _, child := range g.children {
			if child.name != "stop" {
				continue
			}
			stop, err := b.gradientStop(child)
			if err != nil {
				return out, err
			}
			// offsets are clamped to be increasing
			if n := len(stops); n > 0 && stop.Offset < stops[n-1].Offset {
				stop.Offset = stops[n-1].Offset
			}
			stops = append(stops, stop)
		}
		if len(stops) != 0 {
			out.Stops = stops
			break
		}
	}
	return out, nil
}

func (b *builder) gradientStop(el *element) (GradStop, error) {
	decl := b.declarations(el)
	stop := GradStop{Opacity: 1}
	if v := el.attr("offset"); v != "" {
		f, err := readFraction(v)
		if err != nil {
			return stop, err
		}
		stop.Offset = clamp01(f)
	}
	if v := decl["stop-color"]; v != "" {
		if v == "currentColor" {
			v = decl["color"]
		}
		c, a, err := parseSVGColor(v)
		if err != nil {
			return stop, err
		}
		stop.Color = c
		stop.Opacity = a
	}
	if v := decl["stop-opacity"]; v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return stop, err
		}
		stop.Opacity *= clamp01(f)
	}
	return stop, nil
}

// gradientCoord reads a gradient coordinate: fractions in object
// bounding box units, lengths in user space units.
func (b *builder) gradientCoord(chain []*element, name string, units Units, asPerc percentageReference, def float64) (float64, error) {
	v, ok := inheritedAttr(chain, name)
	if !ok {
		return def, nil
	}
	if units == ObjectBoundingBox {
		return readFraction(v)
	}
	return parseLength(v, b.viewport, asPerc, b.opts.FontSize)
}

func (b *builder) linearGradient(el *element) (Paint, error) {
	chain := b.hrefChain(el)
	base, err := b.gradientBase(el, chain)
	if err != nil {
		return nil, err
	}
	out := &LinearGradient{gradientBase: base}
	full := 1.
	if base.Units == UserSpaceOnUse {
		full = b.viewport.w
	}
	coords := [4]struct {
		name  string
		perc  percentageReference
		def   float64
		value *float64
	}{
		{"x1", widthPercentage, 0, &out.X1},
		{"y1", heightPercentage, 0, &out.Y1},
		{"x2", widthPercentage, full, &out.X2},
		{"y2", heightPercentage, 0, &out.Y2},
	}
	for _, c := range coords {
		*c.value, err = b.gradientCoord(chain, c.name, base.Units, c.perc, c.def)
		if err != nil {
			return nil, err
		}
	}
	b.paints[el] = out
	return out, nil
}

func (b *builder) radialGradient(el *element) (Paint, error) {
	chain := b.hrefChain(el)
	base, err := b.gradientBase(el, chain)
	if err != nil {
		return nil, err
	}
	out := &RadialGradient{gradientBase: base}
	half := [3]float64{0.5, 0.5, 0.5}
	if base.Units == UserSpaceOnUse {
		half = [3]float64{b.viewport.w / 2, b.viewport.h / 2, b.viewport.reference(diagPercentage) / 2}
	}
	if out.CX, err = b.gradientCoord(chain, "cx", base.Units, widthPercentage, half[0]); err != nil {
		return nil, err
	}
	if out.CY, err = b.gradientCoord(chain, "cy", base.Units, heightPercentage, half[1]); err != nil {
		return nil, err
	}
	if out.R, err = b.gradientCoord(chain, "r", base.Units, diagPercentage, half[2]); err != nil {
		return nil, err
	}
	// the focal point defaults to the center
	if out.FX, err = b.gradientCoord(chain, "fx", base.Units, widthPercentage, out.CX); err != nil {
		return nil, err
	}
	if out.FY, err = b.gradientCoord(chain, "fy", base.Units, heightPercentage, out.CY); err != nil {
		return nil, err
	}
	if out.FR, err = b.gradientCoord(chain, "fr", base.Units, diagPercentage, 0); err != nil {
		return nil, err
	}
	b.paints[el] = out
	return out, nil
}

func (b *builder) pattern(el *element) (Paint, error) {
	chain := b.hrefChain(el)
	out := &Pattern{ID: el.attr("id"), ContentUnits: UserSpaceOnUse, Transform: Identity, Root: &Group{Opacity: 1}}
	// registered before building the content, which may reference the pattern
	b.paints[el] = out

	if v, _ := inheritedAttr(chain, "patternUnits"); v == "userSpaceOnUse" {
		out.Units = UserSpaceOnUse
	}
	if v, _ := inheritedAttr(chain, "patternContentUnits"); v == "objectBoundingBox" {
		out.ContentUnits = ObjectBoundingBox
	}
	if v, ok := inheritedAttr(chain, "patternTransform"); ok {
		tr, err := parseTransform(v)
		if err != nil {
			return nil, err
		}
		out.Transform = tr
	}
	var err error
	rect := [4]*float64{&out.Rect.X, &out.Rect.Y, &out.Rect.W, &out.Rect.H}
	for i, name := range [4]string{"x", "y", "width", "height"} {
		perc := widthPercentage
		if i%2 == 1 {
			perc = heightPercentage
		}
		if *rect[i], err = b.gradientCoord(chain, name, out.Units, perc, 0); err != nil {
			return nil, err
		}
	}

	// the content comes from the first element of the chain having children
	for _, p := range chain {
		hasContent := false
		for _, child := range p.children {
			if !child.isCharData() {
				hasContent = true
				break
			}
		}
		if !hasContent {
			continue
		}
		out.Root.absTransform = Identity
		out.Root.Transform = Identity
		if err := b.buildChildren(p, out.Root, style{}); err != nil {
			return nil, err
		}
		out.Root.absBBox = childrenBoundingBox(out.Root.Children)
		break
	}
	return out, nil
}
