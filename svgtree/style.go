package svgtree

import (
	"sort"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// properties inherited by default from the parent element
var inheritedProperties = map[string]bool{
	"fill":              true,
	"fill-opacity":      true,
	"fill-rule":         true,
	"stroke":            true,
	"stroke-opacity":    true,
	"stroke-width":      true,
	"stroke-linecap":    true,
	"stroke-linejoin":   true,
	"stroke-miterlimit": true,
	"stroke-dasharray":  true,
	"stroke-dashoffset": true,
	"visibility":        true,
	"color":             true,
	"font-family":       true,
	"font-size":         true,
	"font-weight":       true,
	"font-style":        true,
	"text-anchor":       true,
}

// attributes which are never style properties
var nonStyleAttributes = map[string]bool{
	"id": true, "class": true, "style": true, "href": true,
	"x": true, "y": true, "width": true, "height": true, "d": true, "points": true,
	"cx": true, "cy": true, "r": true, "rx": true, "ry": true,
	"x1": true, "y1": true, "x2": true, "y2": true, "viewBox": true,
}

// style stores the computed properties of an element,
// keyed by CSS property name.
type style map[string]string

// declarations maps property names to their specified value
type declarations map[string]string

// inherit returns the computed style of a child element,
// given its declarations.
func (st style) inherit(decl declarations) style {
	out := make(style, len(st)+len(decl))
	for k, v := range st {
		if inheritedProperties[k] {
			out[k] = v
		}
	}
	for k, v := range decl {
		if v == "inherit" {
			if pv, ok := st[k]; ok {
				out[k] = pv
			}
			continue
		}
		out[k] = v
	}
	return out
}

// simpleSelector is a compound selector restricted to
// tag, class and id tests, such as "rect.big#main".
type simpleSelector struct {
	tag     string // empty for the universal selector
	id      string
	classes []string
}

// specificity follows the CSS (a, b, c) rule, packed in one int
func (s simpleSelector) specificity() int {
	out := len(s.classes) * 100
	if s.id != "" {
		out += 10000
	}
	if s.tag != "" {
		out++
	}
	return out
}

func (s simpleSelector) match(el *element) bool {
	if s.tag != "" && s.tag != el.name {
		return false
	}
	if s.id != "" && s.id != el.attr("id") {
		return false
	}
	if len(s.classes) != 0 {
		elClasses := strings.Fields(el.attr("class"))
		for _, class := range s.classes {
			found := false
			for _, c := range elClasses {
				if c == class {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// parseSelector returns false for selectors using combinators,
// attributes or pseudo classes, which are not supported.
func parseSelector(sel string) (simpleSelector, bool) {
	sel = strings.TrimSpace(sel)
	if sel == "" || strings.ContainsAny(sel, " \t\n>+~[:") {
		return simpleSelector{}, false
	}
	var out simpleSelector
	// split on . and # while keeping the delimiter
	start := 0
	flush := func(end int) {
		token := sel[start:end]
		switch {
		case token == "", token == "*":
		case token[0] == '.':
			out.classes = append(out.classes, token[1:])
		case token[0] == '#':
			out.id = token[1:]
		default:
			out.tag = token
		}
		start = end
	}
	for i := 1; i < len(sel); i++ {
		if sel[i] == '.' || sel[i] == '#' {
			flush(i)
		}
	}
	flush(len(sel))
	return out, true
}

type cssRule struct {
	selector     simpleSelector
	declarations []*css.Declaration
	order        int // position in the document, for stable sorting
}

// styleSheet is the list of rules, sorted by increasing specificity
type styleSheet []cssRule

// parseStyleSheet parses the content of all the <style> elements.
// Unsupported selectors are ignored.
func (b *builder) parseStyleSheet(root *element) styleSheet {
	var (
		out  styleSheet
		walk func(*element)
	)
	walk = func(el *element) {
		if el.name == "style" {
			if t := el.attr("type"); t != "" && t != "text/css" {
				return
			}
			sheet, err := parser.Parse(el.textContent())
			if err != nil {
				b.logger.Warn("invalid style sheet", "err", err)
				return
			}
			for _, rule := range sheet.Rules {
				if rule.Kind != css.QualifiedRule {
					continue
				}
				for _, sel := range rule.Selectors {
					ss, ok := parseSelector(sel)
					if !ok {
						b.logger.Debug("unsupported css selector", "selector", sel)
						continue
					}
					out = append(out, cssRule{selector: ss, declarations: rule.Declarations, order: len(out)})
				}
			}
			return
		}
		for _, c := range el.children {
			walk(c)
		}
	}
	walk(root)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].selector.specificity() < out[j].selector.specificity()
	})
	return out
}

// parseInlineStyle reads the style attribute.
func parseInlineStyle(v string) []*css.Declaration {
	v = strings.TrimSpace(v)
	// the parser drops the value of an unterminated last declaration
	if v != "" && !strings.HasSuffix(v, ";") {
		v += ";"
	}
	decls, err := parser.ParseDeclarations(v)
	if err == nil {
		out := decls[:0]
		for _, decl := range decls {
			if decl.Value != "" {
				out = append(out, decl)
			}
		}
		return out
	}
	// fallback to a basic split, which is more tolerant
	var out []*css.Declaration
	for _, pair := range strings.Split(v, ";") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) == 2 {
			out = append(out, &css.Declaration{
				Property: strings.ToLower(strings.TrimSpace(kv[0])),
				Value:    strings.TrimSpace(kv[1]),
			})
		}
	}
	return out
}

// declarations returns the specified properties of an element,
// with increasing priority: presentation attributes, style sheet rules,
// inline style. !important sheet rules override the inline style.
func (b *builder) declarations(el *element) declarations {
	out := make(declarations, len(el.attrs))
	for k, v := range el.attrs {
		if !nonStyleAttributes[k] {
			out[k] = strings.TrimSpace(v)
		}
	}
	var important []*css.Declaration
	for _, rule := range b.sheet {
		if !rule.selector.match(el) {
			continue
		}
		for _, decl := range rule.declarations {
			if decl.Important {
				important = append(important, decl)
			}
			out[decl.Property] = decl.Value
		}
	}
	if inline := el.attr("style"); inline != "" {
		for _, decl := range parseInlineStyle(inline) {
			out[decl.Property] = decl.Value
		}
	}
	for _, decl := range important {
		out[decl.Property] = decl.Value
	}
	return out
}
