package svgtree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// element is a raw XML element, before style resolution.
// Character data is stored as children with an empty name.
type element struct {
	name     string
	attrs    map[string]string
	children []*element
	text     string // for character data only
}

func (el *element) attr(name string) string { return el.attrs[name] }

func (el *element) hasAttr(name string) bool {
	_, ok := el.attrs[name]
	return ok
}

func (el *element) isCharData() bool { return el.name == "" }

// textContent returns the concatenation of the
// character data of the element and its descendants
func (el *element) textContent() string {
	var sb strings.Builder
	var walk func(e *element)
	walk = func(e *element) {
		if e.isCharData() {
			sb.WriteString(e.text)
		}
		for _, c := range e.children {
			walk(c)
		}
	}
	walk(el)
	return sb.String()
}

// decodeDocument reads the whole XML document and
// returns its root element, which must be an svg element.
func decodeDocument(data []byte) (*element, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	decoder.Entity = xml.HTMLEntity

	var (
		root  *element
		stack []*element
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			el := &element{name: se.Name.Local, attrs: make(map[string]string, len(se.Attr))}
			for _, attr := range se.Attr {
				// xlink:href and href are both stored as href
				el.attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				if root != nil { // should not happen for well formed XML
					return nil, errors.New("invalid svg xml: multiple root elements")
				}
				if el.name != "svg" {
					return nil, errNoSVGRoot
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, &element{text: string(se)})
			}
		}
	}
	if root == nil {
		return nil, errEmptyDocument
	}
	return root, nil
}

// indexIDs maps the id attributes to their element
func indexIDs(root *element) map[string]*element {
	out := make(map[string]*element)
	var walk func(e *element)
	walk = func(e *element) {
		if id := e.attr("id"); id != "" {
			if _, has := out[id]; !has { // first one wins
				out[id] = e
			}
		}
		for _, c := range e.children {
			walk(c)
		}
	}
	walk(root)
	return out
}
