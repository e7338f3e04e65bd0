package vdom

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToHTML converts a VNode tree into an x/net/html node tree. Attributes are
// emitted in sorted key order; event handlers and false booleans are dropped.
func ToHTML(n *VNode) *html.Node {
	if n == nil {
		return nil
	}
	if n.Tag == TextTag {
		return &html.Node{Type: html.TextNode, Data: n.Content}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
		Attr:     htmlAttrs(n.Attributes),
	}
	if n.Content != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Content})
	}
	for _, child := range n.Children {
		if c := ToHTML(child); c != nil {
			el.AppendChild(c)
		}
	}
	return el
}

func htmlAttrs(attrs Attrs) []html.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		switch v := attrs[k].(type) {
		case bool:
			if v {
				out = append(out, html.Attribute{Key: k})
			}
		case func():
			// event handler, attached by the host renderer
		case nil:
		default:
			out = append(out, html.Attribute{Key: k, Val: fmt.Sprint(v)})
		}
	}
	return out
}

// Render writes the HTML serialization of n to w. Text is escaped.
func Render(w io.Writer, n *VNode) error {
	h := ToHTML(n)
	if h == nil {
		return nil
	}
	return html.Render(w, h)
}

// RenderString returns the HTML serialization of n.
func RenderString(n *VNode) string {
	var b strings.Builder
	if err := Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}
