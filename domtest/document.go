package domtest

import (
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vcrobe/hashspa/runtime"
	"github.com/vcrobe/hashspa/vdom"
)

// Compile-time assertion to ensure Document implements runtime.MountTarget.
var _ runtime.MountTarget = (*Document)(nil)

// Document is an in-memory mount target backed by an x/net/html tree.
type Document struct {
	mu    sync.Mutex
	root  *html.Node
	title string
	ops   []string
}

// NewDocument creates a document whose mount element is an empty <div>.
func NewDocument() *Document {
	return &Document{
		root: &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div},
	}
}

// Clear removes all children of the mount element.
func (d *Document) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clear()
	d.ops = append(d.ops, "clear")
}

func (d *Document) clear() {
	for c := d.root.FirstChild; c != nil; c = d.root.FirstChild {
		d.root.RemoveChild(c)
	}
}

// SetInnerHTML parses markup as a fragment and makes it the only content.
func (d *Document) SetInnerHTML(markup string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clear()
	nodes, err := html.ParseFragment(strings.NewReader(markup), d.root)
	if err == nil {
		for _, n := range nodes {
			d.root.AppendChild(n)
		}
	}
	d.ops = append(d.ops, "innerHTML")
}

// AppendChild appends the HTML form of n.
func (d *Document) AppendChild(n *vdom.VNode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if h := vdom.ToHTML(n); h != nil {
		d.root.AppendChild(h)
	}
	d.ops = append(d.ops, "append")
}

// SetTitle sets the document title.
func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
	d.ops = append(d.ops, "title")
}

// Title returns the document title.
func (d *Document) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title
}

// Markup returns the serialized children of the mount element.
func (d *Document) Markup() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// ChildCount returns the number of top-level children of the mount element.
func (d *Document) ChildCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		n++
	}
	return n
}

// Ops returns the mutation log ("clear", "title", "innerHTML", "append").
func (d *Document) Ops() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.ops))
	copy(out, d.ops)
	return out
}
