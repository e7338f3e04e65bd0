package vdom

// Kind tags the variant held by an Output.
type Kind int

const (
	// KindMarkup means the output is an HTML string that replaces the
	// mount target's contents.
	KindMarkup Kind = iota
	// KindNode means the output is a node tree appended to the mount target.
	KindNode
)

func (k Kind) String() string {
	switch k {
	case KindMarkup:
		return "markup"
	case KindNode:
		return "node"
	default:
		return "unknown"
	}
}

// Output is what a component's Render produces: either markup or a node.
type Output struct {
	Kind Kind
	HTML string // set when Kind == KindMarkup
	Root *VNode // set when Kind == KindNode
}

// Markup wraps an HTML string.
func Markup(s string) Output {
	return Output{Kind: KindMarkup, HTML: s}
}

// Node wraps a ready-to-attach node tree.
func Node(n *VNode) Output {
	return Output{Kind: KindNode, Root: n}
}

// String returns the HTML this output would produce in the document.
func (o Output) String() string {
	if o.Kind == KindNode {
		return RenderString(o.Root)
	}
	return o.HTML
}
