package vdom

import "fmt"

// TextTag is the tag of a pure text node.
const TextTag = "#text"

// Attrs is the attribute map of a VNode. Values may be strings, numbers,
// booleans (present when true, omitted when false) or, for keys starting with
// "on", a func() event handler.
type Attrs = map[string]any

// VNode represents a virtual DOM node.
type VNode struct {
	Tag        string   // The HTML tag name, or TextTag
	Attributes Attrs    // The attributes of the node
	Children   []*VNode // The child nodes
	Content    string   // Text content, rendered before Children

	eventCallbacks []any // host callbacks to release when the node is discarded
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes Attrs, children []*VNode, content string) *VNode {
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
	}
}

// Text creates a text node.
func Text(s string) *VNode {
	return &VNode{Tag: TextTag, Content: s}
}

// H builds an element in the style of a JSX factory call. Children may be
// *VNode, []*VNode, string (becomes a text node), fmt.Stringer or any other
// value formatted with fmt.Sprint. Nil children are skipped so conditional
// markup can be written inline:
//
//	var extra *vdom.VNode
//	if showSecond {
//	    extra = vdom.H("li", nil, "second")
//	}
//	vdom.H("ul", nil, vdom.H("li", nil, "first"), extra)
func H(tag string, attrs Attrs, children ...any) *VNode {
	n := &VNode{Tag: tag, Attributes: attrs}
	for _, c := range children {
		n.Children = appendChild(n.Children, c)
	}
	return n
}

func appendChild(dst []*VNode, c any) []*VNode {
	switch v := c.(type) {
	case nil:
		return dst
	case *VNode:
		if v == nil {
			return dst
		}
		return append(dst, v)
	case []*VNode:
		for _, child := range v {
			if child != nil {
				dst = append(dst, child)
			}
		}
		return dst
	case string:
		return append(dst, Text(v))
	case fmt.Stringer:
		return append(dst, Text(v.String()))
	default:
		return append(dst, Text(fmt.Sprint(v)))
	}
}

// AddEventCallback records a host callback attached to this node.
func (v *VNode) AddEventCallback(cb any) {
	v.eventCallbacks = append(v.eventCallbacks, cb)
}

// EventCallbacks returns the host callbacks recorded for this node.
func (v *VNode) EventCallbacks() []any {
	return v.eventCallbacks
}

// ClearEventCallbacks forgets the recorded host callbacks.
func (v *VNode) ClearEventCallbacks() {
	v.eventCallbacks = nil
}

// Paragraph creates a <p> VNode with the given text as its content and allows passing attributes.
func Paragraph(text string, attrs Attrs) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs Attrs, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// Button creates a <button> VNode with the given content and allows passing attributes.
func Button(content string, attrs Attrs, children ...*VNode) *VNode {
	return NewVNode("button", attrs, children, content)
}
