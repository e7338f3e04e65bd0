//go:build js || wasm

// Package dom binds the toolkit's collaborator interfaces to the browser.
package dom

import (
	"fmt"
	"syscall/js"

	"github.com/vcrobe/hashspa/runtime"
	"github.com/vcrobe/hashspa/vdom"
)

// Compile-time assertion to ensure Mount implements runtime.MountTarget.
var _ runtime.MountTarget = (*Mount)(nil)

// Mount is the element the active page renders into.
type Mount struct {
	doc      js.Value
	el       js.Value
	appended []*vdom.VNode
}

// NewMount finds the mount element by CSS selector.
func NewMount(selector string) (*Mount, error) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil, fmt.Errorf("dom: no document")
	}
	el := doc.Call("querySelector", selector)
	if !el.Truthy() {
		return nil, fmt.Errorf("dom: mount element not found for selector %q", selector)
	}
	return &Mount{doc: doc, el: el}, nil
}

// Clear removes all children and releases their event callbacks.
func (m *Mount) Clear() {
	for _, n := range m.appended {
		vdom.ReleaseCallbacks(n)
	}
	m.appended = nil
	m.el.Call("replaceChildren")
}

// SetInnerHTML replaces the element's content with markup.
func (m *Mount) SetInnerHTML(markup string) {
	m.el.Set("innerHTML", markup)
}

// AppendChild materializes n and appends it.
func (m *Mount) AppendChild(n *vdom.VNode) {
	vdom.RenderTo(m.el, n)
	m.appended = append(m.appended, n)
}

// SetTitle sets document.title.
func (m *Mount) SetTitle(title string) {
	m.doc.Set("title", title)
}

// Element returns the mount element, for components that need to query
// their own children in Mounted.
func (m *Mount) Element() js.Value {
	return m.el
}
