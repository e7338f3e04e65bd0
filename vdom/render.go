//go:build js || wasm
// +build js wasm

package vdom

import "syscall/js"

// ReleaseCallbacks releases every js.Func stored in the tree rooted at v.
func ReleaseCallbacks(v *VNode) {
	if v == nil {
		return
	}
	for _, cb := range v.EventCallbacks() {
		if jsFunc, ok := cb.(js.Func); ok {
			jsFunc.Release()
		}
	}
	v.ClearEventCallbacks()

	for _, child := range v.Children {
		ReleaseCallbacks(child)
	}
}

// RenderTo appends the rendered node to a specific mount element.
func RenderTo(mount js.Value, n *VNode) {
	if n == nil {
		return
	}

	el := CreateElement(n)
	if el.Truthy() {
		mount.Call("appendChild", el)
	}
}

// setAttributeValue sets an attribute on an element, handling boolean attributes and event handlers correctly.
func setAttributeValue(el js.Value, key string, value any) {
	switch v := value.(type) {
	case bool:
		if v {
			el.Call("setAttribute", key, "")
		}
	case func():
		// attached via addEventListener
	case nil:
	default:
		el.Call("setAttribute", key, v)
	}
}

// attachEventListeners attaches func() handlers stored under "on*" keys.
// "onClick" becomes the "click" event.
func attachEventListeners(el js.Value, vnode *VNode) {
	for key, value := range vnode.Attributes {
		if len(key) <= 2 || key[0] != 'o' || key[1] != 'n' {
			continue
		}
		handler, ok := value.(func())
		if !ok {
			continue
		}

		eventName := key[2:]
		if eventName[0] >= 'A' && eventName[0] <= 'Z' {
			eventName = string(eventName[0]+('a'-'A')) + eventName[1:]
		}

		cb := js.FuncOf(func(this js.Value, args []js.Value) any {
			handler()
			return nil
		})
		el.Call("addEventListener", eventName, cb)
		vnode.AddEventCallback(cb)
	}
}

// CreateElement materializes a VNode tree as a DOM node.
func CreateElement(n *VNode) js.Value {
	doc := js.Global().Get("document")
	if !doc.Truthy() || n == nil {
		return js.Undefined()
	}

	if n.Tag == TextTag {
		if n.Content == "" {
			return js.Undefined()
		}
		return doc.Call("createTextNode", n.Content)
	}

	el := doc.Call("createElement", n.Tag)

	for k, v := range n.Attributes {
		setAttributeValue(el, k, v)
	}
	attachEventListeners(el, n)

	if n.Tag == "input" || n.Tag == "textarea" {
		if n.Content != "" {
			el.Set("value", n.Content)
		}
		return el
	}

	if n.Content != "" {
		el.Call("appendChild", doc.Call("createTextNode", n.Content))
	}
	for _, child := range n.Children {
		childEl := CreateElement(child)
		if childEl.Truthy() {
			el.Call("appendChild", childEl)
		}
	}

	return el
}
