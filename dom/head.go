//go:build js || wasm

package dom

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/vcrobe/hashspa/stylesheet"
)

// Compile-time assertion to ensure Head implements stylesheet.Target.
var _ stylesheet.Target = (*Head)(nil)

// Link is a <link rel="stylesheet"> element.
type Link struct {
	el     js.Value
	href   string
	done   chan struct{}
	err    error
	onload js.Func
	onerr  js.Func
}

// Wait blocks until the browser fired load or error for the link.
func (l *Link) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Link) settle(err error) {
	select {
	case <-l.done:
		return
	default:
	}
	l.err = err
	close(l.done)
}

// Head injects stylesheet links into document.head.
type Head struct {
	doc  js.Value
	head js.Value
}

// NewHead binds to document.head.
func NewHead() *Head {
	doc := js.Global().Get("document")
	return &Head{doc: doc, head: doc.Get("head")}
}

// Attach appends a link for url.
func (h *Head) Attach(url string) (stylesheet.Node, error) {
	if !h.head.Truthy() {
		return nil, fmt.Errorf("dom: document has no head")
	}

	el := h.doc.Call("createElement", "link")
	el.Set("rel", "stylesheet")
	l := &Link{el: el, href: url, done: make(chan struct{})}
	l.onload = js.FuncOf(func(this js.Value, args []js.Value) any {
		l.settle(nil)
		return nil
	})
	l.onerr = js.FuncOf(func(this js.Value, args []js.Value) any {
		l.settle(fmt.Errorf("dom: failed to load stylesheet %s", url))
		return nil
	})
	el.Call("addEventListener", "load", l.onload)
	el.Call("addEventListener", "error", l.onerr)
	el.Set("href", url)

	h.head.Call("appendChild", el)
	return l, nil
}

// Detach removes a link returned by Attach and releases its callbacks.
func (h *Head) Detach(n stylesheet.Node) error {
	l, ok := n.(*Link)
	if !ok {
		return fmt.Errorf("dom: foreign stylesheet node %T", n)
	}
	l.el.Call("remove")
	l.el.Call("removeEventListener", "load", l.onload)
	l.el.Call("removeEventListener", "error", l.onerr)
	l.onload.Release()
	l.onerr.Release()
	return nil
}
