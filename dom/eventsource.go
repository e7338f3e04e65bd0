//go:build js || wasm

package dom

import (
	"syscall/js"

	"github.com/vcrobe/hashspa/appctx"
)

// Compile-time assertion to ensure EventSource implements appctx.EventSubscriber.
var _ appctx.EventSubscriber = EventSource{}

// EventSource subscribes to server-sent events with window.EventSource.
type EventSource struct{}

// Supported reports whether the browser has EventSource.
func (EventSource) Supported() bool {
	return js.Global().Get("EventSource").Truthy()
}

// Subscribe opens url and calls fn with each message's data.
func (EventSource) Subscribe(url string, fn func(data string)) (cancel func()) {
	es := js.Global().Get("EventSource").New(url)
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0].Get("data").String())
		}
		return nil
	})
	es.Call("addEventListener", "message", cb)

	return func() {
		es.Call("close")
		es.Call("removeEventListener", "message", cb)
		cb.Release()
	}
}
