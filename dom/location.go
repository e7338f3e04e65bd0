//go:build js || wasm

package dom

import (
	"sync"
	"syscall/js"

	"github.com/vcrobe/hashspa/console"
)

// Location is the browser's location hash as a navigation source.
type Location struct {
	mu        sync.Mutex
	listeners map[int]js.Func
	next      int
}

// NewLocation creates a navigation source over window.location.
func NewLocation() *Location {
	return &Location{listeners: make(map[int]js.Func)}
}

// Hash returns location.hash.
func (l *Location) Hash() string {
	return js.Global().Get("location").Get("hash").String()
}

// SetHash assigns location.hash; the browser fires hashchange.
func (l *Location) SetHash(hash string) {
	js.Global().Get("location").Set("hash", hash)
}

// OnChange subscribes fn to hashchange. fn runs on its own goroutine so the
// JS event loop is never blocked by a suspended render.
func (l *Location) OnChange(fn func()) (cancel func()) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		console.Log("[Location] hashchange fired")
		go fn()
		return nil
	})
	js.Global().Call("addEventListener", "hashchange", cb)

	l.mu.Lock()
	id := l.next
	l.next++
	l.listeners[id] = cb
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		cb, ok := l.listeners[id]
		delete(l.listeners, id)
		l.mu.Unlock()
		if !ok {
			return
		}
		js.Global().Call("removeEventListener", "hashchange", cb)
		cb.Release()
		console.Log("[Location] hashchange listener cleaned up")
	}
}
