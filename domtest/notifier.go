package domtest

import (
	"sync"

	"github.com/vcrobe/hashspa/runtime"
)

// Compile-time assertion to ensure Alerts implements runtime.Notifier.
var _ runtime.Notifier = (*Alerts)(nil)

// Alerts records notifications instead of showing them.
type Alerts struct {
	mu   sync.Mutex
	msgs []string
}

// Notify records msg.
func (a *Alerts) Notify(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.msgs = append(a.msgs, msg)
}

// Messages returns every recorded notification.
func (a *Alerts) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.msgs))
	copy(out, a.msgs)
	return out
}
