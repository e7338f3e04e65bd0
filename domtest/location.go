package domtest

import "sync"

// Location is an in-memory hash navigation source. SetHash notifies
// subscribers synchronously, in subscription order.
type Location struct {
	mu   sync.Mutex
	hash string
	next int
	subs map[int]func()
}

// NewLocation creates a location with the given initial hash.
func NewLocation(hash string) *Location {
	return &Location{hash: hash, subs: make(map[int]func())}
}

// Hash returns the current hash, including the leading "#" if any.
func (l *Location) Hash() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hash
}

// SetHash changes the hash and fires the change signal if it differs.
func (l *Location) SetHash(hash string) {
	l.mu.Lock()
	if hash == l.hash {
		l.mu.Unlock()
		return
	}
	l.hash = hash
	subs := make([]func(), 0, len(l.subs))
	for i := 0; i < l.next; i++ {
		if fn, ok := l.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// OnChange registers fn for hash changes and returns its cancel func.
func (l *Location) OnChange(fn func()) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.next
	l.next++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// Subscribers returns the number of live subscriptions.
func (l *Location) Subscribers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}
