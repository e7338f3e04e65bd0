package domtest

import (
	"sync"

	"github.com/vcrobe/hashspa/appctx"
)

// Compile-time assertion to ensure EventStream implements appctx.EventSubscriber.
var _ appctx.EventSubscriber = (*EventStream)(nil)

// EventStream is an in-memory server-sent event source.
type EventStream struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func(string)
}

// NewEventStream creates an event stream with no subscribers.
func NewEventStream() *EventStream {
	return &EventStream{subs: make(map[string]map[int]func(string))}
}

// Subscribe registers fn for messages published on url.
func (s *EventStream) Subscribe(url string, fn func(data string)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[url] == nil {
		s.subs[url] = make(map[int]func(string))
	}
	id := s.next
	s.next++
	s.subs[url][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[url], id)
	}
}

// Publish delivers data to every subscriber of url.
func (s *EventStream) Publish(url, data string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.subs[url]))
	for _, fn := range s.subs[url] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(data)
	}
}

// Subscribers returns the number of live subscriptions on url.
func (s *EventStream) Subscribers(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs[url])
}
