package domtest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vcrobe/hashspa/stylesheet"
)

// Compile-time assertion to ensure Head implements stylesheet.Target.
var _ stylesheet.Target = (*Head)(nil)

// Errors reported for URLs listed in Head.Fail and Head.Refuse.
var (
	ErrLoadFailed = errors.New("domtest: stylesheet failed to load")
	ErrRefused    = errors.New("domtest: stylesheet could not be attached")
)

// Link is an attached stylesheet node.
type Link struct {
	URL string
	err error
}

// Wait reports the configured load outcome immediately.
func (l *Link) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.err
}

// Head is an in-memory stylesheet target that records every attach/detach.
type Head struct {
	mu     sync.Mutex
	links  []*Link
	events []string

	// Fail lists URLs whose load fails.
	Fail map[string]bool
	// Refuse lists URLs that cannot be attached at all.
	Refuse map[string]bool
}

// NewHead creates an empty head.
func NewHead() *Head {
	return &Head{Fail: make(map[string]bool), Refuse: make(map[string]bool)}
}

// Attach appends a link for url.
func (h *Head) Attach(url string) (stylesheet.Node, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Refuse[url] {
		return nil, fmt.Errorf("%w: %s", ErrRefused, url)
	}
	l := &Link{URL: url}
	if h.Fail[url] {
		l.err = ErrLoadFailed
	}
	h.links = append(h.links, l)
	h.events = append(h.events, "attach "+url)
	return l, nil
}

// Detach removes a link previously returned by Attach.
func (h *Head) Detach(n stylesheet.Node) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := n.(*Link)
	if !ok {
		return fmt.Errorf("domtest: foreign node %T", n)
	}
	for i, cur := range h.links {
		if cur == l {
			h.links = append(h.links[:i], h.links[i+1:]...)
			h.events = append(h.events, "detach "+l.URL)
			return nil
		}
	}
	return fmt.Errorf("domtest: %s is not attached", l.URL)
}

// Attached returns the URLs currently attached, in order.
func (h *Head) Attached() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.links))
	for _, l := range h.links {
		out = append(out, l.URL)
	}
	return out
}

// Events returns the attach/detach log.
func (h *Head) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.events))
	copy(out, h.events)
	return out
}
