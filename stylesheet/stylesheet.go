// Package stylesheet manages the CSS resources a component brings with it.
//
// A DynamicStyleSheet owns an ordered list of StyleSheet entries. Entries
// flagged Cache are primed on creation: attached, waited on until the browser
// finished loading them, then detached again. Priming warms the resource
// cache without activating the rules; Mount later attaches them for real.
package stylesheet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// ErrNotAttached is returned by Unmount when an entry has no live node.
var ErrNotAttached = errors.New("stylesheet: entry was never attached")

// Node is an injected stylesheet resource.
type Node interface {
	// Wait blocks until the resource finished loading.
	Wait(ctx context.Context) error
}

// Target is where stylesheet nodes are injected, usually document.head.
type Target interface {
	Attach(url string) (Node, error)
	Detach(n Node) error
}

// StyleSheet is a single CSS resource.
type StyleSheet struct {
	URL   string
	Cache bool

	Cached  bool
	Mounted bool

	node Node
}

// Attached reports whether the entry currently holds a live node.
func (s *StyleSheet) Attached() bool {
	return s.node != nil
}

// DynamicStyleSheet is the collection of stylesheets owned by one component.
type DynamicStyleSheet struct {
	mu      sync.Mutex
	target  Target
	entries []*StyleSheet
	mounted bool
}

// New creates the collection and primes every Cache entry that is not yet
// Cached. Priming errors are aggregated; entries that failed stay uncached
// and are not retried.
func New(ctx context.Context, target Target, entries ...*StyleSheet) (*DynamicStyleSheet, error) {
	d := &DynamicStyleSheet{
		target:  target,
		entries: entries,
	}

	var errs error
	for _, e := range entries {
		if e.Cache && !e.Cached {
			errs = multierr.Append(errs, d.prime(ctx, e))
		}
	}
	return d, errs
}

// prime attaches e, waits for it to load and detaches it again.
func (d *DynamicStyleSheet) prime(ctx context.Context, e *StyleSheet) error {
	n, err := d.target.Attach(e.URL)
	if err != nil {
		return fmt.Errorf("stylesheet: prime %s: %w", e.URL, err)
	}

	waitErr := n.Wait(ctx)
	if err := d.target.Detach(n); err != nil {
		return multierr.Append(waitErr, fmt.Errorf("stylesheet: prime %s: %w", e.URL, err))
	}
	if waitErr != nil {
		return fmt.Errorf("stylesheet: prime %s: %w", e.URL, waitErr)
	}

	e.Cached = true
	return nil
}

// AppendStyle adds an entry. Cache entries are primed right away, and if the
// collection is mounted the entry is attached too so the visible set stays
// consistent.
func (d *DynamicStyleSheet) AppendStyle(ctx context.Context, e *StyleSheet) error {
	d.mu.Lock()
	d.entries = append(d.entries, e)
	mounted := d.mounted
	d.mu.Unlock()

	var errs error
	if e.Cache && !e.Cached {
		errs = multierr.Append(errs, d.prime(ctx, e))
	}
	if mounted {
		d.mu.Lock()
		errs = multierr.Append(errs, d.attach(e))
		d.mu.Unlock()
	}
	return errs
}

func (d *DynamicStyleSheet) attach(e *StyleSheet) error {
	if e.Mounted {
		return nil
	}
	n, err := d.target.Attach(e.URL)
	if err != nil {
		return fmt.Errorf("stylesheet: mount %s: %w", e.URL, err)
	}
	e.node = n
	e.Mounted = true
	return nil
}

// Mount attaches every entry that is not already mounted. If any attach
// fails, the entries attached by this call are detached again and the
// collection stays unmounted.
func (d *DynamicStyleSheet) Mount() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var (
		errs     error
		attached []*StyleSheet
	)
	for _, e := range d.entries {
		if e.Mounted {
			continue
		}
		if err := d.attach(e); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		attached = append(attached, e)
	}
	if errs != nil {
		for _, e := range attached {
			errs = multierr.Append(errs, d.target.Detach(e.node))
			e.node = nil
			e.Mounted = false
		}
		return errs
	}
	d.mounted = true
	return nil
}

// Unmount detaches every entry. It fails with ErrNotAttached, leaving all
// entries untouched, if any entry was never attached.
func (d *DynamicStyleSheet) Unmount() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range d.entries {
		if e.node == nil {
			return fmt.Errorf("%w: %s", ErrNotAttached, e.URL)
		}
	}

	var errs error
	for _, e := range d.entries {
		errs = multierr.Append(errs, d.target.Detach(e.node))
		e.node = nil
		e.Mounted = false
	}
	d.mounted = false
	return errs
}

// Entries returns the entries in insertion order.
func (d *DynamicStyleSheet) Entries() []*StyleSheet {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*StyleSheet, len(d.entries))
	copy(out, d.entries)
	return out
}

// IsMounted reports whether Mount was called more recently than Unmount.
func (d *DynamicStyleSheet) IsMounted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mounted
}
