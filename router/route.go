package router

import (
	"context"

	"github.com/vcrobe/hashspa/runtime"
)

// Target is what a route resolves to. Static components are wrapped with
// Page; *lazy.Component implements Target directly.
type Target interface {
	Resolve(ctx context.Context) (runtime.Component, error)
}

// Route defines a path and the target rendered for it.
type Route struct {
	Path   string
	Target Target
}

type page struct {
	c runtime.Component
}

func (p page) Resolve(ctx context.Context) (runtime.Component, error) {
	return p.c, nil
}

// Page wraps an already constructed component as a route target.
func Page(c runtime.Component) Target {
	return page{c: c}
}

// NavigationSource is the hash-based navigation signal.
type NavigationSource interface {
	// Hash returns the current location fragment, including the leading "#".
	Hash() string
	// SetHash navigates to a new fragment.
	SetHash(hash string)
	// OnChange subscribes fn to fragment changes and returns its cancel func.
	OnChange(fn func()) (cancel func())
}
