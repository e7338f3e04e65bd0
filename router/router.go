// Package router resolves the location hash against a route table and hands
// the matching component to the renderer.
//
// Paths are opaque strings compared by exact equality. The hash "" and "#/"
// both mean the root route "/". Anything without a route renders the
// not-found page.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/vcrobe/hashspa/lazy"
	"github.com/vcrobe/hashspa/runtime"
)

// ErrDuplicateRoute is returned by AddPage for a path that is already registered.
var ErrDuplicateRoute = errors.New("router: route already registered")

// State is the router's position in its resolution cycle.
type State int

const (
	// Idle means no navigation has been handled yet.
	Idle State = iota
	// Resolving means a navigation is being matched and rendered.
	Resolving
	// Rendered means the last navigation reached the renderer.
	Rendered
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Resolving:
		return "resolving"
	case Rendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// Compile-time assertion to ensure Router can back ComponentBase.Navigate.
var _ runtime.NavigationManager = (*Router)(nil)

// Router owns the route table and the currently active component.
type Router struct {
	mu           sync.Mutex
	nav          NavigationSource
	renderer     runtime.Renderer
	logger       *zap.Logger
	routes       map[string]*Route
	order        []string
	notFound     runtime.Component
	loadFallback bool

	state  State
	active runtime.Component
	cancel func()
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithNotFound replaces the default not-found component. nil keeps the
// default.
func WithNotFound(c runtime.Component) Option {
	return func(r *Router) {
		r.notFound = c
	}
}

// WithLoadFallback makes a failed lazy load render the not-found page
// instead of returning the load error from Enroute.
func WithLoadFallback() Option {
	return func(r *Router) {
		r.loadFallback = true
	}
}

// New creates a router reading nav and rendering through renderer.
func New(nav NavigationSource, renderer runtime.Renderer, opts ...Option) *Router {
	r := &Router{
		nav:      nav,
		renderer: renderer,
		logger:   zap.NewNop(),
		routes:   make(map[string]*Route),
		notFound: &NotFoundPage{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.notFound == nil {
		r.notFound = &NotFoundPage{}
	}
	return r
}

// AddPage registers target under path. Registering a path twice fails with
// ErrDuplicateRoute and leaves the existing route in place.
func (r *Router) AddPage(path string, target Target) error {
	if target == nil {
		return fmt.Errorf("router: nil target for %q", path)
	}
	if p, ok := target.(page); ok && p.c == nil {
		return fmt.Errorf("router: nil component for %q", path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routes[path]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRoute, path)
	}
	r.routes[path] = &Route{Path: path, Target: target}
	r.order = append(r.order, path)
	return nil
}

// MustAddPage is like AddPage but panics on error. Meant for route tables
// built at startup, where a duplicate is a programming mistake.
func (r *Router) MustAddPage(path string, target Target) {
	if err := r.AddPage(path, target); err != nil {
		panic(err)
	}
}

// SetNotFoundPage overrides the fallback component. nil restores the
// default NotFoundPage.
func (r *Router) SetNotFoundPage(c runtime.Component) {
	if c == nil {
		c = &NotFoundPage{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound = c
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Route, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, *r.routes[p])
	}
	return out
}

// State returns where the router is in its resolution cycle.
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Active returns the mounted component whose output was committed last.
// It is nil while a navigation is rendering or after a failed render.
func (r *Router) Active() runtime.Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// lookup returns the target for a stripped hash path.
func (r *Router) lookup(path string) (Target, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if path == "" {
		path = "/"
	}
	if route, ok := r.routes[path]; ok {
		return route.Target, true
	}
	return Page(r.notFound), false
}

// Enroute resolves the current hash and renders the matching component.
//
// Errors from a lazy target are returned as is unless WithLoadFallback was
// given. A rejected BeforeMount has already been shown to the user by the
// renderer; its *runtime.LifecycleError is returned for logging and the
// router stays usable.
func (r *Router) Enroute(ctx context.Context) error {
	r.mu.Lock()
	before := r.state
	r.state = Resolving
	r.mu.Unlock()

	path := strings.TrimPrefix(r.nav.Hash(), "#")
	r.logger.Debug("[Router.Enroute] resolving", zap.String("path", path))

	target, found := r.lookup(path)
	if !found {
		r.logger.Info("[Router.Enroute] no route, using not-found page", zap.String("path", path))
	}

	next, err := target.Resolve(ctx)
	if err != nil {
		if !r.loadFallback || !lazy.IsLoadError(err) {
			r.logger.Error("[Router.Enroute] route resolution failed", zap.String("path", path), zap.Error(err))
			r.mu.Lock()
			r.state = before
			r.mu.Unlock()
			return fmt.Errorf("router: resolve %q: %w", path, err)
		}
		r.logger.Warn("[Router.Enroute] load failed, using not-found page", zap.String("path", path), zap.Error(err))
		next, _ = Page(r.notFoundPage()).Resolve(ctx)
	}

	r.mu.Lock()
	prev := r.active
	r.active = nil
	r.mu.Unlock()

	// The outgoing component is always unmounted, even when the same
	// component is about to be mounted again.
	if prev != nil {
		r.unmount(ctx, prev)
	}

	r.mu.Lock()
	r.state = Rendered
	r.mu.Unlock()

	if err := r.renderer.Render(ctx, next); err != nil {
		// next never reached Mounted, so it does not become active.
		return err
	}

	// An overlapping navigation may have committed while next was waiting
	// on BeforeMount. The later commit is what the user sees, so the page
	// it displaced is unmounted and next becomes the active one.
	r.mu.Lock()
	winner, loser := next, r.active
	if loser != nil && loser != next && r.committedLast(loser) {
		winner, loser = loser, next
	}
	r.active = winner
	r.mu.Unlock()

	if loser != nil && loser != winner {
		r.logger.Debug("[Router.Enroute] overlapping navigation displaced a page",
			zap.String("route", loser.RouteName()))
		r.unmount(ctx, loser)
	}
	return nil
}

// committedLast reports whether c owns the mount target according to the
// renderer. Renderers that do not track it are trusted to have committed in
// return order.
func (r *Router) committedLast(c runtime.Component) bool {
	cr, ok := r.renderer.(interface{ Current() runtime.Component })
	return ok && cr.Current() == c
}

func (r *Router) unmount(ctx context.Context, c runtime.Component) {
	if _, err := r.renderer.Unmount(ctx, c); err != nil {
		r.logger.Warn("[Router.Enroute] unmount failed",
			zap.String("route", c.RouteName()), zap.Error(err))
	}
}

func (r *Router) notFoundPage() runtime.Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notFound
}

// Events subscribes Enroute to hash changes. Calling it again while
// subscribed does nothing. Errors from Enroute are logged.
func (r *Router) Events(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.logger.Debug("[Router.Events] already subscribed")
		return
	}
	r.cancel = r.nav.OnChange(func() {
		if err := r.Enroute(ctx); err != nil {
			r.logger.Error("[Router.Events] navigation failed", zap.Error(err))
		}
	})
}

// Close removes the subscription made by Events.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Navigate sets the location hash to path, which triggers Enroute through
// the subscription made by Events.
func (r *Router) Navigate(path string) error {
	if path == "" {
		return fmt.Errorf("router: empty navigation path")
	}
	r.nav.SetHash("#" + strings.TrimPrefix(path, "#"))
	return nil
}
