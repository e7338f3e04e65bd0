package runtime

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vcrobe/hashspa/vdom"
)

// Compile-time assertion to ensure the concrete RendererImpl implements the Renderer interface.
var _ Renderer = (*RendererImpl)(nil)

// RendererImpl is the concrete implementation of the Renderer interface.
//
// Writes to the mount target are serialized, but a render waiting on
// BeforeMount does not hold the lock: two overlapping renders both commit
// and the later commit wins.
type RendererImpl struct {
	mu         sync.Mutex
	target     MountTarget
	notifier   Notifier
	navManager NavigationManager
	logger     *zap.Logger
	current    Component // last component committed, target of ReRender
}

// Option configures a RendererImpl.
type Option func(*RendererImpl)

// WithLogger sets the renderer's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *RendererImpl) {
		r.logger = logger
	}
}

// WithNavigationManager sets the router used by ComponentBase.Navigate.
func WithNavigationManager(nm NavigationManager) Option {
	return func(r *RendererImpl) {
		r.navManager = nm
	}
}

// NewRenderer creates a renderer committing into target. Lifecycle failures
// are reported through notifier.
func NewRenderer(target MountTarget, notifier Notifier, opts ...Option) *RendererImpl {
	r := &RendererImpl{
		target:   target,
		notifier: notifier,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetNavigationManager sets the router after construction, for when the
// router itself needs the renderer first.
func (r *RendererImpl) SetNavigationManager(nm NavigationManager) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navManager = nm
}

// Render clears the mount target, sets the title and mounts c.
//
// A rejected BeforeMount is shown to the user through the notifier and
// returned as a *LifecycleError; nothing is committed in that case.
func (r *RendererImpl) Render(ctx context.Context, c Component) error {
	name := c.RouteName()

	r.mu.Lock()
	r.target.Clear()
	r.target.SetTitle(name)
	r.mu.Unlock()

	c.SetRenderer(r)

	state, err := c.BeforeMount(ctx).Await(ctx)
	if err != nil {
		r.logger.Warn("[Renderer.Render] beforeMount rejected",
			zap.String("route", name), zap.Error(err))
		if r.notifier != nil {
			r.notifier.Notify(err.Error())
		}
		return &LifecycleError{RouteName: name, Hook: "beforeMount", Err: err}
	}
	c.SetState(state)

	out, err := r.callRender(c)
	if err != nil {
		r.logger.Error("[Renderer.Render] render failed", zap.String("route", name), zap.Error(err))
		if r.notifier != nil {
			r.notifier.Notify(err.Error())
		}
		return &LifecycleError{RouteName: name, Hook: "render", Err: err}
	}

	r.mu.Lock()
	err = r.commit(out)
	if err == nil {
		r.current = c
	}
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("runtime: commit %q: %w", name, err)
	}

	r.logger.Debug("[Renderer.Render] committed", zap.String("route", name), zap.Stringer("kind", out.Kind))

	if s, ok := c.(Styled); ok && s.Styles() != nil {
		if err := s.Styles().Mount(); err != nil {
			r.logger.Warn("[Renderer.Render] stylesheet mount failed", zap.String("route", name), zap.Error(err))
		}
	}

	r.callMounted(c)
	return nil
}

// commit writes out into the mount target. The caller holds r.mu.
func (r *RendererImpl) commit(out vdom.Output) error {
	switch out.Kind {
	case vdom.KindMarkup:
		r.target.SetInnerHTML(out.HTML)
	case vdom.KindNode:
		// An overlapping render may have committed since our Clear.
		r.target.Clear()
		r.target.AppendChild(out.Root)
	default:
		return fmt.Errorf("unknown output kind %d", out.Kind)
	}
	return nil
}

// ReRender commits the current component's output again. It does nothing
// before the first commit.
func (r *RendererImpl) ReRender() error {
	r.mu.Lock()
	c := r.current
	r.mu.Unlock()
	if c == nil {
		return nil
	}

	out, err := r.callRender(c)
	if err != nil {
		return &LifecycleError{RouteName: c.RouteName(), Hook: "render", Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != c {
		// Navigation moved on while we were rendering.
		return nil
	}
	if err := r.commit(out); err != nil {
		return fmt.Errorf("runtime: commit %q: %w", c.RouteName(), err)
	}
	return nil
}

// Unmount runs c's Unmount hook, then detaches its stylesheets if they are
// mounted. It returns the state the hook resolved to.
func (r *RendererImpl) Unmount(ctx context.Context, c Component) (any, error) {
	name := c.RouteName()

	r.mu.Lock()
	if r.current == c {
		r.current = nil
	}
	r.mu.Unlock()

	state, err := c.Unmount(ctx).Await(ctx)
	if err != nil {
		r.logger.Warn("[Renderer.Unmount] unmount rejected", zap.String("route", name), zap.Error(err))
		err = &LifecycleError{RouteName: name, Hook: "unmount", Err: err}
	}

	if s, ok := c.(Styled); ok && s.Styles() != nil && s.Styles().IsMounted() {
		if serr := s.Styles().Unmount(); serr != nil {
			r.logger.Warn("[Renderer.Unmount] stylesheet unmount failed", zap.String("route", name), zap.Error(serr))
		}
	}

	return state, err
}

// Current returns the component whose output was committed last, or nil
// after it was unmounted.
func (r *RendererImpl) Current() Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate implements the Renderer interface.
// It delegates to the NavigationManager (router) to perform client-side navigation.
// Returns an error if no router is configured.
func (r *RendererImpl) Navigate(path string) error {
	r.mu.Lock()
	nm := r.navManager
	r.mu.Unlock()
	if nm == nil {
		return fmt.Errorf("no router configured for navigation")
	}
	return nm.Navigate(path)
}
