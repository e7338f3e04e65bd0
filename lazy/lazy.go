// Package lazy loads route components on first navigation.
//
// A Cache maps module references to the component instantiated from them and
// is consulted before the Loader is asked for anything, so every reference is
// imported at most once. A Component is the route-table handle for one
// reference.
package lazy

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/vcrobe/hashspa/appctx"
	"github.com/vcrobe/hashspa/runtime"
)

// Cache holds components resolved from module references.
type Cache struct {
	loader Loader
	app    *appctx.Context
	logger *zap.Logger

	mu         sync.RWMutex
	components map[string]runtime.Component
	group      singleflight.Group
}

// NewCache creates a cache loading through loader. The application context
// is passed to every Factory.
func NewCache(loader Loader, app *appctx.Context) *Cache {
	return &Cache{
		loader:     loader,
		app:        app,
		logger:     app.Named("lazy"),
		components: make(map[string]runtime.Component),
	}
}

// Load returns the component for ref, importing and instantiating it on
// first use. Concurrent loads of the same ref share one import. Failures
// are not cached; the next Load tries again.
func (c *Cache) Load(ctx context.Context, ref string) (runtime.Component, error) {
	if comp, ok := c.Lookup(ref); ok {
		return comp, nil
	}

	v, err, _ := c.group.Do(ref, func() (any, error) {
		if comp, ok := c.Lookup(ref); ok {
			return comp, nil
		}

		c.logger.Debug("[Cache.Load] importing", zap.String("ref", ref))
		mod, err := c.loader.Import(ctx, ref)
		if err != nil {
			return nil, &LoadError{Ref: ref, Err: err}
		}
		comp, err := instantiate(c.app, mod)
		if err != nil {
			return nil, &LoadError{Ref: ref, Err: err}
		}

		c.mu.Lock()
		c.components[ref] = comp
		c.mu.Unlock()
		return comp, nil
	})
	if err != nil {
		c.logger.Warn("[Cache.Load] failed", zap.String("ref", ref), zap.Error(err))
		return nil, err
	}
	return v.(runtime.Component), nil
}

// Lookup returns the cached component for ref without loading.
func (c *Cache) Lookup(ref string) (runtime.Component, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	comp, ok := c.components[ref]
	return comp, ok
}

// Component is a lazily loaded route component.
type Component struct {
	Ref   string
	cache *Cache
}

// New creates a lazy component for ref, resolved through cache.
func New(cache *Cache, ref string) *Component {
	return &Component{Ref: ref, cache: cache}
}

// Load imports the module on first call and returns the cached instance
// afterwards.
func (l *Component) Load(ctx context.Context) (runtime.Component, error) {
	return l.cache.Load(ctx, l.Ref)
}

// Resolve makes Component usable as a route target.
func (l *Component) Resolve(ctx context.Context) (runtime.Component, error) {
	return l.Load(ctx)
}

// Loaded reports whether the component has been instantiated.
func (l *Component) Loaded() bool {
	_, ok := l.cache.Lookup(l.Ref)
	return ok
}
