package lazy

import (
	"context"
	"fmt"
	"sync"

	"github.com/vcrobe/hashspa/appctx"
	"github.com/vcrobe/hashspa/runtime"
)

// DefaultExport is the namespace key holding a module's component constructor.
const DefaultExport = "default"

// Module is the namespace object a loader resolves to.
type Module map[string]any

// Factory constructs a component with the application context.
type Factory func(app *appctx.Context) runtime.Component

// Loader fetches modules by reference.
type Loader interface {
	Import(ctx context.Context, ref string) (Module, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, ref string) (Module, error)

// Import calls f.
func (f LoaderFunc) Import(ctx context.Context, ref string) (Module, error) {
	return f(ctx, ref)
}

// ModuleTable is an in-process Loader: each reference maps to a function
// producing the module. It stands in for dynamic import in a statically
// linked binary; the function is only called on first use.
type ModuleTable struct {
	mu      sync.RWMutex
	modules map[string]func(ctx context.Context) (Module, error)
}

// NewModuleTable creates an empty table.
func NewModuleTable() *ModuleTable {
	return &ModuleTable{modules: make(map[string]func(ctx context.Context) (Module, error))}
}

// Register adds a module under ref, replacing any previous entry.
func (t *ModuleTable) Register(ref string, fn func(ctx context.Context) (Module, error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modules[ref] = fn
}

// Import resolves ref.
func (t *ModuleTable) Import(ctx context.Context, ref string) (Module, error) {
	t.mu.RLock()
	fn, ok := t.modules[ref]
	t.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("module %q not found", ref)
	}
	return fn(ctx)
}

// instantiate validates the default export and calls it.
func instantiate(app *appctx.Context, mod Module) (runtime.Component, error) {
	def, ok := mod[DefaultExport]
	if !ok || def == nil {
		return nil, ErrNoDefault
	}

	var c runtime.Component
	switch ctor := def.(type) {
	case Factory:
		c = ctor(app)
	case func(*appctx.Context) runtime.Component:
		c = ctor(app)
	case func() runtime.Component:
		c = ctor()
	default:
		return nil, fmt.Errorf("%w (got %T)", ErrNotConstructor, def)
	}
	if c == nil {
		return nil, ErrNilComponent
	}
	return c, nil
}
