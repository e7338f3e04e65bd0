package runtime

import (
	"context"
	"fmt"
	"sync"
)

// ComponentBase is a struct that components can embed to get state storage,
// no-op lifecycle hooks and access to navigation. Components still provide
// RouteName and Render themselves.
type ComponentBase struct {
	mu       sync.RWMutex
	state    any
	renderer Renderer
}

// State returns the value produced by the last BeforeMount.
func (b *ComponentBase) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// SetState replaces the component state.
func (b *ComponentBase) SetState(state any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = state
}

// BeforeMount resolves to nil state.
func (b *ComponentBase) BeforeMount(ctx context.Context) *Promise {
	return Resolved(nil)
}

// Mounted does nothing.
func (b *ComponentBase) Mounted() {}

// Unmount resolves to the current state.
func (b *ComponentBase) Unmount(ctx context.Context) *Promise {
	return Resolved(b.State())
}

// SetRenderer is called by the framework's runtime to inject a reference
// to the renderer. This method should not be called by user code.
func (b *ComponentBase) SetRenderer(r Renderer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.renderer = r
}

// StateHasChanged signals to the framework that the component's state has
// been updated and the UI should be re-rendered to reflect the changes.
func (b *ComponentBase) StateHasChanged() error {
	b.mu.RLock()
	r := b.renderer
	b.mu.RUnlock()
	if r == nil {
		return fmt.Errorf("StateHasChanged called, but renderer is nil (component not mounted?)")
	}
	return r.ReRender()
}

// Navigate requests client-side navigation to a new path.
//
// Example usage in a component:
//
//	func (c *MyComponent) HandleClick() {
//	    if err := c.Navigate("/help"); err != nil {
//	        c.log.Warn("navigation failed", zap.Error(err))
//	    }
//	}
//
// Returns an error if the renderer is not set or navigation fails.
func (b *ComponentBase) Navigate(path string) error {
	b.mu.RLock()
	r := b.renderer
	b.mu.RUnlock()
	if r == nil {
		return fmt.Errorf("navigate called, but renderer is nil (component not mounted?)")
	}
	return r.Navigate(path)
}
