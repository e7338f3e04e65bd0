package domtest

import (
	"context"
	"sync"

	"github.com/vcrobe/hashspa/runtime"
	"github.com/vcrobe/hashspa/vdom"
)

// Compile-time assertion to ensure Renderer implements runtime.Renderer.
var _ runtime.Renderer = (*Renderer)(nil)

// Renderer is a minimal runtime.Renderer for testing a single component
// without a mount target or router. It keeps the last rendered output and
// records every navigation request.
type Renderer struct {
	mu        sync.Mutex
	component runtime.Component
	output    vdom.Output
	renders   int
	paths     []string
}

// NewRenderer attaches a renderer to c.
func NewRenderer(c runtime.Component) *Renderer {
	r := &Renderer{component: c}
	c.SetRenderer(r)
	return r
}

// Render awaits BeforeMount, stores the state and renders.
func (r *Renderer) Render(ctx context.Context, c runtime.Component) error {
	state, err := c.BeforeMount(ctx).Await(ctx)
	if err != nil {
		return err
	}
	c.SetState(state)

	r.mu.Lock()
	r.component = c
	r.output = c.Render()
	r.renders++
	r.mu.Unlock()

	c.Mounted()
	return nil
}

// Unmount awaits the component's Unmount hook.
func (r *Renderer) Unmount(ctx context.Context, c runtime.Component) (any, error) {
	return c.Unmount(ctx).Await(ctx)
}

// ReRender renders the attached component again.
func (r *Renderer) ReRender() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.output = r.component.Render()
	r.renders++
	return nil
}

// Navigate records path.
func (r *Renderer) Navigate(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return nil
}

// Output returns the most recent render result.
func (r *Renderer) Output() vdom.Output {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.output
}

// Renders returns how many times the component was rendered.
func (r *Renderer) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}

// Paths returns the recorded navigation requests.
func (r *Renderer) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}
