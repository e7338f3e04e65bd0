//go:build dev
// +build dev

package runtime

import "github.com/vcrobe/hashspa/vdom"

// callRender invokes Render in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func (r *RendererImpl) callRender(c Component) (vdom.Output, error) {
	return c.Render(), nil
}

// callMounted invokes the Mounted lifecycle method in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func (r *RendererImpl) callMounted(c Component) {
	c.Mounted()
}
