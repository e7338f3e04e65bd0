package runtime

import (
	"context"

	"github.com/vcrobe/hashspa/stylesheet"
	"github.com/vcrobe/hashspa/vdom"
)

// Component is the contract every routable view satisfies.
//
// One mount cycle runs BeforeMount, stores its result with SetState, calls
// Render, commits the output and finally calls Mounted. Unmount runs before
// another route's component replaces this one.
type Component interface {
	// RouteName is used as the document title while the component is shown.
	RouteName() string

	// State returns the value produced by the last BeforeMount.
	State() any
	SetState(state any)

	// Render produces the component's output from its current state.
	// It must not depend on anything but State.
	Render() vdom.Output

	// BeforeMount produces fresh state for this mount. Return Resolved for
	// a value computed synchronously or Async for one that needs to wait.
	BeforeMount(ctx context.Context) *Promise

	// Mounted runs after the output is in the document. Child lookups and
	// subscriptions belong here.
	Mounted()

	// Unmount runs before the component's output is replaced. The promise may
	// carry the final state; a nil promise means there is nothing to return.
	Unmount(ctx context.Context) *Promise

	// SetRenderer is called by the framework to attach the renderer to the
	// component, enabling Navigate.
	SetRenderer(r Renderer)
}

// Styled is implemented by components that own stylesheets. The renderer
// mounts them after commit and unmounts them after Unmount.
type Styled interface {
	Styles() *stylesheet.DynamicStyleSheet
}
