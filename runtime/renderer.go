package runtime

import (
	"context"

	"github.com/vcrobe/hashspa/vdom"
)

// Renderer drives a component through its lifecycle.
// The router depends on this interface, not on RendererImpl, so tests can
// substitute their own.
type Renderer interface {
	// Render runs BeforeMount, commits the output and fires Mounted.
	Render(ctx context.Context, c Component) error

	// Unmount runs the component's Unmount hook and returns its final state.
	Unmount(ctx context.Context, c Component) (any, error)

	// ReRender commits the current component's output again without running
	// lifecycle hooks. Used by StateHasChanged() when component state changes.
	ReRender() error

	// Navigate performs client-side navigation to the given path.
	// Used by ComponentBase.Navigate.
	Navigate(path string) error
}

// MountTarget is the element the active component renders into, together
// with the document title.
type MountTarget interface {
	// Clear removes all children.
	Clear()
	// SetInnerHTML replaces all children with the parsed markup.
	SetInnerHTML(markup string)
	// AppendChild appends a node tree.
	AppendChild(n *vdom.VNode)
	// SetTitle sets the document title.
	SetTitle(title string)
}

// Notifier shows a blocking notification to the user.
type Notifier interface {
	Notify(msg string)
}

// NavigationManager performs navigation on behalf of components.
// The router implements it.
type NavigationManager interface {
	Navigate(path string) error
}
