package router

import (
	"github.com/vcrobe/hashspa/runtime"
	"github.com/vcrobe/hashspa/vdom"
)

// NotFoundPage is the default fallback component.
type NotFoundPage struct {
	runtime.ComponentBase
}

func (p *NotFoundPage) RouteName() string {
	return "Not Found"
}

func (p *NotFoundPage) Render() vdom.Output {
	return vdom.Node(vdom.H("div", vdom.Attrs{"class": "not-found"},
		vdom.H("h1", nil, "404"),
		vdom.H("p", nil, "This page does not exist."),
		vdom.H("a", vdom.Attrs{"href": "#/"}, "Back to start"),
	))
}
