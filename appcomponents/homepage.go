// Package appcomponents holds the demo application's pages.
package appcomponents

import (
	"context"

	"github.com/vcrobe/hashspa/appctx"
	"github.com/vcrobe/hashspa/runtime"
	"github.com/vcrobe/hashspa/vdom"
)

// Link is one entry of the home page menu.
type Link struct {
	Href  string
	Label string
}

// HomePage is the component rendered for the "/" route.
type HomePage struct {
	runtime.ComponentBase

	app *appctx.Context
}

// NewHomePage creates the home page.
func NewHomePage(app *appctx.Context) *HomePage {
	return &HomePage{app: app}
}

func (h *HomePage) RouteName() string {
	return "Home"
}

func (h *HomePage) BeforeMount(ctx context.Context) *runtime.Promise {
	links := []Link{
		{Href: "#/help", Label: "Help"},
		{Href: "#/counter", Label: "Counter"},
		{Href: "#/about", Label: "About"},
	}
	return runtime.Resolved(links)
}

func (h *HomePage) Render() vdom.Output {
	links, _ := h.State().([]Link)

	items := make([]*vdom.VNode, 0, len(links))
	for _, l := range links {
		items = append(items, vdom.H("li", nil, vdom.H("a", vdom.Attrs{"href": l.Href}, l.Label)))
	}

	return vdom.Node(vdom.H("main", vdom.Attrs{"class": "home"},
		vdom.H("h1", nil, "hashspa"),
		vdom.H("ul", vdom.Attrs{"class": "menu"}, items),
	))
}
