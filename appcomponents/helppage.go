package appcomponents

import (
	"github.com/vcrobe/hashspa/runtime"
	"github.com/vcrobe/hashspa/vdom"
)

// HelpPage is the component rendered for the "/help" route.
type HelpPage struct {
	runtime.ComponentBase
}

func (p *HelpPage) RouteName() string {
	return "Help"
}

func (p *HelpPage) Render() vdom.Output {
	return vdom.Markup("<p>Help</p>")
}
