package vdom

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// FromTempl renders a templ component into a markup Output.
func FromTempl(ctx context.Context, c templ.Component) (Output, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return Output{}, err
	}
	return Markup(b.String()), nil
}

// Component exposes the node as a templ component so VNode trees can be
// embedded in templ pages.
func (v *VNode) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Render(w, v)
	})
}
