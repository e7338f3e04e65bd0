package appcomponents

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/vcrobe/hashspa/appctx"
	"github.com/vcrobe/hashspa/lazy"
	"github.com/vcrobe/hashspa/runtime"
	"github.com/vcrobe/hashspa/vdom"
)

// AboutRef is the module reference the about page is lazily loaded from.
const AboutRef = "./pages/about"

// AboutPage is loaded on first navigation to "/about".
type AboutPage struct {
	runtime.ComponentBase

	app *appctx.Context
}

// NewAboutPage is the about module's default export.
func NewAboutPage(app *appctx.Context) runtime.Component {
	return &AboutPage{app: app}
}

func (a *AboutPage) RouteName() string {
	return "About"
}

func (a *AboutPage) BeforeMount(ctx context.Context) *runtime.Promise {
	mode := "production"
	if a.app != nil && a.app.Env.Dev {
		mode = "development"
	}
	return runtime.Resolved(mode)
}

func (a *AboutPage) Render() vdom.Output {
	mode, _ := a.State().(string)
	out, err := vdom.FromTempl(context.Background(), aboutView(mode))
	if err != nil {
		return vdom.Markup("<p>about page unavailable</p>")
	}
	return out
}

func aboutView(mode string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<h1>About</h1><p>Running in "+templ.EscapeString(mode)+" mode.</p>")
		return err
	})
}

// RegisterModules adds the lazily loaded pages to t.
func RegisterModules(t *lazy.ModuleTable) {
	t.Register(AboutRef, func(ctx context.Context) (lazy.Module, error) {
		return lazy.Module{lazy.DefaultExport: lazy.Factory(NewAboutPage)}, nil
	})
}
