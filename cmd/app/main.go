//go:build js || wasm
// +build js wasm

// Command app is the browser entry point of the demo SPA.
package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/vcrobe/hashspa/appcomponents"
	"github.com/vcrobe/hashspa/appctx"
	"github.com/vcrobe/hashspa/console"
	"github.com/vcrobe/hashspa/dom"
	"github.com/vcrobe/hashspa/lazy"
	"github.com/vcrobe/hashspa/router"
	"github.com/vcrobe/hashspa/runtime"
	"github.com/vcrobe/hashspa/stylesheet"
)

// dev is set with -ldflags "-X main.dev=true".
var dev = "false"

func main() {
	ctx := context.Background()

	var opts []appctx.Option
	if events := (dom.EventSource{}); events.Supported() {
		opts = append(opts, appctx.WithEvents(events))
	}
	app := appctx.New(appctx.Env{Dev: dev == "true", Alert: true}, opts...)
	logger := app.Named("main")

	mount, err := dom.NewMount("#app")
	if err != nil {
		console.Error("cannot start:", err.Error())
		return
	}

	styles, err := stylesheet.New(ctx, dom.NewHead(),
		&stylesheet.StyleSheet{URL: "/public/counter.css", Cache: true},
	)
	if err != nil {
		// Priming failures are not fatal, the sheet is still attached on mount.
		logger.Warn("stylesheet priming failed", zap.Error(err))
	}

	modules := lazy.NewModuleTable()
	appcomponents.RegisterModules(modules)
	cache := lazy.NewCache(modules, app)

	renderer := runtime.NewRenderer(mount, dom.Alert{}, runtime.WithLogger(app.Named("renderer")))
	r := router.New(dom.NewLocation(), renderer, router.WithLogger(app.Named("router")))
	renderer.SetNavigationManager(r)

	r.MustAddPage("/", router.Page(appcomponents.NewHomePage(app)))
	r.MustAddPage("/help", router.Page(&appcomponents.HelpPage{}))
	r.MustAddPage("/counter", router.Page(appcomponents.NewCounterPage(app, styles, "")))
	r.MustAddPage("/about", lazy.New(cache, appcomponents.AboutRef))

	r.Events(ctx)
	if err := r.Enroute(ctx); err != nil {
		logger.Error("initial route failed", zap.Error(err))
	}

	select {}
}
