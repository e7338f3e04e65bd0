//go:build !wasm
// +build !wasm

package router

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vcrobe/hashspa/appctx"
	"github.com/vcrobe/hashspa/domtest"
	"github.com/vcrobe/hashspa/lazy"
	"github.com/vcrobe/hashspa/runtime"
	"github.com/vcrobe/hashspa/vdom"
)

// testPage renders fixed markup and records its lifecycle.
type testPage struct {
	runtime.ComponentBase

	name     string
	markup   string
	fail     error
	gate     chan struct{} // when set, BeforeMount waits for it to close
	mounts   int
	unmounts int
}

func (p *testPage) RouteName() string { return p.name }

func (p *testPage) Render() vdom.Output { return vdom.Markup(p.markup) }

func (p *testPage) BeforeMount(ctx context.Context) *runtime.Promise {
	if p.fail != nil {
		return runtime.Rejected(p.fail)
	}
	if p.gate != nil {
		gate := p.gate
		return runtime.Async(ctx, func(ctx context.Context) (any, error) {
			<-gate
			return p.name + "-state", nil
		})
	}
	return runtime.Resolved(p.name + "-state")
}

func (p *testPage) Mounted() { p.mounts++ }

func (p *testPage) Unmount(ctx context.Context) *runtime.Promise {
	p.unmounts++
	return runtime.Resolved(p.State())
}

type fixture struct {
	loc    *domtest.Location
	doc    *domtest.Document
	alerts *domtest.Alerts
	router *Router
}

func newFixture(hash string, opts ...Option) *fixture {
	f := &fixture{
		loc:    domtest.NewLocation(hash),
		doc:    domtest.NewDocument(),
		alerts: &domtest.Alerts{},
	}
	renderer := runtime.NewRenderer(f.doc, f.alerts)
	f.router = New(f.loc, renderer, opts...)
	renderer.SetNavigationManager(f.router)
	return f
}

func TestAddPage_DistinctPaths(t *testing.T) {
	f := newFixture("")

	for _, p := range []string{"/", "/help", "/about", "/help/"} {
		if err := f.router.AddPage(p, Page(&testPage{name: p})); err != nil {
			t.Errorf("AddPage(%q) failed: %v", p, err)
		}
	}

	if got := len(f.router.Routes()); got != 4 {
		t.Errorf("Expected 4 routes, got %d", got)
	}
}

func TestAddPage_DuplicateRejected(t *testing.T) {
	f := newFixture("#/help")
	first := &testPage{name: "First", markup: "<p>first</p>"}
	second := &testPage{name: "Second", markup: "<p>second</p>"}

	if err := f.router.AddPage("/help", Page(first)); err != nil {
		t.Fatalf("First AddPage failed: %v", err)
	}

	err := f.router.AddPage("/help", Page(second))
	if !errors.Is(err, ErrDuplicateRoute) {
		t.Fatalf("Expected ErrDuplicateRoute, got %v", err)
	}

	// The table must still hold the first registration.
	if err := f.router.Enroute(context.Background()); err != nil {
		t.Fatalf("Enroute failed: %v", err)
	}
	if f.doc.Title() != "First" {
		t.Errorf("Expected first registration to win, got title %q", f.doc.Title())
	}
}

func TestAddPage_NilTarget(t *testing.T) {
	f := newFixture("")
	if err := f.router.AddPage("/x", nil); err == nil {
		t.Error("Expected error for nil target")
	}
	if err := f.router.AddPage("/y", Page(nil)); err == nil {
		t.Error("Expected error for nil page component")
	}
	if n := len(f.router.Routes()); n != 0 {
		t.Errorf("Expected no routes registered, got %d", n)
	}
}

func TestMustAddPage_PanicsOnDuplicate(t *testing.T) {
	f := newFixture("")
	f.router.MustAddPage("/", Page(&testPage{name: "Home"}))

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate MustAddPage")
		}
	}()
	f.router.MustAddPage("/", Page(&testPage{name: "Home"}))
}

func TestEnroute_RootHashes(t *testing.T) {
	for _, hash := range []string{"", "#", "#/"} {
		t.Run("with root route "+hash, func(t *testing.T) {
			f := newFixture(hash)
			f.router.MustAddPage("/", Page(&testPage{name: "Home", markup: "<p>home</p>"}))

			if err := f.router.Enroute(context.Background()); err != nil {
				t.Fatalf("Enroute failed: %v", err)
			}
			if f.doc.Title() != "Home" {
				t.Errorf("Expected title 'Home', got %q", f.doc.Title())
			}
		})

		t.Run("without root route "+hash, func(t *testing.T) {
			f := newFixture(hash)
			f.router.MustAddPage("/help", Page(&testPage{name: "Help"}))

			if err := f.router.Enroute(context.Background()); err != nil {
				t.Fatalf("Enroute failed: %v", err)
			}
			if f.doc.Title() != "Not Found" {
				t.Errorf("Expected not-found page, got title %q", f.doc.Title())
			}
		})
	}
}

func TestEnroute_UnregisteredUsesNotFound(t *testing.T) {
	for _, hash := range []string{"#/missing", "#/help/", "#help", "#//"} {
		f := newFixture(hash)
		f.router.MustAddPage("/help", Page(&testPage{name: "Help"}))

		if err := f.router.Enroute(context.Background()); err != nil {
			t.Fatalf("Enroute(%q) returned error: %v", hash, err)
		}
		if f.doc.Title() != "Not Found" {
			t.Errorf("Enroute(%q): expected 'Not Found', got %q", hash, f.doc.Title())
		}
		if !strings.Contains(f.doc.Markup(), "404") {
			t.Errorf("Enroute(%q): expected 404 markup, got %q", hash, f.doc.Markup())
		}
	}
}

func TestSetNotFoundPage(t *testing.T) {
	f := newFixture("#/nowhere")
	f.router.SetNotFoundPage(&testPage{name: "Lost", markup: "<p>lost</p>"})

	if err := f.router.Enroute(context.Background()); err != nil {
		t.Fatalf("Enroute failed: %v", err)
	}
	if f.doc.Title() != "Lost" || f.doc.Markup() != "<p>lost</p>" {
		t.Errorf("Expected custom not-found page, got title %q markup %q", f.doc.Title(), f.doc.Markup())
	}
}

func TestSetNotFoundPage_NilRestoresDefault(t *testing.T) {
	f := newFixture("#/nowhere", WithNotFound(nil))
	f.router.SetNotFoundPage(nil)

	if err := f.router.Enroute(context.Background()); err != nil {
		t.Fatalf("Enroute failed: %v", err)
	}
	if f.doc.Title() != "Not Found" {
		t.Errorf("Expected default not-found page, got title %q", f.doc.Title())
	}
}

func TestEnroute_HelpScenario(t *testing.T) {
	// Arrange
	f := newFixture("")
	help := &testPage{name: "Help", markup: "<p>Help</p>"}
	f.router.MustAddPage("/help", Page(help))

	// Act
	f.loc.SetHash("#/help")
	if err := f.router.Enroute(context.Background()); err != nil {
		t.Fatalf("Enroute failed: %v", err)
	}

	// Assert
	if got := f.doc.Markup(); got != "<p>Help</p>" {
		t.Errorf("Expected markup '<p>Help</p>', got %q", got)
	}
	if f.doc.Title() != help.RouteName() {
		t.Errorf("Expected title %q, got %q", help.RouteName(), f.doc.Title())
	}
	if help.State() != "Help-state" {
		t.Errorf("Expected state from BeforeMount, got %v", help.State())
	}
	if help.mounts != 1 {
		t.Errorf("Expected Mounted to fire once, got %d", help.mounts)
	}
	if f.router.State() != Rendered {
		t.Errorf("Expected router state 'rendered', got %s", f.router.State())
	}
	if f.router.Active() != help {
		t.Error("Expected help page to be active")
	}
}

func TestEnroute_BeforeMountRejection(t *testing.T) {
	f := newFixture("#/ok")
	ok := &testPage{name: "OK", markup: "<p>ok</p>"}
	bad := &testPage{name: "Bad", markup: "<p>stale</p>", fail: errors.New("boom")}
	f.router.MustAddPage("/ok", Page(ok))
	f.router.MustAddPage("/bad", Page(bad))

	if err := f.router.Enroute(context.Background()); err != nil {
		t.Fatalf("Initial Enroute failed: %v", err)
	}

	f.loc.SetHash("#/bad")
	err := f.router.Enroute(context.Background())

	var lerr *runtime.LifecycleError
	if !errors.As(err, &lerr) {
		t.Fatalf("Expected LifecycleError, got %v", err)
	}

	msgs := f.alerts.Messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "boom") {
		t.Errorf("Expected one notification containing 'boom', got %v", msgs)
	}
	if f.doc.ChildCount() != 0 {
		t.Errorf("Expected cleared mount target, got %q", f.doc.Markup())
	}
	if ok.unmounts != 1 {
		t.Errorf("Expected previous page unmounted once, got %d", ok.unmounts)
	}
	if f.router.Active() != nil {
		t.Errorf("Expected no active page after failed mount, got %s", f.router.Active().RouteName())
	}

	// The router stays usable.
	f.loc.SetHash("#/ok")
	if err := f.router.Enroute(context.Background()); err != nil {
		t.Fatalf("Enroute after failure failed: %v", err)
	}
	if f.doc.Markup() != "<p>ok</p>" {
		t.Errorf("Expected recovery to '<p>ok</p>', got %q", f.doc.Markup())
	}
	if bad.unmounts != 0 {
		t.Errorf("Expected the never-mounted page not to be unmounted, got %d", bad.unmounts)
	}
}

func TestEnroute_UnmountsPreviousBeforeRender(t *testing.T) {
	f := newFixture("#/a")
	a := &testPage{name: "A", markup: "<p>a</p>"}
	b := &testPage{name: "B", markup: "<p>b</p>"}
	f.router.MustAddPage("/a", Page(a))
	f.router.MustAddPage("/b", Page(b))

	ctx := context.Background()
	if err := f.router.Enroute(ctx); err != nil {
		t.Fatal(err)
	}
	f.loc.SetHash("#/b")
	if err := f.router.Enroute(ctx); err != nil {
		t.Fatal(err)
	}

	if a.unmounts != 1 {
		t.Errorf("Expected A unmounted once, got %d", a.unmounts)
	}
	if b.unmounts != 0 {
		t.Errorf("Expected B still mounted, got %d unmounts", b.unmounts)
	}
}

func TestEnroute_OverlappingNavigationsKeepLifecycleBalanced(t *testing.T) {
	// Arrange: a page whose BeforeMount stays pending until released.
	f := newFixture("#/slow")
	slow := &testPage{name: "Slow", markup: "<p>slow</p>", gate: make(chan struct{})}
	fast := &testPage{name: "Fast", markup: "<p>fast</p>"}
	other := &testPage{name: "Other", markup: "<p>other</p>"}
	f.router.MustAddPage("/slow", Page(slow))
	f.router.MustAddPage("/fast", Page(fast))
	f.router.MustAddPage("/other", Page(other))
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- f.router.Enroute(ctx) }()
	for f.doc.Title() != "Slow" {
		time.Sleep(time.Millisecond)
	}

	// Act: navigate away while slow is pending, then let slow finish.
	f.loc.SetHash("#/fast")
	if err := f.router.Enroute(ctx); err != nil {
		t.Fatalf("Enroute(fast) failed: %v", err)
	}
	close(slow.gate)
	if err := <-done; err != nil {
		t.Fatalf("Enroute(slow) failed: %v", err)
	}

	// Assert: slow committed last, so it is shown and active.
	if got := f.doc.Markup(); got != "<p>slow</p>" {
		t.Errorf("Expected the later commit to be shown, got %q", got)
	}
	if f.router.Active() != slow {
		t.Errorf("Expected slow page active, got %v", f.router.Active())
	}
	if slow.mounts != 1 || slow.unmounts != 0 {
		t.Errorf("Expected slow mounted once and not unmounted, got mounts=%d unmounts=%d", slow.mounts, slow.unmounts)
	}
	if fast.mounts != 1 || fast.unmounts != 1 {
		t.Errorf("Expected displaced fast page unmounted, got mounts=%d unmounts=%d", fast.mounts, fast.unmounts)
	}

	// The page that was shown is unmounted by the next navigation.
	f.loc.SetHash("#/other")
	if err := f.router.Enroute(ctx); err != nil {
		t.Fatalf("Enroute(other) failed: %v", err)
	}
	if slow.unmounts != 1 {
		t.Errorf("Expected slow unmounted after leaving it, got %d", slow.unmounts)
	}
	if f.router.Active() != other {
		t.Errorf("Expected other page active, got %v", f.router.Active())
	}
}

func newLazyModules(calls *int32, def any) *lazy.ModuleTable {
	modules := lazy.NewModuleTable()
	modules.Register("about", func(ctx context.Context) (lazy.Module, error) {
		atomic.AddInt32(calls, 1)
		return lazy.Module{lazy.DefaultExport: def}, nil
	})
	return modules
}

func TestEnroute_LazyRouteLoadsOnce(t *testing.T) {
	var calls int32
	modules := newLazyModules(&calls, lazy.Factory(func(app *appctx.Context) runtime.Component {
		return &testPage{name: "About", markup: "<p>about</p>"}
	}))
	cache := lazy.NewCache(modules, appctx.Nop())

	f := newFixture("#/about")
	f.router.MustAddPage("/about", lazy.New(cache, "about"))
	f.router.MustAddPage("/", Page(&testPage{name: "Home"}))

	ctx := context.Background()
	for _, hash := range []string{"#/about", "#/", "#/about"} {
		f.loc.SetHash(hash)
		if err := f.router.Enroute(ctx); err != nil {
			t.Fatalf("Enroute(%q) failed: %v", hash, err)
		}
	}

	if calls != 1 {
		t.Errorf("Expected loader to run once, ran %d times", calls)
	}
	if f.doc.Markup() != "<p>about</p>" {
		t.Errorf("Unexpected markup %q", f.doc.Markup())
	}
}

func TestEnroute_LazyLoadErrorPropagates(t *testing.T) {
	var calls int32
	cache := lazy.NewCache(newLazyModules(&calls, "not a constructor"), appctx.Nop())

	f := newFixture("#/about")
	f.router.MustAddPage("/about", lazy.New(cache, "about"))

	err := f.router.Enroute(context.Background())
	if !errors.Is(err, lazy.ErrNotConstructor) {
		t.Fatalf("Expected ErrNotConstructor, got %v", err)
	}
	if !strings.Contains(err.Error(), `"about"`) {
		t.Errorf("Expected error to name the module, got %q", err.Error())
	}
	if f.router.State() != Idle {
		t.Errorf("Expected router back in idle state, got %s", f.router.State())
	}
}

func TestEnroute_LazyLoadFallback(t *testing.T) {
	var calls int32
	cache := lazy.NewCache(newLazyModules(&calls, nil), appctx.Nop())

	f := newFixture("#/about", WithLoadFallback())
	f.router.MustAddPage("/about", lazy.New(cache, "about"))

	if err := f.router.Enroute(context.Background()); err != nil {
		t.Fatalf("Expected fallback, got error %v", err)
	}
	if f.doc.Title() != "Not Found" {
		t.Errorf("Expected not-found page, got %q", f.doc.Title())
	}
}

func TestEvents_SubscribesOnce(t *testing.T) {
	f := newFixture("")
	help := &testPage{name: "Help", markup: "<p>Help</p>"}
	f.router.MustAddPage("/help", Page(help))

	ctx := context.Background()
	f.router.Events(ctx)
	f.router.Events(ctx)

	if f.loc.Subscribers() != 1 {
		t.Fatalf("Expected exactly 1 subscription, got %d", f.loc.Subscribers())
	}

	f.loc.SetHash("#/help")
	if help.mounts != 1 {
		t.Errorf("Expected one mount per navigation, got %d", help.mounts)
	}
	if f.doc.Markup() != "<p>Help</p>" {
		t.Errorf("Unexpected markup %q", f.doc.Markup())
	}

	f.router.Close()
	if f.loc.Subscribers() != 0 {
		t.Errorf("Expected Close to unsubscribe, %d left", f.loc.Subscribers())
	}
}

func TestNavigate_FromComponent(t *testing.T) {
	f := newFixture("#/")
	home := &testPage{name: "Home", markup: "<p>home</p>"}
	help := &testPage{name: "Help", markup: "<p>Help</p>"}
	f.router.MustAddPage("/", Page(home))
	f.router.MustAddPage("/help", Page(help))
	f.router.Events(context.Background())
	defer f.router.Close()

	if err := f.router.Enroute(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := home.Navigate("/help"); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}

	if f.loc.Hash() != "#/help" {
		t.Errorf("Expected hash '#/help', got %q", f.loc.Hash())
	}
	if f.doc.Title() != "Help" {
		t.Errorf("Expected Help page after navigation, got %q", f.doc.Title())
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Resolving.String() != "resolving" || Rendered.String() != "rendered" {
		t.Error("Unexpected state names")
	}
}
