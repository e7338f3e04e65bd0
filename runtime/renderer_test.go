//go:build !wasm
// +build !wasm

package runtime_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vcrobe/hashspa/domtest"
	"github.com/vcrobe/hashspa/runtime"
	"github.com/vcrobe/hashspa/stylesheet"
	"github.com/vcrobe/hashspa/vdom"
)

// counterView renders its state as a node tree.
type counterView struct {
	runtime.ComponentBase

	before  func(ctx context.Context) *runtime.Promise
	mounted []string
	doc     *domtest.Document
	styles  *stylesheet.DynamicStyleSheet
}

func (c *counterView) RouteName() string { return "Counter" }

func (c *counterView) Render() vdom.Output {
	return vdom.Node(vdom.H("div", vdom.Attrs{"id": "count"}, c.State()))
}

func (c *counterView) BeforeMount(ctx context.Context) *runtime.Promise {
	if c.before != nil {
		return c.before(ctx)
	}
	return runtime.Resolved(0)
}

func (c *counterView) Mounted() {
	// Record what the document looked like when the hook fired.
	if c.doc != nil {
		c.mounted = append(c.mounted, c.doc.Markup())
	}
}

func (c *counterView) Styles() *stylesheet.DynamicStyleSheet { return c.styles }

type panicView struct {
	runtime.ComponentBase
}

func (p *panicView) RouteName() string   { return "Panic" }
func (p *panicView) Render() vdom.Output { panic("render exploded") }

func TestRender_SyncBeforeMount(t *testing.T) {
	// Arrange
	doc := domtest.NewDocument()
	r := runtime.NewRenderer(doc, &domtest.Alerts{})
	view := &counterView{doc: doc, before: func(ctx context.Context) *runtime.Promise {
		return runtime.Resolved(7)
	}}

	// Act
	if err := r.Render(context.Background(), view); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Assert
	if got := doc.Markup(); got != `<div id="count">7</div>` {
		t.Errorf("Unexpected markup %q", got)
	}
	if doc.Title() != "Counter" {
		t.Errorf("Expected title 'Counter', got %q", doc.Title())
	}
	if view.State() != 7 {
		t.Errorf("Expected state 7, got %v", view.State())
	}
	if len(view.mounted) != 1 || view.mounted[0] != `<div id="count">7</div>` {
		t.Errorf("Expected Mounted after commit, saw %v", view.mounted)
	}
}

func TestRender_AsyncBeforeMount(t *testing.T) {
	doc := domtest.NewDocument()
	r := runtime.NewRenderer(doc, &domtest.Alerts{})
	view := &counterView{before: func(ctx context.Context) *runtime.Promise {
		return runtime.Async(ctx, func(ctx context.Context) (any, error) {
			time.Sleep(5 * time.Millisecond)
			return 42, nil
		})
	}}

	if err := r.Render(context.Background(), view); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := doc.Markup(); got != `<div id="count">42</div>` {
		t.Errorf("Unexpected markup %q", got)
	}
}

func TestRender_TitleSetBeforeCommit(t *testing.T) {
	doc := domtest.NewDocument()
	r := runtime.NewRenderer(doc, &domtest.Alerts{})

	if err := r.Render(context.Background(), &counterView{}); err != nil {
		t.Fatal(err)
	}

	ops := strings.Join(doc.Ops(), ",")
	if !strings.HasPrefix(ops, "clear,title,") {
		t.Errorf("Expected clear and title before commit, got %s", ops)
	}
}

func TestRender_RejectionNotifies(t *testing.T) {
	doc := domtest.NewDocument()
	alerts := &domtest.Alerts{}
	r := runtime.NewRenderer(doc, alerts)

	doc.SetInnerHTML("<p>previous view</p>")

	view := &counterView{before: func(ctx context.Context) *runtime.Promise {
		return runtime.Async(ctx, func(ctx context.Context) (any, error) {
			return nil, errors.New("boom")
		})
	}}
	err := r.Render(context.Background(), view)

	var lerr *runtime.LifecycleError
	if !errors.As(err, &lerr) {
		t.Fatalf("Expected LifecycleError, got %v", err)
	}
	if lerr.Hook != "beforeMount" || lerr.RouteName != "Counter" {
		t.Errorf("Unexpected error fields: %+v", lerr)
	}

	msgs := alerts.Messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "boom") {
		t.Errorf("Expected notification containing 'boom', got %v", msgs)
	}
	if doc.Markup() != "" {
		t.Errorf("Expected cleared target, got %q", doc.Markup())
	}
}

func TestRender_PanicInRenderIsReported(t *testing.T) {
	doc := domtest.NewDocument()
	alerts := &domtest.Alerts{}
	r := runtime.NewRenderer(doc, alerts)

	err := r.Render(context.Background(), &panicView{})
	if err == nil {
		t.Fatal("Expected error from panicking Render")
	}
	if len(alerts.Messages()) != 1 {
		t.Errorf("Expected one notification, got %v", alerts.Messages())
	}
}

func TestRender_OverlappingRendersLastCommitWins(t *testing.T) {
	doc := domtest.NewDocument()
	r := runtime.NewRenderer(doc, &domtest.Alerts{})
	release := make(chan struct{})

	slow := &counterView{before: func(ctx context.Context) *runtime.Promise {
		return runtime.Async(ctx, func(ctx context.Context) (any, error) {
			<-release
			return "slow", nil
		})
	}}
	fast := &counterView{before: func(ctx context.Context) *runtime.Promise {
		return runtime.Resolved("fast")
	}}

	done := make(chan error)
	go func() { done <- r.Render(context.Background(), slow) }()

	// Wait until the slow render has cleared the target and is suspended.
	for !strings.Contains(strings.Join(doc.Ops(), ","), "title") {
		time.Sleep(time.Millisecond)
	}
	if err := r.Render(context.Background(), fast); err != nil {
		t.Fatal(err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	if got := doc.Markup(); got != `<div id="count">slow</div>` {
		t.Errorf("Expected the later commit to win, got %q", got)
	}
}

func TestRender_MountsAndUnmountsStyles(t *testing.T) {
	ctx := context.Background()
	head := domtest.NewHead()
	styles, err := stylesheet.New(ctx, head, &stylesheet.StyleSheet{URL: "counter.css"})
	if err != nil {
		t.Fatal(err)
	}
	doc := domtest.NewDocument()
	r := runtime.NewRenderer(doc, &domtest.Alerts{})
	view := &counterView{styles: styles}

	if err := r.Render(ctx, view); err != nil {
		t.Fatal(err)
	}
	if got := head.Attached(); len(got) != 1 || got[0] != "counter.css" {
		t.Errorf("Expected counter.css attached, got %v", got)
	}

	state, err := r.Unmount(ctx, view)
	if err != nil {
		t.Fatalf("Unmount failed: %v", err)
	}
	if state != 0 {
		t.Errorf("Expected final state 0, got %v", state)
	}
	if len(head.Attached()) != 0 {
		t.Errorf("Expected styles detached, got %v", head.Attached())
	}
}

func TestNavigate_WithoutManager(t *testing.T) {
	r := runtime.NewRenderer(domtest.NewDocument(), nil)
	if err := r.Navigate("/x"); err == nil {
		t.Error("Expected error without navigation manager")
	}

	var base runtime.ComponentBase
	if err := base.Navigate("/x"); err == nil {
		t.Error("Expected error from unmounted component")
	}
}

func TestStateHasChanged_Recommits(t *testing.T) {
	ctx := context.Background()
	doc := domtest.NewDocument()
	r := runtime.NewRenderer(doc, &domtest.Alerts{})
	view := &counterView{}

	if err := r.Render(ctx, view); err != nil {
		t.Fatal(err)
	}

	view.SetState(5)
	if err := view.StateHasChanged(); err != nil {
		t.Fatalf("StateHasChanged failed: %v", err)
	}
	if got := doc.Markup(); got != `<div id="count">5</div>` {
		t.Errorf("Expected re-rendered markup, got %q", got)
	}

	// After unmount the component no longer owns the target.
	if _, err := r.Unmount(ctx, view); err != nil {
		t.Fatal(err)
	}
	view.SetState(9)
	_ = view.StateHasChanged()
	if got := doc.Markup(); got != `<div id="count">5</div>` {
		t.Errorf("Expected no commit after unmount, got %q", got)
	}
}
