package appcomponents

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/vcrobe/hashspa/appctx"
	"github.com/vcrobe/hashspa/runtime"
	"github.com/vcrobe/hashspa/stylesheet"
	"github.com/vcrobe/hashspa/vdom"
)

// CounterEndpoint serves the counter: POST increments it, GET streams it.
const CounterEndpoint = "/sse_testing"

// CounterPage shows the server counter streamed over server-sent events.
type CounterPage struct {
	runtime.ComponentBase

	app    *appctx.Context
	log    *zap.Logger
	styles *stylesheet.DynamicStyleSheet
	client *http.Client
	base   string

	mu     sync.Mutex
	cancel func()
}

// NewCounterPage creates the counter page. base is the server origin
// ("" for same-origin); styles may be nil.
func NewCounterPage(app *appctx.Context, styles *stylesheet.DynamicStyleSheet, base string) *CounterPage {
	return &CounterPage{
		app:    app,
		log:    app.Named("counter"),
		styles: styles,
		client: http.DefaultClient,
		base:   base,
	}
}

func (c *CounterPage) RouteName() string {
	return "Counter"
}

func (c *CounterPage) Styles() *stylesheet.DynamicStyleSheet {
	return c.styles
}

func (c *CounterPage) BeforeMount(ctx context.Context) *runtime.Promise {
	return runtime.Resolved(0)
}

func (c *CounterPage) Render() vdom.Output {
	count, _ := c.State().(int)
	return vdom.Node(vdom.H("section", vdom.Attrs{"class": "counter"},
		vdom.H("h1", nil, "Counter"),
		vdom.H("p", vdom.Attrs{"id": "count"}, strconv.Itoa(count)),
		vdom.Button("Increment", vdom.Attrs{"onClick": func() {
			go func() {
				if err := c.Increment(context.Background()); err != nil {
					c.log.Warn("increment failed", zap.Error(err))
				}
			}()
		}}),
	))
}

// Mounted subscribes to the counter stream.
func (c *CounterPage) Mounted() {
	if c.app == nil || c.app.Events == nil {
		c.log.Info("no EventSource support, counter will not update")
		return
	}

	cancel := c.app.Events.Subscribe(c.base+CounterEndpoint, c.onMessage)

	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
}

func (c *CounterPage) onMessage(data string) {
	n, err := strconv.Atoi(data)
	if err != nil {
		c.log.Warn("bad counter message", zap.String("data", data))
		return
	}
	c.SetState(n)
	if err := c.StateHasChanged(); err != nil {
		c.log.Warn("re-render failed", zap.Error(err))
	}
}

// Unmount closes the stream and returns the last count.
func (c *CounterPage) Unmount(ctx context.Context) *runtime.Promise {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	return runtime.Resolved(c.State())
}

// Increment asks the server to bump the counter.
func (c *CounterPage) Increment(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+CounterEndpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("increment: unexpected status %s", resp.Status)
	}
	return nil
}
