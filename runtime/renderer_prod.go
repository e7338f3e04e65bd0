//go:build !dev
// +build !dev

package runtime

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vcrobe/hashspa/vdom"
)

// callRender invokes Render in production mode.
// In production mode, a panic is recovered and returned as an error.
func (r *RendererImpl) callRender(c Component) (out vdom.Output, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return c.Render(), nil
}

// callMounted invokes the Mounted lifecycle method in production mode.
// In production mode, panics are recovered and logged to prevent application crashes.
func (r *RendererImpl) callMounted(c Component) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("[Renderer] Mounted panic",
				zap.String("route", c.RouteName()), zap.Any("panic", rec))
		}
	}()
	c.Mounted()
}
