// Package appctx holds the application context handed to every component
// and subsystem that needs logging or environment information.
//
// There is no package-level application handle: callers build one Context in
// main and pass it down explicitly.
package appctx

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vcrobe/hashspa/console"
)

// Env describes what the host environment offers.
type Env struct {
	// Dev enables development logging (debug level, human-readable encoder).
	Dev bool

	// EventSource reports whether server-sent events can be subscribed to.
	EventSource bool

	// Alert reports whether blocking dialogs are available.
	Alert bool
}

// Context is the explicitly constructed application context.
type Context struct {
	Env    Env
	Logger *zap.Logger

	// Events subscribes to a server-sent event stream. It is nil when the
	// host has no EventSource support.
	Events EventSubscriber
}

// EventSubscriber opens a server-sent event stream and delivers every
// message payload to fn. The returned func closes the stream.
type EventSubscriber interface {
	Subscribe(url string, fn func(data string)) (cancel func())
}

// Option configures a Context.
type Option func(*Context)

// WithLogger replaces the default console-backed logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Context) {
		c.Logger = logger
	}
}

// WithEvents installs the server-sent event subscriber.
func WithEvents(sub EventSubscriber) Option {
	return func(c *Context) {
		c.Events = sub
		c.Env.EventSource = sub != nil
	}
}

// New creates a Context for env. Unless WithLogger is given, log entries go
// to console.Sink.
func New(env Env, opts ...Option) *Context {
	c := &Context{Env: env}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = newLogger(env.Dev)
	}
	return c
}

// Nop returns a Context that discards all log output. Useful in tests.
func Nop() *Context {
	return &Context{Logger: zap.NewNop()}
}

// Named returns the context logger scoped to a subsystem.
func (c *Context) Named(name string) *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger.Named(name)
}

func newLogger(dev bool) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	level := zapcore.InfoLevel
	var enc zapcore.Encoder
	if dev {
		encCfg = zap.NewDevelopmentEncoderConfig()
		level = zapcore.DebugLevel
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, console.Sink(), level)
	return zap.New(core)
}
