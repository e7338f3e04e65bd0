//go:build js || wasm

package console

import (
	"strings"
	"syscall/js"

	"go.uber.org/zap/zapcore"
)

func Log(args ...any) {
	console := js.Global().Get("console")
	console.Call("log", args...)
}

func Warn(args ...any) {
	console := js.Global().Get("console")
	console.Call("warn", args...)
}

func Error(args ...any) {
	console := js.Global().Get("console")
	console.Call("error", args...)
}

// sink forwards encoded log entries to console.log, one call per entry.
type sink struct{}

func (sink) Write(p []byte) (int, error) {
	Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func (sink) Sync() error { return nil }

// Sink returns a zap WriteSyncer backed by the browser console.
func Sink() zapcore.WriteSyncer {
	return sink{}
}
