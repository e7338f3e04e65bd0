//go:build !wasm
// +build !wasm

package console

import (
	"os"

	"go.uber.org/zap/zapcore"
)

// Stub file for non-WASM builds to allow host adapters to compile.
// The actual implementation is in console.go with js/wasm build tags.

// Log is a no-op in non-WASM builds.
func Log(args ...any) {}

// Warn is a no-op in non-WASM builds.
func Warn(args ...any) {}

// Error is a no-op in non-WASM builds.
func Error(args ...any) {}

// Sink returns a locked stderr WriteSyncer so logs still reach the terminal
// when the toolkit runs natively (tests, tooling).
func Sink() zapcore.WriteSyncer {
	return zapcore.Lock(os.Stderr)
}
