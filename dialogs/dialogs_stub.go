//go:build !wasm
// +build !wasm

package dialogs

// Stub file for non-WASM builds. Native builds have no blocking dialog,
// so Alert writes the message to stdout.

// Alert prints msg in non-WASM builds.
func Alert(msg string) {
	println("alert:", msg)
}
