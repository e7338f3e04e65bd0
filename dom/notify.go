//go:build js || wasm

package dom

import (
	"github.com/vcrobe/hashspa/dialogs"
	"github.com/vcrobe/hashspa/runtime"
)

// Compile-time assertion to ensure Alert implements runtime.Notifier.
var _ runtime.Notifier = Alert{}

// Alert notifies the user with window.alert.
type Alert struct{}

// Notify shows msg in a blocking alert.
func (Alert) Notify(msg string) {
	dialogs.Alert(msg)
}
