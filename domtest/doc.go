// Package domtest provides in-memory stand-ins for the host collaborators
// used by the toolkit: mount target, navigation source, stylesheet target,
// notifier, event stream and a single-component renderer. They let router
// and renderer behavior be tested natively, without a browser or WASM.
package domtest
