// Package xterm binds a headless, xterm.js-shaped terminal running in the
// embedded JS runtime.
//
// The terminal library is compiled into the binary and registered as the
// native module "xterm":
//
//	b, err := xterm.NewRuntime()
//	if err != nil {
//	    return err
//	}
//	term, err := xterm.NewTerminal(b, &xterm.Options{Cols: 80, Rows: 24})
//	if err != nil {
//	    return err
//	}
//	w := disposable.New(b, term)
//	defer w.Close()
//
// # Handles and Capabilities
//
// Terminal, Buffer, Marker and Unicode are handles onto JS objects. They
// are declared with bridge.DefineForeign and cannot be built from Go.
//
// Addon, UnicodeVersionProvider and LogHandler are capabilities Go code can
// implement. Each accepts either a Go implementation, which is bridged, or
// the matching JS* handle, which is passed through unchanged.
//
// # Events
//
// The Attach*EventListener methods return listener handles. Close each one
// to unsubscribe; see package listener for the lifetime rules.
//
// # Output
//
// Writer adapts a Terminal to io.Writer with explicit Flush, for code that
// renders through a buffered writer.
package xterm
