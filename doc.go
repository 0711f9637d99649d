// Package xtermgo provides Go bindings for a JavaScript terminal and the
// interface bridge they are built on.
//
// Go values can implement interfaces defined on the JS side, JS objects can
// be handled from Go through typed handles, and both directions share one
// conversion path that never wraps an object twice.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	xtermgo/
//	├── foreign/     Embedded JS runtime: objects, calls, modules, console
//	├── bridge/      Capabilities, descriptors, bridge objects, dual-path conversion
//	├── disposable/  IDisposable, scope-bound disposal wrapper, groups
//	├── listener/    Event listener registration on IEvent-style sources
//	├── readonly/    Typed view over JS arrays
//	├── resource/    Handle table used for live-wrapper bookkeeping
//	├── errors/      Structured error types for debugging
//	├── xterm/       Headless terminal bindings: Terminal, addons, unicode, options
//	└── cmd/run/     CLI to run scripts against a terminal, with a TUI mode
//
// # Quick Start
//
// Create a terminal and listen for input:
//
//	b, err := xterm.NewRuntime()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	term, err := xterm.NewTerminal(b, &xterm.Options{Cols: 80, Rows: 24})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	owner := disposable.New(b, term)
//	defer owner.Close()
//
//	h, err := term.AttachDataEventListener(func(data string) {
//	    fmt.Printf("input: %q\n", data)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//
// # Capabilities
//
// A capability is a named JS interface with a Go counterpart:
//
//	type Addon interface {
//	    disposable.Disposer
//	    Activate(term Terminal) error
//	}
//
//	var AddonCapability = bridge.Define[Addon]("ITerminalAddon",
//	    func(r bridge.Ref) JSAddon { return JSAddon{r} },
//	    bridge.Extends(disposable.Capability))
//
// Converting a Go Addon builds a JS object carrying activate and dispose.
// Converting a JSAddon, or any handle labelled with a descendant capability,
// reuses the object it already refers to.
//
// # Thread Safety
//
// A runtime and everything bridged into it must be used from one goroutine.
// Bridged callbacks run synchronously on that goroutine and may call back
// into Go; mutable state they share should live in a bridge.Cell.
//
// # Memory Model
//
// Go values bridged into JS are pinned for the life of the binder. Disposing
// a listener unsubscribes it but does not release the pinned callback, so
// listeners are meant to be long-lived.
package xtermgo
