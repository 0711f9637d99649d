// Package foreign wraps the embedded JavaScript runtime that the bridge talks to.
//
// The bridge needs exactly four things from its host environment:
//
//	NewObject  create an empty object
//	SetFunc    set a named slot to a host callback
//	Assign     structurally merge one object into another
//	relabel    reinterpret an object as another type without copying
//
// The first three live on Runtime. Relabelling is purely a Go-side type
// change and is implemented by bridge.Ref.
//
// # Scripts and Modules
//
//	rt, err := foreign.New(foreign.WithModule("xterm", loader))
//	if err != nil {
//	    return err
//	}
//	v, err := rt.Eval("main.js", `require("xterm").Terminal`)
//
// JS exceptions that escape into Go are returned as *errors.Error with Kind
// KindException and the *goja.Exception as Cause. A Go error thrown into JS
// with Runtime.Throw comes back out unchanged when it is not caught by script.
//
// # Threading
//
// A Runtime must be driven from a single goroutine. Host callbacks run
// synchronously on that goroutine whenever script code calls them.
package foreign
