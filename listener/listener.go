// Package listener attaches Go callbacks to JS event sources.
//
// The callback is bridged into a JS function and pinned for the life of the
// process: disposing the returned handle unsubscribes it from the source,
// but the Go function and its thunk are never reclaimed. Listeners are
// expected to be long-lived. Code that attaches listeners repeatedly must
// dispose each handle, or memory grows with every attach.
package listener

import (
	"github.com/wippyai/xterm-go/bridge"
	"github.com/wippyai/xterm-go/disposable"
	"github.com/wippyai/xterm-go/errors"
)

// Handle unsubscribes a listener when closed.
type Handle = disposable.Wrapper[disposable.Disposable]

// Attach subscribes cb to event on source by calling source[event](fn),
// the IEvent convention, and wraps the IDisposable it returns.
//
// The handle must be closed to stop delivery. Dropping it without Close
// leaves the listener attached: cb keeps firing and stays in memory, and
// the handle is reported as leaked once collected.
//
// If the source registers fn but returns something other than an
// IDisposable, Attach returns an error and cb is detached on the Go side:
// the source keeps the function but calls to it no longer reach cb.
func Attach[E any](b *bridge.Binder, source bridge.Backed, event string, cb func(E)) (*Handle, error) {
	if cb == nil {
		return nil, errors.InvalidInput(errors.PhaseBind, "nil callback for "+event)
	}
	ref := source.ForeignRef()
	if ref.IsZero() {
		return nil, errors.InvalidInput(errors.PhaseBind, "attach "+event+" to nil source")
	}

	detached := false
	fn, err := b.Func(event, func(e E) {
		if !detached {
			cb(e)
		}
	})
	if err != nil {
		return nil, err
	}
	v, err := ref.Call(event, fn)
	if err != nil {
		return nil, err
	}
	d, err := disposable.Capability.WrapValue(b.Runtime(), v)
	if err != nil {
		detached = true
		return nil, errors.New(errors.PhaseBind, errors.KindTypeMismatch).
			Path(event).
			Detail("event registration did not return an IDisposable; callback detached").
			Cause(err).
			Build()
	}
	return disposable.New(b, d, disposable.WithKind("listener:"+event)), nil
}
