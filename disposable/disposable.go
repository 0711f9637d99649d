package disposable

import (
	"github.com/wippyai/xterm-go/bridge"
)

// Disposer is the Go side of the IDisposable interface.
type Disposer interface {
	Dispose() error
}

// Disposable is a JS object known to satisfy IDisposable.
type Disposable struct{ bridge.Ref }

// Dispose calls the object's dispose method.
func (d Disposable) Dispose() error {
	_, err := d.Call("dispose")
	return err
}

// Capability describes IDisposable. Interfaces with a dispose method extend it.
var Capability = bridge.Define[Disposer]("IDisposable", func(r bridge.Ref) Disposable { return Disposable{r} })

type noop struct{}

func (noop) Dispose() error { return nil }

// NoOp returns a disposable whose dispose does nothing, for APIs that must
// hand back an IDisposable when there is nothing to tear down.
func NoOp(b *bridge.Binder) Disposable {
	return Capability.To(b, noop{})
}
