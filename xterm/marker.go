package xterm

import (
	"github.com/dop251/goja"

	"github.com/wippyai/xterm-go/bridge"
	"github.com/wippyai/xterm-go/disposable"
	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/listener"
)

// Marker tracks a buffer line as lines are added and trimmed.
type Marker struct{ bridge.Ref }

// MarkerCapability labels IMarker objects.
var MarkerCapability = bridge.DefineForeign("IMarker",
	func(r bridge.Ref) Marker { return Marker{r} },
	bridge.Extends(disposable.Capability))

// ID returns the marker's unique id.
func (m Marker) ID() int { return int(m.Get("id").ToInteger()) }

// IsDisposed reports whether the marker was disposed, either explicitly or
// because its line left the buffer.
func (m Marker) IsDisposed() bool { return m.Get("isDisposed").ToBoolean() }

// Line returns the buffer line, or -1 once disposed.
func (m Marker) Line() int { return int(m.Get("line").ToInteger()) }

// GetLine is Line with the -1 sentinel reported as false.
func (m Marker) GetLine() (int, bool) {
	line := m.Line()
	if line < 0 {
		return 0, false
	}
	return line, true
}

// Dispose removes the marker.
func (m Marker) Dispose() error {
	_, err := m.Call("dispose")
	return err
}

// AttachDisposeListener calls cb once when the marker is disposed.
func (m Marker) AttachDisposeListener(cb func()) (*listener.Handle, error) {
	if cb == nil {
		return nil, errors.InvalidInput(errors.PhaseBind, "nil callback for onDispose")
	}
	b, err := bridge.NewBinder(m.Runtime())
	if err != nil {
		return nil, err
	}
	return listener.Attach(b, m, "onDispose", func(goja.Value) { cb() })
}
