package xterm

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/xterm-go/bridge"
	"github.com/wippyai/xterm-go/disposable"
	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/listener"
)

// Terminal is a terminal instance living in the JS runtime.
//
// Terminal is a value handle: copies refer to the same instance. Its
// methods must be called on the goroutine driving the runtime.
type Terminal struct{ bridge.Ref }

// TerminalCapability labels terminal objects. Terminals are IDisposable,
// so a Terminal can be handed to disposable.New without building anything.
var TerminalCapability = bridge.DefineForeign("Terminal",
	func(r bridge.Ref) Terminal { return Terminal{r} },
	bridge.Extends(disposable.Capability))

// NewTerminal constructs a terminal. A nil opts uses the library defaults.
func NewTerminal(b *bridge.Binder, opts *Options) (Terminal, error) {
	rt := b.Runtime()
	mod, err := exports(rt)
	if err != nil {
		return Terminal{}, err
	}

	var init goja.Value = goja.Undefined()
	if opts != nil {
		if err := opts.Validate(); err != nil {
			return Terminal{}, err
		}
		obj, err := opts.object(b)
		if err != nil {
			return Terminal{}, err
		}
		init = obj
	}

	obj, err := rt.Construct(mod.Get("Terminal"), init)
	if err != nil {
		return Terminal{}, err
	}
	t := TerminalCapability.Wrap(rt, obj)
	Logger().Debug("terminal created", zap.Int("cols", t.Cols()), zap.Int("rows", t.Rows()))
	return t, nil
}

func (t Terminal) binder() (*bridge.Binder, error) {
	return bridge.NewBinder(t.Runtime())
}

// Cols returns the number of columns.
func (t Terminal) Cols() int { return int(t.Get("cols").ToInteger()) }

// Rows returns the number of rows.
func (t Terminal) Rows() int { return int(t.Get("rows").ToInteger()) }

// Write writes data to the terminal. Escape sequences are interpreted.
func (t Terminal) Write(data string) error {
	_, err := t.Call("write", data)
	return err
}

// Writeln writes data followed by CRLF.
func (t Terminal) Writeln(data string) error {
	_, err := t.Call("writeln", data)
	return err
}

// Input feeds data as if typed by the user. It fires onData unless stdin
// is disabled.
func (t Terminal) Input(data string) error {
	_, err := t.Call("input", data, true)
	return err
}

// Paste feeds data as pasted text: newlines become carriage returns.
func (t Terminal) Paste(data string) error {
	_, err := t.Call("paste", data)
	return err
}

// PressKey simulates a key press. It fires onKey and then onData.
func (t Terminal) PressKey(ev KeyboardEvent) error {
	domEvent, err := ev.object(t.Runtime())
	if err != nil {
		return err
	}
	_, err = t.Call("pressKey", ev.Key, domEvent)
	return err
}

// InputBinary feeds binary input such as mouse reports. It fires onBinary.
func (t Terminal) InputBinary(data string) error {
	_, err := t.Call("inputBinary", data)
	return err
}

// Resize changes the terminal size. Both dimensions must be positive.
func (t Terminal) Resize(cols, rows int) error {
	_, err := t.Call("resize", cols, rows)
	return err
}

// Clear clears the buffer, keeping the cursor line as the first row.
func (t Terminal) Clear() error {
	_, err := t.Call("clear")
	return err
}

// Reset resets the buffer and cursor.
func (t Terminal) Reset() error {
	_, err := t.Call("reset")
	return err
}

// Dispose tears the terminal down: loaded addons are disposed, markers
// removed and listeners released. It implements disposable.Disposer.
func (t Terminal) Dispose() error {
	_, err := t.Call("dispose")
	return err
}

// Option reads a live option value.
func (t Terminal) Option(name string) goja.Value {
	obj, ok := t.Get("options").(*goja.Object)
	if !ok {
		return goja.Undefined()
	}
	v := obj.Get(name)
	if v == nil {
		return goja.Undefined()
	}
	return v
}

// SetOption changes a live option value.
func (t Terminal) SetOption(name string, v any) error {
	obj, ok := t.Get("options").(*goja.Object)
	if !ok {
		return errors.NotFound(errors.PhaseCall, "property", "options")
	}
	return t.Runtime().SetProperty(obj, name, v)
}

// ActiveBuffer returns the buffer currently shown.
func (t Terminal) ActiveBuffer() (Buffer, error) {
	buffers, ok := t.Get("buffer").(*goja.Object)
	if !ok {
		return Buffer{}, errors.NotFound(errors.PhaseCall, "property", "buffer")
	}
	return BufferCapability.WrapValue(t.Runtime(), buffers.Get("active"))
}

// Unicode returns the terminal's Unicode handling.
func (t Terminal) Unicode() (Unicode, error) {
	return UnicodeCapability.WrapValue(t.Runtime(), t.Get("unicode"))
}

// RegisterMarker adds a marker at the cursor line plus offset. The marker
// moves with its line and is disposed once the line is trimmed.
func (t Terminal) RegisterMarker(offset int) (Marker, error) {
	v, err := t.Call("registerMarker", offset)
	if err != nil {
		return Marker{}, err
	}
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return Marker{}, errors.New(errors.PhaseCall, errors.KindInvalidInput).
			Path("registerMarker").
			Value(offset).
			Detail("cursor offset is outside the buffer").
			Build()
	}
	return MarkerCapability.WrapValue(t.Runtime(), v)
}

// LoadAddon activates addon on the terminal. Go addons are bridged; JS
// addons pass through as they are. The terminal disposes loaded addons when
// it is disposed.
func (t Terminal) LoadAddon(addon Addon) error {
	b, err := t.binder()
	if err != nil {
		return err
	}
	h := AddonCapability.To(b, addon)
	_, err = t.Call("loadAddon", h.Object())
	return err
}

// AttachKeyEventListener calls cb for every key press.
func (t Terminal) AttachKeyEventListener(cb func(KeyEvent)) (*listener.Handle, error) {
	return attach(t, "onKey", cb)
}

// AttachBinaryEventListener calls cb for binary input.
func (t Terminal) AttachBinaryEventListener(cb func(string)) (*listener.Handle, error) {
	return attach(t, "onBinary", cb)
}

// AttachDataEventListener calls cb for all input data.
func (t Terminal) AttachDataEventListener(cb func(string)) (*listener.Handle, error) {
	return attach(t, "onData", cb)
}

// AttachResizeEventListener calls cb after the size changes.
func (t Terminal) AttachResizeEventListener(cb func(ResizeEvent)) (*listener.Handle, error) {
	return attach(t, "onResize", cb)
}

// AttachTitleChangeEventListener calls cb when an OSC 0 or 2 sequence sets
// the title.
func (t Terminal) AttachTitleChangeEventListener(cb func(string)) (*listener.Handle, error) {
	return attach(t, "onTitleChange", cb)
}

// AttachLineFeedEventListener calls cb for every line feed, including
// automatic wraps.
func (t Terminal) AttachLineFeedEventListener(cb func()) (*listener.Handle, error) {
	if cb == nil {
		return nil, errors.InvalidInput(errors.PhaseBind, "nil callback for onLineFeed")
	}
	return attach(t, "onLineFeed", func(goja.Value) { cb() })
}

// AttachBellEventListener calls cb when the bell character is written.
func (t Terminal) AttachBellEventListener(cb func()) (*listener.Handle, error) {
	if cb == nil {
		return nil, errors.InvalidInput(errors.PhaseBind, "nil callback for onBell")
	}
	return attach(t, "onBell", func(goja.Value) { cb() })
}

// AttachScrollEventListener calls cb with the new viewport position.
func (t Terminal) AttachScrollEventListener(cb func(int)) (*listener.Handle, error) {
	return attach(t, "onScroll", cb)
}

func attach[E any](t Terminal, event string, cb func(E)) (*listener.Handle, error) {
	b, err := t.binder()
	if err != nil {
		return nil, err
	}
	return listener.Attach(b, t, event, cb)
}
