package xterm

import (
	"github.com/dop251/goja"

	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/foreign"
)

// KeyboardEvent is the subset of a DOM keyboard event the terminal reports.
type KeyboardEvent struct {
	Key      string
	Code     string
	AltKey   bool
	CtrlKey  bool
	ShiftKey bool
	MetaKey  bool
}

func (e KeyboardEvent) object(rt *foreign.Runtime) (*goja.Object, error) {
	obj := rt.NewObject()
	fields := []struct {
		name string
		v    any
	}{
		{"key", e.Key},
		{"code", e.Code},
		{"altKey", e.AltKey},
		{"ctrlKey", e.CtrlKey},
		{"shiftKey", e.ShiftKey},
		{"metaKey", e.MetaKey},
	}
	for _, f := range fields {
		if err := rt.SetProperty(obj, f.name, f.v); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// ImportForeign implements bridge.Importer.
func (e *KeyboardEvent) ImportForeign(rt *foreign.Runtime, v goja.Value) error {
	obj, ok := v.(*goja.Object)
	if !ok {
		return errors.TypeMismatch(errors.PhaseConvert, []string{"domEvent"}, "KeyboardEvent", foreign.TypeOf(v))
	}
	e.Key = stringProp(obj, "key")
	e.Code = stringProp(obj, "code")
	e.AltKey = boolProp(obj, "altKey")
	e.CtrlKey = boolProp(obj, "ctrlKey")
	e.ShiftKey = boolProp(obj, "shiftKey")
	e.MetaKey = boolProp(obj, "metaKey")
	return nil
}

// KeyEvent is the payload of onKey.
type KeyEvent struct {
	Key      string
	DomEvent KeyboardEvent
}

// ImportForeign implements bridge.Importer.
func (e *KeyEvent) ImportForeign(rt *foreign.Runtime, v goja.Value) error {
	obj, ok := v.(*goja.Object)
	if !ok {
		return errors.TypeMismatch(errors.PhaseConvert, []string{"onKey"}, "KeyEvent", foreign.TypeOf(v))
	}
	e.Key = stringProp(obj, "key")
	if dom, ok := obj.Get("domEvent").(*goja.Object); ok {
		return e.DomEvent.ImportForeign(rt, dom)
	}
	return nil
}

// ResizeEvent is the payload of onResize.
type ResizeEvent struct {
	Cols int
	Rows int
}

// ImportForeign implements bridge.Importer.
func (e *ResizeEvent) ImportForeign(rt *foreign.Runtime, v goja.Value) error {
	obj, ok := v.(*goja.Object)
	if !ok {
		return errors.TypeMismatch(errors.PhaseConvert, []string{"onResize"}, "ResizeEvent", foreign.TypeOf(v))
	}
	e.Cols = intProp(obj, "cols")
	e.Rows = intProp(obj, "rows")
	return nil
}

func stringProp(obj *goja.Object, name string) string {
	v := obj.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	return v.String()
}

func boolProp(obj *goja.Object, name string) bool {
	v := obj.Get(name)
	return v != nil && v.ToBoolean()
}

func intProp(obj *goja.Object, name string) int {
	v := obj.Get(name)
	if v == nil {
		return 0
	}
	return int(v.ToInteger())
}
