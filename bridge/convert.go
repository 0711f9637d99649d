package bridge

import (
	"fmt"
	"reflect"

	"github.com/wippyai/xterm-go/errors"
)

// To converts v into the handle type of d.
//
// When v is already backed by a JS object labelled d or a descendant of d,
// the handle refers to that same object and nothing is built. Otherwise v is
// a local implementation: it is pinned in b and wrapped in a new bridge
// object.
//
// To panics when v is a nil local implementation, or when d only exists on
// the JS side and v is not foreign-backed. Both are programming errors.
func (d *Descriptor[T, H]) To(b *Binder, v T) H {
	if h, ok := d.relabel(b, any(v)); ok {
		return h
	}
	if d.iface == nil {
		panic(errors.Unsupported(errors.PhaseBind, fmt.Sprintf("converting %T to JS-only capability %s", v, d.name)))
	}
	obj, err := b.Build(d, v)
	if err != nil {
		panic(err)
	}
	return d.Wrap(b.rt, obj)
}

// ByRef converts a borrowed v into the handle type of d.
//
// Foreign-backed values are relabelled as in To. A local implementation is
// never moved into the bridge: it must provide Clone() T, and the clone is
// what gets pinned and wrapped. Without Clone, ByRef reports NotCloneable.
func (d *Descriptor[T, H]) ByRef(b *Binder, v T) (H, error) {
	var zero H
	if h, ok := d.relabel(b, any(v)); ok {
		return h, nil
	}
	if d.iface == nil {
		return zero, errors.Unsupported(errors.PhaseBind, fmt.Sprintf("converting %T to JS-only capability %s", v, d.name))
	}
	if any(v) == nil {
		return zero, errors.InvalidInput(errors.PhaseBind, "nil implementation for "+d.name)
	}
	cl, ok := any(v).(interface{ Clone() T })
	if !ok {
		return zero, errors.NotCloneable(d.name, reflect.TypeOf(v).String())
	}
	obj, err := b.Build(d, cl.Clone())
	if err != nil {
		return zero, err
	}
	return d.Wrap(b.rt, obj), nil
}

func (d *Descriptor[T, H]) relabel(b *Binder, v any) (H, bool) {
	src, ok := v.(Backed)
	if !ok {
		var zero H
		return zero, false
	}
	h, ok := d.Relabel(src)
	if ok {
		b.notify(Event{Type: EventRelabelled, Capability: d.name, Object: src.ForeignRef().obj})
	}
	return h, ok
}
