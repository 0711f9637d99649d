package bridge

import (
	"github.com/dop251/goja"

	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/foreign"
)

// Backed marks values that already carry a JS object. It is the marker
// relation used by the dual-path conversion: a Backed value whose label
// descends from the target capability is relabelled instead of bridged.
//
// Handle types get it by embedding Ref.
type Backed interface {
	ForeignRef() Ref
}

// Ref is a labelled reference to a JS object. Copying a Ref copies the
// reference, never the object.
type Ref struct {
	rt         *foreign.Runtime
	obj        *goja.Object
	capability Capability
}

// NewRef labels obj as capability c. Prefer Descriptor.Wrap, which returns
// the typed handle directly.
func NewRef(rt *foreign.Runtime, obj *goja.Object, c Capability) Ref {
	return Ref{rt: rt, obj: obj, capability: c}
}

// ForeignRef implements Backed.
func (r Ref) ForeignRef() Ref { return r }

// Object returns the referenced JS object.
func (r Ref) Object() *goja.Object { return r.obj }

// Runtime returns the runtime that owns the object.
func (r Ref) Runtime() *foreign.Runtime { return r.rt }

// Capability returns the label the reference carries.
func (r Ref) Capability() Capability { return r.capability }

// IsZero reports whether the reference points at nothing.
func (r Ref) IsZero() bool { return r.obj == nil }

// SameAs reports whether both values refer to the same JS object.
func (r Ref) SameAs(other Backed) bool {
	if other == nil {
		return false
	}
	o := other.ForeignRef().obj
	if r.obj == nil || o == nil {
		return r.obj == nil && o == nil
	}
	return r.obj.SameAs(o)
}

// Get reads a property of the referenced object. Missing properties yield
// undefined.
func (r Ref) Get(name string) goja.Value {
	if r.obj == nil {
		return goja.Undefined()
	}
	v := r.obj.Get(name)
	if v == nil {
		return goja.Undefined()
	}
	return v
}

// Call invokes a method of the referenced object. Calling through a zero
// Ref, such as an unset handle field, returns a KindNotInitialized error.
func (r Ref) Call(method string, args ...any) (goja.Value, error) {
	if r.obj == nil || r.rt == nil {
		return nil, errors.NotInitialized(errors.PhaseCall, "reference for "+method)
	}
	return r.rt.CallMethod(r.obj, method, args...)
}

// Importer is implemented by types that decode themselves from a JS value
// when they appear as a bridged method argument.
type Importer interface {
	ImportForeign(rt *foreign.Runtime, v goja.Value) error
}
