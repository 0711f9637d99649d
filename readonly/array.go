// Package readonly provides a typed, read-only view of a JS array.
package readonly

import (
	"iter"
	"strconv"

	"github.com/dop251/goja"

	"github.com/wippyai/xterm-go/bridge"
	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/foreign"
)

// Array is a read-only view of a JS array whose elements convert to T.
// It reads through to the array on every call, so changes made by script
// code are visible. The zero Array is empty.
type Array[T any] struct {
	rt  *foreign.Runtime
	obj *goja.Object
}

// New views obj as an Array. obj must be a JS array.
func New[T any](rt *foreign.Runtime, obj *goja.Object) (Array[T], error) {
	if obj == nil {
		return Array[T]{}, errors.TypeMismatch(errors.PhaseConvert, []string{"ReadonlyArray"}, "readonly.Array", "undefined")
	}
	if obj.ClassName() != "Array" {
		return Array[T]{}, errors.TypeMismatch(errors.PhaseConvert, []string{"ReadonlyArray"}, "readonly.Array", foreign.TypeOf(obj))
	}
	return Array[T]{rt: rt, obj: obj}, nil
}

// FromValue is New for a JS value.
func FromValue[T any](rt *foreign.Runtime, v goja.Value) (Array[T], error) {
	obj, _ := v.(*goja.Object)
	if obj == nil {
		return Array[T]{}, errors.TypeMismatch(errors.PhaseConvert, []string{"ReadonlyArray"}, "readonly.Array", foreign.TypeOf(v))
	}
	return New[T](rt, obj)
}

// ImportForeign lets Array appear as a bridged method argument.
func (a *Array[T]) ImportForeign(rt *foreign.Runtime, v goja.Value) error {
	if goja.IsUndefined(v) || goja.IsNull(v) {
		*a = Array[T]{}
		return nil
	}
	arr, err := FromValue[T](rt, v)
	if err != nil {
		return err
	}
	*a = arr
	return nil
}

// ForeignRef returns the underlying array so bridged methods can return an
// Array unchanged.
func (a Array[T]) ForeignRef() bridge.Ref {
	return bridge.NewRef(a.rt, a.obj, nil)
}

// Object returns the underlying JS array.
func (a Array[T]) Object() *goja.Object {
	return a.obj
}

// Len returns the array length.
func (a Array[T]) Len() int {
	if a.obj == nil {
		return 0
	}
	return int(a.obj.Get("length").ToInteger())
}

// At returns element i. Negative i counts from the end.
func (a Array[T]) At(i int) (T, error) {
	var zero T
	n := a.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return zero, errors.New(errors.PhaseConvert, errors.KindInvalidInput).
			Path("ReadonlyArray", "at").
			Value(i).
			Detail("index out of range [0, %d)", n).
			Build()
	}
	return a.convert(a.obj.Get(strconv.Itoa(i)))
}

// All iterates over index/element pairs. Iteration stops at the first
// element that does not convert to T.
func (a Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		n := a.Len()
		for i := 0; i < n; i++ {
			v, err := a.convert(a.obj.Get(strconv.Itoa(i)))
			if err != nil || !yield(i, v) {
				return
			}
		}
	}
}

// Values iterates over the elements, with the same stopping rule as All.
func (a Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range a.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Export copies the elements into a Go slice.
func (a Array[T]) Export() ([]T, error) {
	n := a.Len()
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := a.convert(a.obj.Get(strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// IndexOf returns the first index holding v by strict equality, or -1.
func (a Array[T]) IndexOf(v T) int {
	if a.obj == nil {
		return -1
	}
	r, err := a.rt.CallMethod(a.obj, "indexOf", v)
	if err != nil {
		return -1
	}
	return int(r.ToInteger())
}

// Includes reports whether the array holds v.
func (a Array[T]) Includes(v T) bool {
	return a.IndexOf(v) >= 0
}

// Join concatenates the elements' string forms with sep.
func (a Array[T]) Join(sep string) string {
	if a.obj == nil {
		return ""
	}
	r, err := a.rt.CallMethod(a.obj, "join", sep)
	if err != nil {
		return ""
	}
	return r.String()
}

// Slice returns a view of a copy of elements [start, end), with JS slice
// semantics for negative and out-of-range bounds.
func (a Array[T]) Slice(start, end int) (Array[T], error) {
	if a.obj == nil {
		return Array[T]{}, nil
	}
	r, err := a.rt.CallMethod(a.obj, "slice", start, end)
	if err != nil {
		return Array[T]{}, err
	}
	return FromValue[T](a.rt, r)
}

func (a Array[T]) convert(v goja.Value) (T, error) {
	var out T
	if x, ok := any(v).(T); ok {
		return x, nil
	}
	if err := a.rt.VM().ExportTo(v, &out); err != nil {
		var zero T
		return zero, errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
			Path("ReadonlyArray").
			JSType(foreign.TypeOf(v)).
			Cause(err).
			Build()
	}
	return out, nil
}
