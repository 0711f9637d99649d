package bridge

import (
	"math"
	"reflect"

	"github.com/dop251/goja"

	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/foreign"
)

var (
	errorType    = reflect.TypeFor[error]()
	valueType    = reflect.TypeFor[goja.Value]()
	objectType   = reflect.TypeFor[*goja.Object]()
	importerType = reflect.TypeFor[Importer]()
)

func importArgs(rt *foreign.Runtime, sig Signature, args []goja.Value, path []string) ([]reflect.Value, error) {
	out := make([]reflect.Value, 0, len(sig.In))
	for i, t := range sig.In {
		if sig.Variadic && i == len(sig.In)-1 {
			for j := i; j < len(args); j++ {
				v, err := importValue(rt, args[j], t.Elem(), argPath(path, j))
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			break
		}
		var arg goja.Value = goja.Undefined()
		if i < len(args) {
			arg = args[i]
		}
		v, err := importValue(rt, arg, t, argPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// importValue converts a JS argument to the Go parameter type t.
func importValue(rt *foreign.Runtime, v goja.Value, t reflect.Type, path []string) (reflect.Value, error) {
	if v == nil {
		v = goja.Undefined()
	}
	absent := goja.IsUndefined(v) || goja.IsNull(v)

	switch t {
	case valueType:
		return reflect.ValueOf(&v).Elem(), nil
	case objectType:
		if absent {
			return reflect.Zero(t), nil
		}
		obj, ok := v.(*goja.Object)
		if !ok {
			return reflect.Value{}, mismatch(path, t, v)
		}
		return reflect.ValueOf(obj), nil
	}

	if c, ok := handleCapability(t); ok {
		if absent {
			return reflect.Zero(t), nil
		}
		obj, ok := v.(*goja.Object)
		if !ok {
			return reflect.Value{}, mismatch(path, t, v)
		}
		return reflect.ValueOf(c.wrapRef(Ref{rt: rt, obj: obj, capability: c})), nil
	}

	if reflect.PointerTo(t).Implements(importerType) {
		p := reflect.New(t)
		if err := p.Interface().(Importer).ImportForeign(rt, v); err != nil {
			return reflect.Value{}, conversionError(path, t, v, err)
		}
		return p.Elem(), nil
	}
	if t.Kind() == reflect.Pointer && t.Implements(importerType) {
		if absent {
			return reflect.Zero(t), nil
		}
		p := reflect.New(t.Elem())
		if err := p.Interface().(Importer).ImportForeign(rt, v); err != nil {
			return reflect.Value{}, conversionError(path, t, v, err)
		}
		return p, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		if absent {
			return reflect.Zero(t), nil
		}
		b, ok := v.Export().(bool)
		if !ok {
			return reflect.Value{}, mismatch(path, t, v)
		}
		return reflect.ValueOf(b).Convert(t), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := importInteger(path, t, v)
		if err != nil {
			return reflect.Value{}, err
		}
		if reflect.Zero(t).OverflowInt(n) {
			return reflect.Value{}, outOfRange(path, t, n)
		}
		return reflect.ValueOf(n).Convert(t), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := importUnsigned(path, t, v)
		if err != nil {
			return reflect.Value{}, err
		}
		if reflect.Zero(t).OverflowUint(n) {
			return reflect.Value{}, outOfRange(path, t, n)
		}
		return reflect.ValueOf(n).Convert(t), nil

	case reflect.Float32, reflect.Float64:
		if !isNumber(v) {
			return reflect.Value{}, mismatch(path, t, v)
		}
		f := v.ToFloat()
		if reflect.Zero(t).OverflowFloat(f) {
			return reflect.Value{}, outOfRange(path, t, f)
		}
		return reflect.ValueOf(f).Convert(t), nil

	case reflect.String:
		if absent {
			return reflect.Zero(t), nil
		}
		return reflect.ValueOf(v.String()).Convert(t), nil

	case reflect.Interface:
		if t.NumMethod() == 0 {
			x := v.Export()
			if x == nil {
				return reflect.Zero(t), nil
			}
			return reflect.ValueOf(x), nil
		}
	}

	if absent && isNillable(t) {
		return reflect.Zero(t), nil
	}
	p := reflect.New(t)
	if err := rt.VM().ExportTo(v, p.Interface()); err != nil {
		return reflect.Value{}, conversionError(path, t, v, err)
	}
	return p.Elem(), nil
}

func exportResults(rt *foreign.Runtime, out []reflect.Value) goja.Value {
	switch len(out) {
	case 0:
		return goja.Undefined()
	case 1:
		return exportValue(rt, out[0])
	}
	vals := make([]any, len(out))
	for i, rv := range out {
		vals[i] = exportValue(rt, rv)
	}
	return rt.VM().NewArray(vals...)
}

// exportValue converts a Go result to JS. Foreign-backed values hand back
// their original object; named basic types lose their Go name.
func exportValue(rt *foreign.Runtime, rv reflect.Value) goja.Value {
	if isNilValue(rv) {
		if rv.IsValid() {
			return goja.Null()
		}
		return goja.Undefined()
	}
	x := rv.Interface()
	switch x := x.(type) {
	case Backed:
		if obj := x.ForeignRef().obj; obj != nil {
			return obj
		}
		return goja.Null()
	case goja.Value:
		return x
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rt.ToValue(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rt.ToValue(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rt.ToValue(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rt.ToValue(rv.Float())
	case reflect.String:
		return rt.ToValue(rv.String())
	}
	return rt.ToValue(x)
}

// JS numbers beyond these bounds do not fit a 64-bit integer.
const (
	minInt64Float  = -(1 << 63)
	maxInt64Float  = 1 << 63
	maxUint64Float = 1 << 64
)

// importInteger reads v as a whole number. Fractions truncate toward zero;
// NaN and infinities are rejected.
func importInteger(path []string, t reflect.Type, v goja.Value) (int64, error) {
	switch x := v.Export().(type) {
	case int64:
		return x, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, notFinite(path, t, x)
		}
		if x < minInt64Float || x >= maxInt64Float {
			return 0, outOfRange(path, t, x)
		}
		return int64(x), nil
	}
	return 0, mismatch(path, t, v)
}

func importUnsigned(path []string, t reflect.Type, v goja.Value) (uint64, error) {
	switch x := v.Export().(type) {
	case int64:
		if x < 0 {
			return 0, outOfRange(path, t, x)
		}
		return uint64(x), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, notFinite(path, t, x)
		}
		if x <= -1 || x >= maxUint64Float {
			return 0, outOfRange(path, t, x)
		}
		return uint64(max(x, 0)), nil
	}
	return 0, mismatch(path, t, v)
}

func notFinite(path []string, t reflect.Type, f float64) error {
	return errors.New(errors.PhaseConvert, errors.KindInvalidInput).
		Path(path...).
		GoType(t.String()).
		Value(f).
		Detail("%v is not a finite number", f).
		Build()
}

func outOfRange(path []string, t reflect.Type, n any) error {
	return errors.New(errors.PhaseConvert, errors.KindInvalidInput).
		Path(path...).
		GoType(t.String()).
		Value(n).
		Detail("%v overflows %s", n, t).
		Build()
}

func isNumber(v goja.Value) bool {
	switch v.Export().(type) {
	case int64, float64:
		return true
	}
	return false
}

func isNillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return true
	}
	return false
}

func mismatch(path []string, t reflect.Type, v goja.Value) error {
	return errors.TypeMismatch(errors.PhaseConvert, path, t.String(), foreign.TypeOf(v))
}

func conversionError(path []string, t reflect.Type, v goja.Value, cause error) error {
	return errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
		Path(path...).
		GoType(t.String()).
		JSType(foreign.TypeOf(v)).
		Cause(cause).
		Build()
}
