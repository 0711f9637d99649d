package bridge

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/foreign"
)

// ErrNilRuntime is returned when a nil runtime is passed to constructors.
var ErrNilRuntime = fmt.Errorf("bridge: runtime is nil")

// Binder builds JS objects that expose Go implementations of capabilities.
//
// A Binder belongs to one runtime and shares its threading rules: bridge
// objects may only be built and called on the goroutine driving that runtime.
type Binder struct {
	rt        *foreign.Runtime
	arena     Arena
	observers []Observer
	obsMu     sync.RWMutex
}

type binderKey struct{}

// NewBinder returns the binder of rt, creating it on first use. Handles
// that reach Go through a JS callback carry only their runtime; NewBinder is
// how they recover the binder that owns it.
// NewBinder returns error if rt is nil.
func NewBinder(rt *foreign.Runtime) (*Binder, error) {
	if rt == nil {
		return nil, ErrNilRuntime
	}
	if b, ok := rt.Value(binderKey{}).(*Binder); ok {
		return b, nil
	}
	b := &Binder{rt: rt}
	rt.SetValue(binderKey{}, b)
	return b, nil
}

// Runtime returns the runtime bridge objects are created in.
func (b *Binder) Runtime() *foreign.Runtime {
	return b.rt
}

// Pinned returns the number of Go values kept alive for bridge objects.
func (b *Binder) Pinned() int {
	return b.arena.Len()
}

// Build wraps impl in a new JS object carrying every method of c and of its
// ancestors. impl must implement c's Go interface; it is pinned for the
// lifetime of the binder.
func (b *Binder) Build(c Capability, impl any) (*goja.Object, error) {
	if c.Type() == nil {
		return nil, errors.Unsupported(errors.PhaseBind, "building JS-only capability "+c.Name())
	}
	rv := reflect.ValueOf(impl)
	if isNilValue(rv) {
		return nil, errors.New(errors.PhaseBind, errors.KindInvalidInput).
			Path(c.Name()).
			Detail("nil implementation").
			Build()
	}
	if !rv.Type().Implements(c.Type()) {
		return nil, errors.New(errors.PhaseBind, errors.KindTypeMismatch).
			Path(c.Name()).
			GoType(rv.Type().String()).
			Detail("does not implement %s", c.Type()).
			Build()
	}

	b.arena.Pin(impl)

	obj, err := b.compose(c, rv)
	if err != nil {
		return nil, err
	}
	b.notify(Event{Type: EventBuilt, Capability: c.Name(), Object: obj})
	Logger().Debug("bridge object built",
		zap.String("capability", c.Name()),
		zap.String("go_type", rv.Type().String()))
	return obj, nil
}

// compose builds the object for c: parents first in declared order, the
// first parent to provide a slot keeps it, and own methods always win.
func (b *Binder) compose(c Capability, rv reflect.Value) (*goja.Object, error) {
	obj := b.rt.NewObject()

	for _, parent := range c.Extends() {
		pobj, err := b.compose(parent, rv)
		if err != nil {
			return nil, err
		}
		if err := b.rt.Assign(obj, pobj, false); err != nil {
			return nil, err
		}
		b.notify(Event{Type: EventComposed, Capability: parent.Name(), Object: obj})
	}

	for _, sig := range c.Methods() {
		m := rv.MethodByName(sig.GoName)
		if !m.IsValid() {
			return nil, errors.NotFound(errors.PhaseBind, "method", c.Name()+"."+sig.GoName)
		}
		if err := b.rt.SetFunc(obj, sig.Name, b.thunk([]string{c.Name(), sig.Name}, sig, m)); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// thunk adapts one Go method to the JS calling convention. Argument
// conversion failures raise a TypeError; a non-nil trailing error result is
// thrown as the error itself and surfaces unchanged to Go callers.
func (b *Binder) thunk(path []string, sig Signature, m reflect.Value) foreign.Func {
	return func(call goja.FunctionCall) goja.Value {
		args, err := importArgs(b.rt, sig, call.Arguments, path)
		if err != nil {
			b.rt.ThrowTypeError(err)
		}
		out := m.Call(args)
		if n := len(out); n > 0 && sig.Out[n-1] == errorType {
			if !out[n-1].IsNil() {
				b.rt.Throw(out[n-1].Interface().(error))
			}
			out = out[:n-1]
		}
		return exportResults(b.rt, out)
	}
}

// Func bridges a single Go function into a JS function value. fn follows the
// same conversion rules as capability methods.
func (b *Binder) Func(name string, fn any) (goja.Value, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, errors.New(errors.PhaseBind, errors.KindInvalidInput).
			Path(name).
			GoType(fmt.Sprintf("%T", fn)).
			Detail("expected a function").
			Build()
	}
	b.arena.Pin(fn)
	sig := signatureOf(name, name, rv.Type())
	return b.rt.ToValue(b.thunk([]string{name}, sig, rv)), nil
}

// Subscribe adds an observer for bridge events.
func (b *Binder) Subscribe(o Observer) {
	b.obsMu.Lock()
	defer b.obsMu.Unlock()
	b.observers = append(b.observers, o)
}

// Unsubscribe removes an observer.
func (b *Binder) Unsubscribe(o Observer) {
	b.obsMu.Lock()
	defer b.obsMu.Unlock()
	for i, obs := range b.observers {
		if obs == o {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}

func (b *Binder) notify(e Event) {
	b.obsMu.RLock()
	defer b.obsMu.RUnlock()
	for _, o := range b.observers {
		o.OnBridgeEvent(e)
	}
}

func isNilValue(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func argPath(path []string, i int) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, strconv.Itoa(i))
}
