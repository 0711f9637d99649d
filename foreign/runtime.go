package foreign

import (
	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"go.uber.org/zap"

	"github.com/wippyai/xterm-go/errors"
)

// Func is the shape of a host callback installed on a foreign object.
type Func = func(goja.FunctionCall) goja.Value

// Runtime owns one JS runtime and the primitives the bridge needs from it.
// A Runtime is NOT safe for concurrent use: every call must come from the
// goroutine that drives the script.
type Runtime struct {
	vm      *goja.Runtime
	require *require.RequireModule
	values  map[any]any
}

// Option configures a Runtime.
type Option func(*config)

type config struct {
	modules map[string]require.ModuleLoader
	globals map[string]any
	console bool
}

// WithModule registers a native module that scripts can load with require(name).
func WithModule(name string, loader require.ModuleLoader) Option {
	return func(c *config) {
		c.modules[name] = loader
	}
}

// WithGlobal sets a global binding before any script runs.
func WithGlobal(name string, value any) Option {
	return func(c *config) {
		c.globals[name] = value
	}
}

// WithoutConsole leaves the console global undefined.
func WithoutConsole() Option {
	return func(c *config) {
		c.console = false
	}
}

// New creates a runtime with a CommonJS module registry and a console that
// writes to the package logger.
func New(opts ...Option) (*Runtime, error) {
	cfg := &config{
		modules: make(map[string]require.ModuleLoader),
		globals: make(map[string]any),
		console: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	registry := require.NewRegistry()
	for name, loader := range cfg.modules {
		registry.RegisterNativeModule(name, loader)
	}
	if cfg.console {
		registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(zapPrinter{}))
	}
	req := registry.Enable(vm)
	if cfg.console {
		console.Enable(vm)
	}

	for name, value := range cfg.globals {
		if err := vm.Set(name, value); err != nil {
			return nil, errors.Wrap(errors.PhaseEval, errors.KindInvalidInput, err, "set global "+name)
		}
	}

	Logger().Debug("runtime created", zap.Int("modules", len(cfg.modules)), zap.Bool("console", cfg.console))

	return &Runtime{vm: vm, require: req, values: make(map[any]any)}, nil
}

// Value returns the value stored under key by SetValue, or nil. Packages
// use unexported key types, as with context.Context.
func (r *Runtime) Value(key any) any {
	return r.values[key]
}

// SetValue associates v with key for the lifetime of the runtime.
func (r *Runtime) SetValue(key, v any) {
	r.values[key] = v
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// NewObject creates an empty foreign object.
func (r *Runtime) NewObject() *goja.Object {
	return r.vm.NewObject()
}

// SetFunc installs fn as the named slot of obj.
func (r *Runtime) SetFunc(obj *goja.Object, name string, fn Func) error {
	if obj == nil {
		return errors.InvalidInput(errors.PhaseBind, "set "+name+" on nil object")
	}
	if err := obj.Set(name, fn); err != nil {
		return errors.Wrap(errors.PhaseBind, errors.KindInvalidInput, err, "set "+name)
	}
	return nil
}

// Assign copies the own enumerable properties of src onto dst. When
// overwrite is false, properties already present on dst are kept.
func (r *Runtime) Assign(dst, src *goja.Object, overwrite bool) error {
	if dst == nil || src == nil {
		return errors.InvalidInput(errors.PhaseBind, "assign with nil object")
	}
	for _, key := range src.Keys() {
		if !overwrite && dst.Get(key) != nil {
			continue
		}
		if err := dst.Set(key, src.Get(key)); err != nil {
			return errors.Wrap(errors.PhaseBind, errors.KindInvalidInput, err, "assign "+key)
		}
	}
	return nil
}

// SetProperty assigns obj[name] = v, running any setter. Exceptions thrown
// by a setter are returned as errors.
func (r *Runtime) SetProperty(obj *goja.Object, name string, v any) error {
	if obj == nil {
		return errors.InvalidInput(errors.PhaseCall, "set "+name+" on nil object")
	}
	if err := obj.Set(name, r.toValues([]any{v})[0]); err != nil {
		return convertError(errors.PhaseCall, []string{name}, err)
	}
	return nil
}

// ToValue converts a Go value into a JS value.
func (r *Runtime) ToValue(v any) goja.Value {
	return r.vm.ToValue(v)
}

// Set binds a global variable.
func (r *Runtime) Set(name string, value any) error {
	if err := r.vm.Set(name, value); err != nil {
		return errors.Wrap(errors.PhaseEval, errors.KindInvalidInput, err, "set global "+name)
	}
	return nil
}

// Get returns a global variable, or nil when it is not defined.
func (r *Runtime) Get(name string) goja.Value {
	return r.vm.Get(name)
}

// Eval runs src as a script named name.
func (r *Runtime) Eval(name, src string) (goja.Value, error) {
	v, err := r.vm.RunScript(name, src)
	if err != nil {
		return nil, convertError(errors.PhaseEval, []string{name}, err)
	}
	return v, nil
}

// Require loads a registered module and returns its exports.
func (r *Runtime) Require(name string) (goja.Value, error) {
	v, err := r.require.Require(name)
	if err != nil {
		return nil, convertError(errors.PhaseEval, []string{name}, err)
	}
	return v, nil
}

// Call invokes fn with the given receiver. Go arguments are converted with
// ToValue; goja.Value arguments pass through unchanged.
func (r *Runtime) Call(fn goja.Value, this goja.Value, args ...any) (goja.Value, error) {
	callable, ok := goja.AssertFunction(fn)
	if !ok {
		return nil, errors.NotFunction(errors.PhaseCall, nil, TypeOf(fn))
	}
	if this == nil {
		this = goja.Undefined()
	}
	v, err := callable(this, r.toValues(args)...)
	if err != nil {
		return nil, convertError(errors.PhaseCall, nil, err)
	}
	return v, nil
}

// CallMethod invokes obj[name](args...).
func (r *Runtime) CallMethod(obj *goja.Object, name string, args ...any) (goja.Value, error) {
	if obj == nil {
		return nil, errors.InvalidInput(errors.PhaseCall, "call "+name+" on nil object")
	}
	member := obj.Get(name)
	callable, ok := goja.AssertFunction(member)
	if !ok {
		return nil, errors.NotFunction(errors.PhaseCall, []string{name}, TypeOf(member))
	}
	v, err := callable(obj, r.toValues(args)...)
	if err != nil {
		return nil, convertError(errors.PhaseCall, []string{name}, err)
	}
	return v, nil
}

// Construct runs new ctor(args...).
func (r *Runtime) Construct(ctor goja.Value, args ...any) (*goja.Object, error) {
	obj, err := r.vm.New(ctor, r.toValues(args)...)
	if err != nil {
		return nil, convertError(errors.PhaseCall, []string{"new"}, err)
	}
	return obj, nil
}

// Throw raises err as a JS exception in the currently executing script.
// It must only be called from inside a host callback.
func (r *Runtime) Throw(err error) {
	panic(r.vm.NewGoError(err))
}

// ThrowTypeError raises a JS TypeError in the currently executing script.
func (r *Runtime) ThrowTypeError(err error) {
	panic(r.vm.NewTypeError(err.Error()))
}

func (r *Runtime) toValues(args []any) []goja.Value {
	out := make([]goja.Value, len(args))
	for i, a := range args {
		if v, ok := a.(goja.Value); ok {
			out[i] = v
			continue
		}
		out[i] = r.vm.ToValue(a)
	}
	return out
}

// TypeOf returns a short JS-side description of v for error messages.
func TypeOf(v goja.Value) string {
	switch {
	case v == nil || goja.IsUndefined(v):
		return "undefined"
	case goja.IsNull(v):
		return "null"
	}
	if obj, ok := v.(*goja.Object); ok {
		if _, isFn := goja.AssertFunction(obj); isFn {
			return "function"
		}
		return obj.ClassName()
	}
	if t := v.ExportType(); t != nil {
		return t.String()
	}
	return "unknown"
}
