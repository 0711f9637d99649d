package xterm

import (
	_ "embed"
	"sync"

	"github.com/dop251/goja"

	"github.com/wippyai/xterm-go/bridge"
	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/foreign"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "xterm"

//go:embed js/xterm.js
var source string

var compiled = sync.OnceValues(func() (*goja.Program, error) {
	return goja.Compile("xterm.js", "(function (exports, module) {\n"+source+"\n})", true)
})

func load(vm *goja.Runtime, module *goja.Object) {
	prg, err := compiled()
	if err != nil {
		panic(vm.NewGoError(err))
	}
	wrapper, err := vm.RunProgram(prg)
	if err != nil {
		panic(vm.NewGoError(err))
	}
	fn, ok := goja.AssertFunction(wrapper)
	if !ok {
		panic(vm.NewTypeError("xterm: module wrapper is not a function"))
	}
	if _, err := fn(goja.Undefined(), module.Get("exports"), module); err != nil {
		panic(vm.NewGoError(err))
	}
}

// Module registers the terminal library so scripts can require("xterm").
func Module() foreign.Option {
	return foreign.WithModule(ModuleName, load)
}

// NewRuntime creates a runtime with the terminal library registered and
// returns the runtime's binder.
func NewRuntime(opts ...foreign.Option) (*bridge.Binder, error) {
	rt, err := foreign.New(append([]foreign.Option{Module()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return bridge.NewBinder(rt)
}

func exports(rt *foreign.Runtime) (*goja.Object, error) {
	v, err := rt.Require(ModuleName)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseEval, []string{ModuleName}, "object", foreign.TypeOf(v))
	}
	return obj, nil
}
