package bridge

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/foreign"
)

// Capability is the type-erased view of a Descriptor.
type Capability interface {
	// Name identifies the interface, e.g. "IUnicodeVersionProvider".
	Name() string

	// Methods returns the capability's own method slots, excluding inherited ones.
	Methods() []Signature

	// Extends returns the parent capabilities in declared order.
	Extends() []Capability

	// Type returns the Go interface local implementations satisfy,
	// or nil for capabilities that only exist on the JS side.
	Type() reflect.Type

	wrapRef(Ref) any
}

// Signature describes one method slot of a capability.
type Signature struct {
	Name     string // JS slot name
	GoName   string // Go method name
	In       []reflect.Type
	Out      []reflect.Type
	Variadic bool
}

// String renders the signature as name(args) results.
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('(')
	for i, t := range s.In {
		if i > 0 {
			b.WriteString(", ")
		}
		if s.Variadic && i == len(s.In)-1 {
			b.WriteString("...")
			b.WriteString(t.Elem().String())
			continue
		}
		b.WriteString(t.String())
	}
	b.WriteByte(')')
	switch len(s.Out) {
	case 0:
	case 1:
		b.WriteByte(' ')
		b.WriteString(s.Out[0].String())
	default:
		b.WriteString(" (")
		for i, t := range s.Out {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.String())
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Descriptor declares the shape of a duck-typed JS interface.
//
// T is the Go interface that local implementations satisfy; H is the Go
// handle type used for JS objects known to satisfy the interface.
// Descriptors are immutable and meant to be package-level variables.
type Descriptor[T any, H any] struct {
	iface   reflect.Type
	wrap    func(Ref) H
	name    string
	methods []Signature
	extends []Capability
}

// Option configures a Descriptor at definition time.
type Option func(*defineConfig)

type defineConfig struct {
	renames map[string]string
	extends []Capability
}

// Extends declares parent capabilities. Their methods are composed into
// every bridge object built for the descriptor.
func Extends(parents ...Capability) Option {
	return func(c *defineConfig) {
		c.extends = append(c.extends, parents...)
	}
}

// Rename maps a Go method name to an explicit JS slot name, for members
// that do not follow the lower-first-letter convention.
func Rename(goName, jsName string) Option {
	return func(c *defineConfig) {
		c.renames[goName] = jsName
	}
}

// Define declares a capability backed by the Go interface T.
//
// Own methods are the methods of T not contributed by a parent. Define
// panics when the declaration is inconsistent: T is not an interface, T does
// not include a parent's methods, a parent is JS-only, or two different
// ancestors contribute the same slot name.
func Define[T any, H any](name string, wrap func(Ref) H, opts ...Option) *Descriptor[T, H] {
	cfg := applyOptions(opts)

	iface := reflect.TypeFor[T]()
	if iface.Kind() != reflect.Interface {
		panic(errors.New(errors.PhaseDefine, errors.KindTypeMismatch).
			Path(name).
			GoType(iface.String()).
			Detail("capability must be declared by an interface type").
			Build())
	}

	owners := make(map[string]Capability)
	inherited := make(map[string]bool)
	for _, parent := range cfg.extends {
		if parent.Type() == nil {
			panic(errors.New(errors.PhaseDefine, errors.KindUnsupported).
				Path(name).
				Detail("cannot extend JS-only capability %s", parent.Name()).
				Build())
		}
		walk(parent, func(c Capability) {
			for _, sig := range c.Methods() {
				if prev, ok := owners[sig.Name]; ok && prev != c {
					panic(errors.Collision(name, sig.Name, prev.Name(), c.Name()))
				}
				owners[sig.Name] = c
				inherited[sig.GoName] = true
			}
		})
	}

	for goName := range inherited {
		if _, ok := iface.MethodByName(goName); !ok {
			panic(errors.New(errors.PhaseDefine, errors.KindTypeMismatch).
				Path(name, goName).
				GoType(iface.String()).
				Detail("interface does not include inherited method").
				Build())
		}
	}

	var own []Signature
	for i := 0; i < iface.NumMethod(); i++ {
		m := iface.Method(i)
		if inherited[m.Name] {
			continue
		}
		jsName, ok := cfg.renames[m.Name]
		if !ok {
			jsName = jsMemberName(m.Name)
		}
		own = append(own, signatureOf(jsName, m.Name, m.Type))
	}

	d := &Descriptor[T, H]{
		iface:   iface,
		wrap:    wrap,
		name:    name,
		methods: own,
		extends: cfg.extends,
	}
	registerHandle(reflect.TypeFor[H](), d)
	return d
}

// DefineForeign declares a capability that only JS objects provide, such as
// a terminal instance. Values of H can be relabelled but never built from Go.
func DefineForeign[H any](name string, wrap func(Ref) H, opts ...Option) *Descriptor[Backed, H] {
	cfg := applyOptions(opts)
	d := &Descriptor[Backed, H]{
		wrap:    wrap,
		name:    name,
		extends: cfg.extends,
	}
	registerHandle(reflect.TypeFor[H](), d)
	return d
}

func applyOptions(opts []Option) *defineConfig {
	cfg := &defineConfig{renames: make(map[string]string)}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Name implements Capability.
func (d *Descriptor[T, H]) Name() string { return d.name }

// Methods implements Capability.
func (d *Descriptor[T, H]) Methods() []Signature { return d.methods }

// Extends implements Capability.
func (d *Descriptor[T, H]) Extends() []Capability { return d.extends }

// Type implements Capability.
func (d *Descriptor[T, H]) Type() reflect.Type { return d.iface }

func (d *Descriptor[T, H]) wrapRef(r Ref) any { return d.wrap(r) }

// String returns the capability name.
func (d *Descriptor[T, H]) String() string { return d.name }

// Wrap relabels an object produced by the JS runtime as H without checking
// its shape. Use it for values the wrapped library documents as returning
// this interface.
func (d *Descriptor[T, H]) Wrap(rt *foreign.Runtime, obj *goja.Object) H {
	return d.wrap(Ref{rt: rt, obj: obj, capability: d})
}

// WrapValue is Wrap for a JS value that must be an object.
func (d *Descriptor[T, H]) WrapValue(rt *foreign.Runtime, v goja.Value) (H, error) {
	obj, ok := v.(*goja.Object)
	if !ok {
		var zero H
		return zero, errors.TypeMismatch(errors.PhaseConvert, []string{d.name}, "", foreign.TypeOf(v))
	}
	return d.Wrap(rt, obj), nil
}

// Relabel reinterprets a foreign-backed value as H when its label is this
// capability or one of its descendants. The returned handle refers to the
// same JS object.
func (d *Descriptor[T, H]) Relabel(src Backed) (H, bool) {
	var zero H
	if src == nil {
		return zero, false
	}
	ref := src.ForeignRef()
	if ref.obj == nil || !Descends(ref.capability, d) {
		return zero, false
	}
	return d.wrap(Ref{rt: ref.rt, obj: ref.obj, capability: d}), true
}

// Descends reports whether ancestor is child itself or is reachable from
// child through Extends.
func Descends(child, ancestor Capability) bool {
	if child == nil || ancestor == nil {
		return false
	}
	found := false
	walk(child, func(c Capability) {
		if c == ancestor {
			found = true
		}
	})
	return found
}

// Ancestors lists c and every capability reachable through Extends,
// depth first in declared order, without duplicates.
func Ancestors(c Capability) []Capability {
	var out []Capability
	walk(c, func(a Capability) { out = append(out, a) })
	return out
}

func walk(c Capability, fn func(Capability)) {
	seen := make(map[Capability]bool)
	var visit func(Capability)
	visit = func(c Capability) {
		if seen[c] {
			return
		}
		seen[c] = true
		fn(c)
		for _, p := range c.Extends() {
			visit(p)
		}
	}
	visit(c)
}

func signatureOf(jsName, goName string, ft reflect.Type) Signature {
	sig := Signature{
		Name:     jsName,
		GoName:   goName,
		Variadic: ft.IsVariadic(),
	}
	for i := 0; i < ft.NumIn(); i++ {
		sig.In = append(sig.In, ft.In(i))
	}
	for i := 0; i < ft.NumOut(); i++ {
		sig.Out = append(sig.Out, ft.Out(i))
	}
	return sig
}

var handles sync.Map // reflect.Type -> Capability

// registerHandle records which capability a handle type stands for, so
// thunks can relabel JS arguments declared with that type. A later
// definition for the same type replaces the earlier one.
func registerHandle(t reflect.Type, c Capability) {
	if t.Kind() == reflect.Interface {
		return
	}
	if prev, loaded := handles.Swap(t, c); loaded && prev.(Capability).Name() != c.Name() {
		Logger().Warn(fmt.Sprintf("handle type %s relabelled from %s to %s", t, prev.(Capability).Name(), c.Name()))
	}
}

func handleCapability(t reflect.Type) (Capability, bool) {
	c, ok := handles.Load(t)
	if !ok {
		return nil, false
	}
	return c.(Capability), true
}
