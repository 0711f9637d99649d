package bridge

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/foreign"
)

type Frobber interface {
	Frob(a int) int
}

type Yapper interface {
	Yap() string
}

type Shouter interface {
	Frobber
	Yapper
	Shout(s string) string
}

type frobberHandle struct{ Ref }

func (h frobberHandle) Frob(a int) int {
	v, err := h.Call("frob", a)
	if err != nil {
		panic(err)
	}
	return int(v.ToInteger())
}

type yapperHandle struct{ Ref }

func (h yapperHandle) Yap() string {
	v, err := h.Call("yap")
	if err != nil {
		panic(err)
	}
	return v.String()
}

type shouterHandle struct{ Ref }

func (h shouterHandle) Frob(a int) int { return frobberHandle(h).Frob(a) }
func (h shouterHandle) Yap() string    { return yapperHandle(h).Yap() }
func (h shouterHandle) Shout(s string) string {
	v, err := h.Call("shout", s)
	if err != nil {
		panic(err)
	}
	return v.String()
}

type widgetHandle struct{ Ref }

func (h widgetHandle) Frob(a int) int { return frobberHandle(h).Frob(a) }

var (
	frobberCap = Define[Frobber]("Frobber", func(r Ref) frobberHandle { return frobberHandle{r} })
	yapperCap  = Define[Yapper]("Yapper", func(r Ref) yapperHandle { return yapperHandle{r} })
	shouterCap = Define[Shouter]("Shouter", func(r Ref) shouterHandle { return shouterHandle{r} },
		Extends(frobberCap, yapperCap))
	widgetCap = DefineForeign("Widget", func(r Ref) widgetHandle { return widgetHandle{r} },
		Extends(frobberCap))
)

type loud struct{}

func (loud) Frob(a int) int        { return a * 2 }
func (loud) Yap() string           { return "hi" }
func (loud) Shout(s string) string { return strings.ToUpper(s) }

type seed struct{ v int }

func (s *seed) Frob(a int) int { return a + s.v }

func (s *seed) Clone() Frobber {
	c := *s
	return &c
}

type eventCounter struct {
	counts map[EventType]int
}

func newEventCounter() *eventCounter {
	return &eventCounter{counts: make(map[EventType]int)}
}

func (c *eventCounter) OnBridgeEvent(e Event) {
	c.counts[e.Type]++
}

func newBinder(t *testing.T) (*Binder, *eventCounter) {
	t.Helper()
	rt, err := foreign.New(foreign.WithoutConsole())
	if err != nil {
		t.Fatalf("foreign.New failed: %v", err)
	}
	b, err := NewBinder(rt)
	if err != nil {
		t.Fatalf("NewBinder failed: %v", err)
	}
	counter := newEventCounter()
	b.Subscribe(counter)
	return b, counter
}

func eval(t *testing.T, rt *foreign.Runtime, src string) goja.Value {
	t.Helper()
	v, err := rt.Eval("test.js", src)
	if err != nil {
		t.Fatalf("eval %q failed: %v", src, err)
	}
	return v
}

func TestNewBinder_NilRuntime(t *testing.T) {
	_, err := NewBinder(nil)
	if !stderrors.Is(err, ErrNilRuntime) {
		t.Errorf("expected ErrNilRuntime, got %v", err)
	}
}

func TestNewBinder_OnePerRuntime(t *testing.T) {
	b, _ := newBinder(t)
	again, err := NewBinder(b.Runtime())
	if err != nil {
		t.Fatalf("NewBinder failed: %v", err)
	}
	if again != b {
		t.Error("expected the runtime's existing binder")
	}
}

func TestDefine_OwnMethods(t *testing.T) {
	var names []string
	for _, sig := range shouterCap.Methods() {
		names = append(names, sig.Name)
	}
	if diff := cmp.Diff([]string{"shout"}, names); diff != "" {
		t.Errorf("own methods mismatch (-want +got):\n%s", diff)
	}

	var ancestors []string
	for _, c := range Ancestors(shouterCap) {
		ancestors = append(ancestors, c.Name())
	}
	if diff := cmp.Diff([]string{"Shouter", "Frobber", "Yapper"}, ancestors); diff != "" {
		t.Errorf("ancestors mismatch (-want +got):\n%s", diff)
	}

	if got := frobberCap.Methods()[0].String(); got != "frob(int) int" {
		t.Errorf("signature = %q", got)
	}
}

func TestDefine_Panics(t *testing.T) {
	type frobberTwin interface {
		Frob(a int) int
	}
	type twinHandle struct{ Ref }
	type clash interface {
		Frobber
		frobberTwin
	}
	type clashHandle struct{ Ref }
	type notInterfaceHandle struct{ Ref }
	type yapOnly interface{ Yap() string }
	type missingHandle struct{ Ref }

	tests := []struct {
		name   string
		define func()
		kind   errors.Kind
	}{
		{
			name: "collision",
			define: func() {
				twin := Define[frobberTwin]("FrobberTwin", func(r Ref) twinHandle { return twinHandle{r} })
				Define[clash]("Clash", func(r Ref) clashHandle { return clashHandle{r} }, Extends(frobberCap, twin))
			},
			kind: errors.KindCollision,
		},
		{
			name: "not an interface",
			define: func() {
				Define[int]("Int", func(r Ref) notInterfaceHandle { return notInterfaceHandle{r} })
			},
			kind: errors.KindTypeMismatch,
		},
		{
			name: "missing inherited method",
			define: func() {
				Define[yapOnly]("YapOnly", func(r Ref) missingHandle { return missingHandle{r} }, Extends(frobberCap))
			},
			kind: errors.KindTypeMismatch,
		},
		{
			name: "extends JS-only capability",
			define: func() {
				Define[Frobber]("Gadget", func(r Ref) missingHandle { return missingHandle{r} }, Extends(widgetCap))
			},
			kind: errors.KindUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok {
					t.Fatalf("expected panic with error, got %v", r)
				}
				if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseDefine, Kind: tt.kind}) {
					t.Errorf("expected %s error, got %v", tt.kind, err)
				}
			}()
			tt.define()
		})
	}
}

func TestBuild_HierarchyMergeOrder(t *testing.T) {
	b, counter := newBinder(t)
	rt := b.Runtime()

	h := shouterCap.To(b, loud{})
	if err := rt.Set("s", h.Object()); err != nil {
		t.Fatal(err)
	}

	if got := eval(t, rt, `s.frob(3)`).ToInteger(); got != 6 {
		t.Errorf("frob(3) = %d, want 6", got)
	}
	if got := eval(t, rt, `s.yap()`).String(); got != "hi" {
		t.Errorf("yap() = %q, want hi", got)
	}
	if got := eval(t, rt, `s.shout("hi")`).String(); got != "HI" {
		t.Errorf(`shout("hi") = %q, want HI`, got)
	}

	if counter.counts[EventBuilt] != 1 {
		t.Errorf("built %d times, want 1", counter.counts[EventBuilt])
	}
	if counter.counts[EventComposed] != 2 {
		t.Errorf("composed %d parents, want 2", counter.counts[EventComposed])
	}
}

func TestBuild_Completeness(t *testing.T) {
	b, _ := newBinder(t)
	h := shouterCap.To(b, loud{})

	for _, c := range Ancestors(shouterCap) {
		for _, sig := range c.Methods() {
			fn := h.Get(sig.Name)
			if _, ok := goja.AssertFunction(fn); !ok {
				t.Errorf("%s.%s is %s, want function", c.Name(), sig.Name, foreign.TypeOf(fn))
			}
		}
	}

	// Handles call back through the bridge object.
	if got := h.Frob(5); got != 10 {
		t.Errorf("Frob(5) = %d, want 10", got)
	}
	if got := h.Shout("abc"); got != "ABC" {
		t.Errorf("Shout = %q", got)
	}
}

func TestAssign_FirstWriterWins(t *testing.T) {
	b, _ := newBinder(t)
	rt := b.Runtime()

	parent, err := b.Build(frobberCap, loud{})
	if err != nil {
		t.Fatal(err)
	}
	acc := rt.NewObject()
	if err := rt.SetFunc(acc, "frob", func(goja.FunctionCall) goja.Value { return rt.ToValue(-1) }); err != nil {
		t.Fatal(err)
	}
	if err := rt.Assign(acc, parent, false); err != nil {
		t.Fatal(err)
	}
	v, err := rt.CallMethod(acc, "frob", 1)
	if err != nil {
		t.Fatal(err)
	}
	if v.ToInteger() != -1 {
		t.Errorf("first writer should win, got %v", v)
	}
}

func TestRef_ZeroCall(t *testing.T) {
	var h frobberHandle
	_, err := h.Call("frob", 1)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseCall, Kind: errors.KindNotInitialized}) {
		t.Errorf("expected not initialized error, got %v", err)
	}
}

func TestTo_RelabelIdentity(t *testing.T) {
	b, counter := newBinder(t)

	h := shouterCap.To(b, loud{})
	asFrobber := frobberCap.To(b, h)

	if !asFrobber.SameAs(h) {
		t.Error("relabelled handle should refer to the same JS object")
	}
	if asFrobber.Capability() != Capability(frobberCap) {
		t.Errorf("label = %s, want Frobber", asFrobber.Capability().Name())
	}
	if counter.counts[EventBuilt] != 1 {
		t.Errorf("builder ran %d times, want 1", counter.counts[EventBuilt])
	}
	if counter.counts[EventRelabelled] != 1 {
		t.Errorf("relabelled %d times, want 1", counter.counts[EventRelabelled])
	}
}

func TestTo_NoSilentDoubleWrap(t *testing.T) {
	b, counter := newBinder(t)
	rt := b.Runtime()

	obj := eval(t, rt, `({frob: function (a) { return a + 100 }})`).(*goja.Object)
	w := widgetCap.Wrap(rt, obj)

	byRef, err := frobberCap.ByRef(b, w)
	if err != nil {
		t.Fatalf("ByRef failed: %v", err)
	}
	consumed := frobberCap.To(b, w)

	if counter.counts[EventBuilt] != 0 {
		t.Errorf("builder ran %d times for a foreign-backed value, want 0", counter.counts[EventBuilt])
	}
	if counter.counts[EventRelabelled] != 2 {
		t.Errorf("relabelled %d times, want 2", counter.counts[EventRelabelled])
	}
	if !byRef.Object().SameAs(obj) || !consumed.Object().SameAs(obj) {
		t.Error("both paths should return the original object")
	}
	if got := consumed.Frob(1); got != 101 {
		t.Errorf("Frob(1) = %d, want 101", got)
	}
}

func TestTo_UnrelatedLabelBuilds(t *testing.T) {
	b, counter := newBinder(t)

	y := yapperCap.To(b, loud{})
	// A Yapper-labelled shouter handle is not known to satisfy Frobber.
	sh := shouterHandle(y)
	f := frobberCap.To(b, sh)

	if f.SameAs(y) {
		t.Error("unrelated label must not be relabelled")
	}
	if counter.counts[EventBuilt] != 2 {
		t.Errorf("built %d times, want 2", counter.counts[EventBuilt])
	}
}

func TestTo_Panics(t *testing.T) {
	b, _ := newBinder(t)

	t.Run("nil implementation", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic")
			}
		}()
		frobberCap.To(b, nil)
	})

	t.Run("JS-only capability", func(t *testing.T) {
		defer func() {
			err, _ := recover().(error)
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBind, Kind: errors.KindUnsupported}) {
				t.Errorf("expected unsupported error, got %v", err)
			}
		}()
		widgetCap.To(b, frobberCap.To(b, loud{}))
	})
}

func TestByRef(t *testing.T) {
	b, counter := newBinder(t)

	t.Run("not cloneable", func(t *testing.T) {
		_, err := frobberCap.ByRef(b, loud{})
		if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConvert, Kind: errors.KindNotCloneable}) {
			t.Errorf("expected not cloneable error, got %v", err)
		}
	})

	t.Run("clone is bridged", func(t *testing.T) {
		s := &seed{v: 1}
		h, err := frobberCap.ByRef(b, s)
		if err != nil {
			t.Fatalf("ByRef failed: %v", err)
		}
		s.v = 100
		if got := h.Frob(1); got != 2 {
			t.Errorf("Frob(1) = %d, want 2 (bridge must not alias the caller's value)", got)
		}
		if counter.counts[EventBuilt] != 1 {
			t.Errorf("built %d times, want 1", counter.counts[EventBuilt])
		}
	})
}

var errDivideByZero = stderrors.New("division by zero")

type Calculator interface {
	Div(a, b int) (int, error)
	Sum(xs ...int) int
	Norm(p point) int
	Apply(f frobberHandle, a int) int
	Pair() (int, string)
	Narrow(v int8, u uint8) int
}

type calculatorHandle struct{ Ref }

var calculatorCap = Define[Calculator]("Calculator", func(r Ref) calculatorHandle { return calculatorHandle{r} })

type point struct{ X, Y int }

func (p *point) ImportForeign(rt *foreign.Runtime, v goja.Value) error {
	obj, ok := v.(*goja.Object)
	if !ok {
		return stderrors.New("point must be an object")
	}
	p.X = int(obj.Get("x").ToInteger())
	p.Y = int(obj.Get("y").ToInteger())
	return nil
}

type calc struct{}

func (calc) Div(a, b int) (int, error) {
	if b == 0 {
		return 0, errDivideByZero
	}
	return a / b, nil
}

func (calc) Sum(xs ...int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func (calc) Norm(p point) int {
	abs := func(n int) int {
		if n < 0 {
			return -n
		}
		return n
	}
	return abs(p.X) + abs(p.Y)
}

func (calc) Apply(f frobberHandle, a int) int { return f.Frob(a) }

func (calc) Pair() (int, string) { return 7, "seven" }

func (calc) Narrow(v int8, u uint8) int { return int(v) + int(u) }

func TestThunk_Conversions(t *testing.T) {
	b, _ := newBinder(t)
	rt := b.Runtime()
	if err := rt.Set("c", calculatorCap.To(b, calc{}).Object()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		src  string
		want any
	}{
		{"result", `c.div(9, 3)`, int64(3)},
		{"variadic", `c.sum(1, 2, 3, 4)`, int64(10)},
		{"variadic empty", `c.sum()`, int64(0)},
		{"importer", `c.norm({x: 3, y: -4})`, int64(7)},
		{"handle argument", `c.apply({frob: function (a) { return a + 1 }}, 4)`, int64(5)},
		{"multiple results", `c.pair()`, []any{int64(7), "seven"}},
		{"error thrown", `try { c.div(1, 0); "no" } catch (e) { e.message }`, "division by zero"},
		{"type error", `try { c.div("one", 1); "no" } catch (e) { e instanceof TypeError }`, true},
		{"narrow in range", `c.narrow(-128, 255)`, int64(127)},
		{"narrow truncates", `c.narrow(2.9, 1.5)`, int64(3)},
		{"int8 overflow", `try { c.narrow(300, 0); "no" } catch (e) { e instanceof TypeError }`, true},
		{"uint8 overflow", `try { c.narrow(0, 256); "no" } catch (e) { e instanceof TypeError }`, true},
		{"unsigned negative", `try { c.narrow(0, -1); "no" } catch (e) { e instanceof TypeError }`, true},
		{"NaN", `try { c.narrow(NaN, 0); "no" } catch (e) { e instanceof TypeError }`, true},
		{"Infinity", `try { c.narrow(Infinity, 0); "no" } catch (e) { e instanceof TypeError }`, true},
		{"int64 overflow", `try { c.div(1e20, 1); "no" } catch (e) { e instanceof TypeError }`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eval(t, rt, tt.src).Export()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestThunk_ErrorReachesGoCaller(t *testing.T) {
	b, _ := newBinder(t)
	h := calculatorCap.To(b, calc{})

	_, err := h.Call("div", 1, 0)
	if !stderrors.Is(err, errDivideByZero) {
		t.Errorf("expected the original Go error, got %v", err)
	}
}

func TestBinder_Func(t *testing.T) {
	b, _ := newBinder(t)
	rt := b.Runtime()

	fn, err := b.Func("add", func(a, b int) int { return a + b })
	if err != nil {
		t.Fatalf("Func failed: %v", err)
	}
	v, err := rt.Call(fn, nil, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if v.ToInteger() != 5 {
		t.Errorf("add(2, 3) = %v, want 5", v)
	}

	if _, err := b.Func("bad", 42); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBind, Kind: errors.KindInvalidInput}) {
		t.Errorf("expected invalid input error, got %v", err)
	}
	if b.Pinned() != 1 {
		t.Errorf("pinned = %d, want 1", b.Pinned())
	}
}

func TestBinder_BuildErrors(t *testing.T) {
	b, _ := newBinder(t)

	if _, err := b.Build(frobberCap, nil); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBind, Kind: errors.KindInvalidInput}) {
		t.Errorf("nil impl: got %v", err)
	}
	if _, err := b.Build(frobberCap, calc{}); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBind, Kind: errors.KindTypeMismatch}) {
		t.Errorf("wrong impl: got %v", err)
	}
	if _, err := b.Build(widgetCap, loud{}); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBind, Kind: errors.KindUnsupported}) {
		t.Errorf("JS-only: got %v", err)
	}
}

func TestJSMemberName(t *testing.T) {
	tests := map[string]string{
		"Frob":              "frob",
		"Wcwidth":           "wcwidth",
		"OnKey":             "onKey",
		"ID":                "id",
		"URLPath":           "urlPath",
		"X":                 "x",
		"TranslateToString": "translateToString",
	}
	for in, want := range tests {
		if got := jsMemberName(in); got != want {
			t.Errorf("jsMemberName(%q) = %q, want %q", in, got, want)
		}
	}
}
