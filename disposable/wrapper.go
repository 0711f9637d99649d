package disposable

import (
	"fmt"
	"runtime"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/xterm-go/bridge"
	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/resource"
)

type state uint8

const (
	holding state = iota
	disposed
	taken
)

var live = resource.NewTable()

// Live returns the table of wrappers that are still holding their value,
// keyed by kind. Entries are bookkeeping records, not the wrappers.
func Live() *resource.Table {
	return live
}

// Option configures a Wrapper.
type Option func(*options)

type options struct {
	kind string
}

// WithKind labels the wrapper in the Live table, e.g. "listener:onKey".
func WithKind(kind string) Option {
	return func(o *options) {
		o.kind = kind
	}
}

// Wrapper owns one disposable value and disposes it at most once.
//
// Go has no destructors, so the scope-bound teardown is Close, normally
// deferred by the owner:
//
//	w := disposable.New(b, v)
//	defer w.Close()
//
// Take hands the value back without disposing it. After either, every
// further Close or Take reports a KindDisposed error. A wrapper that becomes
// unreachable while still holding is reported as leaked and its value is
// queued for disposal; the queue is drained on the runtime goroutine by the
// next New or by Sweep.
type Wrapper[T Disposer] struct {
	value   T
	handle  Disposable
	kind    string
	id      resource.Handle
	cleanup runtime.Cleanup
	groups  []membership
	state   state
}

type membership struct {
	group *Group
	id    resource.Handle
}

type leak struct {
	id      resource.Handle
	kind    string
	handle  Disposable
	orphans *orphans
}

// New wraps v. v is converted to an IDisposable through the dual path, so
// a JS-backed v is used as is and a Go v is bridged.
func New[T Disposer](b *bridge.Binder, v T, opts ...Option) *Wrapper[T] {
	o := options{kind: fmt.Sprintf("%T", v)}
	for _, opt := range opts {
		opt(&o)
	}
	Sweep(b)

	w := &Wrapper[T]{
		value:  v,
		handle: Capability.To(b, v),
		kind:   o.kind,
	}
	w.id = live.Insert(o.kind, o.kind)
	w.cleanup = runtime.AddCleanup(w, reportLeak, leak{
		id:      w.id,
		kind:    o.kind,
		handle:  w.handle,
		orphans: orphansOf(b),
	})
	return w
}

// reportLeak runs on the collector's goroutine. The value is queued before
// the Live entry goes so that Live never shows a leak as settled early.
func reportLeak(l leak) {
	l.orphans.push(orphan{kind: l.kind, handle: l.handle})
	Logger().Warn("disposable wrapper collected without Close or Take; dispose queued",
		zap.String("kind", l.kind))
	live.Remove(l.id)
}

// Close disposes the value. It returns the error raised by dispose, or a
// KindDisposed error when the wrapper was already closed or taken.
func (w *Wrapper[T]) Close() error {
	if err := w.release(); err != nil {
		return err
	}
	w.state = disposed
	if err := w.handle.Dispose(); err != nil {
		return errors.New(errors.PhaseDispose, errors.KindException).
			Path(w.kind).
			Cause(err).
			Build()
	}
	return nil
}

// Take returns the value without disposing it. The caller becomes
// responsible for disposing it.
func (w *Wrapper[T]) Take() (T, error) {
	if err := w.release(); err != nil {
		var zero T
		return zero, err
	}
	w.state = taken
	v := w.value
	var zero T
	w.value = zero
	return v, nil
}

// Drop implements resource.Dropper for groups. Errors are logged.
func (w *Wrapper[T]) Drop() {
	if w.state != holding {
		return
	}
	if err := w.Close(); err != nil {
		Logger().Warn("dispose failed", zap.String("kind", w.kind), zap.Error(err))
	}
}

// Object returns the IDisposable object handed to JS.
func (w *Wrapper[T]) Object() *goja.Object {
	return w.handle.Object()
}

// Kind returns the wrapper's label.
func (w *Wrapper[T]) Kind() string {
	return w.kind
}

// Holding reports whether the wrapper still owns an undisposed value.
func (w *Wrapper[T]) Holding() bool {
	return w.state == holding
}

func (w *Wrapper[T]) release() error {
	if w.state != holding {
		return errors.Disposed(w.kind)
	}
	w.cleanup.Stop()
	live.Remove(w.id)
	for _, m := range w.groups {
		m.group.table.Remove(m.id)
	}
	w.groups = nil
	return nil
}

func (w *Wrapper[T]) joined(g *Group, id resource.Handle) {
	w.groups = append(w.groups, membership{group: g, id: id})
}
