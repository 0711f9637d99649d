package disposable

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/xterm-go/bridge"
)

// orphans holds values of wrappers that were collected while holding. The
// collector pushes from its own goroutine; only the runtime goroutine pops.
type orphans struct {
	mu      sync.Mutex
	pending []orphan
}

type orphan struct {
	kind   string
	handle Disposable
}

type orphansKey struct{}

func orphansOf(b *bridge.Binder) *orphans {
	rt := b.Runtime()
	if q, ok := rt.Value(orphansKey{}).(*orphans); ok {
		return q
	}
	q := &orphans{}
	rt.SetValue(orphansKey{}, q)
	return q
}

func (q *orphans) push(o orphan) {
	q.mu.Lock()
	q.pending = append(q.pending, o)
	q.mu.Unlock()
}

func (q *orphans) drain() []orphan {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Sweep disposes the values of wrappers on b's runtime that were collected
// without Close or Take, and returns how many it disposed. It must run on
// the runtime's goroutine. New sweeps on every call, so long-running code
// that keeps creating wrappers needs no explicit Sweep.
func Sweep(b *bridge.Binder) int {
	pending := orphansOf(b).drain()
	for _, o := range pending {
		if err := o.handle.Dispose(); err != nil {
			Logger().Warn("disposing collected wrapper failed",
				zap.String("kind", o.kind), zap.Error(err))
		}
	}
	return len(pending)
}
