package main

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/xterm-go/resource"
)

// leakWatch follows a registration table and reports what is still open.
// Events can arrive from the collector's goroutine, hence the lock.
type leakWatch struct {
	table *resource.Table
	log   *zap.Logger
	mu    sync.Mutex
	open  map[string]int
}

func watchLeaks(table *resource.Table, log *zap.Logger) *leakWatch {
	w := &leakWatch{table: table, log: log, open: make(map[string]int)}
	table.Subscribe(w)
	return w
}

func (w *leakWatch) OnResourceEvent(e resource.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch e.Type {
	case resource.EventCreated:
		w.open[e.Kind]++
	case resource.EventDropped:
		w.open[e.Kind]--
	}
	w.log.Debug("disposable "+e.Type.String(), zap.String("kind", e.Kind), zap.Uint32("handle", uint32(e.Handle)))
}

// stop unsubscribes and logs every kind with registrations left open. It
// returns the number of open registrations.
func (w *leakWatch) stop() int {
	w.table.Unsubscribe(w)

	w.mu.Lock()
	defer w.mu.Unlock()
	kinds := make([]string, 0, len(w.open))
	for kind, n := range w.open {
		if n > 0 {
			kinds = append(kinds, kind)
		}
	}
	slices.Sort(kinds)
	total := 0
	for _, kind := range kinds {
		total += w.open[kind]
		w.log.Warn("disposable not closed", zap.String("kind", kind), zap.Int("count", w.open[kind]))
	}
	return total
}
