package bridge

import "sync"

// Arena keeps Go implementations reachable for as long as the JS objects
// bridging them may be called. Entries are never removed: a bridge object
// can be retained by script code indefinitely and the host cannot observe
// when the last JS reference goes away.
type Arena struct {
	values []any
	mu     sync.Mutex
}

// Pin stores v and returns its slot index.
func (a *Arena) Pin(v any) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values = append(a.values, v)
	return len(a.values) - 1
}

// At returns the value pinned at slot i.
func (a *Arena) At(i int) (any, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i < 0 || i >= len(a.values) {
		return nil, false
	}
	return a.values[i], true
}

// Len returns the number of pinned values.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.values)
}
