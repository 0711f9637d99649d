package resource

import (
	"sync"
)

// Table records live registrations and notifies observers when they come
// and go. It is safe for concurrent use.
type Table struct {
	slots     *slots
	observers []Observer
	obsMu     sync.RWMutex
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{slots: newSlots()}
}

// Insert registers value under kind and returns its handle, or 0 once the
// table is closed.
func (t *Table) Insert(kind string, value any) Handle {
	h, err := t.slots.create(kind, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: h,
		Kind:   kind,
		Value:  value,
	})

	return h
}

// Get retrieves a value by handle.
func (t *Table) Get(h Handle) (any, bool) {
	e, ok := t.slots.lookup(h)
	return e.value, ok
}

// Kind returns the kind a handle was registered under.
func (t *Table) Kind(h Handle) (string, bool) {
	e, ok := t.slots.lookup(h)
	return e.kind, ok
}

// Remove unregisters a handle and returns (value, true) if it was live.
// It never calls Drop: the caller is the one tearing the value down.
func (t *Table) Remove(h Handle) (any, bool) {
	e, ok := t.slots.drop(h)
	if !ok {
		return nil, false
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: h,
		Kind:   e.kind,
		Value:  e.value,
	})

	return e.value, true
}

// Len returns the number of live registrations.
func (t *Table) Len() int {
	return t.slots.len()
}

// Each calls fn for every live registration until fn returns false.
// fn must not modify the table.
func (t *Table) Each(fn func(h Handle, kind string, value any) bool) {
	t.slots.each(func(h Handle, e entry) bool {
		return fn(h, e.kind, e.value)
	})
}

// Counts returns the number of live registrations per kind.
func (t *Table) Counts() map[string]int {
	counts := make(map[string]int)
	t.Each(func(_ Handle, kind string, _ any) bool {
		counts[kind]++
		return true
	})
	return counts
}

// Clear removes every registration, calling Drop on values that implement
// Dropper.
func (t *Table) Clear() {
	// Collect handles first so Drop runs without the storage lock held.
	var handles []Handle
	t.Each(func(h Handle, _ string, _ any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		v, ok := t.Remove(h)
		if !ok {
			continue
		}
		if d, ok := v.(Dropper); ok {
			d.Drop()
		}
	}
}

// Close clears the table and stops accepting registrations.
func (t *Table) Close() error {
	t.slots.close()
	t.Clear()
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
