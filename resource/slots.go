package resource

import (
	"errors"
	"sync"
)

// ErrClosed is returned when inserting into a closed table.
var ErrClosed = errors.New("resource table closed")

// slots is handle-indexed storage with a free list. Handles are reused
// after a drop.
type slots struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value any
	kind  string
	valid bool
}

func newSlots() *slots {
	return &slots{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

func (s *slots) create(kind string, value any) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	e := entry{kind: kind, value: value, valid: true}

	if len(s.freeList) > 0 {
		h := s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		s.entries[h-1] = e
		return h, nil
	}

	s.entries = append(s.entries, e)
	return Handle(len(s.entries)), nil
}

func (s *slots) lookup(h Handle) (entry, bool) {
	if h == 0 {
		return entry{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := int(h - 1)
	if idx >= len(s.entries) || !s.entries[idx].valid {
		return entry{}, false
	}
	return s.entries[idx], true
}

func (s *slots) drop(h Handle) (entry, bool) {
	if h == 0 {
		return entry{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := int(h - 1)
	if idx >= len(s.entries) || !s.entries[idx].valid {
		return entry{}, false
	}

	e := s.entries[idx]
	s.entries[idx] = entry{}
	s.freeList = append(s.freeList, h)
	return e, true
}

func (s *slots) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries) - len(s.freeList)
}

func (s *slots) each(fn func(Handle, entry) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, e := range s.entries {
		if e.valid {
			if !fn(Handle(i+1), e) {
				break
			}
		}
	}
}

func (s *slots) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
