package bridge

import (
	"fmt"

	"github.com/wippyai/xterm-go/errors"
)

// Cell holds state that bridged methods mutate. Every accessor checks that
// no Update is in progress, so a JS callback that re-enters the owning
// object while it is being mutated fails loudly instead of observing a
// half-updated value.
//
// Cell is not safe for concurrent use; it only guards reentrancy on the
// goroutine driving the runtime.
type Cell[T any] struct {
	v        T
	borrowed bool
}

// NewCell returns a cell holding v.
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{v: v}
}

// Get returns a copy of the value.
func (c *Cell[T]) Get() T {
	c.check()
	return c.v
}

// Set replaces the value.
func (c *Cell[T]) Set(v T) {
	c.check()
	c.v = v
}

// Update gives fn exclusive access to the value for the duration of the call.
// Any access to the cell from inside fn panics with a Reentrant error.
func (c *Cell[T]) Update(fn func(*T)) {
	c.check()
	c.borrowed = true
	defer func() { c.borrowed = false }()
	fn(&c.v)
}

// Borrowed reports whether an Update is in progress.
func (c *Cell[T]) Borrowed() bool {
	return c.borrowed
}

func (c *Cell[T]) check() {
	if c.borrowed {
		panic(errors.Reentrant(fmt.Sprintf("%T", c.v)))
	}
}
