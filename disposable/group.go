package disposable

import (
	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/resource"
)

// Member is a wrapper that can belong to a Group.
type Member interface {
	resource.Dropper
	Kind() string
	Holding() bool
	joined(g *Group, id resource.Handle)
}

// Group owns wrappers on behalf of a longer-lived object, such as a
// terminal owning its listeners. Closing the group closes every member
// still holding. Members closed or taken individually leave the group.
type Group struct {
	table *resource.Table
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{table: resource.NewTable()}
}

// Add puts m under the group's ownership.
func (g *Group) Add(m Member) error {
	if !m.Holding() {
		return errors.Disposed(m.Kind())
	}
	id := g.table.Insert(m.Kind(), m)
	if id == 0 {
		return errors.Disposed("group")
	}
	m.joined(g, id)
	return nil
}

// Len returns the number of members still holding.
func (g *Group) Len() int {
	return g.table.Len()
}

// Close disposes every member and rejects later additions.
func (g *Group) Close() error {
	return g.table.Close()
}
