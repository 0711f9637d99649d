// Package resource tracks live registrations, such as undisposed listener
// handles, by integer handle.
//
// A table is a bookkeeping layer only: removing an entry does not release
// anything. Owners remove their own entry when they tear down, and a table
// being cleared or closed asks values implementing Dropper to tear down.
//
//	table := resource.NewTable()
//	h := table.Insert("listener", wrapper)
//	...
//	table.Remove(h)
//
// # Observers
//
// Observers see every registration come and go:
//
//	table.Subscribe(obs) // obs.OnResourceEvent(resource.Event{...})
//
// # Memory Management
//
// Entries are never reclaimed automatically. Anything left in a table at
// shutdown is a registration its owner never disposed; Counts reports them
// by kind.
package resource
