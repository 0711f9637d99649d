// Package bridge exposes Go implementations of duck-typed JS interfaces to
// the foreign runtime, and lets Go consume JS objects as handles of those
// interfaces, without wrapping anything twice.
//
// # Capabilities
//
// A capability is declared once per interface as a package-level Descriptor:
//
//	var Frobber = bridge.Define[FrobberImpl, FrobberHandle]("Frobber",
//	    func(r bridge.Ref) FrobberHandle { return FrobberHandle{r} })
//
// The descriptor's methods are derived from the Go interface. Parents named
// with Extends contribute their methods; two ancestors contributing the same
// JS name is an authoring error and Define panics.
//
// # Conversion
//
// Descriptor.To picks one of two paths per value:
//
//   - Backed values (handle types embedding Ref) whose label descends from
//     the target are relabelled. The handle refers to the same JS object.
//   - Anything else is pinned in the Binder's arena and wrapped in a bridge
//     object whose slots are thunks calling the Go methods.
//
// Descriptor.ByRef does the same without taking ownership of a local value;
// it bridges a Clone of it instead.
//
// # Lifetime
//
// Bridge objects are owned by the JS runtime, which may call them at any
// point. Pinned implementations are therefore never released. Teardown of
// the underlying resources happens only through explicit disposal.
//
// # Mutability
//
// All thunks of one bridge object share a single implementation value and
// may be called re-entrantly. Implementations keep mutable state in a Cell,
// which panics on re-entrant mutation rather than exposing aliased state.
package bridge
