// File: api/waitset.go
// Package api defines wait-set registration contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// WaitSet is the registration surface of a wait-multiplexing set. Guard
// conditions and waitables attach their trigger primitives here; blocking and
// readiness reporting belong to the concrete implementation.
type WaitSet interface {
	// ID is an opaque identity token. It is compared, never interpreted:
	// components use it only to tell "same set" from "different set".
	ID() string

	// Attach registers a trigger primitive with the underlying multiplexer.
	Attach(p TriggerPrimitive) error
}

// ReadySet reports which attached primitives fired during one wait cycle.
type ReadySet []TriggerPrimitive

// Contains reports whether p fired in this cycle.
func (rs ReadySet) Contains(p TriggerPrimitive) bool {
	for _, r := range rs {
		if r == p {
			return true
		}
	}
	return false
}

// Waitable is an entity owned by a parent and scheduled through a wait set:
// it knows how to register itself, recognize its own readiness, and run.
type Waitable interface {
	AddToWaitSet(ws WaitSet) error
	IsReady(ready ReadySet) bool
	Execute() error
}

// ParentEntity is the liveness-scoped owner of waitable handles. The
// collector resolves a weak reference to it every cycle; a destroyed parent
// simply stops resolving.
type ParentEntity interface {
	// WaitableHandles enumerates the entity's current waitable handles.
	WaitableHandles() []Waitable
}
