// File: api/trigger.go
// Package api defines the trigger primitive contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// TriggerPrimitive is the opaque, platform-provided wake-up handle backing a
// guard condition. Exactly one of Handle/Ready is meaningful per
// implementation: OS-backed primitives expose a pollable descriptor, portable
// primitives expose a sticky readiness channel.
type TriggerPrimitive interface {
	// Signal marks the primitive ready, waking any multiplexer blocked on it.
	// Safe to call from any goroutine at any time.
	Signal() error

	// Drain consumes the pending signal state and returns the number of
	// signals accumulated since the last drain.
	Drain() (uint64, error)

	// Handle returns the raw OS descriptor and true when the primitive is
	// OS-backed; (0, false) otherwise.
	Handle() (uintptr, bool)

	// Ready returns the readiness channel for chan-backed primitives, or nil
	// when the primitive is OS-backed.
	Ready() <-chan struct{}

	// Close releases the underlying handle. Subsequent operations fail with
	// ErrTriggerClosed.
	Close() error
}
