// File: trigger/chan.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable chan-backed trigger primitive. A one-slot buffered channel carries
// a sticky readiness mark while a separate counter accumulates signal counts,
// mirroring the eventfd counter semantics without a descriptor.

package trigger

import (
	"sync"

	"github.com/momentics/hioload-evx/api"
)

// chanTrigger implements api.TriggerPrimitive with a sticky readiness channel.
type chanTrigger struct {
	mu      sync.Mutex
	ready   chan struct{}
	pending uint64
	closed  bool
}

// NewChanTrigger constructs a chan-backed trigger primitive. It works on any
// platform but can only be waited on through its Ready channel.
func NewChanTrigger() api.TriggerPrimitive {
	return &chanTrigger{ready: make(chan struct{}, 1)}
}

// Signal marks the trigger ready and accumulates the signal count.
func (t *chanTrigger) Signal() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return api.ErrTriggerClosed
	}
	t.pending++
	select {
	case t.ready <- struct{}{}:
	default:
		// Already marked ready.
	}
	return nil
}

// Drain clears the readiness mark and returns the accumulated count.
func (t *chanTrigger) Drain() (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, api.ErrTriggerClosed
	}
	select {
	case <-t.ready:
	default:
	}
	n := t.pending
	t.pending = 0
	return n, nil
}

// Handle returns (0, false): this primitive has no OS descriptor.
func (t *chanTrigger) Handle() (uintptr, bool) {
	return 0, false
}

// Ready exposes the sticky readiness channel.
func (t *chanTrigger) Ready() <-chan struct{} {
	return t.ready
}

// Close marks the trigger closed. The channel is left open so concurrent
// waiters observe no spurious readiness.
func (t *chanTrigger) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return api.ErrTriggerClosed
	}
	t.closed = true
	return nil
}
