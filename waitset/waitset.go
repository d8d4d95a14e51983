// File: waitset/waitset.go
// Package waitset implements the wait-multiplexing set guard conditions and
// waitables register into, backed by a platform multiplexer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A WaitSet carries an opaque identity token that components compare to
// enforce the single-owner registration protocol; the token is never used to
// reach back into the set. Sets are cheap and rebuilt once per event-loop
// iteration.

package waitset

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/momentics/hioload-evx/api"
)

// multiplexer is the platform-specific blocking backend.
type multiplexer interface {
	attach(p api.TriggerPrimitive) error
	// wait blocks up to timeout (negative means indefinitely) and returns
	// the primitives that fired.
	wait(timeout time.Duration) (api.ReadySet, error)
	close() error
}

// WaitSet is a registration set over the platform multiplexer.
type WaitSet struct {
	id     string
	mux    multiplexer
	mu     sync.Mutex
	closed bool
}

// New creates an empty wait set with a fresh identity.
func New() (*WaitSet, error) {
	mux, err := newPlatformMux()
	if err != nil {
		return nil, err
	}
	return &WaitSet{id: uuid.NewString(), mux: mux}, nil
}

// ID returns the set's opaque identity token.
func (ws *WaitSet) ID() string { return ws.id }

// Attach registers a trigger primitive with the multiplexer.
func (ws *WaitSet) Attach(p api.TriggerPrimitive) error {
	if p == nil {
		return api.ErrInvalidArgument
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.closed {
		return api.ErrWaitSetClosed
	}
	return ws.mux.attach(p)
}

// Wait blocks until at least one attached primitive fires, the timeout
// elapses, or the set is closed. A negative timeout blocks indefinitely.
// Timeout expiry returns an empty ready set and ErrOperationTimeout.
func (ws *WaitSet) Wait(timeout time.Duration) (api.ReadySet, error) {
	ws.mu.Lock()
	if ws.closed {
		ws.mu.Unlock()
		return nil, api.ErrWaitSetClosed
	}
	mux := ws.mux
	ws.mu.Unlock()
	return mux.wait(timeout)
}

// Close releases the multiplexer. Attached primitives stay open; they belong
// to their guard conditions and waitables.
func (ws *WaitSet) Close() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.closed {
		return api.ErrWaitSetClosed
	}
	ws.closed = true
	return ws.mux.close()
}

var _ api.WaitSet = (*WaitSet)(nil)
