// File: guard/guard.go
// Package guard implements the software-triggerable wake-up object that can
// be registered into a single wait-multiplexing set at a time.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A GuardCondition accumulates trigger counts until a callback is installed;
// once one is, every trigger is delivered synchronously and the counter stays
// at zero. The trigger/callback critical section uses a reentrant mutex so a
// callback may re-enter the guard API on the same goroutine (re-triggering,
// swapping the callback) without deadlocking.

package guard

import (
	"sync/atomic"

	"github.com/momentics/hioload-evx/api"
	"github.com/momentics/hioload-evx/internal/concurrency"
	"github.com/momentics/hioload-evx/lifecycle"
)

// Callback consumes the number of triggers accumulated since its last run.
type Callback func(count uint64)

// Option customizes guard condition construction.
type Option func(*GuardCondition)

// WithPrimitive injects a pre-built trigger primitive instead of allocating
// one from the lifecycle context. Used by test doubles.
func WithPrimitive(p api.TriggerPrimitive) Option {
	return func(g *GuardCondition) {
		g.primitive = p
	}
}

// GuardCondition is a wake-up source owned by exactly one wait set at a time.
// It must not be copied after first use.
type GuardCondition struct {
	primitive      api.TriggerPrimitive
	inUseByWaitSet atomic.Bool
	mu             concurrency.ReentrantMutex
	onTrigger      Callback
	unreadCount    uint64
	// Identity of the wait set currently holding this guard. Compared only,
	// never used to reach the wait set.
	waitSetID string
}

// New constructs a guard condition bound to the given lifecycle context.
// Construction is all-or-nothing: a primitive allocation failure leaves no
// observable guard behind.
func New(ctx *lifecycle.Context, opts ...Option) (*GuardCondition, error) {
	if ctx == nil {
		return nil, api.ErrInvalidArgument
	}
	g := &GuardCondition{}
	for _, o := range opts {
		o(g)
	}
	if g.primitive == nil {
		p, err := ctx.NewTrigger()
		if err != nil {
			return nil, err
		}
		g.primitive = p
	}
	return g, nil
}

// Trigger signals the underlying primitive, waking any blocked wait, then
// either delivers the trigger to the installed callback or accumulates it.
// Safe to call from any goroutine, including concurrently with a wait on
// this guard. A primitive failure is returned before any counter is touched.
func (g *GuardCondition) Trigger() error {
	if err := g.primitive.Signal(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.onTrigger != nil {
		count := g.unreadCount + 1
		g.unreadCount = 0
		g.onTrigger(count)
		return nil
	}
	g.unreadCount++
	return nil
}

// ExchangeInUseByWaitSet atomically swaps the "in use by wait set" flag and
// returns the previous state. This is the admission-control primitive a
// wait-set builder uses to claim exclusive use before registering.
func (g *GuardCondition) ExchangeInUseByWaitSet(inUse bool) bool {
	return g.inUseByWaitSet.Swap(inUse)
}

// AddToWaitSet registers the underlying primitive with ws. Re-adding to the
// set that already holds the guard is a no-op claim; adding while held by a
// different set fails with ErrGuardInUse.
func (g *GuardCondition) AddToWaitSet(ws api.WaitSet) error {
	if ws == nil {
		return api.ErrInvalidArgument
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ExchangeInUseByWaitSet(true) {
		if ws.ID() != g.waitSetID {
			return api.ErrGuardInUse
		}
	} else {
		g.waitSetID = ws.ID()
	}
	return ws.Attach(g.primitive)
}

// SetOnTriggerCallback installs cb, replacing any previous callback. Triggers
// accumulated while no callback was installed are delivered immediately as a
// single invocation carrying the backlog count. A nil cb clears the callback
// and reverts to accumulation.
func (g *GuardCondition) SetOnTriggerCallback(cb Callback) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onTrigger = cb
	if cb != nil && g.unreadCount > 0 {
		count := g.unreadCount
		g.unreadCount = 0
		cb(count)
	}
}

// UnreadCount returns the number of triggers not yet delivered to a callback.
func (g *GuardCondition) UnreadCount() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unreadCount
}

// Primitive exposes the underlying trigger primitive.
func (g *GuardCondition) Primitive() api.TriggerPrimitive {
	return g.primitive
}

// Close releases the underlying primitive. A guard still claimed by a wait
// set fails with ErrGuardInUse: the owner must detach (exchange the in-use
// state to false) before destruction.
func (g *GuardCondition) Close() error {
	if g.inUseByWaitSet.Load() {
		return api.ErrGuardInUse
	}
	return g.primitive.Close()
}
