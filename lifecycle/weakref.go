// File: lifecycle/weakref.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Liveness tokens: an owner-held Token and any number of Observers that can
// test validity, or resolve the referent, without extending its lifetime.
// Expiration is a point-in-time check; callers re-run it every cycle.

package lifecycle

import "sync"

// refState is the cell shared between a token and its observers.
type refState[T any] struct {
	mu     sync.RWMutex
	target T
	alive  bool
}

// Token is the shared liveness handle held by an owning entity. Releasing
// the token invalidates every observer and drops the referent.
type Token[T any] struct {
	state *refState[T]
}

// NewToken creates a liveness token for owner.
func NewToken[T any](owner T) *Token[T] {
	return &Token[T]{state: &refState[T]{target: owner, alive: true}}
}

// Observe derives a weak observer of the token's referent.
func (t *Token[T]) Observe() *Observer[T] {
	return &Observer[T]{state: t.state}
}

// Release invalidates the token. Idempotent.
func (t *Token[T]) Release() {
	t.state.mu.Lock()
	defer t.state.mu.Unlock()
	var zero T
	t.state.target = zero
	t.state.alive = false
}

// Observer is the non-owning side of a liveness token.
type Observer[T any] struct {
	state *refState[T]
}

// Alive reports whether the referent had not been released at the time of
// the call.
func (o *Observer[T]) Alive() bool {
	o.state.mu.RLock()
	defer o.state.mu.RUnlock()
	return o.state.alive
}

// Resolve returns the referent and true while the token is alive.
func (o *Observer[T]) Resolve() (T, bool) {
	o.state.mu.RLock()
	defer o.state.mu.RUnlock()
	return o.state.target, o.state.alive
}
