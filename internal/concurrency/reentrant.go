// File: internal/concurrency/reentrant.go
// Package concurrency implements the exclusion primitives used by the
// wake-up core.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ReentrantMutex is a mutual-exclusion lock that may be re-acquired by the
// goroutine that already holds it. The trigger/callback critical section of a
// guard condition runs user callbacks while locked, and those callbacks may
// legitimately re-enter the guard API on the same goroutine.

package concurrency

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// ReentrantMutex is an owner-tracking mutex. The zero value is unlocked.
type ReentrantMutex struct {
	mu    sync.Mutex
	owner atomic.Uint64 // goroutine id of the holder, 0 if free
	depth int           // recursion depth, touched only by the owner
}

// Lock acquires the mutex, or increments the depth if the calling goroutine
// already holds it.
func (m *ReentrantMutex) Lock() {
	id := goroutineID()
	if m.owner.Load() == id {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(id)
	m.depth = 1
}

// Unlock releases one level of acquisition. The mutex is freed when the
// depth of the owning goroutine drops to zero.
func (m *ReentrantMutex) Unlock() {
	if m.owner.Load() != goroutineID() {
		panic("concurrency: unlock of reentrant mutex by non-owner")
	}
	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID extracts the current goroutine id from the runtime stack
// header ("goroutine N [running]: ...").
func goroutineID() uint64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		panic("concurrency: cannot parse goroutine id: " + err.Error())
	}
	return id
}
