// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync"

	"github.com/momentics/hioload-evx/api"
)

// FakeTrigger provides a test/dummy trigger primitive that records signals
// and can be told to fail.
type FakeTrigger struct {
	mu        sync.Mutex
	ready     chan struct{}
	Signals   int
	SignalErr error // returned by Signal when non-nil
	Closed    bool
}

// NewFakeTrigger returns a ready-to-use fake primitive.
func NewFakeTrigger() *FakeTrigger {
	return &FakeTrigger{ready: make(chan struct{}, 1)}
}

func (f *FakeTrigger) Signal() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Closed {
		return api.ErrTriggerClosed
	}
	if f.SignalErr != nil {
		return f.SignalErr
	}
	f.Signals++
	select {
	case f.ready <- struct{}{}:
	default:
	}
	return nil
}

func (f *FakeTrigger) Drain() (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.ready:
	default:
	}
	n := uint64(f.Signals)
	f.Signals = 0
	return n, nil
}

func (f *FakeTrigger) Handle() (uintptr, bool) { return 0, false }

func (f *FakeTrigger) Ready() <-chan struct{} { return f.ready }

func (f *FakeTrigger) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Closed {
		return api.ErrTriggerClosed
	}
	f.Closed = true
	return nil
}

var _ api.TriggerPrimitive = (*FakeTrigger)(nil)
