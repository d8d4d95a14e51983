//go:build !linux
// +build !linux

// File: waitset/mux_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback multiplexer for platforms without epoll: adaptive-backoff polling
// over the sticky readiness channels of chan-backed primitives.

package waitset

import (
	"sync"
	"time"

	"github.com/momentics/hioload-evx/api"
)

type pollMux struct {
	mu      sync.Mutex
	entries []api.TriggerPrimitive
}

func newPlatformMux() (multiplexer, error) {
	return &pollMux{}, nil
}

func (m *pollMux) attach(p api.TriggerPrimitive) error {
	if p.Ready() == nil {
		return api.ErrNotSupported
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e == p {
			return nil
		}
	}
	m.entries = append(m.entries, p)
	return nil
}

func (m *pollMux) wait(timeout time.Duration) (api.ReadySet, error) {
	deadline := time.Time{}
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}
	backoff := time.Microsecond
	for {
		m.mu.Lock()
		var ready api.ReadySet
		for _, p := range m.entries {
			// Non-consuming peek: the sticky mark stays queued until the
			// owner drains the primitive.
			if len(p.Ready()) > 0 {
				ready = append(ready, p)
			}
		}
		m.mu.Unlock()
		if len(ready) > 0 {
			return ready, nil
		}
		if timeout >= 0 && !time.Now().Before(deadline) {
			return api.ReadySet{}, api.ErrOperationTimeout
		}
		time.Sleep(backoff)
		if backoff < time.Millisecond {
			backoff *= 2
		}
	}
}

func (m *pollMux) close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}
