//go:build linux
// +build linux

// File: waitset/mux_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll(7)-based multiplexer. Registration is level-triggered so a
// primitive signaled before the wait began is reported immediately.

package waitset

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-evx/api"
)

// epollMux waits on descriptor-backed trigger primitives.
type epollMux struct {
	epfd    int
	mu      sync.Mutex
	entries map[int32]api.TriggerPrimitive // fd -> primitive
}

func newPlatformMux() (multiplexer, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, api.NewPlatformError("epoll create", err)
	}
	return &epollMux{
		epfd:    epfd,
		entries: make(map[int32]api.TriggerPrimitive),
	}, nil
}

func (m *epollMux) attach(p api.TriggerPrimitive) error {
	h, ok := p.Handle()
	if !ok {
		// Descriptor-less primitives cannot join an epoll set.
		return api.ErrNotSupported
	}
	fd := int32(h)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[fd]; exists {
		return nil
	}
	ev := unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     fd,
	}
	if err := unix.EpollCtl(m.epfd, unix.EPOLL_CTL_ADD, int(fd), &ev); err != nil {
		return api.NewPlatformError("epoll ctl add", err).WithContext("fd", fd)
	}
	m.entries[fd] = p
	return nil
}

func (m *epollMux) wait(timeout time.Duration) (api.ReadySet, error) {
	m.mu.Lock()
	n := len(m.entries)
	m.mu.Unlock()
	if n == 0 {
		n = 1
	}
	events := make([]unix.EpollEvent, n)

	deadline := time.Time{}
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		ms := -1
		if timeout >= 0 {
			remaining := time.Until(deadline)
			if remaining < 0 {
				remaining = 0
			}
			ms = int(remaining.Milliseconds())
		}
		fired, err := unix.EpollWait(m.epfd, events, ms)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, api.NewPlatformError("epoll wait", err)
		}
		if fired == 0 {
			return api.ReadySet{}, api.ErrOperationTimeout
		}
		ready := make(api.ReadySet, 0, fired)
		m.mu.Lock()
		for i := 0; i < fired; i++ {
			if p, ok := m.entries[events[i].Fd]; ok {
				ready = append(ready, p)
			}
		}
		m.mu.Unlock()
		return ready, nil
	}
}

func (m *epollMux) close() error {
	if err := unix.Close(m.epfd); err != nil {
		return api.NewPlatformError("epoll close", err)
	}
	return nil
}
