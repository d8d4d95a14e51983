//go:build linux
// +build linux

// File: trigger/eventfd_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux eventfd(2)-backed trigger primitive. The eventfd counter accumulates
// signals and keeps the descriptor readable until drained, so a signal that
// precedes a wait is always observed by the multiplexer (level-triggered at
// the descriptor layer).

package trigger

import (
	"encoding/binary"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-evx/api"
)

// eventfdTrigger implements api.TriggerPrimitive over an eventfd descriptor.
type eventfdTrigger struct {
	fd     int
	closed int32 // atomic flag: 1 if closed
}

// newPlatformTrigger allocates a non-blocking, close-on-exec eventfd.
func newPlatformTrigger() (api.TriggerPrimitive, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, api.NewPlatformError("eventfd create", err)
	}
	return &eventfdTrigger{fd: fd}, nil
}

// Signal adds one to the eventfd counter, waking any blocked multiplexer.
func (t *eventfdTrigger) Signal() error {
	if atomic.LoadInt32(&t.closed) == 1 {
		return api.ErrTriggerClosed
	}
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], 1)
	_, err := unix.Write(t.fd, buf[:])
	if err == unix.EAGAIN {
		// Counter saturated; the descriptor is already readable.
		return nil
	}
	if err != nil {
		return api.NewPlatformError("eventfd signal", err).WithContext("fd", t.fd)
	}
	return nil
}

// Drain consumes the accumulated counter, resetting descriptor readiness.
func (t *eventfdTrigger) Drain() (uint64, error) {
	if atomic.LoadInt32(&t.closed) == 1 {
		return 0, api.ErrTriggerClosed
	}
	var buf [8]byte
	_, err := unix.Read(t.fd, buf[:])
	if err == unix.EAGAIN {
		return 0, nil
	}
	if err != nil {
		return 0, api.NewPlatformError("eventfd drain", err).WithContext("fd", t.fd)
	}
	return binary.NativeEndian.Uint64(buf[:]), nil
}

// Handle exposes the raw descriptor for epoll registration.
func (t *eventfdTrigger) Handle() (uintptr, bool) {
	return uintptr(t.fd), true
}

// Ready returns nil: this primitive is descriptor-backed.
func (t *eventfdTrigger) Ready() <-chan struct{} {
	return nil
}

// Close releases the eventfd descriptor.
func (t *eventfdTrigger) Close() error {
	if !atomic.CompareAndSwapInt32(&t.closed, 0, 1) {
		return api.ErrTriggerClosed
	}
	if err := unix.Close(t.fd); err != nil {
		return api.NewPlatformError("eventfd close", err).WithContext("fd", t.fd)
	}
	return nil
}
