// File: lifecycle/context.go
// Package lifecycle manages the scope that owns trigger allocation and the
// weak references used for liveness checks.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package lifecycle

import (
	"sync"

	"github.com/momentics/hioload-evx/api"
	"github.com/momentics/hioload-evx/trigger"
)

// Context is the lifecycle scope trigger primitives are bound to. Primitives
// allocated through a context are closed when the context shuts down, and no
// new primitives can be allocated afterwards.
type Context struct {
	mu       sync.Mutex
	done     chan struct{}
	once     sync.Once
	triggers []api.TriggerPrimitive
}

// NewContext creates a valid, running lifecycle context.
func NewContext() *Context {
	return &Context{done: make(chan struct{})}
}

// NewTrigger allocates a platform trigger primitive scoped to this context.
func (c *Context) NewTrigger() (api.TriggerPrimitive, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		return nil, api.ErrContextShutdown
	}
	p, err := trigger.New()
	if err != nil {
		return nil, err
	}
	c.triggers = append(c.triggers, p)
	return p, nil
}

// Valid reports whether the context is still running.
func (c *Context) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.valid()
}

func (c *Context) valid() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Done returns a channel closed on shutdown.
func (c *Context) Done() <-chan struct{} {
	return c.done
}

// Shutdown terminates the scope and closes every primitive allocated through
// it. Idempotent.
func (c *Context) Shutdown() error {
	var firstErr error
	c.once.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		close(c.done)
		for _, p := range c.triggers {
			// Owners may have closed their primitive already; that is not
			// a shutdown failure.
			if err := p.Close(); err != nil && err != api.ErrTriggerClosed && firstErr == nil {
				firstErr = err
			}
		}
		c.triggers = nil
	})
	return firstErr
}
