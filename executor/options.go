// File: executor/options.go
// Package executor defines functional options for the spin-loop builder.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package executor

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-evx/control"
)

// Option customizes executor initialization.
type Option func(*Executor)

// WithLogger replaces the default logger.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Executor) {
		e.log = l.WithField("component", "executor")
	}
}

// WithWaitTimeout overrides the per-iteration blocking wait bound.
func WithWaitTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.cfg.WaitTimeout = d
	}
}

// WithDispatchParallelism sets the concurrent dispatch cap per wake.
func WithDispatchParallelism(n int) Option {
	return func(e *Executor) {
		e.cfg.DispatchParallelism = n
	}
}

// WithConfigStore attaches a runtime config store; the keys
// "executor.wait_timeout" and "executor.dispatch_parallelism" override the
// static Config on every iteration.
func WithConfigStore(cs *control.ConfigStore) Option {
	return func(e *Executor) {
		e.configStore = cs
	}
}
