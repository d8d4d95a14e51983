// File: executor/types.go
// Package executor drives the wait/collect/dispatch cycle over the liveness
// collector and the wait set.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package executor

import (
	"errors"
	"time"
)

// ErrAlreadySpinning is returned when Spin is entered twice.
var ErrAlreadySpinning = errors.New("executor is already spinning")

// Config holds the builder's tunables.
type Config struct {
	// WaitTimeout bounds one blocking wait; negative blocks indefinitely.
	// The interrupt guard wakes the loop regardless, so indefinite is safe.
	WaitTimeout time.Duration

	// DispatchParallelism caps concurrent waitable execution per wake.
	DispatchParallelism int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		WaitTimeout:         500 * time.Millisecond,
		DispatchParallelism: 4,
	}
}
