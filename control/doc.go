// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, configuration control, and debug introspection layer for
// the wake-up and liveness-tracking core.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot config reads and atomic updates
//   - Spin-loop telemetry counters
//   - State export, debug hooks, and probe registration
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
