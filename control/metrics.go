// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Spin-loop telemetry counters for the wait-set builder. Counters are plain
// atomics on the hot path; snapshot export builds a map for external tools.

package control

import (
	"sync/atomic"
	"time"
)

// SpinMetrics accumulates per-iteration counters of the wait/collect/dispatch
// cycle.
type SpinMetrics struct {
	Iterations        atomic.Int64
	Wakeups           atomic.Int64
	Timeouts          atomic.Int64
	TriggersDelivered atomic.Int64
	GroupsPruned      atomic.Int64
	DispatchErrors    atomic.Int64
	startedAt         time.Time
}

// NewSpinMetrics creates a zeroed metrics block stamped with the start time.
func NewSpinMetrics() *SpinMetrics {
	return &SpinMetrics{startedAt: time.Now()}
}

// GetSnapshot returns the latest counter values.
func (sm *SpinMetrics) GetSnapshot() map[string]any {
	return map[string]any{
		"iterations":         sm.Iterations.Load(),
		"wakeups":            sm.Wakeups.Load(),
		"timeouts":           sm.Timeouts.Load(),
		"triggers_delivered": sm.TriggersDelivered.Load(),
		"groups_pruned":      sm.GroupsPruned.Load(),
		"dispatch_errors":    sm.DispatchErrors.Load(),
		"started_at":         sm.startedAt,
	}
}
