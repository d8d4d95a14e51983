// File: collect/collector.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Collector walks the group-to-parent mapping once per event-loop iteration,
// accumulates the waitable handles of still-live parents, and reports whether
// any entry's parent was already destroyed so the caller can prune it.

package collect

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-evx/api"
)

// Collector accumulates waitable handles between collection and wait-set
// population. It is not internally synchronized: one consumer drives it per
// cycle, per the wait-set builder protocol.
type Collector struct {
	pending   *queue.Queue // api.Waitable handles awaiting merge
	waitables []api.Waitable
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{pending: queue.New()}
}

// CollectEntities resolves every entry of m exactly once. Handles of live
// parents are accumulated; entries whose parent has been destroyed are
// skipped. Returns true iff at least one entry was found invalid. The input
// mapping is never mutated — pruning is the caller's job.
func (c *Collector) CollectEntities(m GroupsToParents) bool {
	hasInvalid := false
	for _, obs := range m {
		parent, ok := obs.Resolve()
		if !ok {
			hasInvalid = true
			continue
		}
		for _, h := range parent.WaitableHandles() {
			c.pending.Add(h)
		}
	}
	return hasInvalid
}

// AddHandlesToWaitSet drains the accumulated handles into ws, retaining them
// for readiness inspection until ClearHandles.
func (c *Collector) AddHandlesToWaitSet(ws api.WaitSet) error {
	if ws == nil {
		return api.ErrInvalidArgument
	}
	for c.pending.Length() > 0 {
		w := c.pending.Remove().(api.Waitable)
		if err := w.AddToWaitSet(ws); err != nil {
			return err
		}
		c.waitables = append(c.waitables, w)
	}
	return nil
}

// Waitables returns the handles collected in this cycle.
func (c *Collector) Waitables() []api.Waitable {
	return c.waitables
}

// HandleCount reports how many handles are currently cached, merged or not.
func (c *Collector) HandleCount() int {
	return c.pending.Length() + len(c.waitables)
}

// ClearHandles drops every cached handle. Must run before the parents those
// handles belong to are destroyed, since destruction order between collector
// and entities is not otherwise guaranteed.
func (c *Collector) ClearHandles() {
	c.pending = queue.New()
	c.waitables = nil
}
