// File: executor/executor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The spin loop: once per iteration the executor builds a fresh wait set,
// runs the liveness pass over its group registry (pruning entries whose
// parent was destroyed), merges the collected handles plus its own interrupt
// guard into the set, blocks, drains whatever fired, and dispatches the
// ready waitables. Producers wake the loop at any time through Wake.

package executor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-evx/api"
	"github.com/momentics/hioload-evx/collect"
	"github.com/momentics/hioload-evx/control"
	"github.com/momentics/hioload-evx/guard"
	"github.com/momentics/hioload-evx/lifecycle"
	"github.com/momentics/hioload-evx/waitset"
)

// Executor owns the wait/collect/dispatch cycle.
type Executor struct {
	cfg         *Config
	log         *logrus.Entry
	configStore *control.ConfigStore

	mu     sync.Mutex
	groups collect.GroupsToParents

	collector *collect.Collector
	interrupt *guard.GuardCondition
	metrics   *control.SpinMetrics
	probes    *control.DebugProbes

	spinning atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New builds an executor bound to the given lifecycle context.
func New(ctx *lifecycle.Context, cfg *Config, opts ...Option) (*Executor, error) {
	if ctx == nil {
		return nil, api.ErrInvalidArgument
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	interrupt, err := guard.New(ctx)
	if err != nil {
		return nil, err
	}
	e := &Executor{
		cfg:       cfg,
		log:       logrus.New().WithField("component", "executor"),
		groups:    make(collect.GroupsToParents),
		collector: collect.NewCollector(),
		interrupt: interrupt,
		metrics:   control.NewSpinMetrics(),
		probes:    control.NewDebugProbes(),
		stopCh:    make(chan struct{}),
	}
	for _, o := range opts {
		o(e)
	}
	e.probes.RegisterProbe("executor.groups", func() any { return e.GroupCount() })
	e.probes.RegisterProbe("executor.metrics", e.asAnySnapshot)
	control.RegisterPlatformProbes(e.probes)
	return e, nil
}

func (e *Executor) asAnySnapshot() any { return e.metrics.GetSnapshot() }

// RegisterGroup adds a scheduling group and the weak observer of its owning
// parent entity to the registry validated each cycle.
func (e *Executor) RegisterGroup(g *collect.Group, obs *lifecycle.Observer[api.ParentEntity]) error {
	if g == nil || obs == nil {
		return api.ErrInvalidArgument
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.groups[g] = obs
	return nil
}

// UnregisterGroup removes a scheduling group from the registry.
func (e *Executor) UnregisterGroup(g *collect.Group) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.groups, g)
}

// GroupCount returns the number of registered groups.
func (e *Executor) GroupCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.groups)
}

// Metrics exposes the spin counters.
func (e *Executor) Metrics() *control.SpinMetrics { return e.metrics }

// Probes exposes the debug probe registry.
func (e *Executor) Probes() *control.DebugProbes { return e.probes }

// Wake triggers the interrupt guard, unblocking a pending wait.
// Safe from any goroutine.
func (e *Executor) Wake() error {
	return e.interrupt.Trigger()
}

// Shutdown stops the spin loop and wakes it if blocked. Idempotent.
func (e *Executor) Shutdown() error {
	e.stopOnce.Do(func() { close(e.stopCh) })
	return e.Wake()
}

var _ api.GracefulShutdown = (*Executor)(nil)

// Spin runs the wait/collect/dispatch cycle until ctx is canceled or
// Shutdown is called. The interrupt guard is claimed for the whole spin:
// concurrent Spin calls, or another builder holding the guard, fail fast.
func (e *Executor) Spin(ctx context.Context) error {
	if !e.spinning.CompareAndSwap(false, true) {
		return ErrAlreadySpinning
	}
	defer e.spinning.Store(false)

	if e.interrupt.ExchangeInUseByWaitSet(true) {
		return api.ErrGuardInUse
	}
	defer e.interrupt.ExchangeInUseByWaitSet(false)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.stopCh:
			return nil
		default:
		}
		if err := e.iterate(ctx); err != nil {
			return err
		}
	}
}

// iterate performs one collect/wait/dispatch cycle.
func (e *Executor) iterate(ctx context.Context) error {
	ws, err := waitset.New()
	if err != nil {
		return err
	}
	defer ws.Close()
	defer e.collector.ClearHandles()

	e.metrics.Iterations.Add(1)

	if e.collector.CollectEntities(e.snapshotGroups()) {
		pruned := e.pruneDeadGroups()
		e.metrics.GroupsPruned.Add(int64(pruned))
		e.log.WithField("pruned", pruned).Debug("dropped groups with destroyed parents")
	}
	if err := e.collector.AddHandlesToWaitSet(ws); err != nil {
		return err
	}

	// Fresh set, fresh identity: release the previous claim and re-claim.
	e.interrupt.ExchangeInUseByWaitSet(false)
	if err := e.interrupt.AddToWaitSet(ws); err != nil {
		return err
	}

	ready, err := ws.Wait(e.waitTimeout())
	if err == api.ErrOperationTimeout {
		e.metrics.Timeouts.Add(1)
		return nil
	}
	if err != nil {
		return err
	}
	e.metrics.Wakeups.Add(1)

	// Reset level-triggered readiness before dispatch; a signal arriving
	// after the drain is caught by the next iteration.
	for _, p := range ready {
		n, derr := p.Drain()
		if derr != nil {
			e.log.WithError(derr).Warn("drain failed on fired primitive")
			continue
		}
		e.metrics.TriggersDelivered.Add(int64(n))
	}

	e.dispatch(ctx, ready)
	return nil
}

// dispatch executes every collected waitable that reported readiness,
// bounded by the configured parallelism.
func (e *Executor) dispatch(ctx context.Context, ready api.ReadySet) {
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(e.dispatchParallelism())
	for _, w := range e.collector.Waitables() {
		if !w.IsReady(ready) {
			continue
		}
		w := w
		eg.Go(func() error {
			if err := w.Execute(); err != nil {
				e.metrics.DispatchErrors.Add(1)
				e.log.WithError(err).Warn("waitable execution failed")
			}
			return nil
		})
	}
	_ = eg.Wait()
}

func (e *Executor) snapshotGroups() collect.GroupsToParents {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := make(collect.GroupsToParents, len(e.groups))
	for g, obs := range e.groups {
		snap[g] = obs
	}
	return snap
}

func (e *Executor) pruneDeadGroups() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	pruned := 0
	for g, obs := range e.groups {
		if !obs.Alive() {
			delete(e.groups, g)
			pruned++
		}
	}
	return pruned
}

func (e *Executor) waitTimeout() time.Duration {
	if e.configStore != nil {
		return e.configStore.GetDuration("executor.wait_timeout", e.cfg.WaitTimeout)
	}
	return e.cfg.WaitTimeout
}

func (e *Executor) dispatchParallelism() int {
	n := e.cfg.DispatchParallelism
	if e.configStore != nil {
		n = e.configStore.GetInt("executor.dispatch_parallelism", n)
	}
	if n <= 0 {
		n = 1
	}
	return n
}
