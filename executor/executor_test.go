// File: executor/executor_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Spin-loop behavior: wake-up delivery, dispatch, pruning of destroyed
// parents, shutdown.

package executor_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-evx/api"
	"github.com/momentics/hioload-evx/collect"
	"github.com/momentics/hioload-evx/executor"
	"github.com/momentics/hioload-evx/lifecycle"
	"github.com/momentics/hioload-evx/trigger"
)

// testWaitable wraps a real platform trigger so it can join the platform
// multiplexer.
type testWaitable struct {
	p        api.TriggerPrimitive
	executed atomic.Int64
}

func newTestWaitable(t *testing.T) *testWaitable {
	t.Helper()
	p, err := trigger.New()
	if err != nil {
		t.Fatalf("trigger.New() error: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return &testWaitable{p: p}
}

func (w *testWaitable) AddToWaitSet(ws api.WaitSet) error { return ws.Attach(w.p) }
func (w *testWaitable) IsReady(r api.ReadySet) bool       { return r.Contains(w.p) }
func (w *testWaitable) Execute() error                    { w.executed.Add(1); return nil }

// testParent owns a fixed waitable set.
type testParent struct {
	handles []api.Waitable
}

func (p *testParent) WaitableHandles() []api.Waitable { return p.handles }

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func startSpin(t *testing.T, e *executor.Executor) chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- e.Spin(context.Background()) }()
	t.Cleanup(func() {
		_ = e.Shutdown()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Spin() error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Spin() did not return after Shutdown")
		}
	})
	return done
}

func TestSpinDispatchesTriggeredWaitable(t *testing.T) {
	ctx := lifecycle.NewContext()
	// Registered before startSpin so the spin loop stops before the context
	// closes the interrupt primitive.
	t.Cleanup(func() { _ = ctx.Shutdown() })

	e, err := executor.New(ctx, nil, executor.WithWaitTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	w := newTestWaitable(t)
	tok := lifecycle.NewToken[api.ParentEntity](&testParent{handles: []api.Waitable{w}})
	g := collect.NewGroup("default", collect.MutuallyExclusive)
	if err := e.RegisterGroup(g, tok.Observe()); err != nil {
		t.Fatalf("RegisterGroup() error: %v", err)
	}

	startSpin(t, e)

	if err := w.p.Signal(); err != nil {
		t.Fatalf("Signal() error: %v", err)
	}
	waitFor(t, "waitable dispatch", func() bool { return w.executed.Load() >= 1 })

	if e.Metrics().Wakeups.Load() == 0 {
		t.Error("no wakeups recorded after signal")
	}
}

func TestSpinPrunesDestroyedParents(t *testing.T) {
	ctx := lifecycle.NewContext()
	// Registered before startSpin so the spin loop stops before the context
	// closes the interrupt primitive.
	t.Cleanup(func() { _ = ctx.Shutdown() })

	e, err := executor.New(ctx, nil, executor.WithWaitTimeout(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	w := newTestWaitable(t)
	tok := lifecycle.NewToken[api.ParentEntity](&testParent{handles: []api.Waitable{w}})
	g := collect.NewGroup("doomed", collect.Reentrant)
	if err := e.RegisterGroup(g, tok.Observe()); err != nil {
		t.Fatalf("RegisterGroup() error: %v", err)
	}
	if got := e.GroupCount(); got != 1 {
		t.Fatalf("GroupCount() = %d, want 1", got)
	}

	startSpin(t, e)

	tok.Release()
	waitFor(t, "group pruning", func() bool { return e.GroupCount() == 0 })
	if e.Metrics().GroupsPruned.Load() != 1 {
		t.Errorf("GroupsPruned = %d, want 1", e.Metrics().GroupsPruned.Load())
	}
}

func TestSecondSpinFails(t *testing.T) {
	ctx := lifecycle.NewContext()
	// Registered before startSpin so the spin loop stops before the context
	// closes the interrupt primitive.
	t.Cleanup(func() { _ = ctx.Shutdown() })

	e, err := executor.New(ctx, nil, executor.WithWaitTimeout(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	startSpin(t, e)
	waitFor(t, "first iteration", func() bool { return e.Metrics().Iterations.Load() > 0 })

	if err := e.Spin(context.Background()); err != executor.ErrAlreadySpinning {
		t.Fatalf("second Spin() = %v, want ErrAlreadySpinning", err)
	}
}

func TestWakeUnblocksIndefiniteWait(t *testing.T) {
	ctx := lifecycle.NewContext()
	t.Cleanup(func() { _ = ctx.Shutdown() })

	// Negative timeout: only the interrupt guard can unblock the loop.
	e, err := executor.New(ctx, nil, executor.WithWaitTimeout(-1))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	startSpin(t, e)
	waitFor(t, "spin to block", func() bool { return e.Metrics().Iterations.Load() > 0 })

	if err := e.Wake(); err != nil {
		t.Fatalf("Wake() error: %v", err)
	}
	waitFor(t, "wakeup", func() bool { return e.Metrics().Wakeups.Load() >= 1 })
}

func TestProbesExposeExecutorState(t *testing.T) {
	ctx := lifecycle.NewContext()
	defer ctx.Shutdown()

	e, err := executor.New(ctx, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	state := e.Probes().DumpState()
	if _, ok := state["executor.groups"]; !ok {
		t.Error("executor.groups probe missing")
	}
	if _, ok := state["executor.metrics"]; !ok {
		t.Error("executor.metrics probe missing")
	}
}
