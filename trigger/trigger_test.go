// File: trigger/trigger_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package trigger

import (
	"testing"

	"github.com/momentics/hioload-evx/api"
)

func TestPlatformTriggerSignalDrain(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer p.Close()

	for i := 0; i < 3; i++ {
		if err := p.Signal(); err != nil {
			t.Fatalf("Signal() error: %v", err)
		}
	}
	n, err := p.Drain()
	if err != nil {
		t.Fatalf("Drain() error: %v", err)
	}
	if n != 3 {
		t.Fatalf("Drain() = %d, want 3", n)
	}
	// Drained: nothing pending.
	n, err = p.Drain()
	if err != nil {
		t.Fatalf("second Drain() error: %v", err)
	}
	if n != 0 {
		t.Fatalf("second Drain() = %d, want 0", n)
	}
}

func TestPlatformTriggerClose(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := p.Close(); err != api.ErrTriggerClosed {
		t.Errorf("second Close() = %v, want ErrTriggerClosed", err)
	}
	if err := p.Signal(); err != api.ErrTriggerClosed {
		t.Errorf("Signal() after close = %v, want ErrTriggerClosed", err)
	}
}

func TestChanTriggerStickyReadiness(t *testing.T) {
	p := NewChanTrigger()
	if len(p.Ready()) != 0 {
		t.Fatal("fresh trigger reports readiness")
	}
	if err := p.Signal(); err != nil {
		t.Fatalf("Signal() error: %v", err)
	}
	if err := p.Signal(); err != nil {
		t.Fatalf("Signal() error: %v", err)
	}
	// The mark is sticky and single-slot; the count is kept separately.
	if len(p.Ready()) != 1 {
		t.Fatal("signaled trigger not ready")
	}
	n, err := p.Drain()
	if err != nil {
		t.Fatalf("Drain() error: %v", err)
	}
	if n != 2 {
		t.Fatalf("Drain() = %d, want 2", n)
	}
	if len(p.Ready()) != 0 {
		t.Fatal("drained trigger still ready")
	}
}

func TestChanTriggerHasNoHandle(t *testing.T) {
	p := NewChanTrigger()
	if _, ok := p.Handle(); ok {
		t.Fatal("chan trigger reported an OS handle")
	}
}
