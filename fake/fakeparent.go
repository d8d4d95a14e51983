// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync/atomic"

	"github.com/momentics/hioload-evx/api"
)

// FakeWaitable is a canned waitable handle backed by a fake trigger.
type FakeWaitable struct {
	Trigger  *FakeTrigger
	Executed atomic.Int64
	ExecErr  error
}

// NewFakeWaitable builds a waitable with its own fake trigger.
func NewFakeWaitable() *FakeWaitable {
	return &FakeWaitable{Trigger: NewFakeTrigger()}
}

func (w *FakeWaitable) AddToWaitSet(ws api.WaitSet) error {
	return ws.Attach(w.Trigger)
}

func (w *FakeWaitable) IsReady(ready api.ReadySet) bool {
	return ready.Contains(w.Trigger)
}

func (w *FakeWaitable) Execute() error {
	w.Executed.Add(1)
	return w.ExecErr
}

var _ api.Waitable = (*FakeWaitable)(nil)

// FakeParent is a parent entity exposing a fixed set of waitable handles.
type FakeParent struct {
	Waitables []api.Waitable
}

// NewFakeParent builds a parent owning n fresh fake waitables.
func NewFakeParent(n int) *FakeParent {
	p := &FakeParent{}
	for i := 0; i < n; i++ {
		p.Waitables = append(p.Waitables, NewFakeWaitable())
	}
	return p
}

func (p *FakeParent) WaitableHandles() []api.Waitable {
	return p.Waitables
}

var _ api.ParentEntity = (*FakeParent)(nil)
