// File: collect/group.go
// Package collect implements the per-cycle liveness pass over scheduling
// groups and their owning parent entities.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package collect

import (
	"github.com/momentics/hioload-evx/api"
	"github.com/momentics/hioload-evx/lifecycle"
)

// Mode enumerates how a scheduling group's waitables may be dispatched.
type Mode int

const (
	// MutuallyExclusive groups run at most one waitable at a time.
	MutuallyExclusive Mode = iota
	// Reentrant groups allow concurrent dispatch.
	Reentrant
)

func (m Mode) String() string {
	switch m {
	case MutuallyExclusive:
		return "mutually-exclusive"
	case Reentrant:
		return "reentrant"
	default:
		return "unknown"
	}
}

// Group is a scheduling-group key. Groups are referenced, not owned, by the
// collector; identity is pointer identity.
type Group struct {
	name string
	mode Mode
}

// NewGroup creates a scheduling group key.
func NewGroup(name string, mode Mode) *Group {
	return &Group{name: name, mode: mode}
}

// Name returns the group's label.
func (g *Group) Name() string { return g.name }

// Mode returns the group's dispatch mode.
func (g *Group) Mode() Mode { return g.mode }

// GroupsToParents maps scheduling groups to weak observers of their owning
// parent entities. A parent's destruction does not remove its entries; the
// collector detects staleness instead.
type GroupsToParents map[*Group]*lifecycle.Observer[api.ParentEntity]
