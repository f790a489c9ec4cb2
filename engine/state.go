package engine

import (
	"github.com/gogpu/yagve/render"
	"github.com/gogpu/yagve/window"
)

// State is the lifecycle phase of an Engine.
type State int

const (
	// Uninitialized: no window and no backend yet.
	Uninitialized State = iota

	// Ready: the window and the backend exist.
	Ready

	// Terminated: everything is released; events are ignored.
	Terminated
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// state carries exactly the resources valid in its phase, so a backend can
// never exist without its window.
type state interface {
	phase() State
}

type uninitialized struct{}

// ready owns the window and the backend drawing into it. The backend holds
// a non-owning reference to win and is always released first.
type ready struct {
	win     window.Window
	backend *render.Backend
}

type terminated struct{}

func (uninitialized) phase() State { return Uninitialized }
func (ready) phase() State         { return Ready }
func (terminated) phase() State    { return Terminated }
