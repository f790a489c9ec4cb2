// Package window defines the event model and window capabilities the
// engine consumes, plus a headless event loop.
//
// Windowing systems deliver events serially to a single Handler on the
// goroutine that called EventLoop.Run. A Handler never runs concurrently
// with itself.
package window

import "errors"

// ErrCreate is wrapped by CreateWindow failures.
var ErrCreate = errors.New("window: creation failed")

// Attributes describe a window to create.
type Attributes struct {
	Title  string
	Width  int
	Height int
}

// Window is a native window.
type Window interface {
	// PixelSize returns the drawable size in pixels.
	PixelSize() (width, height uint32)

	// RequestRedraw schedules a RedrawRequested event.
	RequestRedraw()

	// Close destroys the window. Further calls are no-ops.
	Close()
}

// ActiveLoop is the view of a running EventLoop given to handlers.
type ActiveLoop interface {
	// CreateWindow creates a window. Errors wrap ErrCreate.
	CreateWindow(attrs Attributes) (Window, error)

	// Exit stops the loop after the current event. No further events are
	// delivered.
	Exit()
}

// Handler receives events.
type Handler interface {
	HandleEvent(loop ActiveLoop, ev Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(loop ActiveLoop, ev Event)

// HandleEvent implements Handler.
func (f HandlerFunc) HandleEvent(loop ActiveLoop, ev Event) {
	f(loop, ev)
}

// EventLoop drives a Handler until it exits.
type EventLoop interface {
	// Run delivers events to h and returns when h calls Exit or the
	// windowing system shuts down. Run must be called from the goroutine
	// that owns the windowing system (the main thread for desktop loops).
	Run(h Handler) error
}
