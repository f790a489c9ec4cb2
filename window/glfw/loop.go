// Package glfw implements window.EventLoop on GLFW.
//
// GLFW must be driven from the main thread. Importing this package locks
// the main goroutine to its OS thread; Run must be called from main.
package glfw

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/yagve/window"
)

func init() {
	runtime.LockOSThread()
}

// ErrSingleWindow is returned when a second window is requested.
var ErrSingleWindow = errors.New("glfw: only one window is supported")

// Loop is a GLFW event loop owning at most one window.
type Loop struct {
	handler window.Handler
	win     *Window
	queue   []window.Event
	mods    window.Modifiers
	exited  bool
}

// NewLoop returns an event loop. GLFW is initialized by Run.
func NewLoop() *Loop {
	return &Loop{}
}

// Run implements window.EventLoop. It initializes GLFW, delivers Resumed
// and then pumps native events until the handler exits or the window is
// gone.
func (l *Loop) Run(h window.Handler) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: init: %w", err)
	}
	defer glfw.Terminate()

	l.handler = h
	l.exited = false
	l.push(window.Resumed{})
	l.dispatch()

	for !l.exited && l.win != nil && !l.win.closed {
		if l.win.redraw {
			glfw.PollEvents()
			l.win.redraw = false
			l.push(window.RedrawRequested{})
		} else {
			glfw.WaitEvents()
		}
		l.dispatch()
	}

	if l.win != nil {
		l.win.Close()
	}
	return nil
}

// CreateWindow implements window.ActiveLoop.
func (l *Loop) CreateWindow(attrs window.Attributes) (window.Window, error) {
	if l.win != nil && !l.win.closed {
		return nil, fmt.Errorf("%w: %w", window.ErrCreate, ErrSingleWindow)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	native, err := glfw.CreateWindow(attrs.Width, attrs.Height, attrs.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", window.ErrCreate, err)
	}

	w := &Window{native: native}
	native.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		l.push(window.Resized{Width: uint32(max(width, 0)), Height: uint32(max(height, 0))})
	})
	native.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		l.push(window.FocusChanged{Focused: focused})
	})
	native.SetCloseCallback(func(win *glfw.Window) {
		// The handler decides whether the window goes away.
		win.SetShouldClose(false)
		l.push(window.CloseRequested{})
	})
	native.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		l.keyEvent(key, action, mods)
	})

	l.win = w
	return w, nil
}

// Exit implements window.ActiveLoop. Handlers run on the loop goroutine,
// so the flag is seen as soon as the current event returns.
func (l *Loop) Exit() {
	l.exited = true
}

func (l *Loop) keyEvent(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	m := modifiers(mods)
	if m != l.mods {
		l.mods = m
		l.push(window.ModifiersChanged{Mods: m})
	}
	if action == glfw.Press {
		l.push(window.KeyPressed{Key: window.Key(key), Mods: m})
	}
}

func (l *Loop) push(ev window.Event) {
	l.queue = append(l.queue, ev)
}

// dispatch delivers queued events until the queue is empty or the handler
// exits. Handlers may queue further events.
func (l *Loop) dispatch() {
	for len(l.queue) > 0 && !l.exited {
		ev := l.queue[0]
		l.queue = l.queue[1:]
		l.handler.HandleEvent(l, ev)
	}
	if l.exited {
		l.queue = nil
	}
}

// modifiers converts GLFW modifier bits. Lock keys are ignored.
func modifiers(m glfw.ModifierKey) window.Modifiers {
	var out window.Modifiers
	if m&glfw.ModShift != 0 {
		out |= window.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= window.ModControl
	}
	if m&glfw.ModAlt != 0 {
		out |= window.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= window.ModSuper
	}
	return out
}

// Window is a GLFW window without a client API, suitable for a WebGPU
// surface.
type Window struct {
	native *glfw.Window
	redraw bool
	closed bool
}

// PixelSize implements window.Window. It reports the framebuffer size,
// which differs from the window size on high-DPI displays.
func (w *Window) PixelSize() (uint32, uint32) {
	if w.closed {
		return 0, 0
	}
	width, height := w.native.GetFramebufferSize()
	return uint32(max(width, 0)), uint32(max(height, 0))
}

// RequestRedraw implements window.Window.
func (w *Window) RequestRedraw() {
	w.redraw = true
}

// Close implements window.Window.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.native.Destroy()
}

// SurfaceDescriptor describes the native surface for the webgpu driver.
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.native)
}
