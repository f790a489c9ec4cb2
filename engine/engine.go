// Package engine runs the window and GPU lifecycle and the frame-pacing
// loop.
//
// An Engine is a window.Handler. It creates its window and render backend
// on the first Resumed event, redraws continuously while the window is
// visible and the pacer allows it, and releases everything on
// CloseRequested.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/yagve"
	"github.com/gogpu/yagve/render"
	"github.com/gogpu/yagve/shader"
	"github.com/gogpu/yagve/timing"
	"github.com/gogpu/yagve/window"
)

// ErrAlreadyRun is returned when Run is called on an engine that has
// already been started.
var ErrAlreadyRun = errors.New("engine: already run")

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger replaces yagve.Logger() for this engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithShaderSource overrides the shader source derived from the settings.
func WithShaderSource(src shader.Source) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// Stats is a snapshot of the frame statistics.
type Stats struct {
	// Average is the mean interval over the last timing.Capacity frames.
	// Valid is false until two frames have been presented.
	Average   time.Duration
	FrameRate float64
	Valid     bool

	// Samples is the number of intervals in the average.
	Samples int

	// Frames counts redraws that presented at least one pipeline. Dropped
	// counts redraws in which a pipeline lost its frame to a recoverable
	// draw error; a redraw can count in both.
	Frames  uint64
	Dropped uint64
}

// Engine is the application state machine.
//
// All methods run on the event-loop goroutine; Engine is not safe for
// concurrent use.
type Engine struct {
	settings yagve.Settings
	driver   render.Driver
	source   shader.Source
	now      func() time.Time
	log      *slog.Logger

	ctx     context.Context
	state   state
	pacer   *timing.Pacer
	clock   timing.FrameClock
	focused bool
	mods    window.Modifiers
	frames  uint64
	dropped uint64
	err     error
}

// New creates an engine that draws with driver.
func New(settings yagve.Settings, driver render.Driver, opts ...Option) *Engine {
	e := &Engine{
		settings: settings,
		driver:   driver,
		now:      time.Now,
		state:    uninitialized{},
		pacer:    timing.NewPacer(settings.Pacing),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = yagve.Logger()
	}
	if e.source == nil {
		if settings.ShaderDir != "" {
			e.source = shader.DirSource(settings.ShaderDir)
		} else {
			e.source = shader.Builtin()
		}
	}
	return e
}

// Run drives the engine with loop until the window is closed, ctx is
// canceled or a fatal error occurs. Cancellation is observed on the next
// event; while Ready the engine redraws continuously, so that is at most
// one frame later.
//
// Run returns the fatal error that stopped the engine, if any, or the
// error returned by the loop.
func (e *Engine) Run(ctx context.Context, loop window.EventLoop) error {
	if _, ok := e.state.(uninitialized); !ok || e.ctx != nil {
		return ErrAlreadyRun
	}
	e.ctx = ctx
	e.log.Info("engine: starting",
		"title", e.settings.WindowTitle,
		"pacing", e.settings.Pacing.String(),
		"render_without_focus", e.settings.RenderWithoutFocus)

	loopErr := loop.Run(e)

	// The loop may stop on its own (display gone, headless script done).
	e.release()
	e.state = terminated{}

	if e.err != nil {
		return e.err
	}
	if loopErr != nil {
		return fmt.Errorf("engine: event loop: %w", loopErr)
	}
	return nil
}

// State returns the lifecycle phase.
func (e *Engine) State() State {
	return e.state.phase()
}

// Err returns the fatal error that terminated the engine, or nil.
func (e *Engine) Err() error {
	return e.err
}

// Focused reports the last known focus state.
func (e *Engine) Focused() bool {
	return e.focused
}

// Backend returns the render backend while Ready, or nil.
func (e *Engine) Backend() *render.Backend {
	if r, ok := e.state.(ready); ok {
		return r.backend
	}
	return nil
}

// Stats returns the current frame statistics.
func (e *Engine) Stats() Stats {
	avg, ok := e.clock.Average()
	fps, _ := e.clock.FrameRate()
	return Stats{
		Average:   avg,
		FrameRate: fps,
		Valid:     ok,
		Samples:   e.clock.Samples(),
		Frames:    e.frames,
		Dropped:   e.dropped,
	}
}

// HandleEvent implements window.Handler.
func (e *Engine) HandleEvent(loop window.ActiveLoop, ev window.Event) {
	if _, ok := e.state.(terminated); ok {
		return
	}
	if e.ctx != nil && e.ctx.Err() != nil {
		e.log.Info("engine: context done, shutting down", "err", e.ctx.Err())
		e.terminate(loop)
		return
	}

	switch ev := ev.(type) {
	case window.Resumed:
		e.resume(loop)
	case window.FocusChanged:
		e.focused = ev.Focused
		e.log.Debug("engine: focus changed", "focused", ev.Focused)
		if r, ok := e.state.(ready); ok {
			r.win.RequestRedraw()
		}
	case window.CloseRequested:
		e.log.Info("engine: close requested")
		e.terminate(loop)
	case window.RedrawRequested:
		e.redraw(loop)
	case window.Resized:
		e.resize(ev)
	case window.KeyPressed:
		e.keyPressed(ev)
	case window.ModifiersChanged:
		e.mods = ev.Mods
		e.log.Debug("engine: modifiers changed", "mods", ev.Mods.String())
	}
}

func (e *Engine) resume(loop window.ActiveLoop) {
	if _, ok := e.state.(uninitialized); !ok {
		return
	}

	win, err := loop.CreateWindow(window.Attributes{
		Title:  e.settings.WindowTitle,
		Width:  e.settings.Width,
		Height: e.settings.Height,
	})
	if err != nil {
		e.fail(loop, fmt.Errorf("engine: create window: %w", err))
		return
	}

	ctx := e.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	backend, err := render.New(ctx, e.driver, win, render.Options{
		Shaders:    e.settings.Shaders,
		Source:     e.source,
		Pacing:     e.settings.Pacing,
		ClearColor: e.settings.ClearColor,
		Logger:     e.log,
	})
	if err != nil {
		win.Close()
		e.fail(loop, fmt.Errorf("engine: create backend: %w", err))
		return
	}

	e.state = ready{win: win, backend: backend}
	w, h := win.PixelSize()
	e.log.Info("engine: ready", "width", w, "height", h, "pipelines", backend.Pipelines())
	win.RequestRedraw()
}

func (e *Engine) redraw(loop window.ActiveLoop) {
	r, ok := e.state.(ready)
	if !ok {
		return
	}

	if e.visible() {
		now := e.now()
		if e.pacer.MayDraw(now) {
			presented, err := r.backend.PresentFrame()
			if render.IsFatal(err) {
				e.fail(loop, fmt.Errorf("engine: present: %w", err))
				return
			}
			if err != nil {
				e.dropped++
				e.log.Warn("engine: frame dropped", "presented", presented, "err", err)
			}
			// A partially failed redraw still reached the display.
			if presented > 0 {
				e.clock.Record(now)
				e.pacer.OnDrawn(now)
				e.frames++
			}
		}
	}

	r.win.RequestRedraw()
}

func (e *Engine) visible() bool {
	return e.focused || e.settings.RenderWithoutFocus
}

func (e *Engine) resize(ev window.Resized) {
	r, ok := e.state.(ready)
	if !ok {
		return
	}
	if err := r.backend.Reconfigure(r.win, e.settings.Pacing); err != nil {
		// The next acquisition reconfigures and retries.
		e.log.Warn("engine: reconfigure failed", "width", ev.Width, "height", ev.Height, "err", err)
	}
}

func (e *Engine) keyPressed(ev window.KeyPressed) {
	if ev.Key != window.KeyF {
		return
	}
	fps, ok := e.clock.FrameRate()
	if !ok {
		e.log.Debug("engine: no frame statistics yet")
		return
	}
	avg, _ := e.clock.Average()
	e.log.Debug(fmt.Sprintf("Framerate: %.3f fps", fps), "frametime", avg, "samples", e.clock.Samples())
}

// fail records a fatal error and terminates.
func (e *Engine) fail(loop window.ActiveLoop, err error) {
	e.err = err
	e.log.Error("engine: fatal", "err", err)
	e.terminate(loop)
}

func (e *Engine) terminate(loop window.ActiveLoop) {
	loop.Exit()
	e.release()
	e.state = terminated{}
	e.log.Info("engine: terminated", "frames", e.frames, "dropped", e.dropped)
}

// release destroys the backend before the window it draws into.
func (e *Engine) release() {
	r, ok := e.state.(ready)
	if !ok {
		return
	}
	r.backend.Release()
	r.win.Close()
	e.state = terminated{}
}

var _ window.Handler = (*Engine)(nil)
