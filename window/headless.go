package window

import "fmt"

// Headless is an EventLoop without a windowing system. Its windows are
// virtual: they have a size, accept redraw requests and present nothing.
//
// Run delivers Resumed, then FocusChanged{Focused} once a window exists,
// then each event of Script, then RedrawRequested for as long as the
// window keeps requesting redraws. When MaxFrames redraws have been
// delivered it sends CloseRequested. Run returns once the handler exits or
// no event is pending.
type Headless struct {
	// Focused is the focus state reported after window creation.
	Focused bool

	// Script is delivered in order after Resumed and the focus event.
	Script []Event

	// MaxFrames bounds the RedrawRequested events. Zero means unbounded.
	MaxFrames int

	// CreateErr makes CreateWindow fail.
	CreateErr error

	win    *virtualWindow
	exited bool
	frames int
}

// NewHeadless returns a headless loop that reports the window as focused
// and stops after maxFrames redraws.
func NewHeadless(maxFrames int) *Headless {
	return &Headless{Focused: true, MaxFrames: maxFrames}
}

// Frames returns the number of RedrawRequested events delivered.
func (l *Headless) Frames() int {
	return l.frames
}

// Run implements EventLoop.
func (l *Headless) Run(h Handler) error {
	l.exited = false
	l.frames = 0

	if !l.deliver(h, Resumed{}) {
		return nil
	}
	if l.win != nil && !l.deliver(h, FocusChanged{Focused: l.Focused}) {
		return nil
	}
	for _, ev := range l.Script {
		if !l.deliver(h, ev) {
			return nil
		}
	}

	for l.win != nil && l.win.redraw && !l.win.closed {
		if l.MaxFrames > 0 && l.frames >= l.MaxFrames {
			l.deliver(h, CloseRequested{})
			return nil
		}
		l.win.redraw = false
		l.frames++
		if !l.deliver(h, RedrawRequested{}) {
			return nil
		}
	}
	return nil
}

// deliver hands ev to h and reports whether the loop should continue.
func (l *Headless) deliver(h Handler, ev Event) bool {
	if l.exited {
		return false
	}
	if r, ok := ev.(Resized); ok && l.win != nil {
		l.win.width, l.win.height = r.Width, r.Height
	}
	h.HandleEvent(l, ev)
	return !l.exited
}

// CreateWindow implements ActiveLoop.
func (l *Headless) CreateWindow(attrs Attributes) (Window, error) {
	if l.CreateErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, l.CreateErr)
	}
	if attrs.Width < 0 || attrs.Height < 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrCreate, attrs.Width, attrs.Height)
	}
	l.win = &virtualWindow{
		title:  attrs.Title,
		width:  uint32(attrs.Width),
		height: uint32(attrs.Height),
	}
	return l.win, nil
}

// Exit implements ActiveLoop.
func (l *Headless) Exit() {
	l.exited = true
}

type virtualWindow struct {
	title         string
	width, height uint32
	redraw        bool
	closed        bool
}

func (w *virtualWindow) PixelSize() (uint32, uint32) {
	if w.closed {
		return 0, 0
	}
	return w.width, w.height
}

func (w *virtualWindow) RequestRedraw() {
	if !w.closed {
		w.redraw = true
	}
}

func (w *virtualWindow) Close() {
	w.closed = true
	w.redraw = false
}

var (
	_ EventLoop  = (*Headless)(nil)
	_ ActiveLoop = (*Headless)(nil)
)
