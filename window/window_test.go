package window

import (
	"errors"
	"testing"
)

// recorder keeps every event and optionally reacts to it.
type recorder struct {
	events []Event
	win    Window
	react  func(loop ActiveLoop, ev Event)
}

func (r *recorder) HandleEvent(loop ActiveLoop, ev Event) {
	r.events = append(r.events, ev)
	if _, ok := ev.(Resumed); ok && r.win == nil {
		w, err := loop.CreateWindow(Attributes{Title: "t", Width: 320, Height: 200})
		if err == nil {
			r.win = w
			w.RequestRedraw()
		}
	}
	if _, ok := ev.(RedrawRequested); ok {
		r.win.RequestRedraw()
	}
	if r.react != nil {
		r.react(loop, ev)
	}
}

func count[T Event](events []Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}

func TestHeadlessEventOrder(t *testing.T) {
	loop := NewHeadless(2)
	loop.Script = []Event{Resized{Width: 640, Height: 480}, KeyPressed{Key: KeyF}}
	r := &recorder{}

	if err := loop.Run(r); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	want := []Event{
		Resumed{},
		FocusChanged{Focused: true},
		Resized{Width: 640, Height: 480},
		KeyPressed{Key: KeyF},
		RedrawRequested{},
		RedrawRequested{},
		CloseRequested{},
	}
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, r.events[i], want[i])
		}
	}
	if w, h := r.win.PixelSize(); w != 640 || h != 480 {
		t.Errorf("PixelSize() after resize = %dx%d", w, h)
	}
	if loop.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", loop.Frames())
	}
}

func TestHeadlessExitStopsDelivery(t *testing.T) {
	loop := NewHeadless(0)
	r := &recorder{}
	r.react = func(l ActiveLoop, ev Event) {
		if _, ok := ev.(RedrawRequested); ok {
			l.Exit()
		}
	}
	if err := loop.Run(r); err != nil {
		t.Fatal(err)
	}
	if n := count[RedrawRequested](r.events); n != 1 {
		t.Errorf("redraws after Exit = %d, want 1", n)
	}
	if _, ok := r.events[len(r.events)-1].(RedrawRequested); !ok {
		t.Errorf("last event = %#v, want RedrawRequested", r.events[len(r.events)-1])
	}
}

func TestHeadlessStopsWithoutRedrawRequests(t *testing.T) {
	loop := NewHeadless(0)
	var events []Event
	err := loop.Run(HandlerFunc(func(l ActiveLoop, ev Event) {
		events = append(events, ev)
		if _, ok := ev.(Resumed); ok {
			if _, err := l.CreateWindow(Attributes{Width: 1, Height: 1}); err != nil {
				t.Fatal(err)
			}
		}
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Errorf("events = %v, want Resumed and FocusChanged", events)
	}
}

func TestHeadlessCreateError(t *testing.T) {
	loop := NewHeadless(1)
	loop.CreateErr = errors.New("no display")
	var got error
	_ = loop.Run(HandlerFunc(func(l ActiveLoop, ev Event) {
		if _, ok := ev.(Resumed); ok {
			_, got = l.CreateWindow(Attributes{Width: 1, Height: 1})
		}
	}))
	if !errors.Is(got, ErrCreate) {
		t.Errorf("CreateWindow() = %v, want ErrCreate", got)
	}
}

func TestVirtualWindowClose(t *testing.T) {
	loop := NewHeadless(0)
	w, err := loop.CreateWindow(Attributes{Width: 10, Height: 20})
	if err != nil {
		t.Fatal(err)
	}
	w.Close()
	w.RequestRedraw()
	w.Close()
	if width, height := w.PixelSize(); width != 0 || height != 0 {
		t.Errorf("PixelSize() after Close = %dx%d", width, height)
	}
}

func TestKeyString(t *testing.T) {
	tests := map[Key]string{
		KeyF:         "F",
		KeyA:         "A",
		Key('7'):     "7",
		KeySpace:     "Space",
		KeyEscape:    "Escape",
		KeyEnter:     "Enter",
		KeyF1:        "F1",
		KeyF12:       "F12",
		KeyUnknown:   "Unknown",
		KeyBackspace: "Backspace",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Key(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestModifiers(t *testing.T) {
	m := ModShift | ModControl
	if !m.Has(ModShift) || !m.Has(ModShift|ModControl) || m.Has(ModAlt) {
		t.Errorf("Has() mismatch for %v", m)
	}
	if got := m.String(); got != "Shift+Ctrl" {
		t.Errorf("String() = %q", got)
	}
	if got := Modifiers(0).String(); got != "none" {
		t.Errorf("String() = %q", got)
	}
}
