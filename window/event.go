package window

import (
	"fmt"
	"strings"
)

// Event is a window-system event delivered to a Handler.
//
// The set of events is closed: Resumed, Resized, FocusChanged,
// CloseRequested, RedrawRequested, KeyPressed and ModifiersChanged.
type Event interface {
	isEvent()
}

// Resumed is delivered when the application may create windows.
// It can be delivered more than once.
type Resumed struct{}

// Resized reports a new drawable size in pixels.
type Resized struct {
	Width, Height uint32
}

// FocusChanged reports that the window gained or lost input focus.
type FocusChanged struct {
	Focused bool
}

// CloseRequested is delivered when the user asks to close the window.
// The window stays open until the handler closes it.
type CloseRequested struct{}

// RedrawRequested is delivered after Window.RequestRedraw.
type RedrawRequested struct{}

// KeyPressed reports a key press with the modifiers held at that time.
type KeyPressed struct {
	Key  Key
	Mods Modifiers
}

// ModifiersChanged reports a change of the held modifier keys.
type ModifiersChanged struct {
	Mods Modifiers
}

func (Resumed) isEvent()          {}
func (Resized) isEvent()          {}
func (FocusChanged) isEvent()     {}
func (CloseRequested) isEvent()   {}
func (RedrawRequested) isEvent()  {}
func (KeyPressed) isEvent()       {}
func (ModifiersChanged) isEvent() {}

// Key identifies a keyboard key. Letters and digits use their upper-case
// ASCII code.
type Key int

// Key codes. Values outside the ASCII range follow the GLFW key table.
const (
	KeyUnknown   Key = -1
	KeySpace     Key = ' '
	Key0         Key = '0'
	Key9         Key = '9'
	KeyA         Key = 'A'
	KeyF         Key = 'F'
	KeyZ         Key = 'Z'
	KeyEscape    Key = 256
	KeyEnter     Key = 257
	KeyTab       Key = 258
	KeyBackspace Key = 259
	KeyF1        Key = 290
	KeyF12       Key = 301
)

// String implements fmt.Stringer.
func (k Key) String() string {
	switch {
	case k == KeySpace:
		return "Space"
	case (k >= KeyA && k <= KeyZ) || (k >= Key0 && k <= Key9):
		return string(rune(k))
	case k == KeyEscape:
		return "Escape"
	case k == KeyEnter:
		return "Enter"
	case k == KeyTab:
		return "Tab"
	case k == KeyBackspace:
		return "Backspace"
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", k-KeyF1+1)
	default:
		return "Unknown"
	}
}

// Modifiers is a set of held modifier keys.
type Modifiers uint8

// Modifier bits.
const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Has reports whether all modifiers in m2 are held.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// String implements fmt.Stringer.
func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, mod := range []struct {
		bit  Modifiers
		name string
	}{
		{ModShift, "Shift"},
		{ModControl, "Ctrl"},
		{ModAlt, "Alt"},
		{ModSuper, "Super"},
	} {
		if m&mod.bit != 0 {
			parts = append(parts, mod.name)
		}
	}
	return strings.Join(parts, "+")
}
