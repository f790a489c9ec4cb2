package yagve

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/yagve/timing"
)

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("yagve: invalid settings")

// Default settings values.
const (
	DefaultTitle  = "YAGVX"
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultShader = "shader"
)

// Settings holds the engine configuration.
//
// Settings is a value type: the With* methods return a modified copy and
// never mutate the receiver.
//
// Example:
//
//	s := yagve.DefaultSettings().
//	    WithFramerate(60).
//	    WithTitle("demo")
type Settings struct {
	// Pacing selects vsync or a fixed frame interval.
	Pacing timing.Pacing

	// RenderWithoutFocus keeps drawing while the window is unfocused.
	RenderWithoutFocus bool

	// WindowTitle is the title of the created window.
	WindowTitle string

	// Width and Height are the requested window size in screen coordinates.
	Width  int
	Height int

	// Shaders lists the shader names to load, in draw order.
	Shaders []string

	// ShaderDir is the directory holding <name>.wgsl files.
	// Empty means the built-in shaders.
	ShaderDir string

	// ClearColor is the background color of every frame.
	ClearColor gputypes.Color

	// Driver names the GPU driver. Empty means the registry default.
	Driver string
}

// DefaultSettings returns the default configuration: vsync, no rendering
// while unfocused, a 1280x720 window titled "YAGVX" and the built-in
// "shader" pipeline on a black background.
func DefaultSettings() Settings {
	return Settings{
		Pacing:      timing.Vsync(),
		WindowTitle: DefaultTitle,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Shaders:     []string{DefaultShader},
		ClearColor:  gputypes.Color{R: 0, G: 0, B: 0, A: 1},
	}
}

// WithFramerate limits drawing to fps frames per second.
// A non-positive fps selects vsync.
func (s Settings) WithFramerate(fps float64) Settings {
	s.Pacing = timing.Framerate(fps)
	return s
}

// WithFrametime limits drawing to one frame per d.
func (s Settings) WithFrametime(d time.Duration) Settings {
	s.Pacing = timing.FixedInterval(d)
	return s
}

// WithVsync leaves frame pacing to the display.
func (s Settings) WithVsync() Settings {
	s.Pacing = timing.Vsync()
	return s
}

// WithRenderWithoutFocus keeps drawing while the window is unfocused.
func (s Settings) WithRenderWithoutFocus(enabled bool) Settings {
	s.RenderWithoutFocus = enabled
	return s
}

// WithTitle sets the window title.
func (s Settings) WithTitle(title string) Settings {
	s.WindowTitle = title
	return s
}

// WithSize sets the requested window size.
func (s Settings) WithSize(width, height int) Settings {
	s.Width = width
	s.Height = height
	return s
}

// WithShaders replaces the shader list.
func (s Settings) WithShaders(names ...string) Settings {
	s.Shaders = slices.Clone(names)
	return s
}

// WithShaderDir loads shaders from dir instead of the built-in set.
func (s Settings) WithShaderDir(dir string) Settings {
	s.ShaderDir = dir
	return s
}

// WithClearColor sets the frame background color.
func (s Settings) WithClearColor(c gputypes.Color) Settings {
	s.ClearColor = c
	return s
}

// WithDriver selects a GPU driver by registry name.
func (s Settings) WithDriver(name string) Settings {
	s.Driver = name
	return s
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidSettings, s.Width, s.Height)
	}
	if len(s.Shaders) == 0 {
		return fmt.Errorf("%w: no shaders configured", ErrInvalidSettings)
	}
	for _, name := range s.Shaders {
		if name == "" {
			return fmt.Errorf("%w: empty shader name", ErrInvalidSettings)
		}
	}
	return nil
}
