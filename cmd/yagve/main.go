// Command yagve opens a window and draws the configured WGSL shaders at a
// fixed framerate or in step with the display.
//
// Usage:
//
//	yagve [-config yagve.toml] [-fps 60 | -vsync] [-shaders a,b] [-shader-dir dir]
//	yagve -headless 120 -dry-run
//
// Flags override values from the config file. With -v, pressing F in the
// window logs the measured framerate.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gogpu/yagve"
	"github.com/gogpu/yagve/backend"
	"github.com/gogpu/yagve/backend/native"
	"github.com/gogpu/yagve/engine"
	"github.com/gogpu/yagve/render"
	"github.com/gogpu/yagve/window"
	yglfw "github.com/gogpu/yagve/window/glfw"

	// Register the windowed driver.
	_ "github.com/gogpu/yagve/backend/webgpu"
)

// errUsage marks command line errors.
var errUsage = errors.New("usage")

// options are the parsed command line.
type options struct {
	settings yagve.Settings
	headless int
	dryRun   bool
	verbose  bool
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "yagve:", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	yagve.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		yagve.Logger().Error("yagve: exiting", "err", err)
		stop()
		os.Exit(1)
	}
}

// run builds the engine and drives it on the selected event loop.
func run(ctx context.Context, opts options) error {
	log := yagve.Logger()
	log.Info(yagve.Name+" v"+yagve.Version, "pacing", opts.settings.Pacing.String())

	driver, err := selectDriver(opts)
	if err != nil {
		return err
	}

	var loop window.EventLoop
	if opts.headless > 0 {
		loop = window.NewHeadless(opts.headless)
	} else {
		loop = yglfw.NewLoop()
	}

	e := engine.New(opts.settings, driver)
	if err := e.Run(ctx, loop); err != nil {
		return err
	}

	stats := e.Stats()
	if stats.Valid {
		log.Info("yagve: done", "frames", stats.Frames, "dropped", stats.Dropped, "fps", fmt.Sprintf("%.3f", stats.FrameRate))
	} else {
		log.Info("yagve: done", "frames", stats.Frames, "dropped", stats.Dropped)
	}
	return nil
}

// selectDriver resolves the render driver. Headless runs default to the
// native driver since there is no surface to present to.
func selectDriver(opts options) (render.Driver, error) {
	if opts.dryRun {
		return native.New(native.HALNoop), nil
	}
	name := opts.settings.Driver
	if name == "" && opts.headless > 0 {
		name = backend.DriverNative
	}
	return backend.Get(name)
}

// parseArgs reads the optional config file and applies the flags that were
// set on top of it.
func parseArgs(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("yagve", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		configPath   = fs.String("config", "", "TOML or YAML config `file`")
		fps          = fs.Float64("fps", 0, "target framerate; 0 keeps the configured pacing")
		vsync        = fs.Bool("vsync", false, "pace frames by the display refresh")
		title        = fs.String("title", "", "window title")
		width        = fs.Int("width", 0, "window width in pixels")
		height       = fs.Int("height", 0, "window height in pixels")
		shaders      = fs.String("shaders", "", "comma separated shader `names`")
		shaderDir    = fs.String("shader-dir", "", "directory holding <name>.wgsl files; empty uses the built-in shader")
		clearColor   = fs.String("clear", "", "clear color name or #rrggbb[aa]")
		driver       = fs.String("driver", "", fmt.Sprintf("render driver %v; empty picks the best available", backend.Available()))
		headless     = fs.Int("headless", 0, "run without a window for `n` redraws")
		dryRun       = fs.Bool("dry-run", false, "render on the no-op GPU backend")
		withoutFocus = fs.Bool("render-without-focus", false, "keep drawing while the window is unfocused")
		verbose      = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("%w: unexpected arguments %q", errUsage, fs.Args())
	}
	if *fps < 0 {
		return options{}, fmt.Errorf("%w: -fps must not be negative", errUsage)
	}
	if *vsync && *fps > 0 {
		return options{}, fmt.Errorf("%w: -vsync and -fps are exclusive", errUsage)
	}

	s := yagve.DefaultSettings()
	if *configPath != "" {
		cfg, err := yagve.LoadConfig(*configPath)
		if err != nil {
			return options{}, err
		}
		if s, err = cfg.Apply(s); err != nil {
			return options{}, err
		}
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "fps":
			if *fps > 0 {
				s = s.WithFramerate(*fps)
			}
		case "vsync":
			if *vsync {
				s = s.WithVsync()
			}
		case "title":
			s = s.WithTitle(*title)
		case "width":
			s = s.WithSize(*width, s.Height)
		case "height":
			s = s.WithSize(s.Width, *height)
		case "shaders":
			s = s.WithShaders(splitList(*shaders)...)
		case "shader-dir":
			s = s.WithShaderDir(*shaderDir)
		case "clear":
			c, cerr := yagve.ParseColor(*clearColor)
			if cerr != nil {
				err = cerr
				return
			}
			s = s.WithClearColor(c)
		case "driver":
			s = s.WithDriver(*driver)
		case "render-without-focus":
			s = s.WithRenderWithoutFocus(*withoutFocus)
		}
	})
	if err != nil {
		return options{}, err
	}
	if err := s.Validate(); err != nil {
		return options{}, err
	}

	return options{
		settings: s,
		headless: *headless,
		dryRun:   *dryRun,
		verbose:  *verbose,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
