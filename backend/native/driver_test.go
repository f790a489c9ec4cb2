//go:build !nogpu

package native

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/yagve/backend"
	"github.com/gogpu/yagve/render"
	"github.com/gogpu/yagve/shader"
	"github.com/gogpu/yagve/timing"
)

type fixedTarget struct{ w, h uint32 }

func (t fixedTarget) PixelSize() (uint32, uint32) { return t.w, t.h }

func openNoop(t *testing.T) *Device {
	t.Helper()
	dev, err := New(HALNoop).Open(context.Background(), fixedTarget{64, 32})
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	t.Cleanup(dev.Release)
	return dev.(*Device)
}

func builtinModule(t *testing.T) *shader.Module {
	t.Helper()
	src, err := shader.Builtin().Load("shader")
	if err != nil {
		t.Fatal(err)
	}
	m, err := shader.Compile("shader", src)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.DriverNative) {
		t.Fatal("native driver not registered")
	}
	d, err := backend.Get(backend.DriverNative)
	if err != nil {
		t.Fatal(err)
	}
	if d.Name() != backend.DriverNative || d.(*Driver).HAL() != HALVulkan {
		t.Errorf("registered driver = %s/%s", d.Name(), d.(*Driver).HAL())
	}
}

func TestOpenNoop(t *testing.T) {
	dev := openNoop(t)
	if dev.Info().Backend != HALNoop {
		t.Errorf("Info().Backend = %q", dev.Info().Backend)
	}
	if dev.PreferredFormat() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("PreferredFormat() = %v", dev.PreferredFormat())
	}
}

func TestOpenUnknownHAL(t *testing.T) {
	_, err := New("metal-on-linux").Open(context.Background(), fixedTarget{1, 1})
	if !errors.Is(err, ErrUnknownHAL) {
		t.Errorf("Open() = %v, want ErrUnknownHAL", err)
	}
}

func TestOpenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(HALNoop).Open(ctx, fixedTarget{1, 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("Open() = %v, want context.Canceled", err)
	}
}

func TestAcquireBeforeConfigure(t *testing.T) {
	dev := openNoop(t)
	if _, err := dev.AcquireFrame(); !errors.Is(err, render.ErrSurfaceLost) {
		t.Errorf("AcquireFrame() = %v, want ErrSurfaceLost", err)
	}
}

func TestConfigureSurface(t *testing.T) {
	dev := openNoop(t)
	cfg := render.NewSurfaceConfig(dev.PreferredFormat(), 64, 32, timing.Vsync())
	if err := dev.ConfigureSurface(cfg); err != nil {
		t.Fatalf("ConfigureSurface() = %v", err)
	}
	tex := dev.target

	cfg.PresentMode = render.PresentModeAutoNoVsync
	if err := dev.ConfigureSurface(cfg); err != nil {
		t.Fatal(err)
	}
	if dev.target != tex {
		t.Error("present mode change recreated the offscreen target")
	}
	if dev.Config() != cfg {
		t.Errorf("Config() = %v, want %v", dev.Config(), cfg)
	}

	cfg.Width = 128
	if err := dev.ConfigureSurface(cfg); err != nil {
		t.Fatal(err)
	}
	if dev.target == nil || dev.view == nil {
		t.Error("resize left no offscreen target")
	}
}

func TestFrameLifecycle(t *testing.T) {
	dev := openNoop(t)
	if err := dev.ConfigureSurface(render.NewSurfaceConfig(dev.PreferredFormat(), 64, 32, timing.Vsync())); err != nil {
		t.Fatal(err)
	}
	p, err := dev.CreatePipeline(render.PipelineDescriptor{
		Label:  "shader",
		Shader: builtinModule(t),
		Format: dev.PreferredFormat(),
	})
	if err != nil {
		t.Fatalf("CreatePipeline() = %v", err)
	}
	defer p.Release()

	for range 3 {
		f, err := dev.AcquireFrame()
		if err != nil {
			t.Fatalf("AcquireFrame() = %v", err)
		}
		pass := render.Pass{
			Pipeline:      p,
			ClearColor:    gputypes.Color{A: 1},
			VertexCount:   render.TriangleVertexCount,
			InstanceCount: render.TriangleInstanceCount,
		}
		if err := f.Draw(pass); err != nil {
			t.Fatalf("Draw() = %v", err)
		}
		if err := f.Present(); err != nil {
			t.Fatalf("Present() = %v", err)
		}
		if err := f.Present(); !errors.Is(err, ErrFrameDone) {
			t.Errorf("second Present() = %v, want ErrFrameDone", err)
		}
	}
	if dev.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", dev.Frames())
	}
}

func TestBackendOnNoop(t *testing.T) {
	b, err := render.New(context.Background(), New(HALNoop), fixedTarget{320, 240},
		render.Options{Shaders: []string{"shader"}, Pacing: timing.Framerate(60)})
	if err != nil {
		t.Fatalf("render.New() = %v", err)
	}
	defer b.Release()

	for range 5 {
		if n, err := b.PresentFrame(); err != nil || n != 1 {
			t.Fatalf("PresentFrame() = %d, %v", n, err)
		}
	}
	if err := b.Reconfigure(fixedTarget{0, 0}, timing.Vsync()); err != nil {
		t.Fatalf("Reconfigure() = %v", err)
	}
	if cfg := b.Config(); cfg.Width != 1 || cfg.Height != 1 {
		t.Errorf("Config() = %v, want 1x1", cfg)
	}
	if _, err := b.PresentFrame(); err != nil {
		t.Fatalf("PresentFrame() after resize = %v", err)
	}
}

// capturingDriver remembers the device it opened.
type capturingDriver struct {
	*Driver
	dev *Device
}

func (d *capturingDriver) Open(ctx context.Context, target render.Target) (render.Device, error) {
	dev, err := d.Driver.Open(ctx, target)
	if err == nil {
		d.dev = dev.(*Device)
	}
	return dev, err
}

func TestPresentFrameAdvancesFrames(t *testing.T) {
	drv := &capturingDriver{Driver: New(HALNoop)}
	b, err := render.New(context.Background(), drv, fixedTarget{64, 64},
		render.Options{Shaders: []string{"shader", "shader"}, Pacing: timing.Framerate(60)})
	if err != nil {
		t.Fatalf("render.New() = %v", err)
	}
	defer b.Release()

	start := time.Now()
	for i := 1; i <= 4; i++ {
		if n, err := b.PresentFrame(); err != nil || n != 2 {
			t.Fatalf("PresentFrame() #%d = %d, %v", i, n, err)
		}
		if got, want := drv.dev.Frames(), uint64(2*i); got != want {
			t.Fatalf("Frames() after %d calls = %d, want %d", i, got, want)
		}
	}
	// Submissions complete without waiting on a fence nobody signals.
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("4 frames took %v", elapsed)
	}
}

func TestReleasedDevice(t *testing.T) {
	dev, err := New(HALNoop).Open(context.Background(), fixedTarget{8, 8})
	if err != nil {
		t.Fatal(err)
	}
	dev.Release()
	dev.Release()
	if _, err := dev.AcquireFrame(); !errors.Is(err, ErrReleased) {
		t.Errorf("AcquireFrame() = %v, want ErrReleased", err)
	}
	if err := dev.ConfigureSurface(render.SurfaceConfig{Width: 1, Height: 1}); !errors.Is(err, ErrReleased) {
		t.Errorf("ConfigureSurface() = %v, want ErrReleased", err)
	}
}
