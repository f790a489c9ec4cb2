// Package rendertest provides an in-memory render.Driver that records every
// call, for testing code built on render.Backend.
package rendertest

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/yagve/render"
)

// Target is a render.Target with a settable size.
type Target struct {
	Width, Height uint32
}

// PixelSize implements render.Target.
func (t *Target) PixelSize() (uint32, uint32) {
	return t.Width, t.Height
}

// Driver is a scripted render.Driver.
//
// Errors set on the Driver are returned by the corresponding Device
// methods. AcquireErrs is consumed one entry per AcquireFrame call, so a
// test can fail a specific acquisition. DrawErrs fails draws of the
// pipeline with the given label.
type Driver struct {
	Format gputypes.TextureFormat
	Info   render.AdapterInfo

	OpenErr      error
	ConfigureErr error
	PipelineErrs map[string]error
	AcquireErrs  []error
	DrawErr      error
	DrawErrs     map[string]error
	PresentErr   error

	// Opened holds every device returned by Open.
	Opened []*Device
}

// NewDriver returns a driver with no scripted failures.
func NewDriver() *Driver {
	return &Driver{
		Format: gputypes.TextureFormatBGRA8Unorm,
		Info:   render.AdapterInfo{Name: "test adapter", Backend: "test", Type: "cpu"},
	}
}

// Name implements render.Driver.
func (d *Driver) Name() string { return "test" }

// Open implements render.Driver.
func (d *Driver) Open(ctx context.Context, target render.Target) (render.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	dev := &Device{driver: d, Target: target}
	d.Opened = append(d.Opened, dev)
	return dev, nil
}

// Device returns the most recently opened device, or nil.
func (d *Driver) Device() *Device {
	if len(d.Opened) == 0 {
		return nil
	}
	return d.Opened[len(d.Opened)-1]
}

// Device records the calls made on it.
type Device struct {
	driver *Driver

	Target    render.Target
	Configs   []render.SurfaceConfig
	Pipelines []*Pipeline
	Passes    []render.Pass
	Acquires  int
	Presents  int
	Discards  int
	Released  bool
}

// Info implements render.Device.
func (d *Device) Info() render.AdapterInfo { return d.driver.Info }

// PreferredFormat implements render.Device.
func (d *Device) PreferredFormat() gputypes.TextureFormat { return d.driver.Format }

// ConfigureSurface implements render.Device.
func (d *Device) ConfigureSurface(cfg render.SurfaceConfig) error {
	if d.driver.ConfigureErr != nil {
		return d.driver.ConfigureErr
	}
	d.Configs = append(d.Configs, cfg)
	return nil
}

// LastConfig returns the most recently applied configuration.
func (d *Device) LastConfig() render.SurfaceConfig {
	if len(d.Configs) == 0 {
		return render.SurfaceConfig{}
	}
	return d.Configs[len(d.Configs)-1]
}

// CreatePipeline implements render.Device.
func (d *Device) CreatePipeline(desc render.PipelineDescriptor) (render.Pipeline, error) {
	if err := d.driver.PipelineErrs[desc.Label]; err != nil {
		return nil, err
	}
	if desc.Shader == nil {
		return nil, errors.New("rendertest: nil shader")
	}
	p := &Pipeline{Desc: desc}
	d.Pipelines = append(d.Pipelines, p)
	return p, nil
}

// AcquireFrame implements render.Device.
func (d *Device) AcquireFrame() (render.Frame, error) {
	d.Acquires++
	if d.Released {
		return nil, errors.New("rendertest: device released")
	}
	if len(d.Configs) == 0 {
		return nil, fmt.Errorf("rendertest: surface not configured: %w", render.ErrSurfaceLost)
	}
	if len(d.driver.AcquireErrs) > 0 {
		err := d.driver.AcquireErrs[0]
		d.driver.AcquireErrs = d.driver.AcquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &frame{dev: d}, nil
}

// Release implements render.Device.
func (d *Device) Release() {
	d.Released = true
}

// Pipeline is a recorded pipeline.
type Pipeline struct {
	Desc     render.PipelineDescriptor
	Released bool
}

// Label implements render.Pipeline.
func (p *Pipeline) Label() string { return p.Desc.Label }

// Release implements render.Pipeline.
func (p *Pipeline) Release() { p.Released = true }

type frame struct {
	dev  *Device
	done bool
}

func (f *frame) Draw(pass render.Pass) error {
	if f.dev.driver.DrawErr != nil {
		return f.dev.driver.DrawErr
	}
	if pass.Pipeline != nil {
		if err := f.dev.driver.DrawErrs[pass.Pipeline.Label()]; err != nil {
			return err
		}
	}
	f.dev.Passes = append(f.dev.Passes, pass)
	return nil
}

func (f *frame) Present() error {
	if f.done {
		return errors.New("rendertest: frame already finished")
	}
	f.done = true
	if f.dev.driver.PresentErr != nil {
		return f.dev.driver.PresentErr
	}
	f.dev.Presents++
	return nil
}

func (f *frame) Discard() {
	f.done = true
	f.dev.Discards++
}

var (
	_ render.Driver = (*Driver)(nil)
	_ render.Device = (*Device)(nil)
	_ render.Frame  = (*frame)(nil)
)
