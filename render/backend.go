// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/yagve"
	"github.com/gogpu/yagve/shader"
	"github.com/gogpu/yagve/timing"
)

// Options configures a Backend.
type Options struct {
	// Shaders lists the shader names to load. Load order is draw order.
	Shaders []string

	// Source resolves shader names. Nil means shader.Builtin().
	Source shader.Source

	// Pacing selects the present mode.
	Pacing timing.Pacing

	// ClearColor is the background of every pass.
	ClearColor gputypes.Color

	// Logger overrides yagve.Logger().
	Logger *slog.Logger
}

// Backend owns a device, its surface configuration and the ordered list of
// pipelines drawn every frame.
//
// The device is created once by New, reconfigured (never recreated) by
// Reconfigure and destroyed by Release. A Backend is used from a single
// goroutine.
type Backend struct {
	device    Device
	target    Target
	info      AdapterInfo
	config    SurfaceConfig
	pipelines []Pipeline
	clear     gputypes.Color
	log       *slog.Logger
	released  bool
}

// New opens a device on target through driver, configures the surface from
// the target's current size and builds one pipeline per shader. Every
// shader is loaded and compiled before the first pipeline is created.
//
// Any failure is returned after releasing whatever was already created;
// a Backend is never returned with a partial pipeline list.
func New(ctx context.Context, driver Driver, target Target, opts Options) (*Backend, error) {
	log := opts.Logger
	if log == nil {
		log = yagve.Logger()
	}
	src := opts.Source
	if src == nil {
		src = shader.Builtin()
	}

	device, err := driver.Open(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("render: open %s: %w", driver.Name(), err)
	}

	b := &Backend{
		device: device,
		target: target,
		info:   device.Info(),
		clear:  opts.ClearColor,
		log:    log,
	}
	log.Info("render: adapter selected",
		"driver", driver.Name(),
		"adapter", b.info.Name,
		"backend", b.info.Backend,
		"type", b.info.Type)

	w, h := target.PixelSize()
	cfg := NewSurfaceConfig(device.PreferredFormat(), w, h, opts.Pacing)
	if err := b.apply(cfg); err != nil {
		b.Release()
		return nil, err
	}

	modules, err := shader.Load(src, opts.Shaders)
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("%w: %w", ErrPipeline, err)
	}
	for _, mod := range modules {
		if err := b.addPipeline(mod); err != nil {
			b.Release()
			return nil, err
		}
	}
	return b, nil
}

func (b *Backend) addPipeline(mod *shader.Module) error {
	p, err := b.device.CreatePipeline(PipelineDescriptor{
		Label:  mod.Name,
		Shader: mod,
		Format: b.config.Format,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPipeline, mod.Name, err)
	}
	b.pipelines = append(b.pipelines, p)
	b.log.Debug("render: pipeline created", "shader", mod.Name)
	return nil
}

func (b *Backend) apply(cfg SurfaceConfig) error {
	if err := b.device.ConfigureSurface(cfg); err != nil {
		return fmt.Errorf("render: configure surface %v: %w", cfg, err)
	}
	b.config = cfg
	b.log.Debug("render: surface configured", "config", cfg.String())
	return nil
}

// Reconfigure re-derives the surface configuration from the target's
// current size and pacing and applies it to the existing surface.
// Calling it again with the same inputs is a no-op.
func (b *Backend) Reconfigure(target Target, pacing timing.Pacing) error {
	if b.released {
		return ErrReleased
	}
	w, h := target.PixelSize()
	cfg := NewSurfaceConfig(b.config.Format, w, h, pacing)
	if cfg == b.config {
		return nil
	}
	return b.apply(cfg)
}

// Config returns the applied surface configuration.
func (b *Backend) Config() SurfaceConfig {
	return b.config
}

// Info describes the adapter in use.
func (b *Backend) Info() AdapterInfo {
	return b.info
}

// Pipelines returns the pipeline labels in draw order.
func (b *Backend) Pipelines() []string {
	labels := make([]string, len(b.pipelines))
	for i, p := range b.pipelines {
		labels[i] = p.Label()
	}
	return labels
}

// PresentFrame draws and presents one frame per pipeline, in load order,
// and reports how many frames reached the surface.
//
// Each frame clears the surface, binds the pipeline and draws the
// placeholder triangle. Acquisition failures are retried once after
// reconfiguring the surface; a second failure returns ErrSurfaceAcquire,
// which is fatal. Draw and present failures skip that pipeline and are
// returned joined, each wrapping ErrDraw, alongside the count of the
// pipelines that did present.
func (b *Backend) PresentFrame() (presented int, err error) {
	if b.released {
		return 0, ErrReleased
	}

	var errs []error
	for _, p := range b.pipelines {
		frame, err := b.acquire()
		if err != nil {
			return presented, err
		}
		if err := frame.Draw(Pass{
			Pipeline:      p,
			ClearColor:    b.clear,
			VertexCount:   TriangleVertexCount,
			InstanceCount: TriangleInstanceCount,
		}); err != nil {
			frame.Discard()
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrDraw, p.Label(), err))
			continue
		}
		if err := frame.Present(); err != nil {
			errs = append(errs, fmt.Errorf("%w: present %s: %w", ErrDraw, p.Label(), err))
			continue
		}
		presented++
	}
	return presented, errors.Join(errs...)
}

func (b *Backend) acquire() (Frame, error) {
	frame, err := b.device.AcquireFrame()
	if err == nil {
		return frame, nil
	}

	b.log.Warn("render: surface acquisition failed, reconfiguring", "err", err)
	if cerr := b.device.ConfigureSurface(b.config); cerr != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceAcquire, errors.Join(err, cerr))
	}
	frame, err = b.device.AcquireFrame()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceAcquire, err)
	}
	return frame, nil
}

// Release destroys the pipelines, then the device. It is safe to call more
// than once.
func (b *Backend) Release() {
	if b.released {
		return
	}
	b.released = true
	for i := len(b.pipelines) - 1; i >= 0; i-- {
		b.pipelines[i].Release()
	}
	b.pipelines = nil
	b.device.Release()
	b.log.Debug("render: backend released")
}
