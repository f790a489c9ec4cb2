// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/yagve/render"
	"github.com/gogpu/yagve/shader"
)

// ErrReleased is returned by operations on a released device.
var ErrReleased = errors.New("webgpu: device released")

// Device owns the wgpu instance, surface, adapter, device and queue.
type Device struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	info     render.AdapterInfo

	format       wgpu.TextureFormat
	preferred    gputypes.TextureFormat
	presentModes []wgpu.PresentMode
	alphaMode    wgpu.CompositeAlphaMode

	configured bool
	released   bool
}

// Info implements render.Device.
func (d *Device) Info() render.AdapterInfo {
	return d.info
}

// PreferredFormat implements render.Device.
func (d *Device) PreferredFormat() gputypes.TextureFormat {
	return d.preferred
}

// ConfigureSurface implements render.Device.
func (d *Device) ConfigureSurface(cfg render.SurfaceConfig) error {
	if d.released {
		return ErrReleased
	}
	d.surface.Configure(d.adapter, d.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      toWGPUFormat(cfg.Format, d.format),
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: presentMode(cfg.PresentMode, d.presentModes),
		AlphaMode:   d.alphaMode,
	})
	d.configured = true
	return nil
}

// CreatePipeline implements render.Device.
func (d *Device) CreatePipeline(desc render.PipelineDescriptor) (render.Pipeline, error) {
	if d.released {
		return nil, ErrReleased
	}
	if desc.Shader == nil {
		return nil, fmt.Errorf("webgpu: pipeline %q has no shader", desc.Label)
	}

	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          desc.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: desc.Shader.WGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: create shader module %q: %w", desc.Label, err)
	}

	layout, err := d.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: desc.Label,
	})
	if err != nil {
		module.Release()
		return nil, fmt.Errorf("webgpu: create pipeline layout %q: %w", desc.Label, err)
	}

	rpipe, err := d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: shader.VertexEntryPoint,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: shader.FragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{{
				Format:    toWGPUFormat(desc.Format, d.format),
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		layout.Release()
		module.Release()
		return nil, fmt.Errorf("webgpu: create render pipeline %q: %w", desc.Label, err)
	}

	return &pipeline{label: desc.Label, module: module, layout: layout, pipeline: rpipe}, nil
}

// AcquireFrame implements render.Device.
func (d *Device) AcquireFrame() (render.Frame, error) {
	if d.released {
		return nil, ErrReleased
	}
	if !d.configured {
		return nil, fmt.Errorf("%w: surface not configured", render.ErrSurfaceLost)
	}
	tex, err := d.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", render.ErrSurfaceLost, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("%w: create view: %w", render.ErrSurfaceAcquire, err)
	}
	return &frame{dev: d, texture: tex, view: view}, nil
}

// Release implements render.Device. It is safe to call more than once.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true

	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

type pipeline struct {
	label    string
	module   *wgpu.ShaderModule
	layout   *wgpu.PipelineLayout
	pipeline *wgpu.RenderPipeline
}

func (p *pipeline) Label() string {
	return p.label
}

// Release frees the pipeline, its layout and its shader module.
func (p *pipeline) Release() {
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
	if p.module != nil {
		p.module.Release()
		p.module = nil
	}
}

// frame is one surface texture between acquisition and presentation.
type frame struct {
	dev     *Device
	texture *wgpu.Texture
	view    *wgpu.TextureView
	done    bool
}

func (f *frame) Draw(pass render.Pass) error {
	if f.done {
		return fmt.Errorf("%w: frame already finished", render.ErrDraw)
	}
	p, ok := pass.Pipeline.(*pipeline)
	if !ok || p.pipeline == nil {
		return fmt.Errorf("%w: foreign or released pipeline", render.ErrDraw)
	}

	enc, err := f.dev.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("%w: create encoder: %w", render.ErrDraw, err)
	}
	defer enc.Release()

	rp := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       f.view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clearValue(pass.ClearColor),
		}},
	})
	if err := recordPass(rp, p.pipeline, pass); err != nil {
		return err
	}

	buf, err := enc.Finish(nil)
	if err != nil {
		return fmt.Errorf("%w: finish: %w", render.ErrDraw, err)
	}
	defer buf.Release()
	f.dev.queue.Submit(buf)
	return nil
}

// passEncoder is the part of *wgpu.RenderPassEncoder a frame records into.
type passEncoder interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End() error
	Release()
}

// recordPass records the triangle draw and ends the pass. The encoder is
// released even when End fails.
func recordPass(rp passEncoder, pipe *wgpu.RenderPipeline, pass render.Pass) error {
	rp.SetPipeline(pipe)
	rp.Draw(pass.VertexCount, pass.InstanceCount, 0, 0)
	err := rp.End()
	rp.Release() // must happen before Finish
	if err != nil {
		return fmt.Errorf("%w: end pass: %w", render.ErrDraw, err)
	}
	return nil
}

func (f *frame) Present() error {
	if f.done {
		return fmt.Errorf("%w: frame already finished", render.ErrDraw)
	}
	f.done = true
	f.dev.surface.Present()
	f.release()
	return nil
}

func (f *frame) Discard() {
	if f.done {
		return
	}
	f.done = true
	f.release()
}

func (f *frame) release() {
	f.view.Release()
	f.texture.Release()
}

var (
	_ render.Driver   = (*Driver)(nil)
	_ render.Device   = (*Device)(nil)
	_ render.Pipeline = (*pipeline)(nil)
	_ render.Frame    = (*frame)(nil)

	_ passEncoder = (*wgpu.RenderPassEncoder)(nil)
)
