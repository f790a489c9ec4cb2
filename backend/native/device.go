package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/yagve/render"
	"github.com/gogpu/yagve/shader"
)

// Device is a HAL device with an offscreen color target standing in for
// the window surface.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     render.AdapterInfo

	config render.SurfaceConfig
	target hal.Texture
	view   hal.TextureView

	frames   uint64
	released bool
}

// Info implements render.Device.
func (d *Device) Info() render.AdapterInfo {
	return d.info
}

// PreferredFormat implements render.Device.
func (d *Device) PreferredFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// Config returns the last applied configuration.
func (d *Device) Config() render.SurfaceConfig {
	return d.config
}

// Frames returns the number of presented frames.
func (d *Device) Frames() uint64 {
	return d.frames
}

// ConfigureSurface implements render.Device. The offscreen target is
// recreated only when its size or format changes.
func (d *Device) ConfigureSurface(cfg render.SurfaceConfig) error {
	if d.released {
		return ErrReleased
	}
	if d.target != nil && cfg.Width == d.config.Width && cfg.Height == d.config.Height && cfg.Format == d.config.Format {
		d.config = cfg
		return nil
	}
	d.destroyTarget()

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "yagve_offscreen_color",
		Size:          hal.Extent3D{Width: cfg.Width, Height: cfg.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        cfg.Format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("native: create offscreen texture: %w", err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "yagve_offscreen_color_view",
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return fmt.Errorf("native: create offscreen view: %w", err)
	}

	d.target = tex
	d.view = view
	d.config = cfg
	return nil
}

func (d *Device) destroyTarget() {
	if d.view != nil {
		d.device.DestroyTextureView(d.view)
		d.view = nil
	}
	if d.target != nil {
		d.device.DestroyTexture(d.target)
		d.target = nil
	}
}

// CreatePipeline implements render.Device.
func (d *Device) CreatePipeline(desc render.PipelineDescriptor) (render.Pipeline, error) {
	if d.released {
		return nil, ErrReleased
	}
	if desc.Shader == nil {
		return nil, fmt.Errorf("native: pipeline %s has no shader", desc.Label)
	}

	source := hal.ShaderSource{SPIRV: desc.Shader.SPIRV}
	if len(desc.Shader.SPIRV) == 0 {
		source = hal.ShaderSource{WGSL: desc.Shader.WGSL}
	}
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create shader module %s: %w", desc.Label, err)
	}

	layout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_layout",
		BindGroupLayouts: []hal.BindGroupLayout{},
	})
	if err != nil {
		d.device.DestroyShaderModule(module)
		return nil, fmt.Errorf("native: create pipeline layout %s: %w", desc.Label, err)
	}

	rpipe, err := d.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: shader.VertexEntryPoint,
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: shader.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    desc.Format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		d.device.DestroyPipelineLayout(layout)
		d.device.DestroyShaderModule(module)
		return nil, fmt.Errorf("native: create render pipeline %s: %w", desc.Label, err)
	}

	return &pipeline{
		device:   d.device,
		label:    desc.Label,
		module:   module,
		layout:   layout,
		pipeline: rpipe,
	}, nil
}

// AcquireFrame implements render.Device.
func (d *Device) AcquireFrame() (render.Frame, error) {
	if d.released {
		return nil, ErrReleased
	}
	if d.view == nil {
		return nil, fmt.Errorf("native: offscreen target not configured: %w", render.ErrSurfaceLost)
	}
	return &frame{dev: d}, nil
}

// Release implements render.Device.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true
	d.destroyTarget()
	d.device.Destroy()
	d.instance.Destroy()
}

type pipeline struct {
	device   hal.Device
	label    string
	module   hal.ShaderModule
	layout   hal.PipelineLayout
	pipeline hal.RenderPipeline
	released bool
}

func (p *pipeline) Label() string { return p.label }

func (p *pipeline) Release() {
	if p.released {
		return
	}
	p.released = true
	p.device.DestroyRenderPipeline(p.pipeline)
	p.device.DestroyPipelineLayout(p.layout)
	p.device.DestroyShaderModule(p.module)
}

type frame struct {
	dev  *Device
	done bool
}

// Draw encodes one render pass into the offscreen target, submits it and
// waits for the device to go idle.
func (f *frame) Draw(pass render.Pass) error {
	if f.done {
		return ErrFrameDone
	}
	p, ok := pass.Pipeline.(*pipeline)
	if !ok {
		return fmt.Errorf("native: pipeline %T was not created by this driver", pass.Pipeline)
	}
	d := f.dev

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "yagve_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("yagve_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "yagve_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       d.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: pass.ClearColor,
		}},
	})
	rp.SetPipeline(p.pipeline)
	rp.Draw(pass.VertexCount, pass.InstanceCount, 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	// The HAL tracks submissions with its own fences.
	if _, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := d.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait idle: %w", err)
	}
	return nil
}

// Present completes the frame. The offscreen target has no display, so
// there is nothing to queue.
func (f *frame) Present() error {
	if f.done {
		return ErrFrameDone
	}
	f.done = true
	f.dev.frames++
	return nil
}

func (f *frame) Discard() {
	f.done = true
}

var (
	_ render.Driver   = (*Driver)(nil)
	_ render.Device   = (*Device)(nil)
	_ render.Pipeline = (*pipeline)(nil)
	_ render.Frame    = (*frame)(nil)
)
