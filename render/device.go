// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/yagve/shader"
)

// Target is the surface owner a Driver binds to, usually a window.
//
// The core only needs the current pixel size. Drivers that need a native
// handle type-assert for it (the webgpu driver looks for GLFWWindow).
// A Target must outlive every Device opened on it.
type Target interface {
	// PixelSize returns the drawable size in pixels. Either dimension may
	// be zero while the window is minimized.
	PixelSize() (width, height uint32)
}

// Driver opens devices for a particular GPU API.
//
// Open performs the blocking adapter, device and queue negotiation for a
// surface compatible with target. It returns an error wrapping ErrNoAdapter
// when no suitable adapter exists.
type Driver interface {
	// Name returns the registry name of the driver ("webgpu", "native").
	Name() string

	// Open acquires an adapter, device, queue and surface for target.
	Open(ctx context.Context, target Target) (Device, error)
}

// Device is an open GPU device bound to one surface.
//
// All methods are called from the goroutine running the event loop.
type Device interface {
	// Info describes the selected adapter.
	Info() AdapterInfo

	// PreferredFormat returns the surface format pipelines must target.
	PreferredFormat() gputypes.TextureFormat

	// ConfigureSurface applies cfg to the surface. Reapplying the current
	// configuration is allowed.
	ConfigureSurface(cfg SurfaceConfig) error

	// CreatePipeline builds a render pipeline with an empty layout, no
	// vertex buffers and a single color target.
	CreatePipeline(desc PipelineDescriptor) (Pipeline, error)

	// AcquireFrame returns the next presentable surface texture. It returns
	// an error wrapping ErrSurfaceLost when the surface must be
	// reconfigured first.
	AcquireFrame() (Frame, error)

	// Release destroys the surface, queue and device.
	Release()
}

// Frame is one acquired surface texture.
//
// Exactly one of Present or Discard must be called.
type Frame interface {
	// Draw encodes and submits one render pass.
	Draw(pass Pass) error

	// Present queues the texture for display.
	Present() error

	// Discard releases the texture without presenting it.
	Discard()
}

// Pipeline is a compiled render pipeline.
type Pipeline interface {
	Label() string
	Release()
}

// AdapterInfo describes a GPU adapter.
type AdapterInfo struct {
	// Name is the adapter name reported by the driver.
	Name string

	// Backend is the underlying API ("vulkan", "metal", "noop", ...).
	Backend string

	// Type is the device type ("discrete", "integrated", "cpu", ...).
	Type string
}

// PipelineDescriptor describes a pipeline built from one shader.
type PipelineDescriptor struct {
	// Label is a debug label, usually the shader name.
	Label string

	// Shader is the validated shader module. Its vertex and fragment entry
	// points are shader.VertexEntryPoint and shader.FragmentEntryPoint.
	Shader *shader.Module

	// Format is the color target format.
	Format gputypes.TextureFormat
}

// Pass describes the single render pass of a frame: clear to ClearColor,
// bind Pipeline, draw VertexCount vertices of InstanceCount instances.
type Pass struct {
	Pipeline      Pipeline
	ClearColor    gputypes.Color
	VertexCount   uint32
	InstanceCount uint32
}

// Placeholder draw issued for every pipeline: one triangle, no buffers.
const (
	TriangleVertexCount   = 3
	TriangleInstanceCount = 1
)
