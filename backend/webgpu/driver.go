// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package webgpu provides the windowed GPU driver on top of
// github.com/cogentcore/webgpu (wgpu-native bindings).
//
// The driver needs a target that can describe its native surface; the GLFW
// event loop in window/glfw provides such windows.
//
//	import _ "github.com/gogpu/yagve/backend/webgpu"
package webgpu

import (
	"context"
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/yagve"
	"github.com/gogpu/yagve/backend"
	"github.com/gogpu/yagve/render"
)

// ErrNoSurface is returned by Open when the target cannot describe a
// native surface.
var ErrNoSurface = errors.New("webgpu: target has no native surface")

// SurfaceTarget is a render.Target backed by a native window.
type SurfaceTarget interface {
	render.Target

	// SurfaceDescriptor describes the native surface of the window.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// init registers the webgpu driver on package import.
func init() {
	backend.Register(backend.DriverWebGPU, func() render.Driver {
		return &Driver{}
	})
}

// Driver opens wgpu-native devices presenting to window surfaces.
// It always asks for a high performance adapter.
type Driver struct{}

// Name implements render.Driver.
func (d *Driver) Name() string {
	return backend.DriverWebGPU
}

// Open implements render.Driver.
func (d *Driver) Open(ctx context.Context, target render.Target) (render.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st, ok := target.(SurfaceTarget)
	if !ok {
		return nil, ErrNoSurface
	}

	dev := &Device{}
	dev.instance = wgpu.CreateInstance(nil)
	dev.surface = dev.instance.CreateSurface(st.SurfaceDescriptor())

	adapter, err := dev.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: dev.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		dev.Release()
		return nil, fmt.Errorf("%w: %w", render.ErrNoAdapter, err)
	}
	dev.adapter = adapter

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		dev.Release()
		return nil, fmt.Errorf("%w: %w", render.ErrNoDevice, err)
	}
	dev.device = device
	dev.queue = device.GetQueue()

	caps := dev.surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		dev.Release()
		return nil, fmt.Errorf("%w: surface reports no formats", render.ErrNoAdapter)
	}
	dev.format, dev.preferred = surfaceFormat(caps.Formats)
	dev.presentModes = caps.PresentModes
	if len(caps.AlphaModes) > 0 {
		dev.alphaMode = caps.AlphaModes[0]
	}

	props := adapter.GetInfo()
	dev.info = render.AdapterInfo{
		Name:    props.Name,
		Backend: props.BackendType.String(),
		Type:    props.AdapterType.String(),
	}

	yagve.Logger().Debug("webgpu: device opened",
		"adapter", dev.info.Name,
		"backend", dev.info.Backend,
		"format", dev.format.String())

	return dev, nil
}
