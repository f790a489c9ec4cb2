// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/yagve/render"
)

// formatPairs lists the surface formats shared by both type systems,
// in order of preference.
var formatPairs = []struct {
	wgpu wgpu.TextureFormat
	gpu  gputypes.TextureFormat
}{
	{wgpu.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8Unorm},
	{wgpu.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm},
}

// surfaceFormat picks the first supported format that has a gputypes
// counterpart. When none has one, the first supported format is used and
// reported as undefined.
func surfaceFormat(supported []wgpu.TextureFormat) (wgpu.TextureFormat, gputypes.TextureFormat) {
	for _, f := range supported {
		if g, ok := fromWGPUFormat(f); ok {
			return f, g
		}
	}
	return supported[0], gputypes.TextureFormatUndefined
}

func fromWGPUFormat(f wgpu.TextureFormat) (gputypes.TextureFormat, bool) {
	for _, p := range formatPairs {
		if p.wgpu == f {
			return p.gpu, true
		}
	}
	return gputypes.TextureFormatUndefined, false
}

// toWGPUFormat converts f, falling back to the device surface format.
func toWGPUFormat(f gputypes.TextureFormat, fallback wgpu.TextureFormat) wgpu.TextureFormat {
	for _, p := range formatPairs {
		if p.gpu == f {
			return p.wgpu
		}
	}
	return fallback
}

// presentMode resolves m against the modes the surface supports. Fifo is
// always available.
func presentMode(m render.PresentMode, supported []wgpu.PresentMode) wgpu.PresentMode {
	var prefs []wgpu.PresentMode
	switch m {
	case render.PresentModeAutoNoVsync:
		prefs = []wgpu.PresentMode{wgpu.PresentModeImmediate, wgpu.PresentModeMailbox}
	case render.PresentModeMailbox:
		prefs = []wgpu.PresentMode{wgpu.PresentModeMailbox}
	case render.PresentModeImmediate:
		prefs = []wgpu.PresentMode{wgpu.PresentModeImmediate}
	}
	for _, p := range prefs {
		if slices.Contains(supported, p) {
			return p
		}
	}
	return wgpu.PresentModeFifo
}

func clearValue(c gputypes.Color) wgpu.Color {
	return wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
