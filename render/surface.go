// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/yagve/timing"
)

// PresentMode selects how presented frames reach the display.
//
// The Auto modes let the driver pick the best concrete mode the surface
// supports.
type PresentMode uint8

const (
	// PresentModeAutoVsync blocks in Present until the next vertical blank.
	// Falls back to Fifo.
	PresentModeAutoVsync PresentMode = iota

	// PresentModeAutoNoVsync never blocks in Present.
	// Prefers Immediate, then Mailbox, then Fifo.
	PresentModeAutoNoVsync

	// PresentModeFifo queues frames and blocks when the queue is full.
	PresentModeFifo

	// PresentModeMailbox replaces the queued frame without blocking.
	PresentModeMailbox

	// PresentModeImmediate presents without waiting, tearing allowed.
	PresentModeImmediate
)

// String implements fmt.Stringer.
func (m PresentMode) String() string {
	switch m {
	case PresentModeAutoVsync:
		return "auto-vsync"
	case PresentModeAutoNoVsync:
		return "auto-no-vsync"
	case PresentModeFifo:
		return "fifo"
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("PresentMode(%d)", uint8(m))
	}
}

// Blocking reports whether Present throttles to the display refresh.
func (m PresentMode) Blocking() bool {
	return m == PresentModeAutoVsync || m == PresentModeFifo
}

// PresentModeFor derives the present mode from the pacing policy.
// A fixed interval is enforced by the engine, so presenting must not block;
// vsync relies on the blocking present for its throttling.
func PresentModeFor(p timing.Pacing) PresentMode {
	if p.IsVsync() {
		return PresentModeAutoVsync
	}
	return PresentModeAutoNoVsync
}

// SurfaceConfig is the configuration applied to a surface.
// It is a comparable value: equal configs describe the same surface state.
type SurfaceConfig struct {
	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
}

// NewSurfaceConfig builds the surface configuration for a target of the
// given pixel size. Zero dimensions are clamped to 1.
func NewSurfaceConfig(format gputypes.TextureFormat, width, height uint32, p timing.Pacing) SurfaceConfig {
	return SurfaceConfig{
		Format:      format,
		Width:       max(width, 1),
		Height:      max(height, 1),
		PresentMode: PresentModeFor(p),
	}
}

// String implements fmt.Stringer.
func (c SurfaceConfig) String() string {
	return fmt.Sprintf("%dx%d format=%v present=%v", c.Width, c.Height, c.Format, c.PresentMode)
}
