// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// Errors returned by drivers and the Backend.
var (
	// ErrNoAdapter is returned when no adapter is compatible with the target.
	ErrNoAdapter = errors.New("render: no compatible adapter")

	// ErrNoDevice is returned when the adapter refuses to open a device.
	ErrNoDevice = errors.New("render: device request failed")

	// ErrSurfaceLost is returned by Device.AcquireFrame when the surface is
	// outdated or lost and must be reconfigured.
	ErrSurfaceLost = errors.New("render: surface lost")

	// ErrSurfaceAcquire is returned by Backend.PresentFrame when no surface
	// texture could be acquired, even after reconfiguring. It is fatal.
	ErrSurfaceAcquire = errors.New("render: surface texture acquisition failed")

	// ErrPipeline is returned when a shader cannot be loaded or turned into
	// a pipeline. It is fatal.
	ErrPipeline = errors.New("render: pipeline creation failed")

	// ErrDraw wraps per-frame encode, submit and present failures. The frame
	// is lost but the backend remains usable.
	ErrDraw = errors.New("render: draw failed")

	// ErrReleased is returned when using a released Backend.
	ErrReleased = errors.New("render: backend released")
)

// IsFatal reports whether err leaves the backend unusable.
// Draw errors are recoverable; everything else from PresentFrame is not.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrDraw)
}
