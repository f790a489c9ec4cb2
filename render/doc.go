// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render owns the GPU side of the engine: the device, its surface
// configuration and the pipelines drawn every frame.
//
// # Key Principle
//
// render does not talk to a GPU API directly. It consumes the Driver,
// Device, Frame and Pipeline capability interfaces, which the packages
// under backend/ implement on top of a concrete API. Tests use the
// recording driver in render/rendertest.
//
// # Lifetime
//
//   - New opens the device once, configures the surface and builds the
//     pipelines. Failure leaves nothing allocated.
//   - Reconfigure re-applies the surface configuration after a resize or a
//     pacing change. The device and pipelines are kept.
//   - Release destroys pipelines, then the device. The Target (window) must
//     outlive the Backend.
//
// # Surface Configuration
//
// Width and height are clamped to at least 1. The present mode follows the
// pacing policy: vsync pacing uses a blocking present, a fixed interval
// uses a non-blocking one.
//
// # Errors
//
// ErrDraw marks a lost frame; the next PresentFrame may succeed.
// ErrSurfaceAcquire, returned after one reconfigure-and-retry, is fatal.
// Use IsFatal to classify.
package render
