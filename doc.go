// Package yagve is a minimal real-time rendering engine shell.
//
// # Overview
//
// yagve owns a native window, binds a GPU surface to it, runs a redraw loop
// at a configurable cadence and keeps rolling frame-time statistics. Every
// frame clears the surface and draws a placeholder triangle with each loaded
// shader pipeline.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/yagve"
//	    "github.com/gogpu/yagve/backend"
//	    "github.com/gogpu/yagve/engine"
//	    "github.com/gogpu/yagve/window/glfw"
//	)
//
//	settings := yagve.DefaultSettings().WithFramerate(60)
//	driver, _ := backend.Get("webgpu")
//	eng := engine.New(settings, driver)
//	if err := eng.Run(ctx, glfw.NewLoop()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Architecture
//
// The module is organized into:
//   - yagve: settings, config files, logging
//   - timing: frame clock and frame pacer
//   - window: event model and the headless event loop
//   - window/glfw: desktop windows
//   - render: GPU capability interfaces and the render backend
//   - shader: shader source lookup and validation
//   - backend: driver registry (webgpu, native)
//   - engine: the engine state machine
//
// # Pacing
//
// Under vsync the presentation engine throttles the loop by blocking in
// Present. Under a fixed interval the engine itself skips redraws until the
// interval has elapsed and requests a non-blocking present mode.
package yagve

// Version information
const (
	// Version is the current version of the engine
	Version = "0.1.0"

	// Name is the short product name used in the startup banner
	Name = "YAGVE"
)
