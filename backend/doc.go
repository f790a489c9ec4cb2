// Package backend selects the GPU driver the engine renders with.
//
// Drivers implement render.Driver and register themselves from init()
// functions in their packages:
//
//	import (
//	    _ "github.com/gogpu/yagve/backend/native" // offscreen, pure Go HAL
//	    _ "github.com/gogpu/yagve/backend/webgpu" // window surface, wgpu-native
//	)
//
// # Driver Selection
//
// Use Default() to get the best available driver, or Get() to request one
// by name:
//
//	d, err := backend.Default()
//	d, err := backend.Get("native")
//
// # Available Drivers
//
//   - webgpu: renders into a GLFW window surface through wgpu-native
//     (github.com/cogentcore/webgpu). Requires a display.
//   - native: renders into an offscreen texture through the pure Go
//     wgpu HAL (github.com/gogpu/wgpu). Runs on Vulkan, or on the noop
//     HAL for dry runs without a GPU.
package backend
