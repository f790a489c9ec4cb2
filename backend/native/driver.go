// Package native provides an offscreen GPU driver using gogpu/wgpu HAL.
//
// The driver renders into a color texture sized like the target window
// instead of a presentable surface. Present is a submitted-and-waited frame.
// It runs on Vulkan or, for dry runs and tests, on the noop HAL.
package native

import (
	"context"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/gogpu/yagve"
	"github.com/gogpu/yagve/backend"
	"github.com/gogpu/yagve/render"

	// Register the Vulkan HAL backend.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// HAL backends the driver can run on.
const (
	HALVulkan = "vulkan"
	HALNoop   = "noop"
)

// init registers the native driver on package import.
//
//	import _ "github.com/gogpu/yagve/backend/native"
func init() {
	backend.Register(backend.DriverNative, func() render.Driver {
		return New(HALVulkan)
	})
}

// Driver opens HAL devices rendering into offscreen textures.
type Driver struct {
	hal string
}

// New returns a driver on the named HAL backend (HALVulkan or HALNoop).
func New(halBackend string) *Driver {
	return &Driver{hal: halBackend}
}

// Name implements render.Driver.
func (d *Driver) Name() string {
	return backend.DriverNative
}

// HAL returns the HAL backend name.
func (d *Driver) HAL() string {
	return d.hal
}

// Open implements render.Driver. The target only supplies the initial size;
// no native handle is needed.
func (d *Driver) Open(ctx context.Context, target render.Target) (render.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	instance, err := d.createInstance()
	if err != nil {
		return nil, err
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %s HAL reports no adapters", render.ErrNoAdapter, d.hal)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %w", render.ErrNoDevice, err)
	}

	info := render.AdapterInfo{
		Name:    selected.Info.Name,
		Backend: d.hal,
		Type:    "other",
	}
	switch selected.Info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		info.Type = "discrete"
	case gputypes.DeviceTypeIntegratedGPU:
		info.Type = "integrated"
	}
	yagve.Logger().Debug("native: device opened", "adapter", info.Name, "hal", d.hal)

	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		info:     info,
	}, nil
}

func (d *Driver) createInstance() (hal.Instance, error) {
	switch d.hal {
	case HALNoop:
		api := noop.API{}
		instance, err := api.CreateInstance(nil)
		if err != nil {
			return nil, fmt.Errorf("native: create noop instance: %w", err)
		}
		return instance, nil
	case HALVulkan:
		b, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, fmt.Errorf("%w: vulkan backend not available", render.ErrNoAdapter)
		}
		instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
		if err != nil {
			return nil, fmt.Errorf("%w: create vulkan instance: %w", render.ErrNoAdapter, err)
		}
		return instance, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHAL, d.hal)
	}
}
