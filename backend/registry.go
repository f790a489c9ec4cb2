package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/yagve/render"
)

// Driver names.
const (
	// DriverWebGPU renders to a window surface through wgpu-native.
	DriverWebGPU = "webgpu"

	// DriverNative renders offscreen through the pure Go wgpu HAL.
	DriverNative = "native"
)

// ErrNotAvailable is returned when a requested driver is not registered.
var ErrNotAvailable = errors.New("backend: driver not available")

// Factory creates a driver instance.
type Factory func() render.Driver

// registry holds registered drivers.
var (
	registryMu sync.RWMutex
	drivers    = make(map[string]Factory)
	// Priority order for driver selection (first available wins).
	// A windowed driver beats the offscreen one.
	driverPriority = []string{DriverWebGPU, DriverNative}
)

// Register registers a driver factory with the given name.
// This is typically called from init() functions in driver packages.
// If a driver with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	drivers[name] = factory
}

// Unregister removes a driver from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(drivers, name)
}

// Available returns the registered driver names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a driver with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := drivers[name]
	return ok
}

// Get returns a driver by name. An empty name selects Default.
func Get(name string) (render.Driver, error) {
	if name == "" {
		return Default()
	}

	registryMu.RLock()
	factory, ok := drivers[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrNotAvailable, name, Available())
	}
	d := factory()
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotAvailable, name)
	}
	return d, nil
}

// Default returns the best available driver based on priority.
// Priority order: webgpu > native, then any other registered driver
// in name order.
func Default() (render.Driver, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range driverPriority {
		if factory, ok := drivers[name]; ok {
			if d := factory(); d != nil {
				return d, nil
			}
		}
	}

	// Fallback: first available
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if d := drivers[name](); d != nil {
			return d, nil
		}
	}

	return nil, ErrNotAvailable
}
