package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/yagve/render"
	"github.com/gogpu/yagve/render/rendertest"
)

// namedDriver gives a rendertest driver a configurable name.
type namedDriver struct {
	*rendertest.Driver
	name string
}

func (d namedDriver) Name() string { return d.name }

func factory(name string) Factory {
	return func() render.Driver {
		return namedDriver{Driver: rendertest.NewDriver(), name: name}
	}
}

// isolate empties the registry for the duration of a test.
func isolate(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := drivers
	drivers = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		drivers = saved
		registryMu.Unlock()
	})
}

func TestRegisterAndGet(t *testing.T) {
	isolate(t)
	Register("b", factory("b"))
	Register("a", factory("a"))

	if got := Available(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Available() = %v, want [a b]", got)
	}
	if !IsRegistered("a") || IsRegistered("c") {
		t.Error("IsRegistered() mismatch")
	}

	d, err := Get("b")
	if err != nil {
		t.Fatalf("Get(b) = %v", err)
	}
	if d.Name() != "b" {
		t.Errorf("Get(b).Name() = %q", d.Name())
	}

	if _, err := Get("c"); !errors.Is(err, ErrNotAvailable) {
		t.Errorf("Get(c) = %v, want ErrNotAvailable", err)
	}

	Unregister("a")
	if IsRegistered("a") {
		t.Error("Unregister(a) did not remove the driver")
	}
}

func TestDefaultPriority(t *testing.T) {
	isolate(t)

	if _, err := Default(); !errors.Is(err, ErrNotAvailable) {
		t.Errorf("Default() on empty registry = %v", err)
	}

	Register("zzz", factory("zzz"))
	Register("aaa", factory("aaa"))
	if d, _ := Default(); d.Name() != "aaa" {
		t.Errorf("fallback Default() = %q, want aaa", d.Name())
	}

	Register(DriverNative, factory(DriverNative))
	if d, _ := Default(); d.Name() != DriverNative {
		t.Errorf("Default() = %q, want %s", d.Name(), DriverNative)
	}

	Register(DriverWebGPU, factory(DriverWebGPU))
	if d, _ := Get(""); d.Name() != DriverWebGPU {
		t.Errorf("Get(\"\") = %q, want %s", d.Name(), DriverWebGPU)
	}
}

func TestNilFactorySkipped(t *testing.T) {
	isolate(t)
	Register(DriverWebGPU, func() render.Driver { return nil })
	Register(DriverNative, factory(DriverNative))

	d, err := Default()
	if err != nil || d.Name() != DriverNative {
		t.Errorf("Default() = %v, %v; want native", d, err)
	}
	if _, err := Get(DriverWebGPU); !errors.Is(err, ErrNotAvailable) {
		t.Errorf("Get(webgpu) = %v, want ErrNotAvailable", err)
	}
}
