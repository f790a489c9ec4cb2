package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
)

// Module is a validated shader: the WGSL text plus its SPIR-V translation.
// Drivers that accept WGSL directly use WGSL; HAL drivers use SPIRV.
type Module struct {
	Name  string
	WGSL  string
	SPIRV []uint32
}

// Compile validates wgsl by translating it to SPIR-V. The module must
// declare a @vertex vs_main and a @fragment fs_main entry point.
func Compile(name, wgsl string) (*Module, error) {
	if strings.TrimSpace(wgsl) == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmpty, name)
	}

	ast, err := naga.Parse(wgsl)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrCompile, name, err)
	}
	module, err := naga.LowerWithSource(ast, wgsl)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrCompile, name, err)
	}
	if err := checkEntryPoints(module); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrCompile, name, err)
	}

	opts := naga.DefaultOptions()
	if opts.Validate {
		verrs, err := naga.Validate(module)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrCompile, name, err)
		}
		if len(verrs) > 0 {
			return nil, fmt.Errorf("%w: %q: %w", ErrCompile, name, &verrs[0])
		}
	}
	spirvBytes, err := naga.GenerateSPIRV(module, spirv.Options{
		Version: opts.SPIRVVersion,
		Debug:   opts.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrCompile, name, err)
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return &Module{Name: name, WGSL: wgsl, SPIRV: words}, nil
}

// checkEntryPoints reports a missing vertex or fragment entry point.
func checkEntryPoints(m *ir.Module) error {
	want := map[string]ir.ShaderStage{
		VertexEntryPoint:   ir.StageVertex,
		FragmentEntryPoint: ir.StageFragment,
	}
	for _, ep := range m.EntryPoints {
		if stage, ok := want[ep.Name]; ok && ep.Stage == stage {
			delete(want, ep.Name)
		}
	}
	if _, ok := want[VertexEntryPoint]; ok {
		return fmt.Errorf("no @vertex entry point %s", VertexEntryPoint)
	}
	if _, ok := want[FragmentEntryPoint]; ok {
		return fmt.Errorf("no @fragment entry point %s", FragmentEntryPoint)
	}
	return nil
}

// Load looks up every name in src and compiles it, in order.
// The first failure aborts and is returned; no partial result is kept.
// A missing name lists the available shaders when src is a Lister.
func Load(src Source, names []string) ([]*Module, error) {
	modules := make([]*Module, 0, len(names))
	for _, name := range names {
		wgsl, err := src.Load(name)
		if errors.Is(err, ErrNotFound) {
			if l, ok := src.(Lister); ok {
				if avail, lerr := l.Names(); lerr == nil && len(avail) > 0 {
					err = fmt.Errorf("%w (available: %s)", err, strings.Join(avail, ", "))
				}
			}
		}
		if err != nil {
			return nil, err
		}
		m, err := Compile(name, wgsl)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}
