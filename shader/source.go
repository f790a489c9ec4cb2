// Package shader resolves shader names to WGSL source and validates it.
//
// A shader named "shader" is looked up as "shader.wgsl" in a directory,
// an fs.FS, or the built-in set embedded in this package. Every shader must
// define the vertex entry point "vs_main" and the fragment entry point
// "fs_main".
package shader

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Entry points every shader must define.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Extension is the file extension of shader sources.
const Extension = ".wgsl"

// Errors returned by Source implementations and Compile.
var (
	ErrNotFound    = errors.New("shader: not found")
	ErrInvalidName = errors.New("shader: invalid name")
	ErrEmpty       = errors.New("shader: empty source")
	ErrCompile     = errors.New("shader: compile failed")
)

//go:embed builtin/*.wgsl
var builtinFS embed.FS

// Source maps a shader name to its WGSL text.
type Source interface {
	Load(name string) (string, error)
}

// FSSource loads <dir>/<name>.wgsl from an fs.FS.
type FSSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource returns a Source reading from dir inside fsys.
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{fsys: fsys, dir: dir}
}

// DirSource returns a Source reading <dir>/<name>.wgsl from the OS
// filesystem.
func DirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), ".")
}

// Builtin returns the shaders embedded in the package.
// It provides "shader", a red triangle.
func Builtin() *FSSource {
	return NewFSSource(builtinFS, "builtin")
}

// Load implements Source.
func (s *FSSource) Load(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	p := path.Join(s.dir, name+Extension)
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	data, err := fs.ReadFile(s.fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return "", fmt.Errorf("shader: read %s: %w", p, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmpty, p)
	}
	return string(data), nil
}

// Lister is implemented by sources that can enumerate their shaders.
type Lister interface {
	Names() ([]string, error)
}

// Names lists the shader names available in the source directory, sorted.
func (s *FSSource) Names() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, fmt.Errorf("shader: list %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != Extension {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	return names, nil
}

// MapSource serves shaders from memory. It is mostly useful in tests.
type MapSource map[string]string

// Load implements Source.
func (m MapSource) Load(name string) (string, error) {
	src, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if strings.TrimSpace(src) == "" {
		return "", fmt.Errorf("%w: %q", ErrEmpty, name)
	}
	return src, nil
}
