package shader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestBuiltinShader(t *testing.T) {
	src, err := Builtin().Load("shader")
	if err != nil {
		t.Fatalf("Builtin().Load(shader) = %v", err)
	}
	for _, entry := range []string{VertexEntryPoint, FragmentEntryPoint} {
		if !strings.Contains(src, entry) {
			t.Errorf("builtin shader does not define %s", entry)
		}
	}
}

func TestBuiltinNames(t *testing.T) {
	names, err := Builtin().Names()
	if err != nil {
		t.Fatalf("Names() = %v", err)
	}
	if len(names) != 1 || names[0] != "shader" {
		t.Errorf("Names() = %v, want [shader]", names)
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tri.wgsl"), []byte("// tri"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "blank.wgsl"), []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	src := DirSource(dir)
	got, err := src.Load("tri")
	if err != nil || got != "// tri" {
		t.Errorf("Load(tri) = %q, %v", got, err)
	}
	if _, err := src.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) = %v, want ErrNotFound", err)
	}
	if _, err := src.Load("blank"); !errors.Is(err, ErrEmpty) {
		t.Errorf("Load(blank) = %v, want ErrEmpty", err)
	}
}

func TestFSSourceInvalidNames(t *testing.T) {
	src := NewFSSource(fstest.MapFS{"shaders/a.wgsl": {Data: []byte("x")}}, "shaders")
	for _, name := range []string{"", "../a", "sub/a", `sub\a`} {
		if _, err := src.Load(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Load(%q) = %v, want ErrInvalidName", name, err)
		}
	}
	if got, err := src.Load("a"); err != nil || got != "x" {
		t.Errorf("Load(a) = %q, %v", got, err)
	}
}

func TestMapSource(t *testing.T) {
	src := MapSource{"a": "x", "b": ""}
	if got, err := src.Load("a"); err != nil || got != "x" {
		t.Errorf("Load(a) = %q, %v", got, err)
	}
	if _, err := src.Load("b"); !errors.Is(err, ErrEmpty) {
		t.Errorf("Load(b) = %v, want ErrEmpty", err)
	}
	if _, err := src.Load("c"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(c) = %v, want ErrNotFound", err)
	}
}
