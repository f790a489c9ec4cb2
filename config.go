package yagve

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Config errors.
var (
	// ErrConfigFormat is returned for a config file with an unknown extension.
	ErrConfigFormat = errors.New("yagve: unsupported config format")

	// ErrUnknownColor is returned when a color is neither a known name nor
	// a #rrggbb / #rrggbbaa literal.
	ErrUnknownColor = errors.New("yagve: unknown color")
)

// Config is the on-disk form of Settings.
//
// Zero fields leave the corresponding setting untouched, so a file only
// needs to name what it changes:
//
//	title = "demo"
//	framerate = 60
//	shaders = ["shader"]
//	clear_color = "midnightblue"
type Config struct {
	Title              string   `toml:"title" yaml:"title"`
	Width              int      `toml:"width" yaml:"width"`
	Height             int      `toml:"height" yaml:"height"`
	Framerate          float64  `toml:"framerate" yaml:"framerate"`
	RenderWithoutFocus *bool    `toml:"render_without_focus" yaml:"render_without_focus"`
	Shaders            []string `toml:"shaders" yaml:"shaders"`
	ShaderDir          string   `toml:"shader_dir" yaml:"shader_dir"`
	ClearColor         string   `toml:"clear_color" yaml:"clear_color"`
	Driver             string   `toml:"driver" yaml:"driver"`
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) config file.
// Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yagve: read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	cfg, err := ParseConfig(data, ext)
	if err != nil {
		return nil, fmt.Errorf("yagve: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes config data in the format named by ext
// (".toml", ".yaml" or ".yml").
func ParseConfig(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF; treat it as an empty config.
		if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrConfigFormat, ext)
	}
	return &cfg, nil
}

// Apply overlays the non-zero fields of c onto s and validates the result.
func (c *Config) Apply(s Settings) (Settings, error) {
	if c.Title != "" {
		s.WindowTitle = c.Title
	}
	if c.Width != 0 {
		s.Width = c.Width
	}
	if c.Height != 0 {
		s.Height = c.Height
	}
	if c.Framerate != 0 {
		s = s.WithFramerate(c.Framerate)
	}
	if c.RenderWithoutFocus != nil {
		s.RenderWithoutFocus = *c.RenderWithoutFocus
	}
	if len(c.Shaders) > 0 {
		s = s.WithShaders(c.Shaders...)
	}
	if c.ShaderDir != "" {
		s.ShaderDir = c.ShaderDir
	}
	if c.ClearColor != "" {
		col, err := ParseColor(c.ClearColor)
		if err != nil {
			return s, err
		}
		s.ClearColor = col
	}
	if c.Driver != "" {
		s.Driver = c.Driver
	}
	return s, s.Validate()
}

// ParseColor resolves an SVG color name ("black", "cornflowerblue") or a
// hex literal ("#1e90ff", "#1e90ff80") to an opaque or translucent clear
// color.
func ParseColor(s string) (gputypes.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	c, ok := colornames.Map[s]
	if !ok {
		return gputypes.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return colorFromRGBA(c), nil
}

func parseHexColor(s string) (gputypes.Color, error) {
	hex := s[1:]
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return gputypes.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return gputypes.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return colorFromRGBA(color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}), nil
}

func colorFromRGBA(c color.RGBA) gputypes.Color {
	return gputypes.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}
