package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir" yaml:"base_dir"`
	TextureDir string `json:"texture_dir" yaml:"texture_dir"`
	Texture    string `json:"texture" yaml:"texture"`
	OutputDir  string `json:"output_dir" yaml:"output_dir"`

	// Scene
	Frames     int   `json:"frames" yaml:"frames"`
	View       int   `json:"view" yaml:"view"`
	CycleEvery int   `json:"cycle_every" yaml:"cycle_every"`
	WrapAngle  bool  `json:"wrap_angle" yaml:"wrap_angle"`
	HUD        *bool `json:"hud" yaml:"hud"`
	Lighting   *bool `json:"lighting" yaml:"lighting"`

	// Render settings
	Width          int    `json:"width" yaml:"width"`
	Height         int    `json:"height" yaml:"height"`
	Supersample    int    `json:"supersample" yaml:"supersample"`
	Format         string `json:"format" yaml:"format"`
	ClearColor     string `json:"clear_color" yaml:"clear_color"`
	ConvertToGamma *bool  `json:"convert_to_gamma" yaml:"convert_to_gamma"`
	Workers        int    `json:"workers" yaml:"workers"`
}

// Load reads a JSON or YAML config file (by extension) and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file setting alone; View uses -1 for "unset".
type Flags struct {
	OutputDir   string
	TextureDir  string
	Texture     string
	Frames      int
	View        int
	Width       int
	Height      int
	Supersample int
	Format      string
	Workers     int
}

// Resolve applies flags, fills any empty fields with defaults and resolves
// relative paths against BaseDir.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.View >= 0 {
		c.View = flags.View
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.TextureDir == "" {
		c.TextureDir = "assets"
	}
	c.OutputDir = c.resolvePath(c.OutputDir)
	c.TextureDir = c.resolvePath(c.TextureDir)
	if c.Texture == "" {
		c.Texture = "DGLogo"
	}

	// Defaults for render settings
	if c.Frames <= 0 {
		c.Frames = 120
	}
	if c.CycleEvery < 0 {
		c.CycleEvery = 0
	}
	if c.Width <= 0 {
		c.Width = 512
	}
	if c.Height <= 0 {
		c.Height = c.Width
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = FormatWebP
	}
	if c.ClearColor == "" {
		c.ClearColor = "#000000"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	c.HUD = orTrue(c.HUD)
	c.Lighting = orTrue(c.Lighting)
	c.ConvertToGamma = orTrue(c.ConvertToGamma)
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	if c.Format != FormatWebP && c.Format != FormatPNG {
		return errors.Errorf("config: unknown format %q", c.Format)
	}
	if _, err := c.Clear(); err != nil {
		return err
	}
	return nil
}

// Clear returns the clear color as 8-bit sRGB. ClearColor is read as a linear
// hex triplet and encoded to sRGB when ConvertToGamma is set.
func (c *Config) Clear() ([3]uint8, error) {
	col, err := colorful.Hex(c.ClearColor)
	if err != nil {
		return [3]uint8{}, errors.Wrapf(err, "config: clear_color %q", c.ClearColor)
	}
	if c.ConvertToGamma == nil || *c.ConvertToGamma {
		col = colorful.LinearRgb(col.R, col.G, col.B)
	}
	r, g, b := col.Clamped().RGB255()
	return [3]uint8{r, g, b}, nil
}

func (c *Config) resolvePath(p string) string {
	if filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

func orTrue(b *bool) *bool {
	if b != nil {
		return b
	}
	t := true
	return &t
}
