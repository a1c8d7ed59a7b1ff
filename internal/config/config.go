package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"mandelbox-renderer/internal/camera"
	"mandelbox-renderer/internal/fractal"
	"mandelbox-renderer/internal/imageio"
	"mandelbox-renderer/internal/march"
	"mandelbox-renderer/internal/render"
)

// Config holds all render settings.
type Config struct {
	// Output
	Output  string   `json:"output"`
	Extra   []string `json:"extra_outputs"`
	Quality int      `json:"quality"`
	Tonemap string   `json:"tonemap"`

	// Image
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Supersample int     `json:"supersample"`
	Camera      string  `json:"camera"`
	FOV         float32 `json:"fov"`
	AORadius    float32 `json:"ao_radius"`
	Mode        string  `json:"mode"`
	Workers     int     `json:"workers"`

	// Scene overrides, JSON only
	CustomCamera *camera.Basis  `json:"custom_camera,omitempty"`
	Light        *render.Light  `json:"light,omitempty"`
	Fractal      fractal.Params `json:"fractal"`
	Limits       march.Limits   `json:"march"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Output      string
	Extra       string // comma-separated
	Width       int
	Height      int
	Camera      string
	FOV         float64
	AORadius    float64
	Supersample int
	Mode        string
	Tonemap     string
	Quality     int
	Workers     int
}

// Resolve applies flag overrides, then fills defaults and clamps ranges.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Extra != "" {
		c.Extra = splitList(flags.Extra)
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Camera != "" {
		c.Camera = flags.Camera
	}
	if flags.FOV > 0 {
		c.FOV = float32(flags.FOV)
	}
	if flags.AORadius > 0 {
		c.AORadius = float32(flags.AORadius)
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Tonemap != "" {
		c.Tonemap = flags.Tonemap
	}
	if flags.Quality > 0 {
		c.Quality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults for render settings
	if c.Output == "" {
		c.Output = "mandelbox.pfm"
	}
	if c.Width <= 0 {
		c.Width = 200
	}
	if c.Height <= 0 {
		c.Height = 200
	}
	if c.Camera == "" {
		c.Camera = "default"
	}
	c.FOV = camera.ClampFOV(c.FOV)
	c.AORadius = render.ClampAORadius(c.AORadius)
	c.Supersample = min(max(c.Supersample, 1), 4)
	if c.Quality <= 0 {
		c.Quality = 90
	}
	c.Quality = min(c.Quality, 100)
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Light != nil {
		l := c.Light.WithDefaults()
		c.Light = &l
	}
	c.Fractal = c.Fractal.WithDefaults()
	c.Limits = c.Limits.WithDefaults()
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := render.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := imageio.ParseTonemap(c.Tonemap); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for _, out := range c.Outputs() {
		if _, err := imageio.FormatFromPath(out); err != nil {
			return fmt.Errorf("config: output %s: %w", out, err)
		}
	}
	if c.CustomCamera == nil {
		for _, name := range c.CameraNames() {
			if _, err := camera.Preset(name); err != nil {
				return fmt.Errorf("config: %w", err)
			}
		}
	}
	return nil
}

// Outputs returns the primary output followed by any extra outputs.
func (c *Config) Outputs() []string {
	return append([]string{c.Output}, c.Extra...)
}

// CameraNames expands the camera setting: "all" means every preset, a comma
// list names several.
func (c *Config) CameraNames() []string {
	if c.CustomCamera != nil {
		return []string{"custom"}
	}
	if c.Camera == "all" {
		return camera.PresetNames()
	}
	return splitList(c.Camera)
}

// OutputPath returns the output path for a camera when several cameras render
// in one run: "out.pfm" becomes "out_front.pfm".
func OutputPath(path, cam string, multi bool) string {
	if !multi {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + cam + ext
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
