// Package config loads the settings shared by the flipbook binaries.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds paths and book settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	PagesDir  string `json:"pages_dir"`
	Script    string `json:"script"`
	OutputDir string `json:"output_dir"`

	// Window and panel
	WindowWidth  int     `json:"window_width"`
	WindowHeight int     `json:"window_height"`
	PanelWidth   float64 `json:"panel_width"`
	PanelHeight  float64 `json:"panel_height"`

	// Book behavior
	Pages         int     `json:"pages"` // page count when no images are loaded
	Smoothing     string  `json:"smoothing"`
	SmoothingRate float64 `json:"smoothing_rate"`
	TweenDuration float64 `json:"tween_duration"`
	TweenStep     float64 `json:"tween_step"`
	AutoFlipTime  float64 `json:"autoflip_time"`
	DisableShadow bool    `json:"disable_shadow"`

	// Output
	Format string `json:"format"` // png or webp
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	PagesDir  string
	Script    string
	OutputDir string
	Format    string
	Smoothing string
	Pages     int
}

// Load reads a JSON config file. Fields not set in the file keep their zero
// values.
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

// Resolve applies flag overrides and fills empty fields with defaults.
// CLI flags take priority when non-zero/non-empty. Relative paths are
// resolved against BaseDir when it is set.
func (c *Config) Resolve(flags Flags) error {
	if flags.PagesDir != "" {
		c.PagesDir = flags.PagesDir
	}
	if flags.Script != "" {
		c.Script = flags.Script
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Smoothing != "" {
		c.Smoothing = flags.Smoothing
	}
	if flags.Pages > 0 {
		c.Pages = flags.Pages
	}

	if c.BaseDir != "" {
		c.PagesDir = c.resolvePath(c.PagesDir)
		c.Script = c.resolvePath(c.Script)
		c.OutputDir = c.resolvePath(c.OutputDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}

	if c.WindowWidth <= 0 {
		c.WindowWidth = 1024
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = 768
	}
	if c.PanelWidth <= 0 {
		c.PanelWidth = 800
	}
	if c.PanelHeight <= 0 {
		c.PanelHeight = 600
	}
	if c.Pages <= 0 {
		c.Pages = 8
	}

	c.Smoothing = strings.ToLower(c.Smoothing)
	switch c.Smoothing {
	case "":
		c.Smoothing = "legacy"
	case "legacy", "exponential", "none":
	default:
		return fmt.Errorf("config: unknown smoothing %q", c.Smoothing)
	}

	c.Format = strings.ToLower(c.Format)
	switch c.Format {
	case "":
		c.Format = "png"
	case "png", "webp":
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	return nil
}

func (c *Config) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
