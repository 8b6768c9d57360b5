// Package config loads editor settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the top-level editor configuration.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Preview PreviewConfig `toml:"preview"`
	Save    SaveConfig    `toml:"save"`
	Window  WindowConfig  `toml:"window"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `toml:"level"`  // debug | info | warn | error
	Format string `toml:"format"` // json | text
}

// PreviewConfig bounds the before/after comparison shown after each edit.
type PreviewConfig struct {
	Enabled   bool `toml:"enabled"`
	MaxWidth  int  `toml:"max_width"`  // both images side by side
	MaxHeight int  `toml:"max_height"`
}

// SaveConfig controls encoding of saved images.
type SaveConfig struct {
	JPEGQuality      int    `toml:"jpeg_quality"`
	DefaultExtension string `toml:"default_extension"`
}

// WindowConfig sizes the GUI main window.
type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a TOML configuration file. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Preview.MaxWidth <= 0 {
		c.Preview.MaxWidth = 800
	}
	if c.Preview.MaxHeight <= 0 {
		c.Preview.MaxHeight = 500
	}
	if c.Save.JPEGQuality <= 0 {
		c.Save.JPEGQuality = 95
	}
	if c.Save.DefaultExtension == "" {
		c.Save.DefaultExtension = ".png"
	}
	if !strings.HasPrefix(c.Save.DefaultExtension, ".") {
		c.Save.DefaultExtension = "." + c.Save.DefaultExtension
	}
	if c.Window.Width <= 0 {
		c.Window.Width = 1000
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 700
	}
}

// Validate rejects values that cannot be honoured.
func (c *Config) Validate() error {
	if c.Save.JPEGQuality > 100 {
		return fmt.Errorf("save.jpeg_quality must be between 1 and 100, got %d", c.Save.JPEGQuality)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	return nil
}
