// Package config loads formulab settings from YAML files with defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level formulab configuration.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Formula  string         `yaml:"formula"`
	Palette  []string       `yaml:"palette"`
	Zoom     ZoomConfig     `yaml:"zoom"`
	LogLevel string         `yaml:"log_level"` // debug | info | warn | error
}

// ViewportConfig sizes the drawing surface.
type ViewportConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	FontSize float64 `yaml:"font_size"`
}

// ZoomConfig bounds interactive zooming.
type ZoomConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"` // factor per scroll notch
}

// DefaultPalette is the toolbar color set.
var DefaultPalette = []string{
	"#000000",
	"#FF0000",
	"#00FF00",
	"#0000FF",
	"#FFFF00",
	"#00FFFF",
	"#FF00FF",
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML configuration and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Viewport.Width <= 0 {
		c.Viewport.Width = 960
	}
	if c.Viewport.Height <= 0 {
		c.Viewport.Height = 540
	}
	if c.Viewport.FontSize <= 0 {
		c.Viewport.FontSize = 48
	}
	if c.Formula == "" {
		c.Formula = "a^2 + b^2 = c^2"
	}
	if len(c.Palette) == 0 {
		c.Palette = append([]string(nil), DefaultPalette...)
	}
	if c.Zoom.Min <= 0 {
		c.Zoom.Min = 0.25
	}
	if c.Zoom.Max <= 0 {
		c.Zoom.Max = 8
	}
	if c.Zoom.Step <= 1 {
		c.Zoom.Step = 1.1
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	if c.Zoom.Min > c.Zoom.Max {
		return fmt.Errorf("config: zoom.min %v exceeds zoom.max %v", c.Zoom.Min, c.Zoom.Max)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: log_level: %w", err)
	}
	return l, nil
}

// ClampZoom limits z to the configured range.
func (c *Config) ClampZoom(z float64) float64 {
	if z < c.Zoom.Min {
		return c.Zoom.Min
	}
	if z > c.Zoom.Max {
		return c.Zoom.Max
	}
	return z
}

// Logger builds a text logger on stderr at the configured level.
func (c *Config) Logger() *slog.Logger {
	l, err := c.Level()
	if err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
