package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Viewport.Width != 960 || cfg.Viewport.Height != 540 || cfg.Viewport.FontSize != 48 {
		t.Errorf("viewport = %+v", cfg.Viewport)
	}
	if cfg.Formula != "a^2 + b^2 = c^2" {
		t.Errorf("formula = %q", cfg.Formula)
	}
	if len(cfg.Palette) != 7 || cfg.Palette[1] != "#FF0000" {
		t.Errorf("palette = %v", cfg.Palette)
	}
	if l, err := cfg.Level(); err != nil || l != slog.LevelInfo {
		t.Errorf("level = %v, %v", l, err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulab.yaml")
	data := `
viewport:
  width: 400
  font_size: 32
formula: '\frac{1}{x}'
palette: ["red", "#123456"]
zoom:
  max: 4
log_level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Viewport.Width != 400 || cfg.Viewport.Height != 540 || cfg.Viewport.FontSize != 32 {
		t.Errorf("viewport = %+v", cfg.Viewport)
	}
	if cfg.Formula != `\frac{1}{x}` {
		t.Errorf("formula = %q", cfg.Formula)
	}
	if len(cfg.Palette) != 2 {
		t.Errorf("palette = %v", cfg.Palette)
	}
	if cfg.ClampZoom(10) != 4 || cfg.ClampZoom(0.01) != 0.25 || cfg.ClampZoom(2) != 2 {
		t.Error("ClampZoom ignores configured bounds")
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("level = %v", l)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for name, data := range map[string]string{
		"zoom range": "zoom: {min: 5, max: 2}",
		"log level":  "log_level: loud",
		"yaml":       "viewport: [",
	} {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}
