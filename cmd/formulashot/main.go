// Command formulashot renders a formula to PNG without a window. A script
// can drive the editor before the snapshot, and the image can be checked
// against a reference.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"formulab/pkg/config"
	"formulab/pkg/editor"
	"formulab/pkg/script"
	"formulab/pkg/visualtest"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	source := flag.String("formula", "", "formula source (overrides config)")
	scriptPath := flag.String("script", "", "JavaScript file run against the editor before rendering")
	output := flag.String("o", "formula.png", "output PNG file path")
	width := flag.Int("w", 0, "image width in pixels (overrides config)")
	height := flag.Int("h", 0, "image height in pixels (overrides config)")
	pan := flag.String("pan", "0,0", "pan offset as x,y")
	zoom := flag.Float64("zoom", 1, "zoom factor")
	expect := flag.String("expect", "", "reference PNG to compare against")
	tolerance := flag.Int("tolerance", 2, "per-channel tolerance when comparing")
	update := flag.Bool("update", false, "write the render to the -expect path instead of comparing")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: formulashot [flags]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *source != "" {
		cfg.Formula = *source
	}
	if *width > 0 {
		cfg.Viewport.Width = float64(*width)
	}
	if *height > 0 {
		cfg.Viewport.Height = float64(*height)
	}
	logger := cfg.Logger()

	ed, err := editor.New(editor.Options{
		Width:    cfg.Viewport.Width,
		Height:   cfg.Viewport.Height,
		FontSize: cfg.Viewport.FontSize,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating editor: %v\n", err)
		os.Exit(1)
	}
	if err := ed.Load(cfg.Formula); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing formula: %v\n", err)
		os.Exit(1)
	}

	px, py, err := parsePan(*pan)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := ed.SetPanZoom(px, py, cfg.ClampZoom(*zoom)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *scriptPath != "" {
		if err := script.New(ed, logger).RunFile(*scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error running script: %v\n", err)
			os.Exit(1)
		}
	}
	// Drain deferred measurement so highlights land on measured boxes.
	for ed.Pending() > 0 {
		ed.Tick()
	}

	w, h := int(cfg.Viewport.Width), int(cfg.Viewport.Height)
	img := visualtest.Rasterize(ed, w, h)
	if err := visualtest.SavePNG(img, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	logger.Info("rendered formula", "formula", ed.Formula().LaTeX(), "output", *output,
		"width", w, "height", h, "targets", ed.Targets().Len())

	if *expect == "" {
		return
	}
	if *update {
		if err := visualtest.SavePNG(img, *expect); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating reference: %v\n", err)
			os.Exit(1)
		}
		logger.Warn("updated reference image", "path", *expect)
		return
	}

	opts := visualtest.DefaultOptions()
	opts.Tolerance = *tolerance
	diffPath := strings.TrimSuffix(*output, ".png") + "-diff.png"
	result, err := visualtest.CompareFiles(img, *expect, diffPath, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing: %v\n", err)
		os.Exit(1)
	}
	if !result.Match {
		fmt.Fprintf(os.Stderr, "Mismatch: %d of %d pixels differ (%.2f%%), max channel difference %d; diff saved to %s\n",
			result.DifferentPixels, result.TotalPixels, result.DifferentPercent(), result.MaxDifference, diffPath)
		os.Exit(2)
	}
	fmt.Printf("Matches %s\n", *expect)
}

func parsePan(s string) (x, y float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid -pan %q: want x,y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid -pan x: %w", err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid -pan y: %w", err)
	}
	return x, y, nil
}
