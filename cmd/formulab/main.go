// Command formulab is an interactive formula viewer. Click or drag over the
// formula to select parts of it, then restyle them from the toolbar.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"formulab/pkg/config"
	"formulab/pkg/css"
	"formulab/pkg/editor"
	"formulab/pkg/formula"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	source := flag.String("formula", "", "initial formula (overrides config)")
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

	a := app.New()
	w := a.NewWindow("formulab")
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)+120))

	status := widget.NewLabel("Click a symbol or drag to select")
	entry := widget.NewEntry()
	entry.SetPlaceHolder("a^2 + b^2 = c^2")
	entry.OnSubmitted = func(src string) {
		if err := ed.Load(src); err != nil {
			status.SetText("Error: " + err.Error())
			return
		}
		status.SetText("Loaded")
	}

	view := newFormulaCanvas(ed, cfg)

	// Sync the entry on new generations only; selection updates leave typed
	// text alone.
	var shown uint64
	ed.OnUpdate(func() {
		if f := ed.Formula(); f != nil && ed.Generation() != shown {
			shown = ed.Generation()
			entry.SetText(f.LaTeX())
		}
		if sel := ed.Selection(); len(sel) > 0 {
			status.SetText("Selected: " + strings.Join(sel, " "))
		}
	})

	apply := func(cmd editor.Command) {
		if !ed.Apply(cmd) {
			status.SetText(cmd.Name() + ": nothing to change")
		}
	}

	boxColor := cfg.Palette[0]
	swatches := container.NewHBox()
	for _, c := range cfg.Palette {
		c := c
		swatches.Add(newSwatch(c, func() {
			boxColor = c
			apply(editor.SetColor(c))
		}))
	}

	weights := widget.NewSelect([]string{
		string(formula.WeightThin),
		string(formula.WeightNormal),
		string(formula.WeightThick),
	}, func(s string) {
		apply(editor.SetLineWeight(formula.LineWeight(s)))
	})
	weights.PlaceHolder = "Line weight"

	toolbar := container.NewHBox(
		swatches,
		widget.NewButton("B", func() { apply(editor.ToggleBold()) }),
		widget.NewButton("I", func() { apply(editor.ToggleItalic()) }),
		widget.NewButton("U", func() { apply(editor.ToggleUnderline()) }),
		widget.NewButton("S", func() { apply(editor.ToggleStrikethrough()) }),
		widget.NewButton("Box", func() { apply(editor.SetEnclosingBox(boxColor)) }),
		widget.NewButton("No box", func() { apply(editor.SetEnclosingBox("")) }),
		weights,
		widget.NewButton("Reset view", func() { ed.SetPanZoom(0, 0, 1) }),
	)

	top := container.NewVBox(entry, toolbar)
	w.SetContent(container.NewBorder(top, status, nil, nil, view))

	if err := ed.Load(cfg.Formula); err != nil {
		status.SetText("Error: " + err.Error())
	}
	w.Canvas().Focus(entry)
	w.ShowAndRun()
}

// swatch is a tappable color chip.
type swatch struct {
	widget.BaseWidget
	rect  *canvas.Rectangle
	onTap func()
}

func newSwatch(hex string, onTap func()) *swatch {
	c, ok := css.ParseColor(hex)
	if !ok {
		c = css.Black
	}
	s := &swatch{
		rect:  canvas.NewRectangle(color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(c.A * 255)}),
		onTap: onTap,
	}
	s.rect.StrokeColor = color.Gray{Y: 128}
	s.rect.StrokeWidth = 1
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) Tapped(*fyne.PointEvent) { s.onTap() }

func (s *swatch) MinSize() fyne.Size { return fyne.NewSize(28, 28) }

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}
