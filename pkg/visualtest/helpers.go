package visualtest

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"formulab/pkg/editor"
	"formulab/pkg/render"
	"formulab/pkg/text"
)

// Shot describes one formula snapshot.
type Shot struct {
	Formula  string
	Width    int
	Height   int
	FontSize float64
	Select   []string // target ids highlighted in the image
	Faces    *text.Faces
	Logger   *slog.Logger
}

// RenderFormula lays out and rasterizes a formula. Measurement runs before
// drawing so the selection highlight lands on measured boxes.
func RenderFormula(s Shot) (image.Image, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", s.Width, s.Height)
	}
	ed, err := editor.New(editor.Options{
		Width:    float64(s.Width),
		Height:   float64(s.Height),
		FontSize: s.FontSize,
		Faces:    s.Faces,
	}, s.Logger)
	if err != nil {
		return nil, err
	}
	if err := ed.Load(s.Formula); err != nil {
		return nil, err
	}
	ed.Tick()
	if len(s.Select) > 0 {
		ed.Select(s.Select...)
	}
	return Rasterize(ed, s.Width, s.Height), nil
}

// Rasterize draws the editor's current frame.
func Rasterize(ed *editor.Editor, width, height int) image.Image {
	r := render.NewRenderer(width, height, ed.Surface().Faces())
	r.Render(ed.Frame())
	return r.Image()
}

// RenderFormulaToFile renders a snapshot and writes it as PNG, creating the
// output directory.
func RenderFormulaToFile(s Shot, outputPath string) error {
	img, err := RenderFormula(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := SavePNG(img, outputPath); err != nil {
		return fmt.Errorf("save error: %w", err)
	}
	return nil
}

// UpdateReferenceImage regenerates a reference PNG. Use it when rendering
// changed on purpose.
func UpdateReferenceImage(s Shot, referencePath string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("updating reference image", "path", referencePath, "formula", s.Formula)
	return RenderFormulaToFile(s, referencePath)
}
