// Package text measures glyph runs with the embedded Go fonts.
package text

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Metrics describes a measured run of text. Ascent and Descent are both
// positive distances from the baseline.
type Metrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height returns Ascent + Descent.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent }

type variant struct {
	bold, italic bool
}

type faceKey struct {
	variant
	size float64
}

// Faces parses the four Go font variants once and caches a face per
// variant and size. A Faces is not safe for concurrent use.
type Faces struct {
	fonts map[variant]*truetype.Font
	faces map[faceKey]font.Face
	dc    *gg.Context
}

// NewFaces parses the embedded fonts.
func NewFaces() (*Faces, error) {
	sources := map[variant][]byte{
		{false, false}: goregular.TTF,
		{true, false}:  gobold.TTF,
		{false, true}:  goitalic.TTF,
		{true, true}:   gobolditalic.TTF,
	}
	fs := &Faces{
		fonts: make(map[variant]*truetype.Font, len(sources)),
		faces: make(map[faceKey]font.Face),
		dc:    gg.NewContext(1, 1),
	}
	for v, ttf := range sources {
		f, err := truetype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse go font (bold=%v italic=%v): %w", v.bold, v.italic, err)
		}
		fs.fonts[v] = f
	}
	return fs, nil
}

// MustFaces is NewFaces for callers that treat a broken embedded font as a
// programming error.
func MustFaces() *Faces {
	fs, err := NewFaces()
	if err != nil {
		panic(err)
	}
	return fs
}

// Face returns the cached face for the given style. Sizes are rounded to a
// hundredth of a point so near-identical script sizes share a face.
func (fs *Faces) Face(size float64, bold, italic bool) font.Face {
	key := faceKey{variant{bold, italic}, math.Round(size*100) / 100}
	if f, ok := fs.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(fs.fonts[key.variant], &truetype.Options{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	fs.faces[key] = f
	return f
}

// Measure measures text set at size in the given style.
func (fs *Faces) Measure(s string, size float64, bold, italic bool) Metrics {
	face := fs.Face(size, bold, italic)
	fs.dc.SetFontFace(face)
	w, _ := fs.dc.MeasureString(s)
	m := face.Metrics()
	return Metrics{
		Width:   w,
		Ascent:  float64(m.Ascent) / 64,
		Descent: float64(m.Descent) / 64,
	}
}

// AxisHeight approximates the math axis: half the x-height above the baseline.
func (fs *Faces) AxisHeight(size float64) float64 {
	face := fs.Face(size, false, false)
	b, _, ok := face.GlyphBounds('x')
	if !ok {
		return size / 4
	}
	return float64(-b.Min.Y) / 64 / 2
}
