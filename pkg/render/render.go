// Package render rasterizes a laid out formula surface with gg.
package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"formulab/pkg/css"
	"formulab/pkg/geom"
	"formulab/pkg/mirror"
	"formulab/pkg/renderspec"
	"formulab/pkg/text"
)

// Highlight is the fill drawn under selected targets.
var Highlight = css.Color{R: 51, G: 128, B: 255, A: 0.25}

// Frame is everything one raster pass needs.
type Frame struct {
	Root      *mirror.Element
	Transform geom.Transform
	Selected  []geom.Rect // element space
}

type Renderer struct {
	context    *gg.Context
	faces      *text.Faces
	Background css.Color
}

func NewRenderer(width, height int, faces *text.Faces) *Renderer {
	return &Renderer{
		context:    gg.NewContext(width, height),
		faces:      faces,
		Background: css.Color{R: 255, G: 255, B: 255, A: 1},
	}
}

// Render clears the canvas and draws the frame. Geometry is mapped to
// screen space per element so glyphs are rasterized at the zoomed size
// rather than scaled bitmaps.
func (r *Renderer) Render(f Frame) {
	r.context.SetRGBA(r.Background.RGBA())
	r.context.Clear()

	r.setColor(Highlight)
	for _, box := range f.Selected {
		s := f.Transform.ApplyRect(box)
		r.context.DrawRectangle(s.X, s.Y, s.Width, s.Height)
		r.context.Fill()
	}

	if f.Root == nil {
		return
	}
	f.Root.Walk(func(e *mirror.Element) {
		r.drawElement(e, f.Transform)
	})
}

func (r *Renderer) drawElement(e *mirror.Element, t geom.Transform) {
	color := e.Style.ColorOr(css.PropColor, css.Black)
	box := t.ApplyRect(e.Box())
	zoom := t.Zoom

	switch e.Tag {
	case renderspec.TagIdentifier, renderspec.TagNumber, renderspec.TagOperator:
		r.drawGlyph(e, t, color)
	case renderspec.TagFractionLine:
		r.setColor(color)
		r.context.DrawRectangle(box.X, box.Y, box.Width, box.Height)
		r.context.Fill()
	case renderspec.TagSurd:
		r.drawSurd(e, t, color)
	}

	if e.Style[css.PropBorderStyle] == "solid" {
		r.setColor(e.Style.ColorOr(css.PropBorderColor, color))
		r.context.SetLineWidth(math.Max(1, e.StrokeWidth()*zoom))
		r.context.DrawRectangle(box.X, box.Y, box.Width, box.Height)
		r.context.Stroke()
	}
}

func (r *Renderer) drawGlyph(e *mirror.Element, t geom.Transform, color css.Color) {
	size := e.FontSize() * t.Zoom
	if size <= 0 {
		return
	}
	r.context.SetFontFace(r.faces.Face(size, e.Style.Bold(), e.Style.Italic()))
	r.setColor(color)

	// Bordered glyphs carry padding inside their box.
	origin := t.Apply(geom.Point{X: e.Box().X + e.Padding(), Y: e.Baseline()})
	r.context.DrawString(e.Text, origin.X, origin.Y)

	underline, lineThrough := e.Style.Decorations()
	if !underline && !lineThrough {
		return
	}
	width, _ := r.context.MeasureString(e.Text)
	thickness := math.Max(1, size/16)
	r.context.SetLineWidth(thickness)
	if underline {
		y := origin.Y + size*0.12
		r.context.DrawLine(origin.X, y, origin.X+width, y)
		r.context.Stroke()
	}
	if lineThrough {
		y := origin.Y - r.faces.AxisHeight(size)
		r.context.DrawLine(origin.X, y, origin.X+width, y)
		r.context.Stroke()
	}
}

// drawSurd draws the radical sign in the surd's box and the overbar across
// the radicand.
func (r *Renderer) drawSurd(e *mirror.Element, t geom.Transform, color css.Color) {
	b := t.ApplyRect(e.Box())
	lw := math.Max(1, e.StrokeWidth()*t.Zoom)
	top := b.Y + lw/2

	r.setColor(color)
	r.context.SetLineWidth(lw)
	r.context.SetLineJoin(gg.LineJoinRound)
	r.context.MoveTo(b.X+b.Width*0.05, b.Y+b.Height*0.6)
	r.context.LineTo(b.X+b.Width*0.3, b.Y+b.Height*0.5)
	r.context.LineTo(b.X+b.Width*0.55, b.Bottom())
	r.context.LineTo(b.Right(), top)

	right := b.Right()
	if p := e.Parent; p != nil {
		pb := t.ApplyRect(p.Box())
		right = pb.Right() - p.Padding()*t.Zoom
	}
	r.context.LineTo(right, top)
	r.context.Stroke()
}

func (r *Renderer) setColor(c css.Color) {
	r.context.SetRGBA(c.RGBA())
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}
