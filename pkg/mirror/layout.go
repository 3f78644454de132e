package mirror

import (
	"math"

	"formulab/pkg/renderspec"
)

// Layout constants, in em.
const (
	relSpace    = 5.0 / 18
	binSpace    = 4.0 / 18
	scriptScale = 0.7
	scriptGap   = 0.05
	supShift    = 0.4
	subShift    = 0.25
	fracGap     = 0.15
	fracPad     = 0.1
	surdWidth   = 0.6
	radicalGap  = 0.1
	boxPadding  = 0.15
	emptyAscent = 0.5
)

// measureFunc computes e's width, ascent and descent at font size size,
// measuring children first and recording their offsets.
type measureFunc func(s *Surface, e *Element, size float64)

// Layout runs a pending layout pass. The math root is centered on the
// surface.
func (s *Surface) Layout() {
	if !s.dirty {
		return
	}
	s.dirty = false
	s.epoch++
	if s.root == nil {
		return
	}
	s.measure(s.root, s.fontSize)
	x := (s.width - s.root.width) / 2
	top := (s.height - s.root.ascent - s.root.descent) / 2
	place(s.root, x, top+s.root.ascent)
}

func (s *Surface) measure(e *Element, size float64) {
	e.size = size
	e.dx, e.dy = 0, 0
	e.measure(s, e, size)
	e.pad = 0
	if e.bordered() {
		p := boxPadding * size
		e.pad = p
		e.width += 2 * p
		e.ascent += p
		e.descent += p
		for _, c := range e.Children {
			c.dx += p
		}
	}
}

func place(e *Element, x, baseline float64) {
	e.baseline = baseline
	e.box.X = x
	e.box.Y = baseline - e.ascent
	e.box.Width = e.width
	e.box.Height = e.ascent + e.descent
	e.laidOut = true
	for _, c := range e.Children {
		place(c, x+c.dx, baseline+c.dy)
	}
}

func measureGlyph(s *Surface, e *Element, size float64) {
	m := s.faces.Measure(e.Text, size, e.Style.Bold(), e.Style.Italic())
	e.width, e.ascent, e.descent = m.Width, m.Ascent, m.Descent
}

// measureRow sets children side by side on a shared baseline.
func measureRow(s *Surface, e *Element, size float64) {
	x := 0.0
	e.ascent, e.descent = 0, 0
	for _, c := range e.Children {
		space := 0.0
		switch c.Attrs["spacing"] {
		case "rel":
			space = relSpace * size
		case "bin":
			space = binSpace * size
		}
		s.measure(c, size)
		x += space
		c.dx = x
		x += c.width + space
		e.ascent = math.Max(e.ascent, c.ascent)
		e.descent = math.Max(e.descent, c.descent)
	}
	e.width = x
	if len(e.Children) == 0 {
		e.ascent = emptyAscent * size
	}
}

// measureWrapper passes its single child through; size=s wrappers shrink
// their content.
func measureWrapper(s *Surface, e *Element, size float64) {
	if e.Attrs["size"] == "s" {
		size *= scriptScale
	}
	e.width, e.ascent, e.descent = 0, 0, 0
	for _, c := range e.Children {
		s.measure(c, size)
		e.width = math.Max(e.width, c.width)
		e.ascent = math.Max(e.ascent, c.ascent)
		e.descent = math.Max(e.descent, c.descent)
	}
}

// measureScripts handles msup, msub and msubsup: children are the base
// followed by one or two script wrappers.
func measureScripts(s *Surface, e *Element, size float64) {
	for _, c := range e.Children {
		s.measure(c, size)
	}
	base := e.Children[0]
	var sub, sup *Element
	switch e.Tag {
	case renderspec.TagSup:
		sup = e.Children[1]
	case renderspec.TagSub:
		sub = e.Children[1]
	default:
		sub, sup = e.Children[1], e.Children[2]
	}

	x := base.width + scriptGap*size
	e.width = base.width
	e.ascent, e.descent = base.ascent, base.descent
	if sup != nil {
		shift := math.Max(supShift*size, base.ascent-sup.ascent*0.5)
		sup.dx, sup.dy = x, -shift
		e.width = math.Max(e.width, x+sup.width)
		e.ascent = math.Max(e.ascent, shift+sup.ascent)
	}
	if sub != nil {
		shift := math.Max(subShift*size, base.descent)
		sub.dx, sub.dy = x, shift
		e.width = math.Max(e.width, x+sub.width)
		e.descent = math.Max(e.descent, shift+sub.descent)
	}
}

// measureFraction stacks numerator over denominator around the math axis,
// separated by a bar of the resolved stroke width.
func measureFraction(s *Surface, e *Element, size float64) {
	num, line, den := e.Children[0], e.Children[1], e.Children[2]
	s.measure(num, size)
	s.measure(den, size)

	axis := s.faces.AxisHeight(size)
	t := e.Style.StrokeWidthEm() * size
	gap := fracGap * size
	pad := fracPad * size
	e.width = math.Max(num.width, den.width) + 2*pad

	num.dx = (e.width - num.width) / 2
	num.dy = -(axis + t/2 + gap + num.descent)
	den.dx = (e.width - den.width) / 2
	den.dy = -axis + t/2 + gap + den.ascent

	line.size = size
	line.width, line.ascent, line.descent = e.width, t/2, t/2
	line.dx, line.dy = 0, -axis

	e.ascent = -num.dy + num.ascent
	e.descent = math.Max(0, den.dy+den.descent)
}

// measureRadical draws a surd to the left of the radicand with an overbar
// above it.
func measureRadical(s *Surface, e *Element, size float64) {
	surd, rad := e.Children[0], e.Children[1]
	s.measure(rad, size)

	t := e.Style.StrokeWidthEm() * size
	w := surdWidth * size
	e.ascent = rad.ascent + radicalGap*size + t
	e.descent = rad.descent
	e.width = w + rad.width + scriptGap*size

	surd.size = size
	surd.width, surd.ascent, surd.descent = w, e.ascent, e.descent
	surd.dx, surd.dy = 0, 0
	rad.dx = w
}

// measureStroke is for line and surd elements, whose extent is set by
// their parent.
func measureStroke(*Surface, *Element, float64) {}

// StrokeWidth returns the resolved stroke width of e in pixels.
func (e *Element) StrokeWidth() float64 {
	return e.Style.StrokeWidthEm() * e.size
}
