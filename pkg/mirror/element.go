// Package mirror instantiates render specifications into live elements,
// lays them out, and keeps the target registry in step with what is
// mounted.
package mirror

import (
	"formulab/pkg/css"
	"formulab/pkg/geom"
	"formulab/pkg/renderspec"
	"formulab/pkg/selection"
)

// Element is a live instantiation of one render spec node.
type Element struct {
	Tag      renderspec.Tag
	ID       string
	Class    string
	Style    css.Declarations
	Attrs    map[string]string
	Text     string
	Children []*Element
	Parent   *Element

	measure measureFunc
	ref     selection.ElementRef
	mounted bool

	// Layout results. Metrics are relative to the element's own origin on
	// its baseline; box and baseline are absolute, in element space.
	size     float64
	width    float64
	ascent   float64
	descent  float64
	dx, dy   float64
	pad      float64
	box      geom.Rect
	baseline float64
	laidOut  bool
}

// Attr returns an attribute. id, class and style are exposed alongside the
// spec attributes.
func (e *Element) Attr(name string) (string, bool) {
	switch name {
	case "id":
		return e.ID, e.ID != ""
	case "class":
		return e.Class, e.Class != ""
	case "style":
		return e.Style.String(), len(e.Style) > 0
	}
	v, ok := e.Attrs[name]
	return v, ok
}

// AddChild appends child and sets its parent.
func (e *Element) AddChild(child *Element) {
	child.Parent = e
	e.Children = append(e.Children, child)
}

// Ref returns the element's registry handle; zero until mounted.
func (e *Element) Ref() selection.ElementRef { return e.ref }

// Mounted reports whether the element is attached to a surface.
func (e *Element) Mounted() bool { return e.mounted }

// Box returns the laid out border box in element space.
func (e *Element) Box() geom.Rect { return e.box }

// Baseline returns the absolute y of the element's baseline.
func (e *Element) Baseline() float64 { return e.baseline }

// FontSize returns the font size the element was laid out at.
func (e *Element) FontSize() float64 { return e.size }

// Padding returns the box padding added around a bordered element.
func (e *Element) Padding() float64 { return e.pad }

// Walk visits e and its descendants, parents first.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

func (e *Element) bordered() bool {
	return e.Style[css.PropBorderStyle] == "solid"
}
