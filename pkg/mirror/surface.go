package mirror

import (
	"formulab/pkg/geom"
	"formulab/pkg/selection"
	"formulab/pkg/text"
)

type slot struct {
	el  *Element
	gen uint64
}

// Surface hosts mounted elements. Elements live in a slot table; a slot's
// generation advances every time it is reused, so stale refs stay dead.
// Layout runs lazily on the first geometry read after a commit or resize.
type Surface struct {
	width, height float64
	fontSize      float64
	faces         *text.Faces

	slots []slot
	free  []int
	root  *Element

	dirty bool
	epoch uint64
}

// NewSurface returns an empty surface of the given size.
func NewSurface(width, height, fontSize float64, faces *text.Faces) *Surface {
	return &Surface{width: width, height: height, fontSize: fontSize, faces: faces}
}

// Size returns the surface dimensions.
func (s *Surface) Size() (width, height float64) { return s.width, s.height }

// FontSize returns the base font size.
func (s *Surface) FontSize() float64 { return s.fontSize }

// Faces returns the font cache used for layout.
func (s *Surface) Faces() *text.Faces { return s.faces }

// Resize changes the surface dimensions and schedules a relayout.
func (s *Surface) Resize(width, height float64) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.dirty = true
}

// Root returns the mounted root element, laid out, or nil.
func (s *Surface) Root() *Element {
	s.Layout()
	return s.root
}

// Mounted returns the number of live elements.
func (s *Surface) Mounted() int { return len(s.slots) - len(s.free) }

// Lookup returns the live element for ref.
func (s *Surface) Lookup(ref selection.ElementRef) (*Element, bool) {
	if ref.Slot < 0 || ref.Slot >= len(s.slots) {
		return nil, false
	}
	sl := s.slots[ref.Slot]
	if sl.el == nil || sl.gen != ref.Generation {
		return nil, false
	}
	return sl.el, true
}

// Alive implements selection.ElementSource.
func (s *Surface) Alive(ref selection.ElementRef) bool {
	_, ok := s.Lookup(ref)
	return ok
}

// Bounds implements selection.ElementSource.
func (s *Surface) Bounds(ref selection.ElementRef) (geom.Rect, bool) {
	el, ok := s.Lookup(ref)
	if !ok {
		return geom.Rect{}, false
	}
	s.Layout()
	if !el.laidOut {
		return geom.Rect{}, false
	}
	return el.box, true
}

// LayoutEpoch implements selection.ElementSource. A pending layout runs
// first, so the epoch returned matches the boxes Bounds will report.
func (s *Surface) LayoutEpoch() uint64 {
	s.Layout()
	return s.epoch
}

// commit attaches root and its subtree, replacing whatever was mounted.
func (s *Surface) commit(root *Element) {
	if s.root != nil {
		s.detach(s.root)
	}
	s.root = root
	if root != nil {
		root.Walk(s.attach)
	}
	s.dirty = true
}

func (s *Surface) attach(e *Element) {
	var i int
	if n := len(s.free); n > 0 {
		i, s.free = s.free[n-1], s.free[:n-1]
	} else {
		i = len(s.slots)
		s.slots = append(s.slots, slot{})
	}
	s.slots[i].gen++
	s.slots[i].el = e
	e.ref = selection.ElementRef{Slot: i, Generation: s.slots[i].gen}
	e.mounted = true
}

func (s *Surface) detach(root *Element) {
	root.Walk(func(e *Element) {
		if !e.mounted {
			return
		}
		s.slots[e.ref.Slot].el = nil
		s.free = append(s.free, e.ref.Slot)
		e.mounted = false
	})
	if s.root == root {
		s.root = nil
	}
}
