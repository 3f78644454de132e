// Package geom holds the small amount of 2D geometry shared by layout,
// hit testing and rendering.
package geom

import "math"

// Point is a 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// Rect represents a rectangular region. Width and Height are never negative
// for rects produced by this package.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFromPoints returns the rect spanned by two corners in any order.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }
func (r Rect) Area() float64   { return r.Width * r.Height }

// IsPoint reports whether the rect has no extent, i.e. it is a point query.
func (r Rect) IsPoint() bool { return r.Width == 0 && r.Height == 0 }

// Empty reports whether the rect covers no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r, edges inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Encloses reports whether o lies entirely inside r.
func (r Rect) Encloses(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Intersects reports whether the two rects overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Union returns the smallest rect covering both. An empty receiver is
// treated as absent.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rect{X: x, Y: y, Width: math.Max(r.Right(), o.Right()) - x, Height: math.Max(r.Bottom(), o.Bottom()) - y}
}

// Inset returns r shrunk by d on every side; a negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: math.Max(0, r.Width-2*d), Height: math.Max(0, r.Height-2*d)}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Transform maps element space to screen space: screen = element*Zoom + Pan.
// The zero value is not usable; start from Identity.
type Transform struct {
	Pan  Point
	Zoom float64
}

// Identity is the transform with no pan and unit zoom.
func Identity() Transform { return Transform{Zoom: 1} }

// Apply maps an element-space point to screen space.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.Zoom + t.Pan.X, Y: p.Y*t.Zoom + t.Pan.Y}
}

// ApplyRect maps an element-space rect to screen space.
func (t Transform) ApplyRect(r Rect) Rect {
	o := t.Apply(Point{X: r.X, Y: r.Y})
	return Rect{X: o.X, Y: o.Y, Width: r.Width * t.Zoom, Height: r.Height * t.Zoom}
}

// Invert maps a screen-space point back to element space.
func (t Transform) Invert(p Point) Point {
	return Point{X: (p.X - t.Pan.X) / t.Zoom, Y: (p.Y - t.Pan.Y) / t.Zoom}
}

// InvertRect maps a screen-space rect back to element space.
func (t Transform) InvertRect(r Rect) Rect {
	o := t.Invert(Point{X: r.X, Y: r.Y})
	return Rect{X: o.X, Y: o.Y, Width: r.Width / t.Zoom, Height: r.Height / t.Zoom}
}

// ZoomAbout returns a transform with the zoom multiplied by factor while the
// screen point anchor stays fixed.
func (t Transform) ZoomAbout(anchor Point, factor float64) Transform {
	elem := t.Invert(anchor)
	z := t.Zoom * factor
	return Transform{
		Pan:  Point{X: anchor.X - elem.X*z, Y: anchor.Y - elem.Y*z},
		Zoom: z,
	}
}
