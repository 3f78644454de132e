package selection

import (
	"sort"

	"formulab/pkg/geom"
)

// Query is a spatial query in screen space. A zero-size Rect is a point.
type Query struct {
	Rect geom.Rect
	// Structural admits group targets as well as leaf glyphs.
	Structural bool
}

// PointQuery returns a point query at p.
func PointQuery(p geom.Point) Query {
	return Query{Rect: geom.Rect{X: p.X, Y: p.Y}}
}

// ResolveAt maps q into element space and returns the matching ids, sorted.
//
// A point returns at most one id: the smallest-area target containing it,
// considering leaves only unless q.Structural is set. An area returns every
// leaf it overlaps and, when q.Structural is set, every group target it
// fully encloses. Targets that were never measured never match.
func (s *Store) ResolveAt(q Query) []string {
	r := s.transform.InvertRect(q.Rect)
	if r.IsPoint() {
		return s.resolvePoint(geom.Point{X: r.X, Y: r.Y}, q.Structural)
	}

	var ids []string
	for id, e := range s.targets {
		if !e.measured {
			continue
		}
		switch {
		case e.leaf && r.Intersects(e.box):
			ids = append(ids, id)
		case !e.leaf && q.Structural && r.Encloses(e.box):
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) resolvePoint(p geom.Point, structural bool) []string {
	best := ""
	bestArea := 0.0
	for id, e := range s.targets {
		if !e.measured || (!e.leaf && !structural) || !e.box.Contains(p) {
			continue
		}
		a := e.box.Area()
		// Equal areas break on id.
		if best == "" || a < bestArea || (a == bestArea && id < best) {
			best, bestArea = id, a
		}
	}
	if best == "" {
		return nil
	}
	return []string{best}
}
