package selection

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"formulab/pkg/geom"
)

// Store is the target registry: id -> element ref, cached box and leaf
// flag, plus the viewport transform. It is not safe for concurrent use.
type Store struct {
	src       ElementSource
	log       *slog.Logger
	targets   map[string]*entry
	transform geom.Transform
}

// NewStore returns an empty registry reading geometry from src.
func NewStore(src ElementSource, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		src:       src,
		log:       logger.With("component", "selection"),
		targets:   make(map[string]*entry),
		transform: geom.Identity(),
	}
}

// AddTarget inserts or replaces the entry for id. The box is not measured
// until the next UpdateTargets. A ref that is not alive is logged and
// ignored; the return value reports whether the target was added.
func (s *Store) AddTarget(id string, ref ElementRef, leaf bool) bool {
	if !s.src.Alive(ref) {
		s.log.Warn("skipping registration of unmounted element", "id", id, "slot", ref.Slot, "generation", ref.Generation)
		return false
	}
	s.targets[id] = &entry{ref: ref, leaf: leaf}
	return true
}

// RemoveTarget deletes id. It reports whether an entry existed.
func (s *Store) RemoveTarget(id string) bool {
	if _, ok := s.targets[id]; !ok {
		return false
	}
	delete(s.targets, id)
	return true
}

// UpdateTargets re-measures every registered target and returns how many
// boxes were refreshed. Targets whose element cannot be measured keep their
// last known box.
func (s *Store) UpdateTargets() int {
	epoch := s.src.LayoutEpoch()
	n := 0
	for id, e := range s.targets {
		r, ok := s.src.Bounds(e.ref)
		if !ok {
			s.log.Debug("measurement miss", "id", id, "slot", e.ref.Slot)
			continue
		}
		e.box, e.measured, e.epoch = r, true, epoch
		n++
	}
	return n
}

// SetPanZoom sets the viewport transform. Cached boxes stay in element
// space and are not touched.
func (s *Store) SetPanZoom(x, y, zoom float64) error {
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		return fmt.Errorf("selection: zoom must be positive and finite, got %v", zoom)
	}
	s.transform = geom.Transform{Pan: geom.Point{X: x, Y: y}, Zoom: zoom}
	return nil
}

// PanZoom returns the current viewport transform.
func (s *Store) PanZoom() geom.Transform { return s.transform }

// Target returns a snapshot of the entry for id.
func (s *Store) Target(id string) (Target, bool) {
	e, ok := s.targets[id]
	if !ok {
		return Target{}, false
	}
	return s.snapshot(id, e), true
}

func (s *Store) snapshot(id string, e *entry) Target {
	t := Target{ID: id, Ref: e.ref, Leaf: e.leaf, Box: e.box}
	switch {
	case !e.measured:
		t.State = Registered
	case e.epoch != s.src.LayoutEpoch():
		t.State = Stale
	default:
		t.State = Measured
	}
	return t
}

// IDs returns every registered id, sorted.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.targets))
	for id := range s.targets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Targets returns snapshots of every entry, sorted by id.
func (s *Store) Targets() []Target {
	out := make([]Target, 0, len(s.targets))
	for _, id := range s.IDs() {
		out = append(out, s.snapshot(id, s.targets[id]))
	}
	return out
}

// Len returns the number of registered targets.
func (s *Store) Len() int { return len(s.targets) }
