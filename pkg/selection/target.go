// Package selection tracks the on-screen geometry of rendered formula nodes
// and resolves spatial queries back to node ids.
package selection

import "formulab/pkg/geom"

// ElementRef names a live element by slot and generation. It never keeps
// the element alive; a ref whose slot was reused reports as dead.
type ElementRef struct {
	Slot       int
	Generation uint64
}

// ElementSource is the host of the live elements a Store tracks.
type ElementSource interface {
	// Alive reports whether ref still names a mounted element.
	Alive(ref ElementRef) bool
	// Bounds returns the element's box in element (untransformed) space.
	// ok is false when the element is not mounted or has no layout yet.
	Bounds(ref ElementRef) (r geom.Rect, ok bool)
	// LayoutEpoch increments whenever previously measured boxes may have
	// moved.
	LayoutEpoch() uint64
}

// State is a target's position in its lifecycle.
type State int

const (
	Registered State = iota // added, never measured
	Measured                // box matches the current layout epoch
	Stale                   // box predates the current layout epoch
)

func (s State) String() string {
	switch s {
	case Registered:
		return "registered"
	case Measured:
		return "measured"
	case Stale:
		return "stale"
	}
	return "unknown"
}

// Target is a snapshot of one registry entry.
type Target struct {
	ID    string
	Ref   ElementRef
	Leaf  bool
	Box   geom.Rect // last measured box, element space
	State State
}

type entry struct {
	ref      ElementRef
	leaf     bool
	box      geom.Rect
	measured bool
	epoch    uint64
}
