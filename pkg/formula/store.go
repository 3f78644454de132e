package formula

// Change describes one replacement of the current document.
type Change struct {
	Generation uint64
	Previous   *Formula // nil on the first install
	Current    *Formula
}

// Store exclusively owns the current document. Readers get the immutable
// *Formula; the only write path is Replace. A Store is not safe for
// concurrent use.
type Store struct {
	current     *Formula
	generation  uint64
	subscribers []*subscription
	nextSub     int
}

type subscription struct {
	id int
	fn func(Change)
}

func NewStore() *Store {
	return &Store{}
}

// Current returns the installed document, or nil before the first Replace.
func (s *Store) Current() *Formula { return s.current }

// Generation counts successful replacements.
func (s *Store) Generation() uint64 { return s.generation }

// Replace installs f as a whole-tree replacement and notifies subscribers
// in subscription order. Installing nil or the already-current document is a
// no-op and reports false.
func (s *Store) Replace(f *Formula) (Change, bool) {
	if f == nil || f == s.current {
		return Change{}, false
	}
	s.generation++
	change := Change{Generation: s.generation, Previous: s.current, Current: f}
	s.current = f
	for _, sub := range append([]*subscription(nil), s.subscribers...) {
		sub.fn(change)
	}
	return change, true
}

// Subscribe registers fn for future changes and returns a function that
// removes it.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.nextSub++
	sub := &subscription{id: s.nextSub, fn: fn}
	s.subscribers = append(s.subscribers, sub)
	return func() {
		for i, other := range s.subscribers {
			if other.id == sub.id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}
