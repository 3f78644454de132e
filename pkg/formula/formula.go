package formula

import (
	"fmt"
	"sort"
)

// Formula is an immutable document: a root row plus an id index. Every edit
// produces a new Formula; unchanged subtrees are shared between versions.
type Formula struct {
	root    *Group
	index   map[string]Node
	parents map[string]*Group
	order   []string // ids in preorder
}

// New validates root and builds a Formula. Ids must be non-empty and unique,
// the root must be a row, and every group must have its kind's arity.
func New(root *Group) (*Formula, error) {
	if root == nil {
		return nil, fmt.Errorf("formula: nil root")
	}
	if root.kind != KindRow {
		return nil, fmt.Errorf("formula: root must be a row, got %s", root.kind)
	}
	f := &Formula{root: root}
	if err := f.buildIndex(true); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Formula) buildIndex(validate bool) error {
	f.index = make(map[string]Node)
	f.parents = make(map[string]*Group)
	f.order = f.order[:0]
	var visit func(n Node, parent *Group) error
	visit = func(n Node, parent *Group) error {
		id := n.ID()
		if validate {
			if id == "" {
				return fmt.Errorf("formula: node without id")
			}
			if _, dup := f.index[id]; dup {
				return fmt.Errorf("formula: duplicate id %q", id)
			}
		}
		f.index[id] = n
		f.order = append(f.order, id)
		if parent != nil {
			f.parents[id] = parent
		}
		g, ok := n.(*Group)
		if !ok {
			return nil
		}
		if validate {
			if want := g.kind.arity(); want >= 0 && len(g.children) != want {
				return fmt.Errorf("formula: %s %q has %d children, want %d", g.kind, id, len(g.children), want)
			}
			if err := validateSlots(g); err != nil {
				return err
			}
		}
		for _, c := range g.children {
			if err := visit(c, g); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(f.root, nil)
}

// validateSlots checks that every slot other than a script base is a row.
func validateSlots(g *Group) error {
	first := 0
	switch g.kind {
	case KindRow:
		return nil
	case KindSup, KindSub, KindSubSup:
		first = 1
	}
	for _, c := range g.children[first:] {
		if cg, ok := c.(*Group); !ok || cg.kind != KindRow {
			return fmt.Errorf("formula: %s %q slot %q is not a row", g.kind, g.id, c.ID())
		}
	}
	return nil
}

// Root returns the root row.
func (f *Formula) Root() *Group { return f.root }

// Len returns the number of nodes.
func (f *Formula) Len() int { return len(f.order) }

// IDs returns every id in preorder.
func (f *Formula) IDs() []string { return append([]string(nil), f.order...) }

// Find looks up a node by id.
func (f *Formula) Find(id string) (Node, bool) {
	n, ok := f.index[id]
	return n, ok
}

// Parent returns the group containing id; false for the root or unknown ids.
func (f *Formula) Parent(id string) (*Group, bool) {
	p, ok := f.parents[id]
	return p, ok
}

// Walk visits nodes in preorder. Returning false from fn skips the node's
// children.
func (f *Formula) Walk(fn func(n Node, depth int) bool) {
	var visit func(n Node, depth int)
	visit = func(n Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children() {
			visit(c, depth+1)
		}
	}
	visit(f.root, 0)
}

// Effective resolves the inherited style of the node with the given id.
func (f *Formula) Effective(id string) (Effective, bool) {
	n, ok := f.index[id]
	if !ok {
		return Effective{}, false
	}
	var chain []Node
	for p, ok := f.parents[id]; ok; p, ok = f.parents[p.id] {
		chain = append(chain, p)
	}
	var ambient Style
	for i := len(chain) - 1; i >= 0; i-- {
		ambient = Inherit(ambient, chain[i])
	}
	return Resolve(ambient, n), true
}

// IDSet is a set of node ids.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in lexical order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ApplyStyle returns a formula equal to f except that every node whose id is
// in ids has change merged into its style. When ids is empty, or names no
// node of f, f itself is returned.
func ApplyStyle(f *Formula, ids IDSet, change StyleChange) *Formula {
	if len(ids) == 0 {
		return f
	}
	var rebuild func(n Node) (Node, bool)
	rebuild = func(n Node) (Node, bool) {
		changed := false
		if g, ok := n.(*Group); ok {
			var children []Node
			for i, c := range g.children {
				nc, ok := rebuild(c)
				if !ok {
					continue
				}
				if children == nil {
					children = append([]Node(nil), g.children...)
				}
				children[i] = nc
			}
			if children != nil {
				n = g.withChildren(children)
				changed = true
			}
		}
		if ids.Has(n.ID()) {
			if merged := n.Style().Merge(change); merged != n.Style() {
				n = n.withStyle(merged)
				changed = true
			}
		}
		return n, changed
	}
	root, changed := rebuild(f.root)
	if !changed {
		return f
	}
	out := &Formula{root: root.(*Group)}
	// Ids and shape are untouched, so the validation done by New still holds.
	_ = out.buildIndex(false)
	return out
}
