package mirror

import (
	"fmt"
	"log/slog"

	"formulab/pkg/renderspec"
	"formulab/pkg/selection"
)

// constructors is indexed by tag; every renderable tag has an entry.
var constructors = [renderspec.Count]measureFunc{
	renderspec.TagMath:         measureWrapper,
	renderspec.TagRow:          measureRow,
	renderspec.TagIdentifier:   measureGlyph,
	renderspec.TagNumber:       measureGlyph,
	renderspec.TagOperator:     measureGlyph,
	renderspec.TagSup:          measureScripts,
	renderspec.TagSub:          measureScripts,
	renderspec.TagSubSup:       measureScripts,
	renderspec.TagBase:         measureWrapper,
	renderspec.TagScript:       measureWrapper,
	renderspec.TagFraction:     measureFraction,
	renderspec.TagNumerator:    measureWrapper,
	renderspec.TagFractionLine: measureStroke,
	renderspec.TagDenominator:  measureWrapper,
	renderspec.TagSqrt:         measureRadical,
	renderspec.TagSurd:         measureStroke,
	renderspec.TagRadicand:     measureWrapper,
}

// arity is the fixed child count of tags whose layout indexes children.
var arity = map[renderspec.Tag]int{
	renderspec.TagSup:      2,
	renderspec.TagSub:      2,
	renderspec.TagSubSup:   3,
	renderspec.TagFraction: 3,
	renderspec.TagSqrt:     2,
}

// instantiate builds the element tree for n, depth first with children in
// spec order.
func instantiate(n *renderspec.Node) (*Element, error) {
	if n == nil {
		return nil, fmt.Errorf("mirror: nil spec node")
	}
	if !n.Tag.Valid() || constructors[n.Tag] == nil {
		return nil, fmt.Errorf("mirror: no constructor for tag %d", int(n.Tag))
	}
	if want, ok := arity[n.Tag]; ok && len(n.Children) != want {
		return nil, fmt.Errorf("mirror: %s has %d children, want %d", n.Tag, len(n.Children), want)
	}
	e := &Element{
		Tag:     n.Tag,
		ID:      n.ID,
		Class:   n.Class,
		Style:   n.Style.Clone(),
		Attrs:   n.Attrs,
		Text:    n.Text,
		measure: constructors[n.Tag],
	}
	for _, c := range n.Children {
		child, err := instantiate(c)
		if err != nil {
			return nil, err
		}
		e.AddChild(child)
	}
	return e, nil
}

// Commit describes one render pass.
type Commit struct {
	Generation uint64
	Removed    []string // ids deregistered, old tree order
	Added      []string // ids registered, new tree order
}

// Renderer mounts spec trees onto a surface and keeps the target registry
// equal to the set of ids that are mounted.
type Renderer struct {
	surface *Surface
	targets *selection.Store
	log     *slog.Logger

	spec       *renderspec.Node
	ids        []string
	generation uint64
}

// NewRenderer returns a renderer that mounts onto surface and registers
// into targets.
func NewRenderer(surface *Surface, targets *selection.Store, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{surface: surface, targets: targets, log: logger.With("component", "mirror")}
}

// Render replaces the mounted tree with spec. Every previously registered
// id is removed before any new id is added. If spec cannot be instantiated
// the current mount is left untouched.
func (r *Renderer) Render(spec *renderspec.Node) (Commit, error) {
	root, err := instantiate(spec)
	if err != nil {
		return Commit{}, err
	}

	c := Commit{Removed: r.flush()}
	r.surface.commit(root)
	root.Walk(func(e *Element) {
		if e.ID == "" {
			return
		}
		if r.targets.AddTarget(e.ID, e.ref, renderspec.IsGlyphTag(e.Tag)) {
			r.ids = append(r.ids, e.ID)
			c.Added = append(c.Added, e.ID)
		}
	})
	r.spec = spec
	r.generation++
	c.Generation = r.generation
	r.log.Debug("commit", "generation", c.Generation, "removed", len(c.Removed), "added", len(c.Added))
	return c, nil
}

// Unmount removes the mounted tree and all of its registrations.
func (r *Renderer) Unmount() Commit {
	c := Commit{Removed: r.flush()}
	r.surface.commit(nil)
	r.spec = nil
	r.generation++
	c.Generation = r.generation
	return c
}

func (r *Renderer) flush() []string {
	removed := r.ids
	for _, id := range removed {
		r.targets.RemoveTarget(id)
	}
	r.ids = nil
	return removed
}

// Spec returns the mounted spec, or nil.
func (r *Renderer) Spec() *renderspec.Node { return r.spec }

// Generation returns the number of commits so far.
func (r *Renderer) Generation() uint64 { return r.generation }
