// Package formula is the document model: an immutable tree of symbols and
// groups, each carrying a stable id and a style annotation set.
package formula

// Node is either a *Symbol or a *Group.
type Node interface {
	ID() string
	Style() Style
	// Children returns the ordered child nodes; nil for symbols.
	Children() []Node

	withStyle(Style) Node
}

// Role is the semantic role of a symbol.
type Role int

const (
	RoleIdentifier Role = iota
	RoleNumber
	RoleOperator
)

func (r Role) String() string {
	switch r {
	case RoleIdentifier:
		return "identifier"
	case RoleNumber:
		return "number"
	case RoleOperator:
		return "operator"
	}
	return "unknown"
}

// Symbol is a leaf: literal glyph text with a role.
type Symbol struct {
	id    string
	text  string
	role  Role
	style Style
}

// NewSymbol creates an unstyled symbol.
func NewSymbol(id, text string, role Role) *Symbol {
	return &Symbol{id: id, text: text, role: role}
}

func (s *Symbol) ID() string       { return s.id }
func (s *Symbol) Text() string     { return s.text }
func (s *Symbol) Role() Role       { return s.role }
func (s *Symbol) Style() Style     { return s.style }
func (s *Symbol) Children() []Node { return nil }

// WithStyle returns a copy of the symbol carrying style.
func (s *Symbol) WithStyle(style Style) *Symbol {
	c := *s
	c.style = style
	return &c
}

func (s *Symbol) withStyle(style Style) Node { return s.WithStyle(style) }

// GroupKind selects the layout a group's children take part in.
type GroupKind int

const (
	// KindRow is a horizontal sequence: the formula root, braces, and every
	// script, fraction and radical slot.
	KindRow GroupKind = iota
	// KindSup children: base, superscript row.
	KindSup
	// KindSub children: base, subscript row.
	KindSub
	// KindSubSup children: base, subscript row, superscript row.
	KindSubSup
	// KindFraction children: numerator row, denominator row.
	KindFraction
	// KindRadical children: radicand row.
	KindRadical
)

func (k GroupKind) String() string {
	switch k {
	case KindRow:
		return "row"
	case KindSup:
		return "msup"
	case KindSub:
		return "msub"
	case KindSubSup:
		return "msubsup"
	case KindFraction:
		return "mfrac"
	case KindRadical:
		return "msqrt"
	}
	return "unknown"
}

// arity returns the required child count, or -1 for any.
func (k GroupKind) arity() int {
	switch k {
	case KindSup, KindSub, KindFraction:
		return 2
	case KindSubSup:
		return 3
	case KindRadical:
		return 1
	}
	return -1
}

// Group is an ordered sequence of child nodes.
type Group struct {
	id       string
	kind     GroupKind
	children []Node
	style    Style
}

// NewGroup creates an unstyled group. The children slice is copied.
func NewGroup(id string, kind GroupKind, children ...Node) *Group {
	return &Group{id: id, kind: kind, children: append([]Node(nil), children...)}
}

func (g *Group) ID() string      { return g.id }
func (g *Group) Kind() GroupKind { return g.kind }
func (g *Group) Style() Style    { return g.style }

// Children returns a copy of the child list.
func (g *Group) Children() []Node { return append([]Node(nil), g.children...) }

// Len returns the number of children.
func (g *Group) Len() int { return len(g.children) }

// Child returns the i-th child.
func (g *Group) Child(i int) Node { return g.children[i] }

// WithStyle returns a copy of the group carrying style.
func (g *Group) WithStyle(style Style) *Group {
	c := *g
	c.style = style
	return &c
}

func (g *Group) withStyle(style Style) Node { return g.WithStyle(style) }

func (g *Group) withChildren(children []Node) *Group {
	c := *g
	c.children = children
	return &c
}

// Equivalent reports whether two trees have the same shape, text, roles and
// styles. Ids are ignored.
func Equivalent(a, b Node) bool {
	if a.Style() != b.Style() {
		return false
	}
	switch x := a.(type) {
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.text == y.text && x.role == y.role
	case *Group:
		y, ok := b.(*Group)
		if !ok || x.kind != y.kind || len(x.children) != len(y.children) {
			return false
		}
		for i := range x.children {
			if !Equivalent(x.children[i], y.children[i]) {
				return false
			}
		}
		return true
	}
	return false
}
