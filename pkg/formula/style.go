package formula

import "fmt"

// Toggle is a tri-state flag for inherited boolean styles. Off is distinct
// from Unset: it overrides an On inherited from an enclosing group.
type Toggle uint8

const (
	Unset Toggle = iota
	On
	Off
)

func (t Toggle) String() string {
	switch t {
	case On:
		return "on"
	case Off:
		return "off"
	}
	return "unset"
}

// LineWeight controls stroke thickness of fraction bars, radicals and boxes.
type LineWeight string

const (
	WeightDefault LineWeight = ""
	WeightThin    LineWeight = "thin"
	WeightNormal  LineWeight = "normal"
	WeightThick   LineWeight = "thick"
)

// ParseLineWeight accepts thin, normal and thick, case-sensitively.
func ParseLineWeight(s string) (LineWeight, error) {
	switch w := LineWeight(s); w {
	case WeightThin, WeightNormal, WeightThick:
		return w, nil
	}
	return WeightDefault, fmt.Errorf("unknown line weight %q", s)
}

// Style is the annotation set attached directly to a node. Color, Bold,
// Italic and LineWeight are inherited by descendants; Underline,
// Strikethrough and Box apply to the annotated node only.
type Style struct {
	Color         string
	Bold          Toggle
	Italic        Toggle
	Underline     bool
	Strikethrough bool
	Box           string // enclosing box color; empty means no box
	LineWeight    LineWeight
}

func (s Style) IsZero() bool { return s == Style{} }

// StyleChange is a partial style update. Nil pointers and Unset toggles
// leave the corresponding field alone.
type StyleChange struct {
	Color         *string
	Bold          Toggle
	Italic        Toggle
	Underline     *bool
	Strikethrough *bool
	Box           *string
	LineWeight    *LineWeight
}

// Merge applies c on top of s, field by field.
func (s Style) Merge(c StyleChange) Style {
	if c.Color != nil {
		s.Color = *c.Color
	}
	if c.Bold != Unset {
		s.Bold = c.Bold
	}
	if c.Italic != Unset {
		s.Italic = c.Italic
	}
	if c.Underline != nil {
		s.Underline = *c.Underline
	}
	if c.Strikethrough != nil {
		s.Strikethrough = *c.Strikethrough
	}
	if c.Box != nil {
		s.Box = *c.Box
	}
	if c.LineWeight != nil {
		s.LineWeight = *c.LineWeight
	}
	return s
}

// Effective is a node's style after inheritance, with the identifier italic
// default folded in.
type Effective struct {
	Color         string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Box           string
	LineWeight    LineWeight
}

// inherit folds a node's own inherited fields over the ambient ones.
func inherit(ambient, own Style) Style {
	out := Style{
		Color:      ambient.Color,
		Bold:       ambient.Bold,
		Italic:     ambient.Italic,
		LineWeight: ambient.LineWeight,
	}
	if own.Color != "" {
		out.Color = own.Color
	}
	if own.Bold != Unset {
		out.Bold = own.Bold
	}
	if own.Italic != Unset {
		out.Italic = own.Italic
	}
	if own.LineWeight != WeightDefault {
		out.LineWeight = own.LineWeight
	}
	return out
}

// Resolve computes the effective style of n given the inherited context of
// its parent.
func Resolve(ambient Style, n Node) Effective {
	own := n.Style()
	ctx := inherit(ambient, own)
	italic := ctx.Italic == On
	if sym, ok := n.(*Symbol); ok && sym.role == RoleIdentifier && ctx.Italic == Unset {
		italic = true
	}
	return Effective{
		Color:         ctx.Color,
		Bold:          ctx.Bold == On,
		Italic:        italic,
		Underline:     own.Underline,
		Strikethrough: own.Strikethrough,
		Box:           own.Box,
		LineWeight:    ctx.LineWeight,
	}
}

// Inherit exposes the inheritance step for renderers walking the tree.
func Inherit(ambient Style, n Node) Style {
	return inherit(ambient, n.Style())
}
