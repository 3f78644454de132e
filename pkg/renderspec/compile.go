package renderspec

import (
	"fmt"

	"formulab/pkg/css"
	"formulab/pkg/formula"
)

// Compile translates a formula into its render specification. It is pure:
// equal formulas produce Equal trees with identical id placement.
//
// Every document node id lands on exactly one spec node. A second claim on
// the same id is a compiler bug and panics.
func Compile(f *formula.Formula) *Node {
	c := &compiler{claimed: make(map[string]bool, f.Len())}
	return &Node{
		Tag:      TagMath,
		Class:    "MJX-TEX",
		Children: []*Node{c.node(f.Root(), formula.Style{}, 0)},
	}
}

type compiler struct {
	claimed map[string]bool
}

func (c *compiler) claim(id string) string {
	if c.claimed[id] {
		panic(fmt.Sprintf("renderspec: duplicate primary node for id %q", id))
	}
	c.claimed[id] = true
	return id
}

// node compiles n given the inherited style of its parent. level counts
// enclosing script slots.
func (c *compiler) node(n formula.Node, ambient formula.Style, level int) *Node {
	ctx := formula.Inherit(ambient, n)
	eff := formula.Resolve(ambient, n)
	switch x := n.(type) {
	case *formula.Symbol:
		return c.symbol(x, ctx, eff, "")
	case *formula.Group:
		return c.group(x, ctx, eff, level)
	}
	panic(fmt.Sprintf("renderspec: unknown node type %T", n))
}

func (c *compiler) symbol(s *formula.Symbol, ctx formula.Style, eff formula.Effective, spacing string) *Node {
	out := &Node{
		ID:    c.claim(s.ID()),
		Text:  displayText(s.Text()),
		Style: primaryDeclarations(ctx, eff),
		Class: variantClass(eff),
	}
	switch s.Role() {
	case formula.RoleIdentifier:
		out.Tag = TagIdentifier
		if ctx.Italic == formula.Unset {
			out.Style = out.Style.With(css.PropFontStyle, "italic")
		}
	case formula.RoleNumber:
		out.Tag = TagNumber
	default:
		out.Tag = TagOperator
		if spacing != "" {
			out.Attrs = map[string]string{"spacing": spacing}
		}
	}
	return out
}

func (c *compiler) group(g *formula.Group, ctx formula.Style, eff formula.Effective, level int) *Node {
	out := &Node{ID: c.claim(g.ID()), Style: primaryDeclarations(ctx, eff)}
	wrap := func(tag Tag, attrs map[string]string, children ...*Node) *Node {
		return &Node{Tag: tag, Style: inheritedDeclarations(ctx), Attrs: attrs, Children: children}
	}
	script := func(slot formula.Node) *Node {
		return wrap(TagScript, map[string]string{"size": "s"}, c.node(slot, ctx, level+1))
	}

	switch g.Kind() {
	case formula.KindRow:
		out.Tag = TagRow
		var prev formula.Node
		for i := 0; i < g.Len(); i++ {
			child := g.Child(i)
			if sym, ok := child.(*formula.Symbol); ok && sym.Role() == formula.RoleOperator {
				out.Children = append(out.Children, c.symbol(sym, formula.Inherit(ctx, sym),
					formula.Resolve(ctx, sym), operatorSpacing(sym, prev, level)))
			} else {
				out.Children = append(out.Children, c.node(child, ctx, level))
			}
			prev = child
		}
	case formula.KindSup, formula.KindSub, formula.KindSubSup:
		out.Tag = map[formula.GroupKind]Tag{
			formula.KindSup: TagSup, formula.KindSub: TagSub, formula.KindSubSup: TagSubSup,
		}[g.Kind()]
		out.Children = append(out.Children, wrap(TagBase, nil, c.node(g.Child(0), ctx, level)))
		for i := 1; i < g.Len(); i++ {
			out.Children = append(out.Children, script(g.Child(i)))
		}
	case formula.KindFraction:
		out.Tag = TagFraction
		out.Children = []*Node{
			wrap(TagNumerator, nil, c.node(g.Child(0), ctx, level)),
			wrap(TagFractionLine, nil),
			wrap(TagDenominator, nil, c.node(g.Child(1), ctx, level)),
		}
	case formula.KindRadical:
		out.Tag = TagSqrt
		out.Children = []*Node{
			wrap(TagSurd, nil),
			wrap(TagRadicand, nil, c.node(g.Child(0), ctx, level)),
		}
	default:
		panic(fmt.Sprintf("renderspec: unknown group kind %s", g.Kind()))
	}
	return out
}

// inheritedDeclarations renders the inherited part of a resolved context.
func inheritedDeclarations(ctx formula.Style) css.Declarations {
	var d css.Declarations
	set := func(k, v string) {
		if d == nil {
			d = make(css.Declarations)
		}
		d[k] = v
	}
	if ctx.Color != "" {
		set(css.PropColor, ctx.Color)
	}
	switch ctx.Bold {
	case formula.On:
		set(css.PropFontWeight, "bold")
	case formula.Off:
		set(css.PropFontWeight, "normal")
	}
	switch ctx.Italic {
	case formula.On:
		set(css.PropFontStyle, "italic")
	case formula.Off:
		set(css.PropFontStyle, "normal")
	}
	if ctx.LineWeight != formula.WeightDefault {
		set(css.PropStrokeWidth, strokeKeyword(ctx.LineWeight))
	}
	return d
}

// primaryDeclarations adds the node's own non-inherited annotations.
func primaryDeclarations(ctx formula.Style, eff formula.Effective) css.Declarations {
	d := inheritedDeclarations(ctx)
	switch {
	case eff.Underline && eff.Strikethrough:
		d = d.With(css.PropTextDecoration, "underline line-through")
	case eff.Underline:
		d = d.With(css.PropTextDecoration, "underline")
	case eff.Strikethrough:
		d = d.With(css.PropTextDecoration, "line-through")
	}
	if eff.Box != "" {
		d = d.With(css.PropBorderColor, eff.Box).With(css.PropBorderStyle, "solid")
	}
	return d
}

func strokeKeyword(w formula.LineWeight) string {
	switch w {
	case formula.WeightThin:
		return "thin"
	case formula.WeightThick:
		return "thick"
	}
	return "medium"
}

func variantClass(eff formula.Effective) string {
	switch {
	case eff.Bold && eff.Italic:
		return "mjx-bi"
	case eff.Bold:
		return "mjx-b"
	case eff.Italic:
		return "mjx-i"
	}
	return "mjx-n"
}

var relations = map[string]bool{
	"=": true, "<": true, ">": true, "≤": true, "≥": true, "≠": true, "≈": true, "≡": true, "→": true,
}

var binaries = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "×": true, "·": true, "÷": true, "±": true, "∓": true,
}

// operatorSpacing classifies an operator in a row. A binary operator that
// starts a row or follows another operator is unary and gets no spacing;
// nothing is spaced inside scripts.
func operatorSpacing(op *formula.Symbol, prev formula.Node, level int) string {
	if level > 0 {
		return ""
	}
	switch {
	case relations[op.Text()]:
		return "rel"
	case binaries[op.Text()]:
		if prev == nil {
			return ""
		}
		if p, ok := prev.(*formula.Symbol); ok && p.Role() == formula.RoleOperator {
			return ""
		}
		return "bin"
	}
	return ""
}

var displayGlyphs = map[string]string{"-": "−", "*": "∗", "'": "′"}

func displayText(s string) string {
	if d, ok := displayGlyphs[s]; ok {
		return d
	}
	return s
}
