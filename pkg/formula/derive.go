package formula

import (
	"fmt"

	"formulab/pkg/css"
)

// ParseError reports malformed formula source.
type ParseError struct {
	Offset int // byte offset into the source
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}

// Derive parses source into a Formula. Ids are assigned in preorder as the
// node kind followed by its index (row0, msup1, mi2, ...), so the same text
// always yields the same ids.
func Derive(source string) (*Formula, error) {
	p := &parser{lex: newLexer(source)}
	children, err := p.parseRow(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenEOF, "end of input"); err != nil {
		return nil, err
	}
	root := unwrapSlot(NewGroup("", KindRow, children...))
	counter := 0
	root = assignIDs(root, &counter).(*Group)
	return New(root)
}

// MustDerive is Derive for sources known to be valid; it panics on error.
func MustDerive(source string) *Formula {
	f, err := Derive(source)
	if err != nil {
		panic(err)
	}
	return f
}

type parser struct {
	lex    *lexer
	peeked *token
}

func (p *parser) peek() (token, error) {
	if p.peeked == nil {
		tok, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		p.peeked = &tok
	}
	return *p.peeked, nil
}

func (p *parser) next() (token, error) {
	tok, err := p.peek()
	p.peeked = nil
	return tok, err
}

func (p *parser) expect(typ tokenType, what string) (token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.typ != typ {
		return tok, &ParseError{Offset: tok.pos, Msg: "expected " + what + ", found " + describe(tok)}
	}
	return tok, nil
}

// parseRow reads atoms until a closing brace or end of input. Inside braces
// the caller consumes the closing brace.
func (p *parser) parseRow(nested bool) ([]Node, error) {
	var children []Node
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.typ {
		case tokenEOF:
			if nested {
				return nil, &ParseError{Offset: tok.pos, Msg: "missing }"}
			}
			return children, nil
		case tokenRBrace:
			if !nested {
				return nil, &ParseError{Offset: tok.pos, Msg: "unexpected }"}
			}
			return children, nil
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if atom == nil {
			continue
		}
		atom, err = p.parseScripts(atom)
		if err != nil {
			return nil, err
		}
		children = append(children, atom)
	}
}

func (p *parser) parseScripts(base Node) (Node, error) {
	var sup, sub Node
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.typ != tokenCaret && tok.typ != tokenUnderscore {
			break
		}
		p.next()
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		if tok.typ == tokenCaret {
			if sup != nil {
				return nil, &ParseError{Offset: tok.pos, Msg: "double superscript"}
			}
			sup = unwrapSlot(arg)
		} else {
			if sub != nil {
				return nil, &ParseError{Offset: tok.pos, Msg: "double subscript"}
			}
			sub = unwrapSlot(arg)
		}
	}
	switch {
	case sup != nil && sub != nil:
		return NewGroup("", KindSubSup, base, sub, sup), nil
	case sup != nil:
		return NewGroup("", KindSup, base, sup), nil
	case sub != nil:
		return NewGroup("", KindSub, base, sub), nil
	}
	return base, nil
}

// parseArg reads a braced row or a single atom and returns it as a row.
func (p *parser) parseArg() (*Group, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.typ {
	case tokenLBrace:
		p.next()
		children, err := p.parseRow(true)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRBrace, "}"); err != nil {
			return nil, err
		}
		return NewGroup("", KindRow, children...), nil
	case tokenLetter, tokenNumber, tokenOperator, tokenCommand:
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if atom == nil {
			return nil, &ParseError{Offset: tok.pos, Msg: "missing argument"}
		}
		return NewGroup("", KindRow, atom), nil
	}
	return nil, &ParseError{Offset: tok.pos, Msg: "missing argument, found " + describe(tok)}
}

func (p *parser) parseAtom() (Node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.typ {
	case tokenLetter:
		return NewSymbol("", tok.text, RoleIdentifier), nil
	case tokenNumber:
		return NewSymbol("", tok.text, RoleNumber), nil
	case tokenOperator:
		return NewSymbol("", tok.text, RoleOperator), nil
	case tokenLBrace:
		children, err := p.parseRow(true)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRBrace, "}"); err != nil {
			return nil, err
		}
		return NewGroup("", KindRow, children...), nil
	case tokenCommand:
		return p.parseCommand(tok)
	case tokenCaret, tokenUnderscore:
		return nil, &ParseError{Offset: tok.pos, Msg: "missing base for " + tok.text}
	}
	return nil, &ParseError{Offset: tok.pos, Msg: "unexpected " + describe(tok)}
}

func (p *parser) parseCommand(tok token) (Node, error) {
	if s, ok := namedSymbols[tok.text]; ok {
		return NewSymbol("", s.text, s.role), nil
	}
	if spacingCommands[tok.text] {
		return nil, nil
	}
	switch tok.text {
	case "frac":
		num, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		den, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		return NewGroup("", KindFraction, unwrapSlot(num), unwrapSlot(den)), nil
	case "sqrt":
		body, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		return NewGroup("", KindRadical, unwrapSlot(body)), nil
	}
	change, err := p.styleCommand(tok)
	if err != nil {
		return nil, err
	}
	arg, err := p.parseArg()
	if err != nil {
		return nil, err
	}
	var target Node = arg
	if len(arg.children) == 1 {
		target = arg.children[0]
	}
	// Styles written closer to the node win over enclosing commands.
	return target.withStyle(overlay(Style{}.Merge(change), target.Style())), nil
}

// styleCommand maps a styling control word to the change it applies,
// reading its raw argument when it takes one.
func (p *parser) styleCommand(tok token) (StyleChange, error) {
	on := true
	switch tok.text {
	case "mathbf":
		return StyleChange{Bold: On}, nil
	case "mathnormal":
		return StyleChange{Bold: Off}, nil
	case "mathit":
		return StyleChange{Italic: On}, nil
	case "mathrm":
		return StyleChange{Italic: Off}, nil
	case "underline":
		return StyleChange{Underline: &on}, nil
	case "cancel":
		return StyleChange{Strikethrough: &on}, nil
	case "textcolor", "fcolorbox":
		raw, pos, err := p.lex.readRaw()
		if err != nil {
			return StyleChange{}, err
		}
		if _, ok := css.ParseColor(raw); !ok {
			return StyleChange{}, &ParseError{Offset: pos, Msg: fmt.Sprintf("invalid color %q", raw)}
		}
		if tok.text == "textcolor" {
			return StyleChange{Color: &raw}, nil
		}
		return StyleChange{Box: &raw}, nil
	case "lineweight":
		raw, pos, err := p.lex.readRaw()
		if err != nil {
			return StyleChange{}, err
		}
		w, err := ParseLineWeight(raw)
		if err != nil {
			return StyleChange{}, &ParseError{Offset: pos, Msg: err.Error()}
		}
		return StyleChange{LineWeight: &w}, nil
	}
	return StyleChange{}, &ParseError{Offset: tok.pos, Msg: "unknown command \\" + tok.text}
}

// overlay returns base with every field that is set in top taken from top.
func overlay(base, top Style) Style {
	if top.Color != "" {
		base.Color = top.Color
	}
	if top.Bold != Unset {
		base.Bold = top.Bold
	}
	if top.Italic != Unset {
		base.Italic = top.Italic
	}
	if top.Underline {
		base.Underline = true
	}
	if top.Strikethrough {
		base.Strikethrough = true
	}
	if top.Box != "" {
		base.Box = top.Box
	}
	if top.LineWeight != WeightDefault {
		base.LineWeight = top.LineWeight
	}
	return base
}

// unwrapSlot collapses a slot row holding exactly one row into that row, so
// that a styled row written as \mathbf{{...}} survives as the slot itself.
func unwrapSlot(row *Group) *Group {
	if len(row.children) == 1 {
		if inner, ok := row.children[0].(*Group); ok && inner.kind == KindRow {
			return inner
		}
	}
	return row
}

// assignIDs numbers a freshly parsed tree in preorder. The tree is not yet
// shared, so nodes are updated in place.
func assignIDs(n Node, counter *int) Node {
	switch x := n.(type) {
	case *Symbol:
		x.id = fmt.Sprintf("%s%d", symbolPrefix(x.role), *counter)
		*counter++
	case *Group:
		x.id = fmt.Sprintf("%s%d", x.kind, *counter)
		*counter++
		for i, c := range x.children {
			x.children[i] = assignIDs(c, counter)
		}
	}
	return n
}

func symbolPrefix(r Role) string {
	switch r {
	case RoleNumber:
		return "mn"
	case RoleOperator:
		return "mo"
	}
	return "mi"
}

func describe(tok token) string {
	switch tok.typ {
	case tokenEOF:
		return "end of input"
	case tokenCommand:
		return "\\" + tok.text
	}
	return "'" + tok.text + "'"
}
