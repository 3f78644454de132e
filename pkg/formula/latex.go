package formula

import "strings"

// LaTeX returns the canonical source text of f. Deriving it again yields a
// tree Equivalent to f.
func (f *Formula) LaTeX() string {
	var sb strings.Builder
	writeSlot(&sb, f.root)
	return sb.String()
}

// String is the canonical source text.
func (f *Formula) String() string { return f.LaTeX() }

// writeSlot writes a row in a position that already provides grouping: the
// formula root or the inside of a {} argument.
func writeSlot(sb *strings.Builder, row *Group) {
	if row.style.IsZero() {
		writeRowContents(sb, row)
		return
	}
	writeNode(sb, row)
}

func writeRowContents(sb *strings.Builder, row *Group) {
	for i, c := range row.children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeNode(sb, c)
	}
}

// styleWrappers lists the styling commands from innermost to outermost.
var styleWrappers = []struct {
	command string
	arg     func(Style) (string, bool)
}{
	{"textcolor", func(s Style) (string, bool) { return s.Color, s.Color != "" }},
	{"mathbf", func(s Style) (string, bool) { return "", s.Bold == On }},
	{"mathnormal", func(s Style) (string, bool) { return "", s.Bold == Off }},
	{"mathit", func(s Style) (string, bool) { return "", s.Italic == On }},
	{"mathrm", func(s Style) (string, bool) { return "", s.Italic == Off }},
	{"underline", func(s Style) (string, bool) { return "", s.Underline }},
	{"cancel", func(s Style) (string, bool) { return "", s.Strikethrough }},
	{"fcolorbox", func(s Style) (string, bool) { return s.Box, s.Box != "" }},
	{"lineweight", func(s Style) (string, bool) { return string(s.LineWeight), s.LineWeight != WeightDefault }},
}

func writeNode(sb *strings.Builder, n Node) {
	core := nodeCore(n)
	style := n.Style()
	for _, w := range styleWrappers {
		arg, ok := w.arg(style)
		if !ok {
			continue
		}
		var wrapped strings.Builder
		wrapped.WriteByte('\\')
		wrapped.WriteString(w.command)
		if arg != "" {
			wrapped.WriteByte('{')
			wrapped.WriteString(arg)
			wrapped.WriteByte('}')
		}
		wrapped.WriteByte('{')
		wrapped.WriteString(core)
		wrapped.WriteByte('}')
		core = wrapped.String()
	}
	sb.WriteString(core)
}

func nodeCore(n Node) string {
	var sb strings.Builder
	switch x := n.(type) {
	case *Symbol:
		if name, ok := commandFor[x.text]; ok {
			sb.WriteByte('\\')
			sb.WriteString(name)
		} else {
			sb.WriteString(x.text)
		}
	case *Group:
		switch x.kind {
		case KindRow:
			sb.WriteByte('{')
			writeRowContents(&sb, x)
			sb.WriteByte('}')
		case KindSup, KindSub, KindSubSup:
			writeBase(&sb, x.children[0])
			if x.kind != KindSup {
				writeArg(&sb, "_", x.children[1])
			}
			if x.kind == KindSup {
				writeArg(&sb, "^", x.children[1])
			} else if x.kind == KindSubSup {
				writeArg(&sb, "^", x.children[2])
			}
		case KindFraction:
			sb.WriteString(`\frac`)
			writeArg(&sb, "", x.children[0])
			writeArg(&sb, "", x.children[1])
		case KindRadical:
			sb.WriteString(`\sqrt`)
			writeArg(&sb, "", x.children[0])
		}
	}
	return sb.String()
}

// writeBase braces an unstyled script base that is itself a script, since
// a^{2}^{3} would not parse.
func writeBase(sb *strings.Builder, base Node) {
	if g, ok := base.(*Group); ok && g.style.IsZero() {
		switch g.kind {
		case KindSup, KindSub, KindSubSup:
			sb.WriteByte('{')
			writeNode(sb, g)
			sb.WriteByte('}')
			return
		}
	}
	writeNode(sb, base)
}

func writeArg(sb *strings.Builder, prefix string, slot Node) {
	sb.WriteString(prefix)
	sb.WriteByte('{')
	writeSlot(sb, slot.(*Group))
	sb.WriteByte('}')
}
