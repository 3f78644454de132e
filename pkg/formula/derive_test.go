package formula

import (
	"errors"
	"testing"
)

func mustDerive(t *testing.T, src string) *Formula {
	t.Helper()
	f, err := Derive(src)
	if err != nil {
		t.Fatalf("Derive(%q): %v", src, err)
	}
	return f
}

func symbolAt(t *testing.T, n Node) *Symbol {
	t.Helper()
	s, ok := n.(*Symbol)
	if !ok {
		t.Fatalf("expected symbol, got %T", n)
	}
	return s
}

func TestDerivePythagoras(t *testing.T) {
	f := mustDerive(t, "a^2 + b^2 = c^2")
	root := f.Root()
	if root.Kind() != KindRow || root.Len() != 5 {
		t.Fatalf("root = %s with %d children, want row with 5", root.Kind(), root.Len())
	}

	ops := []struct {
		index int
		text  string
	}{{1, "+"}, {3, "="}}
	for _, op := range ops {
		s := symbolAt(t, root.Child(op.index))
		if s.Role() != RoleOperator || s.Text() != op.text {
			t.Errorf("child %d = %s %q, want operator %q", op.index, s.Role(), s.Text(), op.text)
		}
	}

	for i, base := range map[int]string{0: "a", 2: "b", 4: "c"} {
		g, ok := root.Child(i).(*Group)
		if !ok || g.Kind() != KindSup {
			t.Fatalf("child %d should be a superscript group", i)
		}
		b := symbolAt(t, g.Child(0))
		if b.Role() != RoleIdentifier || b.Text() != base {
			t.Errorf("base = %s %q, want identifier %q", b.Role(), b.Text(), base)
		}
		exp, ok := g.Child(1).(*Group)
		if !ok || exp.Kind() != KindRow || exp.Len() != 1 {
			t.Fatalf("exponent of %s should be a one-element row", base)
		}
		if two := symbolAt(t, exp.Child(0)); two.Role() != RoleNumber || two.Text() != "2" {
			t.Errorf("exponent = %q", two.Text())
		}
	}
}

func TestDeriveIDsAreDeterministic(t *testing.T) {
	a := mustDerive(t, "a^2 + b^2 = c^2")
	b := mustDerive(t, "a^2 + b^2 = c^2")
	want := []string{
		"row0", "msup1", "mi2", "row3", "mn4", "mo5",
		"msup6", "mi7", "row8", "mn9", "mo10",
		"msup11", "mi12", "row13", "mn14",
	}
	for _, f := range []*Formula{a, b} {
		got := f.IDs()
		if len(got) != len(want) {
			t.Fatalf("IDs = %v", got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("id %d = %s, want %s", i, got[i], want[i])
			}
		}
	}
}

func TestDeriveStructures(t *testing.T) {
	tests := []struct {
		src  string
		kind GroupKind
		n    int
	}{
		{`x_1^2`, KindSubSup, 3},
		{`x^2_1`, KindSubSup, 3},
		{`x_i`, KindSub, 2},
		{`\frac{a+b}{2}`, KindFraction, 2},
		{`\frac ab`, KindFraction, 2},
		{`\sqrt{x}`, KindRadical, 1},
		{`{a+b}^2`, KindSup, 2},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f := mustDerive(t, tt.src)
			if f.Root().Len() != 1 {
				t.Fatalf("root has %d children", f.Root().Len())
			}
			g, ok := f.Root().Child(0).(*Group)
			if !ok || g.Kind() != tt.kind || g.Len() != tt.n {
				t.Fatalf("got %T %v", f.Root().Child(0), f.Root().Child(0))
			}
		})
	}

	f := mustDerive(t, `x_1^2`)
	g := f.Root().Child(0).(*Group)
	sub := symbolAt(t, g.Child(1).(*Group).Child(0))
	sup := symbolAt(t, g.Child(2).(*Group).Child(0))
	if sub.Text() != "1" || sup.Text() != "2" {
		t.Errorf("subsup slots = %q, %q", sub.Text(), sup.Text())
	}
}

func TestDeriveNamedSymbols(t *testing.T) {
	f := mustDerive(t, `\alpha \leq 3.14 \cdot \pi`)
	want := []struct {
		text string
		role Role
	}{
		{"α", RoleIdentifier}, {"≤", RoleOperator}, {"3.14", RoleNumber}, {"·", RoleOperator}, {"π", RoleIdentifier},
	}
	if f.Root().Len() != len(want) {
		t.Fatalf("root has %d children", f.Root().Len())
	}
	for i, w := range want {
		s := symbolAt(t, f.Root().Child(i))
		if s.Text() != w.text || s.Role() != w.role {
			t.Errorf("child %d = %s %q, want %s %q", i, s.Role(), s.Text(), w.role, w.text)
		}
	}
}

func TestDeriveStyleCommands(t *testing.T) {
	f := mustDerive(t, `\textcolor{#FF0000}{a} + \mathbf{\underline{b}} + \fcolorbox{blue}{{c+d}}`)
	a := f.Root().Child(0)
	if a.Style().Color != "#FF0000" {
		t.Errorf("a color = %q", a.Style().Color)
	}
	b := f.Root().Child(2)
	if b.Style().Bold != On || !b.Style().Underline {
		t.Errorf("b style = %+v", b.Style())
	}
	cd, ok := f.Root().Child(4).(*Group)
	if !ok || cd.Kind() != KindRow || cd.Len() != 3 || cd.Style().Box != "blue" {
		t.Errorf("boxed row = %+v", f.Root().Child(4))
	}
}

func TestDeriveInnerStyleWins(t *testing.T) {
	f := mustDerive(t, `\textcolor{red}{\textcolor{blue}{x}}`)
	if c := f.Root().Child(0).Style().Color; c != "blue" {
		t.Errorf("color = %q, want the inner blue", c)
	}
}

func TestDeriveErrors(t *testing.T) {
	tests := []struct {
		src    string
		offset int
	}{
		{"a^", 2},
		{"{a+b", 4},
		{"a}", 1},
		{"^2", 0},
		{"x^2^3", 3},
		{`\foo`, 0},
		{`\textcolor{nope}{a}`, 10},
		{`\lineweight{heavy}{a}`, 11},
		{"a # b", 2},
		{`a \`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Derive(tt.src)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Derive(%q) error = %v, want *ParseError", tt.src, err)
			}
			if pe.Offset != tt.offset {
				t.Errorf("offset = %d, want %d (%v)", pe.Offset, tt.offset, pe)
			}
		})
	}
}

func TestDeriveEmpty(t *testing.T) {
	f := mustDerive(t, "   ")
	if f.Root().Len() != 0 || f.Len() != 1 {
		t.Errorf("empty formula has %d nodes", f.Len())
	}
}
