package renderspec

import (
	"sort"
	"strings"
	"testing"

	"formulab/pkg/css"
	"formulab/pkg/formula"
)

func TestCompileDeterministic(t *testing.T) {
	f := formula.MustDerive(`\frac{a+1}{\sqrt{b_i^2}} = \textcolor{blue}{x}`)
	a, b := Compile(f), Compile(f)
	if !Equal(a, b) {
		t.Fatal("two compiles of one formula differ")
	}
	if a.String() != b.String() {
		t.Error("serialization is not stable")
	}
}

func TestCompileIDsMatchFormula(t *testing.T) {
	for _, src := range []string{
		"a^2 + b^2 = c^2",
		`x_1^2 - \frac{\sqrt{y}}{z}`,
		`\fcolorbox{red}{\underline{a} + \cancel{b}}`,
	} {
		f := formula.MustDerive(src)
		spec := Compile(f)
		got := spec.IDs()
		want := f.IDs()
		sort.Strings(got)
		sort.Strings(want)
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Errorf("%s: spec ids %v, formula ids %v", src, got, want)
		}
	}
}

func TestCompileStructure(t *testing.T) {
	spec := Compile(formula.MustDerive("a^2 + b^2 = c^2"))
	if spec.Tag != TagMath || spec.ID != "" || len(spec.Children) != 1 {
		t.Fatalf("root = %s", spec)
	}
	row := spec.Children[0]
	if row.Tag != TagRow || row.ID != "row0" || len(row.Children) != 5 {
		t.Fatalf("math root row = %s", row)
	}
	sup := row.Children[0]
	if sup.Tag != TagSup || sup.ID != "msup1" {
		t.Fatalf("first child = %s", sup)
	}
	base, script := sup.Children[0], sup.Children[1]
	if base.Tag != TagBase || base.ID != "" || base.Children[0].ID != "mi2" {
		t.Errorf("base = %s", base)
	}
	if script.Tag != TagScript || script.Attrs["size"] != "s" || script.Children[0].ID != "row3" {
		t.Errorf("script = %s", script)
	}
	if got := row.Children[1].Attrs["spacing"]; got != "bin" {
		t.Errorf("+ spacing = %q", got)
	}
	if got := row.Children[3].Attrs["spacing"]; got != "rel" {
		t.Errorf("= spacing = %q", got)
	}
}

func TestCompileLeafTagsAreGlyphs(t *testing.T) {
	spec := Compile(formula.MustDerive(`\frac{a}{\sqrt{2}} \leq x_n`))
	spec.Walk(func(n *Node) {
		if n.ID == "" {
			return
		}
		if IsGlyphTag(n.Tag) != (n.Text != "") {
			t.Errorf("%s: glyph tag %v with text %q", n.ID, IsGlyphTag(n.Tag), n.Text)
		}
		if IsGlyphTag(n.Tag) && len(n.Children) != 0 {
			t.Errorf("%s: glyph node has children", n.ID)
		}
	})
}

func TestCompileColorChangeTouchesOneNode(t *testing.T) {
	f := formula.MustDerive("a^2 + b^2 = c^2")
	red := "#FF0000"
	g := formula.ApplyStyle(f, formula.NewIDSet("mi2"), formula.StyleChange{Color: &red})

	before, after := Compile(f), Compile(g)
	if Equal(before, after) {
		t.Fatal("color change had no effect")
	}
	a := after.Find("mi2")
	if a.Style[css.PropColor] != red {
		t.Errorf("a style = %v", a.Style)
	}
	// Restoring the one style map must make the trees identical again.
	a.Style = before.Find("mi2").Style
	if !Equal(before, after) {
		t.Errorf("other nodes changed:\n%s\n%s", before, after)
	}
}

func TestCompileStyles(t *testing.T) {
	spec := Compile(formula.MustDerive(`\mathbf{x + \mathrm{y}} \fcolorbox{green}{\underline{2}}`))
	x, y := spec.Find("mi2"), spec.Find("mi4")
	if x.Class != "mjx-bi" || x.Style[css.PropFontWeight] != "bold" || x.Style[css.PropFontStyle] != "italic" {
		t.Errorf("x = %s", x)
	}
	if y.Class != "mjx-b" || y.Style[css.PropFontStyle] != "normal" {
		t.Errorf("y = %s", y)
	}
	var two, boxed *Node
	spec.Walk(func(n *Node) {
		if n.Tag == TagNumber {
			two = n
		}
		if n.Style[css.PropBorderStyle] == "solid" {
			boxed = n
		}
	})
	if two == nil || two.Style[css.PropTextDecoration] != "underline" || two.Class != "mjx-n" {
		t.Errorf("2 = %v", two)
	}
	if boxed == nil || boxed.Style[css.PropBorderColor] != "green" {
		t.Errorf("boxed = %v", boxed)
	}
}

func TestOperatorSpacingSuppressed(t *testing.T) {
	spec := Compile(formula.MustDerive("-x = -y + z^{a+b}"))
	var spacings []string
	spec.Walk(func(n *Node) {
		if n.Tag == TagOperator {
			spacings = append(spacings, n.Text+":"+n.Attrs["spacing"])
		}
	})
	want := "−: =:rel −: +:bin +:"
	if got := strings.Join(spacings, " "); got != want {
		t.Errorf("spacing = %q, want %q", got, want)
	}
}

func TestCompilePanicsOnDuplicateID(t *testing.T) {
	c := &compiler{claimed: map[string]bool{}}
	c.claim("mi1")
	defer func() {
		if recover() == nil {
			t.Error("second claim did not panic")
		}
	}()
	c.claim("mi1")
}
