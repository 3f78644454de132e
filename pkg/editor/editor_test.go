package editor

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"formulab/pkg/css"
	"formulab/pkg/formula"
	"formulab/pkg/geom"
	"formulab/pkg/selection"
	"formulab/pkg/text"
)

var faces = text.MustFaces()

const pythagoras = "a^2 + b^2 = c^2"

func newEditor(t *testing.T, src string) *Editor {
	t.Helper()
	e, err := New(Options{Width: 960, Height: 540, FontSize: 48, Faces: faces}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if src != "" {
		if err := e.Load(src); err != nil {
			t.Fatal(err)
		}
		e.Tick()
	}
	return e
}

func center(t *testing.T, e *Editor, id string) geom.Point {
	t.Helper()
	tg, ok := e.Targets().Target(id)
	if !ok {
		t.Fatalf("no target %s", id)
	}
	screen := e.PanZoom().ApplyRect(tg.Box)
	return geom.Point{X: screen.X + screen.Width/2, Y: screen.Y + screen.Height/2}
}

func TestMeasurementWaitsForTick(t *testing.T) {
	e := newEditor(t, "")
	var states []selection.State
	e.OnUpdate(func() {
		if tg, ok := e.Targets().Target("mi2"); ok {
			states = append(states, tg.State)
		}
	})
	if err := e.Load(pythagoras); err != nil {
		t.Fatal(err)
	}
	if e.Targets().Len() != e.Formula().Len() {
		t.Errorf("registered %d targets for %d nodes", e.Targets().Len(), e.Formula().Len())
	}
	if e.Pending() != 1 {
		t.Fatalf("pending frames = %d", e.Pending())
	}
	if n := e.Tick(); n != 1 {
		t.Errorf("tick ran %d frames", n)
	}
	want := []selection.State{selection.Registered, selection.Measured}
	if !reflect.DeepEqual(states, want) {
		t.Errorf("states seen = %v, want %v", states, want)
	}
	if e.Tick() != 0 {
		t.Error("second tick ran frames")
	}
}

func TestLoadParseErrorKeepsDocument(t *testing.T) {
	e := newEditor(t, pythagoras)
	before, gen := e.Formula(), e.Generation()

	err := e.Load(`a^`)
	var pe *formula.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want a ParseError", err)
	}
	if e.Formula() != before || e.Generation() != gen {
		t.Error("failed load replaced the document")
	}
	if e.Pending() != 0 {
		t.Error("failed load queued a frame")
	}
}

func TestClickSelectsLeaf(t *testing.T) {
	e := newEditor(t, pythagoras)
	if got := e.Click(center(t, e, "mi2"), false); !reflect.DeepEqual(got, []string{"mi2"}) {
		t.Fatalf("click = %v", got)
	}
	if got := e.Click(center(t, e, "mi7"), true); !reflect.DeepEqual(got, []string{"mi2", "mi7"}) {
		t.Errorf("additive click = %v", got)
	}
	if got := e.Click(geom.Point{X: 1, Y: 1}, false); len(got) != 0 {
		t.Errorf("click on empty space = %v", got)
	}
}

func TestClickUnderPanZoom(t *testing.T) {
	e := newEditor(t, pythagoras)
	if err := e.SetPanZoom(-200, 40, 1.5); err != nil {
		t.Fatal(err)
	}
	if got := e.Click(center(t, e, "mi12"), false); !reflect.DeepEqual(got, []string{"mi12"}) {
		t.Errorf("click = %v", got)
	}
	if err := e.SetPanZoom(0, 0, 0); err == nil {
		t.Error("zero zoom accepted")
	}
}

func TestDragSelectsLeavesOnly(t *testing.T) {
	e := newEditor(t, pythagoras)
	got := e.Drag(geom.Rect{X: 0, Y: 0, Width: 960, Height: 540}, false)
	want := []string{"mi12", "mi2", "mi7", "mn14", "mn4", "mn9", "mo10", "mo5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("drag = %v, want %v", got, want)
	}
}

func TestApplyEmptySelectionIsNoOp(t *testing.T) {
	e := newEditor(t, pythagoras)
	gen := e.Generation()
	if e.Apply(SetColor("red")) {
		t.Error("apply with empty selection reported a change")
	}
	if e.Generation() != gen {
		t.Error("document replaced")
	}
}

func TestSetColorRecompilesAndKeepsSelection(t *testing.T) {
	e := newEditor(t, pythagoras)
	e.Select("mi2")
	if !e.Apply(SetColor("#FF0000")) {
		t.Fatal("setColor did nothing")
	}
	if got := e.Spec().Find("mi2").Style[css.PropColor]; got != "#FF0000" {
		t.Errorf("spec color = %q", got)
	}
	if !reflect.DeepEqual(e.Selection(), []string{"mi2"}) {
		t.Errorf("selection = %v", e.Selection())
	}

	specIDs := e.Spec().IDs()
	sort.Strings(specIDs)
	if !reflect.DeepEqual(e.Targets().IDs(), specIDs) {
		t.Error("registry out of step with mounted spec")
	}
	if e.Apply(SetColor("#FF0000")) {
		t.Error("repeating the same color should be a no-op")
	}
	if e.Apply(SetColor("not-a-color")) {
		t.Error("invalid color applied")
	}
}

func TestToggleRule(t *testing.T) {
	e := newEditor(t, pythagoras)
	e.Select("mi2", "mi7")

	bold := func(id string) bool {
		eff, _ := e.Formula().Effective(id)
		return eff.Bold
	}
	e.Apply(ToggleBold())
	if !bold("mi2") || !bold("mi7") {
		t.Fatal("first toggle should turn bold on")
	}
	e.Apply(ToggleBold())
	if bold("mi2") || bold("mi7") {
		t.Fatal("second toggle should turn bold off")
	}

	// Mixed selection turns on.
	e.Select("mi2")
	e.Apply(ToggleBold())
	e.Select("mi2", "mi7")
	e.Apply(ToggleBold())
	if !bold("mi2") || !bold("mi7") {
		t.Error("mixed selection should turn bold on")
	}

	// Identifiers start italic, so the first toggle sets them upright.
	e.Apply(ToggleItalic())
	if eff, _ := e.Formula().Effective("mi2"); eff.Italic {
		t.Error("italic toggle on default-italic identifiers should turn it off")
	}

	e.Apply(ToggleUnderline())
	e.Apply(ToggleStrikethrough())
	if eff, _ := e.Formula().Effective("mi7"); !eff.Underline || !eff.Strikethrough {
		t.Errorf("decorations = %+v", eff)
	}
}

func TestBoxAndLineWeight(t *testing.T) {
	e := newEditor(t, `\frac{a}{b}`)
	e.Select("mfrac1")
	if !e.Apply(SetEnclosingBox("blue")) || !e.Apply(SetLineWeight(formula.WeightThick)) {
		t.Fatal("commands did nothing")
	}
	n := e.Spec().Find("mfrac1")
	if n.Style[css.PropBorderColor] != "blue" || n.Style[css.PropStrokeWidth] != "thick" {
		t.Errorf("fraction style = %v", n.Style)
	}
	if e.Apply(SetLineWeight("heavy")) {
		t.Error("unknown line weight applied")
	}
}

func TestSelectionPrunedOnReplace(t *testing.T) {
	e := newEditor(t, pythagoras)
	e.Select("mi12", "row0", "nope")
	if !reflect.DeepEqual(e.Selection(), []string{"mi12", "row0"}) {
		t.Fatalf("selection = %v", e.Selection())
	}
	if err := e.Load("x"); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(e.Selection(), []string{"row0"}) {
		t.Errorf("selection after replace = %v", e.Selection())
	}
}

func TestResizeMeasuresImmediately(t *testing.T) {
	e := newEditor(t, pythagoras)
	before, _ := e.Targets().Target("mi2")
	e.Resize(1280, 720)
	after, _ := e.Targets().Target("mi2")
	if after.State != selection.Measured || after.Box == before.Box {
		t.Errorf("after resize: %+v (before %+v)", after, before)
	}
	if e.Pending() != 0 {
		t.Error("resize should not queue frames")
	}
}

func TestFrameCarriesSelection(t *testing.T) {
	e := newEditor(t, pythagoras)
	e.Select("mi2", "mo5")
	f := e.Frame()
	if f.Root == nil || len(f.Selected) != 2 || f.Transform.Zoom != 1 {
		t.Errorf("frame = %+v", f)
	}
}
