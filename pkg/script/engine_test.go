package script

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"formulab/pkg/editor"
	"formulab/pkg/text"
)

var faces = text.MustFaces()

func newEngine(t *testing.T) (*Engine, *editor.Editor, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ed, err := editor.New(editor.Options{Faces: faces}, logger)
	if err != nil {
		t.Fatal(err)
	}
	return New(ed, logger), ed, &buf
}

func TestSetAndGetFormula(t *testing.T) {
	engine, ed, _ := newEngine(t)
	err := engine.Run(`
		setFormula("a^2 + b^2 = c^2");
		if (getFormula() !== "a^{2} + b^{2} = c^{2}") throw new Error("got " + getFormula());
	`)
	if err != nil {
		t.Fatal(err)
	}
	if ed.Formula() == nil || ed.Formula().Len() != 15 {
		t.Errorf("editor formula = %v", ed.Formula())
	}
}

func TestSetFormulaParseErrorThrows(t *testing.T) {
	engine, ed, _ := newEngine(t)
	if err := engine.Run(`setFormula("x + y")`); err != nil {
		t.Fatal(err)
	}
	err := engine.Run(`
		var caught = false;
		try { setFormula("\\frac{x"); } catch (e) { caught = true; }
		if (!caught) throw new Error("no exception");
		if (getFormula() !== "x + y") throw new Error("document replaced: " + getFormula());
	`)
	if err != nil {
		t.Fatal(err)
	}
	if got := ed.Formula().LaTeX(); got != "x + y" {
		t.Errorf("formula = %q", got)
	}
}

func TestTestMutateFormula(t *testing.T) {
	engine, ed, _ := newEngine(t)
	err := engine.Run(`
		setFormula("a = b");
		var n = testMutateFormula();
		if (n !== 1) throw new Error("n = " + n);
		testMutateFormula();
	`)
	if err != nil {
		t.Fatal(err)
	}
	if got := ed.Formula().LaTeX(); got != "a = t + t + b" {
		t.Errorf("formula = %q", got)
	}
	ids := ed.Targets().IDs()
	for _, want := range []string{"t1", "+1", "t2", "+2"} {
		found := false
		for _, id := range ids {
			found = found || id == want
		}
		if !found {
			t.Errorf("target %s not registered; have %v", want, ids)
		}
	}
}

func TestClickAndStyleCommands(t *testing.T) {
	engine, ed, _ := newEngine(t)
	err := engine.Run(`
		setFormula("a^2 + b^2 = c^2");
		tick();
		var a = targets().filter(function (t) { return t.id === "mi2"; })[0];
		if (a.state !== "measured") throw new Error("state " + a.state);
		var hit = click(a.x + a.width / 2, a.y + a.height / 2);
		if (hit.length !== 1 || hit[0] !== "mi2") throw new Error("hit " + hit);
		if (!setColor("#FF0000")) throw new Error("setColor did nothing");
		if (!toggleBold()) throw new Error("toggleBold did nothing");
		if (setLineWeight("heavy")) throw new Error("bad weight applied");
		tick();
		if (selection()[0] !== "mi2") throw new Error("selection lost");
	`)
	if err != nil {
		t.Fatal(err)
	}
	if got := ed.Formula().LaTeX(); !strings.Contains(got, `\textcolor{#FF0000}`) || !strings.Contains(got, `\mathbf`) {
		t.Errorf("formula = %q", got)
	}
}

func TestDragSelectAndPanZoom(t *testing.T) {
	engine, _, _ := newEngine(t)
	v, err := engine.Eval(`
		setFormula("x + y");
		tick();
		setPanZoom(10, 20, 2);
		var pz = panZoom();
		if (pz.zoom !== 2 || pz.x !== 10) throw new Error("panZoom " + JSON.stringify(pz));
		select(["mi1", "nope"]);
		if (selection().length !== 1) throw new Error("select kept unknown id");
		drag(-5000, -5000, 5000, 5000).length;
	`)
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(3) {
		t.Errorf("drag hit %v leaves, want 3", v)
	}
	if err := engine.Run(`setPanZoom(0, 0, -1)`); err == nil {
		t.Error("negative zoom accepted")
	}
}

func TestConsoleLogsThroughLogger(t *testing.T) {
	engine, _, buf := newEngine(t)
	if err := engine.Run(`console.log("hello", 42); console.warn("careful")`); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "hello 42") || !strings.Contains(out, "level=WARN") {
		t.Errorf("log output = %q", out)
	}
}
