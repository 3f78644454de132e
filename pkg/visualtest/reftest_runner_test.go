package visualtest

import (
	"os"
	"path/filepath"
	"testing"

	"formulab/pkg/text"
)

var faces = text.MustFaces()

func shot(src string) Shot {
	return Shot{Formula: src, Width: 320, Height: 120, FontSize: 32, Faces: faces}
}

// TestFormulaReftests renders each test formula and its reference and
// compares the images. Spelling differences that derive the same tree must
// rasterize identically.
func TestFormulaReftests(t *testing.T) {
	tests := []struct {
		name      string
		test, ref string
		match     bool
	}{
		{"canonical scripts", "a^2 + b^2 = c^2", "a^{2} + b^{2} = c^{2}", true},
		{"whitespace", "x+y", "x + y", true},
		{"named symbols", `\alpha\cdot\beta`, `\alpha \cdot \beta`, true},
		{"operator changed", "x + y", "x - y", false},
		{"color", `\textcolor{#FF0000}{a} + b`, "a + b", false},
		{"box", `\fcolorbox{blue}{{a+b}}`, "{a+b}", false},
		{"fraction vs row", `\frac{1}{2}`, "1 2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderFormula(shot(tt.test))
			if err != nil {
				t.Fatalf("render test: %v", err)
			}
			want, err := RenderFormula(shot(tt.ref))
			if err != nil {
				t.Fatalf("render reference: %v", err)
			}
			result, err := Compare(got, want, CompareOptions{})
			if err != nil {
				t.Fatal(err)
			}
			if result.Match != tt.match {
				t.Errorf("match = %v, want %v (%d pixels differ)", result.Match, tt.match, result.DifferentPixels)
			}
		})
	}
}

func TestSelectionHighlightChangesImage(t *testing.T) {
	plain, err := RenderFormula(shot("x + y"))
	if err != nil {
		t.Fatal(err)
	}
	s := shot("x + y")
	s.Select = []string{"mi1"}
	selected, err := RenderFormula(s)
	if err != nil {
		t.Fatal(err)
	}
	result, _ := Compare(selected, plain, CompareOptions{})
	if result.Match {
		t.Error("highlighted render matches the plain one")
	}
}

func TestRenderFormulaToFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "pythagoras.png")
	s := shot("a^2 + b^2 = c^2")
	if err := UpdateReferenceImage(s, path, nil); err != nil {
		t.Fatal(err)
	}
	img, err := RenderFormula(s)
	if err != nil {
		t.Fatal(err)
	}
	result, err := CompareFiles(img, path, "", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !result.Match {
		t.Errorf("re-render differs from the saved reference in %d pixels", result.DifferentPixels)
	}
}

func TestRenderFormulaErrors(t *testing.T) {
	if _, err := RenderFormula(shot(`\frac{x`)); err == nil {
		t.Error("parse error not reported")
	}
	if _, err := RenderFormula(Shot{Formula: "x"}); err == nil {
		t.Error("zero size accepted")
	}
}

// TestReferenceImages compares against the snapshots written by
// cmd/update-references. Missing snapshots are skipped.
func TestReferenceImages(t *testing.T) {
	for _, ref := range References {
		t.Run(ref.Name, func(t *testing.T) {
			path := ref.Path(".")
			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Skipf("no reference image at %s", path)
			}
			s := ref.Shot()
			s.Faces = faces
			img, err := RenderFormula(s)
			if err != nil {
				t.Fatal(err)
			}
			opts := DefaultOptions()
			opts.FuzzyRadius = 1
			result, err := CompareFiles(img, path, filepath.Join(t.TempDir(), "diff.png"), opts)
			if err != nil {
				t.Fatal(err)
			}
			if !result.Match {
				t.Errorf("%d pixels differ (%.2f%%)", result.DifferentPixels, result.DifferentPercent())
			}
		})
	}
}

func TestReferencesDerive(t *testing.T) {
	seen := map[string]bool{}
	for _, ref := range References {
		if seen[ref.Name] {
			t.Errorf("duplicate reference name %s", ref.Name)
		}
		seen[ref.Name] = true
		s := ref.Shot()
		s.Faces = faces
		if _, err := RenderFormula(s); err != nil {
			t.Errorf("%s: %v", ref.Name, err)
		}
	}
}
