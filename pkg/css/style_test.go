package css

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#FF0000", Color{255, 0, 0, 1}, true},
		{"#f00", Color{255, 0, 0, 1}, true},
		{"  Blue ", Color{0, 0, 255, 1}, true},
		{"#00ff0080", Color{0, 255, 0, 128.0 / 255}, true},
		{"#12", Color{}, false},
		{"notacolor", Color{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if hex := (Color{R: 255, G: 16, B: 1, A: 1}).Hex(); hex != "#FF1001" {
		t.Errorf("Hex = %s", hex)
	}
}

func TestDeclarationsString(t *testing.T) {
	d := Declarations{"font-weight": "bold", "color": "#FF0000"}
	if got := d.String(); got != "color: #FF0000; font-weight: bold" {
		t.Errorf("String = %q", got)
	}
	parsed := ParseDeclarations(d.String())
	if parsed.String() != d.String() {
		t.Errorf("ParseDeclarations round trip = %q", parsed.String())
	}
	if ParseDeclarations(" ; bogus ; :x") != nil {
		t.Error("malformed input should produce nil declarations")
	}
}

func TestInheritedOnly(t *testing.T) {
	d := Declarations{
		PropColor:          "red",
		PropTextDecoration: "underline",
		PropBorderColor:    "blue",
		PropStrokeWidth:    "thick",
	}
	got := d.InheritedOnly()
	if len(got) != 2 || got[PropColor] != "red" || got[PropStrokeWidth] != "thick" {
		t.Errorf("InheritedOnly = %v", got)
	}
	if (Declarations{PropBorderColor: "blue"}).InheritedOnly() != nil {
		t.Error("no inherited properties should yield nil")
	}
}

func TestFaceHelpers(t *testing.T) {
	d := Declarations{PropFontWeight: "700", PropFontStyle: "italic", PropTextDecoration: "underline line-through"}
	if !d.Bold() || !d.Italic() {
		t.Error("expected bold italic")
	}
	u, s := d.Decorations()
	if !u || !s {
		t.Error("expected both decorations")
	}
	if (Declarations{}).StrokeWidthEm() != StrokeMedium {
		t.Error("default stroke should be medium")
	}
	if (Declarations{PropStrokeWidth: "thick"}).StrokeWidthEm() != StrokeThick {
		t.Error("thick stroke")
	}
}
