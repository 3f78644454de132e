package visualtest

import "path/filepath"

// Reference is a formula with a checked-in PNG snapshot.
type Reference struct {
	Name    string
	Formula string
	Select  []string
}

// ReferenceDir holds the snapshots, relative to this package.
const ReferenceDir = "testdata/reference"

// Snapshot size in pixels.
const (
	ReferenceWidth  = 480
	ReferenceHeight = 160
)

// References is the snapshot set regenerated by cmd/update-references.
var References = []Reference{
	{Name: "pythagoras", Formula: "a^2 + b^2 = c^2"},
	{Name: "pythagoras-selected", Formula: "a^2 + b^2 = c^2", Select: []string{"mi2", "mn14"}},
	{Name: "fraction", Formula: `\frac{a+b}{\sqrt{2}}`},
	{Name: "scripts", Formula: `x_{i}^{2} - y_1`},
	{Name: "styled", Formula: `\textcolor{#FF0000}{\mathbf{a}} + \underline{b} = \cancel{c}`},
	{Name: "boxed", Formula: `\fcolorbox{blue}{{a+b}} \cdot \lineweight{thick}{\frac{1}{2}}`},
}

// Shot returns the snapshot description for r.
func (r Reference) Shot() Shot {
	return Shot{
		Formula:  r.Formula,
		Width:    ReferenceWidth,
		Height:   ReferenceHeight,
		FontSize: 40,
		Select:   r.Select,
	}
}

// Path returns the PNG path for r under root, the package directory.
func (r Reference) Path(root string) string {
	return filepath.Join(root, ReferenceDir, r.Name+".png")
}
