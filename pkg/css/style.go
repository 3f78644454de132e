package css

import (
	"sort"
	"strconv"
	"strings"
)

// Property names used by the formula render tree.
const (
	PropColor          = "color"
	PropFontWeight     = "font-weight"
	PropFontStyle      = "font-style"
	PropStrokeWidth    = "stroke-width"
	PropTextDecoration = "text-decoration"
	PropBorderColor    = "border-color"
	PropBorderStyle    = "border-style"
)

// inherited lists the properties that flow from a group to its descendants.
var inherited = map[string]bool{
	PropColor:       true,
	PropFontWeight:  true,
	PropFontStyle:   true,
	PropStrokeWidth: true,
}

// Inherited reports whether property is inherited by descendants.
func Inherited(property string) bool {
	return inherited[property]
}

// Declarations is a flattened set of CSS-like property declarations.
// A nil Declarations is valid and empty for reads.
type Declarations map[string]string

func (d Declarations) Get(property string) (string, bool) {
	val, ok := d[property]
	return val, ok
}

// Clone returns a copy; the copy of an empty set is nil so that equal
// declaration sets compare equal regardless of how they were built.
func (d Declarations) Clone() Declarations {
	if len(d) == 0 {
		return nil
	}
	out := make(Declarations, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// With returns a copy of d with property set to value.
func (d Declarations) With(property, value string) Declarations {
	out := make(Declarations, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	out[property] = value
	return out
}

// InheritedOnly returns the subset of d that descendants inherit.
func (d Declarations) InheritedOnly() Declarations {
	var out Declarations
	for k, v := range d {
		if !inherited[k] {
			continue
		}
		if out == nil {
			out = make(Declarations)
		}
		out[k] = v
	}
	return out
}

// String serializes the declarations in property order, e.g.
// "color: #FF0000; font-weight: bold".
func (d Declarations) String() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(d[k])
	}
	return sb.String()
}

// ParseDeclarations parses an inline style string such as
// "color: red; font-weight: bold". Malformed declarations are skipped.
func ParseDeclarations(styleAttr string) Declarations {
	var out Declarations
	for _, decl := range strings.Split(styleAttr, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])
		if property == "" || value == "" {
			continue
		}
		if out == nil {
			out = make(Declarations)
		}
		out[property] = value
	}
	return out
}

// Bold reports whether the declarations select a bold face.
func (d Declarations) Bold() bool {
	w, ok := d[PropFontWeight]
	if !ok {
		return false
	}
	if w == "bold" || w == "bolder" {
		return true
	}
	n, err := strconv.Atoi(w)
	return err == nil && n >= 600
}

// Italic reports whether the declarations select an italic face.
func (d Declarations) Italic() bool {
	s := d[PropFontStyle]
	return s == "italic" || s == "oblique"
}

// Decorations reports which text decorations are set.
func (d Declarations) Decorations() (underline, lineThrough bool) {
	for _, part := range strings.Fields(d[PropTextDecoration]) {
		switch part {
		case "underline":
			underline = true
		case "line-through":
			lineThrough = true
		}
	}
	return underline, lineThrough
}

// Stroke width keywords, in em.
const (
	StrokeThin   = 0.03
	StrokeMedium = 0.06
	StrokeThick  = 0.12
)

// StrokeWidthEm returns the stroke-width in em. Unknown or missing values
// fall back to medium.
func (d Declarations) StrokeWidthEm() float64 {
	switch d[PropStrokeWidth] {
	case "thin":
		return StrokeThin
	case "thick":
		return StrokeThick
	}
	return StrokeMedium
}
