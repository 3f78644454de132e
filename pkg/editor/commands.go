package editor

import (
	"fmt"

	"formulab/pkg/css"
	"formulab/pkg/formula"
)

// Command is a style edit applied to the selection.
type Command interface {
	Name() string
	change(f *formula.Formula, ids formula.IDSet) (formula.StyleChange, error)
}

type commandFunc struct {
	name string
	fn   func(f *formula.Formula, ids formula.IDSet) (formula.StyleChange, error)
}

func (c commandFunc) Name() string { return c.name }

func (c commandFunc) change(f *formula.Formula, ids formula.IDSet) (formula.StyleChange, error) {
	return c.fn(f, ids)
}

// SetColor sets the text color. c is a color name or #hex form.
func SetColor(c string) Command {
	return commandFunc{"setColor", func(*formula.Formula, formula.IDSet) (formula.StyleChange, error) {
		if _, ok := css.ParseColor(c); !ok {
			return formula.StyleChange{}, fmt.Errorf("invalid color %q", c)
		}
		return formula.StyleChange{Color: &c}, nil
	}}
}

// SetEnclosingBox draws a box of color c around each selected node. An
// empty c removes the box.
func SetEnclosingBox(c string) Command {
	return commandFunc{"setEnclosingBox", func(*formula.Formula, formula.IDSet) (formula.StyleChange, error) {
		if c != "" {
			if _, ok := css.ParseColor(c); !ok {
				return formula.StyleChange{}, fmt.Errorf("invalid color %q", c)
			}
		}
		return formula.StyleChange{Box: &c}, nil
	}}
}

// SetLineWeight sets the stroke weight of bars, radicals and boxes.
func SetLineWeight(w formula.LineWeight) Command {
	return commandFunc{"setLineWeight", func(*formula.Formula, formula.IDSet) (formula.StyleChange, error) {
		if _, err := formula.ParseLineWeight(string(w)); err != nil {
			return formula.StyleChange{}, err
		}
		return formula.StyleChange{LineWeight: &w}, nil
	}}
}

// ToggleBold turns bold off when every selected node is already bold, and
// on otherwise.
func ToggleBold() Command {
	return commandFunc{"toggleBold", func(f *formula.Formula, ids formula.IDSet) (formula.StyleChange, error) {
		return formula.StyleChange{Bold: toggle(allOn(f, ids, func(e formula.Effective) bool { return e.Bold }))}, nil
	}}
}

// ToggleItalic follows the same rule as ToggleBold. Identifiers count as
// italic unless explicitly set upright.
func ToggleItalic() Command {
	return commandFunc{"toggleItalic", func(f *formula.Formula, ids formula.IDSet) (formula.StyleChange, error) {
		return formula.StyleChange{Italic: toggle(allOn(f, ids, func(e formula.Effective) bool { return e.Italic }))}, nil
	}}
}

func ToggleUnderline() Command {
	return commandFunc{"toggleUnderline", func(f *formula.Formula, ids formula.IDSet) (formula.StyleChange, error) {
		v := !allOn(f, ids, func(e formula.Effective) bool { return e.Underline })
		return formula.StyleChange{Underline: &v}, nil
	}}
}

func ToggleStrikethrough() Command {
	return commandFunc{"toggleStrikethrough", func(f *formula.Formula, ids formula.IDSet) (formula.StyleChange, error) {
		v := !allOn(f, ids, func(e formula.Effective) bool { return e.Strikethrough })
		return formula.StyleChange{Strikethrough: &v}, nil
	}}
}

func toggle(allSet bool) formula.Toggle {
	if allSet {
		return formula.Off
	}
	return formula.On
}

// allOn reports whether get holds for the effective style of every id in
// ids that exists in f.
func allOn(f *formula.Formula, ids formula.IDSet, get func(formula.Effective) bool) bool {
	for id := range ids {
		eff, ok := f.Effective(id)
		if ok && !get(eff) {
			return false
		}
	}
	return true
}
