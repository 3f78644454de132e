// Package script drives an editor from JavaScript. The hooks mirror what a
// browser test harness would reach for: load a formula, poke at it, click
// and drag, run style commands, and step the frame loop.
package script

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dop251/goja"

	"formulab/pkg/editor"
	"formulab/pkg/formula"
	"formulab/pkg/geom"
)

// Engine executes scripts against one editor.
type Engine struct {
	vm  *goja.Runtime
	ed  *editor.Editor
	log *slog.Logger

	mutatedTimes int
}

// New creates an engine with a fresh goja runtime bound to ed.
func New(ed *editor.Editor, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{vm: goja.New(), ed: ed, log: logger.With("component", "script")}

	c := &consoleAPI{log: e.log}
	c.register(e.vm)
	e.registerHooks()
	return e
}

// Run executes src. A thrown exception is returned as an error.
func (e *Engine) Run(src string) error {
	if _, err := e.vm.RunString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunFile executes the script at path.
func (e *Engine) RunFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if _, err := e.vm.RunScript(path, string(src)); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// Eval runs src and returns its completion value exported to Go.
func (e *Engine) Eval(src string) (interface{}, error) {
	v, err := e.vm.RunString(src)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return v.Export(), nil
}

func (e *Engine) registerHooks() {
	vm := e.vm
	set := func(name string, fn func(goja.FunctionCall) goja.Value) {
		if err := vm.Set(name, fn); err != nil {
			panic(err)
		}
	}

	set("setFormula", func(call goja.FunctionCall) goja.Value {
		if err := e.ed.Load(call.Argument(0).String()); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})
	set("getFormula", func(call goja.FunctionCall) goja.Value {
		f := e.ed.Formula()
		if f == nil {
			return goja.Null()
		}
		return vm.ToValue(f.LaTeX())
	})
	set("testMutateFormula", e.testMutateFormula)

	set("click", func(call goja.FunctionCall) goja.Value {
		p := geom.Point{X: call.Argument(0).ToFloat(), Y: call.Argument(1).ToFloat()}
		return e.ids(e.ed.Click(p, call.Argument(2).ToBoolean()))
	})
	set("drag", func(call goja.FunctionCall) goja.Value {
		r := geom.RectFromPoints(
			geom.Point{X: call.Argument(0).ToFloat(), Y: call.Argument(1).ToFloat()},
			geom.Point{X: call.Argument(2).ToFloat(), Y: call.Argument(3).ToFloat()},
		)
		return e.ids(e.ed.Drag(r, call.Argument(4).ToBoolean()))
	})
	set("select", func(call goja.FunctionCall) goja.Value {
		return e.ids(e.ed.Select(stringArgs(call)...))
	})
	set("selection", func(call goja.FunctionCall) goja.Value {
		return e.ids(e.ed.Selection())
	})
	set("targets", e.targets)

	command := func(name string, build func(call goja.FunctionCall) editor.Command) {
		set(name, func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(e.ed.Apply(build(call)))
		})
	}
	command("setColor", func(call goja.FunctionCall) editor.Command {
		return editor.SetColor(call.Argument(0).String())
	})
	command("setEnclosingBox", func(call goja.FunctionCall) editor.Command {
		return editor.SetEnclosingBox(call.Argument(0).String())
	})
	command("setLineWeight", func(call goja.FunctionCall) editor.Command {
		return editor.SetLineWeight(formula.LineWeight(call.Argument(0).String()))
	})
	command("toggleBold", func(goja.FunctionCall) editor.Command { return editor.ToggleBold() })
	command("toggleItalic", func(goja.FunctionCall) editor.Command { return editor.ToggleItalic() })
	command("toggleUnderline", func(goja.FunctionCall) editor.Command { return editor.ToggleUnderline() })
	command("toggleStrikethrough", func(goja.FunctionCall) editor.Command { return editor.ToggleStrikethrough() })

	set("setPanZoom", func(call goja.FunctionCall) goja.Value {
		err := e.ed.SetPanZoom(call.Argument(0).ToFloat(), call.Argument(1).ToFloat(), call.Argument(2).ToFloat())
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})
	set("panZoom", func(call goja.FunctionCall) goja.Value {
		t := e.ed.PanZoom()
		obj := vm.NewObject()
		obj.Set("x", t.Pan.X)
		obj.Set("y", t.Pan.Y)
		obj.Set("zoom", t.Zoom)
		return obj
	})
	set("resize", func(call goja.FunctionCall) goja.Value {
		e.ed.Resize(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		return goja.Undefined()
	})
	set("tick", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(e.ed.Tick())
	})
}

// testMutateFormula inserts "t<n> +<n>" before the last child of the root
// row, bypassing the deriver, and returns n.
func (e *Engine) testMutateFormula(call goja.FunctionCall) goja.Value {
	cur := e.ed.Formula()
	if cur == nil {
		panic(e.vm.NewGoError(fmt.Errorf("testMutateFormula: no formula loaded")))
	}
	e.mutatedTimes++
	n := e.mutatedTimes

	root := cur.Root()
	children := root.Children()
	inserted := []formula.Node{
		formula.NewSymbol(fmt.Sprintf("t%d", n), "t", formula.RoleIdentifier),
		formula.NewSymbol(fmt.Sprintf("+%d", n), "+", formula.RoleOperator),
	}
	split := len(children) - 1
	if split < 0 {
		split = 0
	}
	next := append(append(children[:split:split], inserted...), children[split:]...)

	f, err := formula.New(formula.NewGroup(root.ID(), formula.KindRow, next...).WithStyle(root.Style()))
	if err != nil {
		panic(e.vm.NewGoError(err))
	}
	e.ed.Replace(f)
	return e.vm.ToValue(n)
}

func (e *Engine) targets(call goja.FunctionCall) goja.Value {
	ts := e.ed.Targets().Targets()
	items := make([]interface{}, 0, len(ts))
	for _, t := range ts {
		obj := e.vm.NewObject()
		obj.Set("id", t.ID)
		obj.Set("leaf", t.Leaf)
		obj.Set("state", t.State.String())
		obj.Set("x", t.Box.X)
		obj.Set("y", t.Box.Y)
		obj.Set("width", t.Box.Width)
		obj.Set("height", t.Box.Height)
		items = append(items, obj)
	}
	return e.vm.NewArray(items...)
}

func (e *Engine) ids(ids []string) goja.Value {
	items := make([]interface{}, len(ids))
	for i, id := range ids {
		items[i] = id
	}
	return e.vm.NewArray(items...)
}

// stringArgs accepts either a list of strings or a single array.
func stringArgs(call goja.FunctionCall) []string {
	var out []string
	for _, arg := range call.Arguments {
		if list, ok := arg.Export().([]interface{}); ok {
			for _, v := range list {
				out = append(out, fmt.Sprint(v))
			}
			continue
		}
		out = append(out, arg.String())
	}
	return out
}
