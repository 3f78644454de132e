// Package editor owns the application state: the current formula, the
// mounted surface, the target registry and the selection. Every mutation
// flows through it in a fixed order: replace document, compile, remount,
// and measure on the next tick.
package editor

import (
	"fmt"
	"log/slog"
	"sort"

	"formulab/pkg/formula"
	"formulab/pkg/geom"
	"formulab/pkg/mirror"
	"formulab/pkg/render"
	"formulab/pkg/renderspec"
	"formulab/pkg/selection"
	"formulab/pkg/text"
)

// Options configures a new Editor.
type Options struct {
	Width    float64
	Height   float64
	FontSize float64
	// Faces is shared with the raster renderer when set; otherwise the
	// editor parses its own.
	Faces *text.Faces
}

func (o *Options) applyDefaults() {
	if o.Width <= 0 {
		o.Width = 960
	}
	if o.Height <= 0 {
		o.Height = 540
	}
	if o.FontSize <= 0 {
		o.FontSize = 48
	}
}

// Editor is not safe for concurrent use; drive it from one goroutine.
type Editor struct {
	log *slog.Logger

	doc      *formula.Store
	surface  *mirror.Surface
	targets  *selection.Store
	renderer *mirror.Renderer

	spec     *renderspec.Node
	frames   []func()
	selected formula.IDSet

	listeners  map[int]func()
	nextListen int
}

// New builds an editor with an empty document.
func New(opts Options, logger *slog.Logger) (*Editor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts.applyDefaults()
	faces := opts.Faces
	if faces == nil {
		var err error
		if faces, err = text.NewFaces(); err != nil {
			return nil, fmt.Errorf("editor: %w", err)
		}
	}

	e := &Editor{
		log:       logger.With("component", "editor"),
		doc:       formula.NewStore(),
		selected:  formula.NewIDSet(),
		listeners: make(map[int]func()),
	}
	e.surface = mirror.NewSurface(opts.Width, opts.Height, opts.FontSize, faces)
	e.targets = selection.NewStore(e.surface, logger)
	e.renderer = mirror.NewRenderer(e.surface, e.targets, logger)
	e.doc.Subscribe(e.commit)
	return e, nil
}

// commit is the render loop: it runs synchronously on every document
// change and defers measurement to the next Tick.
func (e *Editor) commit(change formula.Change) {
	spec := renderspec.Compile(change.Current)
	c, err := e.renderer.Render(spec)
	if err != nil {
		e.log.Error("mount failed", "generation", change.Generation, "error", err)
		return
	}
	e.spec = spec

	for id := range e.selected {
		if _, ok := change.Current.Find(id); !ok {
			delete(e.selected, id)
		}
	}
	e.frames = append(e.frames, func() {
		n := e.targets.UpdateTargets()
		e.log.Debug("measured targets", "count", n, "commit", c.Generation)
	})
	e.log.Debug("committed formula", "generation", change.Generation,
		"removed", len(c.Removed), "added", len(c.Added))
	e.notify()
}

// Load derives source and installs it. On a parse error the current
// document is kept and the error, a *formula.ParseError, is returned.
func (e *Editor) Load(source string) error {
	f, err := formula.Derive(source)
	if err != nil {
		return fmt.Errorf("load formula: %w", err)
	}
	e.Replace(f)
	return nil
}

// Replace installs f as the current document.
func (e *Editor) Replace(f *formula.Formula) {
	e.doc.Replace(f)
}

// Tick runs the frame callbacks queued before it was called and returns how
// many ran. Callbacks queued while ticking wait for the next Tick.
func (e *Editor) Tick() int {
	frames := e.frames
	e.frames = nil
	for _, fn := range frames {
		fn()
	}
	if len(frames) > 0 {
		e.notify()
	}
	return len(frames)
}

// Pending reports how many frame callbacks are queued.
func (e *Editor) Pending() int { return len(e.frames) }

// Resize changes the surface size and re-measures immediately.
func (e *Editor) Resize(width, height float64) {
	e.surface.Resize(width, height)
	e.targets.UpdateTargets()
	e.notify()
}

// Click selects the target under the screen point p. With additive the
// hit is added to the selection; otherwise it replaces it, and a miss
// clears it.
func (e *Editor) Click(p geom.Point, additive bool) []string {
	return e.selectHits(e.targets.ResolveAt(selection.PointQuery(p)), additive)
}

// Drag selects every leaf overlapping the screen rect r.
func (e *Editor) Drag(r geom.Rect, additive bool) []string {
	return e.selectHits(e.targets.ResolveAt(selection.Query{Rect: r}), additive)
}

func (e *Editor) selectHits(ids []string, additive bool) []string {
	if !additive {
		e.selected = formula.NewIDSet()
	}
	for _, id := range ids {
		e.selected[id] = struct{}{}
	}
	e.notify()
	return e.Selection()
}

// Select replaces the selection with the given ids. Ids not in the current
// document are dropped.
func (e *Editor) Select(ids ...string) []string {
	e.selected = formula.NewIDSet()
	cur := e.doc.Current()
	for _, id := range ids {
		if cur == nil {
			break
		}
		if _, ok := cur.Find(id); ok {
			e.selected[id] = struct{}{}
		}
	}
	e.notify()
	return e.Selection()
}

// Selection returns the selected ids, sorted.
func (e *Editor) Selection() []string { return e.selected.Sorted() }

// SetPanZoom sets the viewport transform.
func (e *Editor) SetPanZoom(x, y, zoom float64) error {
	if err := e.targets.SetPanZoom(x, y, zoom); err != nil {
		return err
	}
	e.notify()
	return nil
}

// PanZoom returns the viewport transform.
func (e *Editor) PanZoom() geom.Transform { return e.targets.PanZoom() }

// Apply runs cmd against the current selection. It reports whether the
// document changed; an empty selection or a no-op change returns false.
func (e *Editor) Apply(cmd Command) bool {
	cur := e.doc.Current()
	if cur == nil || len(e.selected) == 0 {
		return false
	}
	change, err := cmd.change(cur, e.selected)
	if err != nil {
		e.log.Warn("command rejected", "command", cmd.Name(), "error", err)
		return false
	}
	next := formula.ApplyStyle(cur, e.selected, change)
	if next == cur {
		return false
	}
	e.log.Debug("applying command", "command", cmd.Name(), "ids", e.Selection())
	e.Replace(next)
	return true
}

// OnUpdate registers fn to run after every visible state change: commits,
// ticks, resizes, selection and viewport changes.
func (e *Editor) OnUpdate(fn func()) (cancel func()) {
	id := e.nextListen
	e.nextListen++
	e.listeners[id] = fn
	return func() { delete(e.listeners, id) }
}

func (e *Editor) notify() {
	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := e.listeners[id]; ok {
			fn()
		}
	}
}

// Formula returns the current document, or nil before the first load.
func (e *Editor) Formula() *formula.Formula { return e.doc.Current() }

// Generation returns the document generation.
func (e *Editor) Generation() uint64 { return e.doc.Generation() }

// Spec returns the mounted render specification.
func (e *Editor) Spec() *renderspec.Node { return e.spec }

// Surface returns the mounted surface.
func (e *Editor) Surface() *mirror.Surface { return e.surface }

// Targets returns the target registry.
func (e *Editor) Targets() *selection.Store { return e.targets }

// Frame assembles what the raster renderer needs for the current state.
func (e *Editor) Frame() render.Frame {
	f := render.Frame{Root: e.surface.Root(), Transform: e.targets.PanZoom()}
	for _, id := range e.Selection() {
		if t, ok := e.targets.Target(id); ok && t.State != selection.Registered {
			f.Selected = append(f.Selected, t.Box)
		}
	}
	return f
}
