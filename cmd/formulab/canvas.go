package main

import (
	"image"
	"image/color"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"formulab/pkg/config"
	"formulab/pkg/editor"
	"formulab/pkg/geom"
	"formulab/pkg/render"
)

// frameDelay spaces deferred measurement like a display refresh.
const frameDelay = 16 * time.Millisecond

// formulaCanvas shows the editor's surface and turns pointer input into
// selection and viewport changes.
type formulaCanvas struct {
	widget.BaseWidget

	ed  *editor.Editor
	cfg *config.Config

	raster   *canvas.Raster
	band     *canvas.Rectangle
	renderer *render.Renderer

	secondary  bool // current press is the secondary button
	additive   bool // shift held on the current press
	dragging   bool
	dragStart  fyne.Position
	dragEnd    fyne.Position
	tickQueued bool
}

var (
	_ fyne.Tappable     = (*formulaCanvas)(nil)
	_ fyne.Draggable    = (*formulaCanvas)(nil)
	_ fyne.Scrollable   = (*formulaCanvas)(nil)
	_ desktop.Mouseable = (*formulaCanvas)(nil)
)

func newFormulaCanvas(ed *editor.Editor, cfg *config.Config) *formulaCanvas {
	c := &formulaCanvas{ed: ed, cfg: cfg}
	c.raster = canvas.NewRaster(c.draw)
	c.band = canvas.NewRectangle(color.NRGBA{R: 51, G: 128, B: 255, A: 32})
	c.band.StrokeColor = color.NRGBA{R: 51, G: 128, B: 255, A: 200}
	c.band.StrokeWidth = 1
	c.band.Hide()
	c.ExtendBaseWidget(c)
	ed.OnUpdate(c.changed)
	return c
}

// changed runs after every editor update. It repaints and, when a commit
// queued measurement, schedules the next frame.
func (c *formulaCanvas) changed() {
	c.raster.Refresh()
	if c.ed.Pending() == 0 || c.tickQueued {
		return
	}
	c.tickQueued = true
	time.AfterFunc(frameDelay, func() {
		fyne.Do(func() {
			c.tickQueued = false
			c.ed.Tick()
		})
	})
}

// draw renders at the raster's pixel size. Editor geometry is in canvas
// units, so the viewport transform is scaled by the pixel ratio.
func (c *formulaCanvas) draw(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	if c.renderer == nil || c.renderer.Image().Bounds().Dx() != w || c.renderer.Image().Bounds().Dy() != h {
		c.renderer = render.NewRenderer(w, h, c.ed.Surface().Faces())
	}
	frame := c.ed.Frame()
	if size := c.Size(); size.Width > 0 {
		scale := float64(w) / float64(size.Width)
		frame.Transform = geom.Transform{
			Pan:  geom.Point{X: frame.Transform.Pan.X * scale, Y: frame.Transform.Pan.Y * scale},
			Zoom: frame.Transform.Zoom * scale,
		}
	}
	c.renderer.Render(frame)
	return c.renderer.Image()
}

func (c *formulaCanvas) Resize(size fyne.Size) {
	c.BaseWidget.Resize(size)
	c.ed.Resize(float64(size.Width), float64(size.Height))
}

func (c *formulaCanvas) MinSize() fyne.Size {
	return fyne.NewSize(320, 160)
}

func (c *formulaCanvas) MouseDown(ev *desktop.MouseEvent) {
	c.secondary = ev.Button == desktop.MouseButtonSecondary
	c.additive = ev.Modifier&fyne.KeyModifierShift != 0
}

func (c *formulaCanvas) MouseUp(*desktop.MouseEvent) {}

func (c *formulaCanvas) Tapped(ev *fyne.PointEvent) {
	c.ed.Click(toPoint(ev.Position), c.additive)
}

func (c *formulaCanvas) Dragged(ev *fyne.DragEvent) {
	if c.secondary {
		t := c.ed.PanZoom()
		c.ed.SetPanZoom(t.Pan.X+float64(ev.Dragged.DX), t.Pan.Y+float64(ev.Dragged.DY), t.Zoom)
		return
	}
	if !c.dragging {
		c.dragging = true
		c.dragStart = fyne.NewPos(ev.Position.X-ev.Dragged.DX, ev.Position.Y-ev.Dragged.DY)
	}
	c.dragEnd = ev.Position
	c.showBand()
}

func (c *formulaCanvas) DragEnd() {
	if !c.dragging {
		return
	}
	c.dragging = false
	c.band.Hide()
	c.ed.Drag(geom.RectFromPoints(toPoint(c.dragStart), toPoint(c.dragEnd)), c.additive)
}

func (c *formulaCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY == 0 {
		return
	}
	t := c.ed.PanZoom()
	factor := c.cfg.Zoom.Step
	if ev.Scrolled.DY < 0 {
		factor = 1 / factor
	}
	factor = c.cfg.ClampZoom(t.Zoom*factor) / t.Zoom
	if math.Abs(factor-1) < 1e-9 {
		return
	}
	z := t.ZoomAbout(toPoint(ev.Position), factor)
	c.ed.SetPanZoom(z.Pan.X, z.Pan.Y, z.Zoom)
}

func (c *formulaCanvas) showBand() {
	r := geom.RectFromPoints(toPoint(c.dragStart), toPoint(c.dragEnd))
	c.band.Move(fyne.NewPos(float32(r.X), float32(r.Y)))
	c.band.Resize(fyne.NewSize(float32(r.Width), float32(r.Height)))
	c.band.Show()
	c.band.Refresh()
}

func (c *formulaCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &canvasRenderer{c: c}
}

type canvasRenderer struct {
	c *formulaCanvas
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.c.raster.Resize(size)
}

func (r *canvasRenderer) MinSize() fyne.Size { return r.c.MinSize() }

func (r *canvasRenderer) Refresh() {
	r.c.raster.Refresh()
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.c.raster, r.c.band}
}

func (r *canvasRenderer) Destroy() {}

func toPoint(p fyne.Position) geom.Point {
	return geom.Point{X: float64(p.X), Y: float64(p.Y)}
}
