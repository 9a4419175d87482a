package ui

import (
	"image"
	"image/color"

	"ArtistryCanvas/internal/board"
	"ArtistryCanvas/internal/input"
	"ArtistryCanvas/internal/state"
	"ArtistryCanvas/internal/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// CanvasWidget shows the drawing surface and feeds it pointer events.
// Resizing the widget resizes the surface, which erases the drawing.
type CanvasWidget struct {
	widget.BaseWidget
	board  *board.Board
	raster *canvas.Raster

	resize   surface.Signal
	lastSize fyne.Size

	// Window-level mouse delivery while a mouse stroke is open.
	move, up func(*input.MouseEvent)

	// Fingers currently down. The mobile driver routes every finger's
	// drags to one widget, so once a second finger lands the gesture stops
	// drawing until all fingers are up.
	touches int
	multi   bool
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)
var _ desktop.Hoverable = (*CanvasWidget)(nil)
var _ mobile.Touchable = (*CanvasWidget)(nil)
var _ board.Tracker = (*CanvasWidget)(nil)
var _ surface.Layout = (*CanvasWidget)(nil)

// NewCanvasWidget returns a canvas drawing with the given settings.
func NewCanvasWidget(settings state.Settings) *CanvasWidget {
	c := &CanvasWidget{}
	c.board = board.New(settings, c)
	c.raster = canvas.NewRaster(c.pixels)
	c.raster.ScaleMode = canvas.ImageScalePixels
	c.board.OnChange = c.raster.Refresh
	c.ExtendBaseWidget(c)
	return c
}

// Board returns the dispatcher behind the widget.
func (c *CanvasWidget) Board() *board.Board { return c.board }

// Unmount detaches the surface from the widget's size. Call when the
// window closes.
func (c *CanvasWidget) Unmount() {
	c.board.Unmount()
}

func (c *CanvasWidget) pixels(_, _ int) image.Image {
	img := c.board.Image()
	if img.Rect.Empty() {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return img
}

// DisplaySize implements surface.Layout.
func (c *CanvasWidget) DisplaySize() state.Size {
	s := c.Size()
	return state.Size{Width: s.Width, Height: s.Height}
}

// Origin implements surface.Layout.
func (c *CanvasWidget) Origin() state.Point {
	app := fyne.CurrentApp()
	if app == nil {
		return state.Point{}
	}
	return toPoint(app.Driver().AbsolutePositionForObject(c))
}

// Track implements board.Tracker. Fyne keeps delivering drag events to the
// widget that received the press, wherever the pointer goes.
func (c *CanvasWidget) Track(move, up func(*input.MouseEvent)) (release func()) {
	c.move, c.up = move, up
	return func() {
		c.move, c.up = nil, nil
	}
}

// sizeChanged mounts the board on first layout and signals a resize
// afterwards.
func (c *CanvasWidget) sizeChanged(size fyne.Size) {
	if !c.board.Mounted() {
		if err := c.board.Mount(c, &c.resize); err != nil {
			fyne.LogError("Failed to mount canvas", err)
		}
		c.lastSize = size
		return
	}
	if size == c.lastSize {
		return
	}
	c.lastSize = size
	c.resize.Notify()
}

func (c *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.board.MouseDown(&input.MouseEvent{
		Offset:    toPoint(e.Position),
		HasOffset: true,
		Page:      toPoint(e.AbsolutePosition),
		Buttons:   input.ButtonPrimary,
	})
}

func (c *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	ev := &input.MouseEvent{Page: toPoint(e.AbsolutePosition)}
	if c.up != nil {
		c.up(ev)
		return
	}
	c.board.MouseUp(ev)
}

func (c *CanvasWidget) MouseIn(*desktop.MouseEvent) {}
func (c *CanvasWidget) MouseOut()                   {}

func (c *CanvasWidget) MouseMoved(e *desktop.MouseEvent) {
	if c.move != nil {
		// Dragged delivers moves while tracking.
		return
	}
	c.board.MouseMove(&input.MouseEvent{
		Offset:    toPoint(e.Position),
		HasOffset: true,
		Page:      toPoint(e.AbsolutePosition),
		Buttons:   buttons(e.Button),
	})
}

// Dragged carries only the widget-relative position on the mobile driver,
// so the page point is rebuilt from the live origin.
func (c *CanvasWidget) Dragged(e *fyne.DragEvent) {
	page := c.Origin().Add(toPoint(e.Position))
	if c.touches > 0 {
		c.board.TouchMove(c.touchEvent(page))
		return
	}
	if c.move != nil {
		c.move(&input.MouseEvent{Page: page, Buttons: input.ButtonPrimary})
	}
}

// DragEnd is the only release the mobile driver reports for a finger that
// moved; TouchUp is not sent after a drag.
func (c *CanvasWidget) DragEnd() {
	if c.touches > 0 {
		c.liftTouch(false)
		return
	}
	if c.up != nil {
		c.up(&input.MouseEvent{})
	}
}

func (c *CanvasWidget) TouchDown(e *mobile.TouchEvent) {
	c.touches++
	page := c.Origin().Add(toPoint(e.Position))
	if c.touches == 1 {
		c.board.TouchStart(c.touchEvent(page))
		return
	}
	c.multi = true
	c.board.TouchMove(c.touchEvent(page))
}

func (c *CanvasWidget) TouchUp(*mobile.TouchEvent) {
	c.liftTouch(false)
}

func (c *CanvasWidget) TouchCancel(*mobile.TouchEvent) {
	c.liftTouch(true)
}

// liftTouch ends the touch stroke once the last finger is up.
func (c *CanvasWidget) liftTouch(cancel bool) {
	if c.touches == 0 {
		return
	}
	c.touches--
	if c.touches > 0 {
		return
	}
	c.multi = false
	if cancel {
		c.board.TouchCancel(&input.TouchEvent{})
		return
	}
	c.board.TouchEnd(&input.TouchEvent{})
}

// touchEvent lists one point per finger down, all at page since the driver
// does not say which finger moved. More than one point never draws.
func (c *CanvasWidget) touchEvent(page state.Point) *input.TouchEvent {
	n := c.touches
	if c.multi && n < 2 {
		n = 2
	}
	e := &input.TouchEvent{Touches: make([]input.TouchPoint, n)}
	for i := range e.Touches {
		e.Touches[i] = input.TouchPoint{ID: i + 1, Page: page}
	}
	return e
}

func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.White)
	bg.StrokeColor = color.Black
	bg.StrokeWidth = 1
	return &canvasRenderer{canvas: c, background: bg}
}

type canvasRenderer struct {
	canvas     *CanvasWidget
	background *canvas.Rectangle
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.canvas.raster.Resize(size)
	r.canvas.sizeChanged(size)
}

func (r *canvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.canvas.raster}
}

func (r *canvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *canvasRenderer) Destroy() {}

func toPoint(p fyne.Position) state.Point {
	return state.Point{X: p.X, Y: p.Y}
}

func buttons(b desktop.MouseButton) int {
	var n int
	if b&desktop.MouseButtonPrimary != 0 {
		n |= input.ButtonPrimary
	}
	if b&desktop.MouseButtonSecondary != 0 {
		n |= input.ButtonSecondary
	}
	if b&desktop.MouseButtonTertiary != 0 {
		n |= input.ButtonTertiary
	}
	return n
}
