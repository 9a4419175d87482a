// Package board dispatches host pointer, touch and resize events to the
// surface manager, input normalizer and stroke renderer. All handlers run
// synchronously on the caller's goroutine and must be called from a single
// goroutine in delivery order.
package board

import (
	"errors"
	"image"
	"image/color"
	"io"
	"time"

	"ArtistryCanvas/internal/export"
	"ArtistryCanvas/internal/input"
	"ArtistryCanvas/internal/state"
	"ArtistryCanvas/internal/stroke"
	"ArtistryCanvas/internal/surface"

	"github.com/google/uuid"
)

// ErrNotMounted is returned by exports before the surface has a size.
var ErrNotMounted = errors.New("board: surface not mounted")

// Source identifies the pointer device that owns the open stroke.
type Source int

const (
	SourceNone Source = iota
	SourceMouse
	SourceTouch
)

func (s Source) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return "touch"
	}
	return "unknown"
}

// Tracker delivers mouse moves and releases from anywhere in the window
// while a mouse stroke is open. The returned release function unregisters
// both callbacks.
type Tracker interface {
	Track(move, up func(*input.MouseEvent)) (release func())
}

// Board is the single-threaded event dispatcher owning the drawing state.
//
// Only one pointer draws at a time: the device that opened the stroke owns
// it until it ends, and events from any other device are ignored.
type Board struct {
	surface  *surface.Surface
	manager  *surface.Manager
	input    *input.Normalizer
	pen      *stroke.Renderer
	settings state.Settings
	ink      color.NRGBA

	tracker Tracker
	release func()
	source  Source
	current state.StrokeRecord

	// OnChange is called after every change to the surface pixels.
	OnChange func()
	// OnStrokeEnd is called with the record of every stroke that ends.
	OnStrokeEnd func(state.StrokeRecord)

	now func() time.Time
}

// New returns an unmounted board. tracker may be nil when the host cannot
// deliver window-level mouse events.
func New(settings state.Settings, tracker Tracker) *Board {
	s := surface.New()
	b := &Board{
		surface:  s,
		manager:  surface.NewManager(s),
		pen:      stroke.New(s),
		settings: settings,
		ink:      color.NRGBA{A: 0xff},
		tracker:  tracker,
		now:      time.Now,
	}
	b.input = input.NewNormalizer(b.manager)
	if c, err := stroke.ParseColor(settings.Color); err == nil {
		b.ink = c
	}
	b.manager.OnResize = func(size state.Size) {
		Logger().Info("surface resized", "width", b.surface.Width(), "height", b.surface.Height(), "open_stroke", b.source != SourceNone)
		b.changed()
	}
	return b
}

// Mount sizes the surface to layout and follows viewport resizes until
// Unmount.
func (b *Board) Mount(layout surface.Layout, viewport surface.Viewport) error {
	return b.manager.Mount(layout, viewport)
}

// Mounted reports whether the board is mounted.
func (b *Board) Mounted() bool { return b.manager.Mounted() }

// Unmount ends any open stroke and stops following resizes.
func (b *Board) Unmount() {
	b.endStroke("unmount")
	b.manager.Unmount()
}

// Resize re-measures the layout. Painted content is cleared.
func (b *Board) Resize() {
	b.manager.Sync()
}

// MouseDown opens a stroke for a primary-button press. A press while a
// mouse stroke is still open means the release was lost; the old stroke is
// ended first.
func (b *Board) MouseDown(e *input.MouseEvent) {
	if e == nil || e.Buttons&input.ButtonPrimary == 0 {
		return
	}
	switch b.source {
	case SourceTouch:
		Logger().Debug("mouse down ignored", "owner", b.source)
		return
	case SourceMouse:
		b.endStroke("restart")
	}
	p, ok := b.input.Mouse(e)
	if !ok {
		return
	}
	if !b.beginStroke(p, SourceMouse) {
		return
	}
	if b.tracker != nil {
		b.release = b.tracker.Track(b.MouseMove, b.MouseUp)
	}
}

// MouseMove extends the open mouse stroke. A move with no button held ends
// it, since the release happened somewhere it was not reported.
func (b *Board) MouseMove(e *input.MouseEvent) {
	if e == nil || b.source != SourceMouse {
		return
	}
	if !e.Pressed() {
		b.endStroke("released")
		return
	}
	if p, ok := b.input.Mouse(e); ok {
		b.extend(p)
	}
}

// MouseUp ends the open mouse stroke.
func (b *Board) MouseUp(*input.MouseEvent) {
	if b.source == SourceMouse {
		b.endStroke("mouse up")
	}
}

// TouchStart opens a stroke for a single-finger touch.
func (b *Board) TouchStart(e *input.TouchEvent) {
	if b.source != SourceNone {
		Logger().Debug("touch start ignored", "owner", b.source)
		return
	}
	if p, ok := b.input.Touch(e); ok {
		b.beginStroke(p, SourceTouch)
	}
}

// TouchMove extends the open touch stroke. Moves with more than one finger
// down are ignored.
func (b *Board) TouchMove(e *input.TouchEvent) {
	if b.source != SourceTouch {
		return
	}
	if p, ok := b.input.Touch(e); ok {
		b.extend(p)
	}
}

// TouchEnd ends the open touch stroke.
func (b *Board) TouchEnd(*input.TouchEvent) {
	if b.source == SourceTouch {
		b.endStroke("touch end")
	}
}

// TouchCancel ends the open touch stroke.
func (b *Board) TouchCancel(*input.TouchEvent) {
	if b.source == SourceTouch {
		b.endStroke("touch cancel")
	}
}

// Blur ends any open stroke; the window lost focus and releases may not
// arrive.
func (b *Board) Blur() {
	b.endStroke("blur")
}

// SetColor sets the selected color. The value is not validated; a value
// that does not parse leaves the previous color in effect for new strokes.
func (b *Board) SetColor(c string) { b.settings.Color = c }

// Color returns the selected color as last set.
func (b *Board) Color() string { return b.settings.Color }

// SetWidth sets the stroke width used by new strokes.
func (b *Board) SetWidth(w float32) { b.settings.Width = w }

// Settings returns the current drawing settings.
func (b *Board) Settings() state.Settings { return b.settings }

// Clear erases the surface without affecting an open stroke.
func (b *Board) Clear() {
	b.pen.Clear()
	Logger().Info("surface cleared")
	b.changed()
}

// State returns the stroke renderer's state.
func (b *Board) State() stroke.State { return b.pen.State() }

// Source returns the device owning the open stroke.
func (b *Board) Source() Source { return b.source }

// Surface returns the drawing surface.
func (b *Board) Surface() *surface.Surface { return b.surface }

// Image returns the live surface pixels.
func (b *Board) Image() *image.RGBA { return b.surface.Image() }

// ExportPNG writes the current pixels, including segments of an open
// stroke, to w as PNG.
func (b *Board) ExportPNG(w io.Writer) error {
	if !b.surface.Measured() {
		return ErrNotMounted
	}
	if err := export.EncodePNG(w, b.surface.Image()); err != nil {
		Logger().Warn("png export failed", "err", err)
		return err
	}
	Logger().Info("exported png", "width", b.surface.Width(), "height", b.surface.Height())
	return nil
}

// ExportPDF writes the current pixels to w as a single-page PDF.
func (b *Board) ExportPDF(w io.Writer) error {
	if !b.surface.Measured() {
		return ErrNotMounted
	}
	if err := export.EncodePDF(w, b.surface.Image()); err != nil {
		Logger().Warn("pdf export failed", "err", err)
		return err
	}
	Logger().Info("exported pdf", "width", b.surface.Width(), "height", b.surface.Height())
	return nil
}

// SaveImage writes the current pixels to dir/drawing.png.
func (b *Board) SaveImage(dir string) (string, error) {
	if !b.surface.Measured() {
		return "", ErrNotMounted
	}
	path, err := export.SaveFile(dir, b.surface.Image())
	if err != nil {
		Logger().Warn("png save failed", "dir", dir, "err", err)
		return "", err
	}
	Logger().Info("saved png", "path", path)
	return path, nil
}

// strokeColor resolves the selected color, keeping the last good one when
// the selection does not parse.
func (b *Board) strokeColor() color.NRGBA {
	c, err := stroke.ParseColor(b.settings.Color)
	if err != nil {
		Logger().Debug("keeping previous color", "selected", b.settings.Color, "err", err)
		return b.ink
	}
	b.ink = c
	return c
}

func (b *Board) beginStroke(p state.Point, src Source) bool {
	c := b.strokeColor()
	if err := b.pen.Begin(p, c, b.settings.Width); err != nil {
		Logger().Debug("stroke begin rejected", "source", src, "err", err)
		return false
	}
	b.source = src
	b.current = state.StrokeRecord{
		ID:    uuid.NewString(),
		Color: stroke.HexString(c),
		Width: b.pen.Width(),
		Start: p,
		End:   p,
		Began: b.now(),
	}
	Logger().Info("stroke begin", "id", b.current.ID, "source", src, "color", b.current.Color, "x", p.X, "y", p.Y)
	return true
}

func (b *Board) extend(p state.Point) {
	if !b.pen.Extend(p) {
		return
	}
	b.current.End = p
	Logger().Debug("stroke point", "id", b.current.ID, "x", p.X, "y", p.Y)
	b.changed()
}

// endStroke closes the open stroke and releases window-level tracking.
// Safe to call when no stroke is open.
func (b *Board) endStroke(reason string) {
	if release := b.release; release != nil {
		b.release = nil
		release()
	}
	b.pen.End()
	if b.source == SourceNone {
		return
	}
	b.source = SourceNone

	rec := b.current
	rec.Points = b.pen.Points()
	rec.Ended = b.now()
	b.current = state.StrokeRecord{}
	Logger().Info("stroke end", "id", rec.ID, "reason", reason, "points", rec.Points)
	if b.OnStrokeEnd != nil {
		b.OnStrokeEnd(rec)
	}
}

func (b *Board) changed() {
	if b.OnChange != nil {
		b.OnChange()
	}
}
