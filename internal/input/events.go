// Package input turns mouse and touch events into surface-local points.
package input

import "ArtistryCanvas/internal/state"

// Mouse button bits for MouseEvent.Buttons.
const (
	ButtonPrimary   = 1 << 0
	ButtonSecondary = 1 << 1
	ButtonTertiary  = 1 << 2
)

// MouseEvent is a mouse press, move or release.
type MouseEvent struct {
	// Offset is the position relative to the surface, valid when HasOffset
	// is set. Events delivered by a global (window-level) listener carry
	// only Page.
	Offset    state.Point
	HasOffset bool
	// Page is the absolute pointer position.
	Page state.Point
	// Buttons holds the pressed buttons at the time of the event.
	Buttons int
}

// Pressed reports whether any button is held.
func (e *MouseEvent) Pressed() bool { return e.Buttons != 0 }

// TouchPoint is one active finger.
type TouchPoint struct {
	ID   int
	Page state.Point
}

// TouchEvent is a touch start, move, end or cancel. Touches lists the
// fingers still in contact with the screen.
type TouchEvent struct {
	Touches []TouchPoint

	defaultPrevented bool
}

// PreventDefault stops the host from scrolling or zooming in response to
// this gesture.
func (e *TouchEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *TouchEvent) DefaultPrevented() bool { return e.defaultPrevented }
