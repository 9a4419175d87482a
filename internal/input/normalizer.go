package input

import "ArtistryCanvas/internal/state"

// Frame reports where the surface currently sits on the page.
type Frame interface {
	// Origin returns the surface's absolute top-left corner, or false if
	// the surface has not been measured yet.
	Origin() (state.Point, bool)
}

// Normalizer converts raw pointer events into surface-local points. A
// false result means the event must not reach the stroke renderer.
type Normalizer struct {
	Frame Frame
}

// NewNormalizer returns a normalizer reading the origin from f.
func NewNormalizer(f Frame) *Normalizer {
	return &Normalizer{Frame: f}
}

// Mouse returns the surface-local position of e.
func (n *Normalizer) Mouse(e *MouseEvent) (state.Point, bool) {
	if e == nil {
		return state.Point{}, false
	}
	origin, ok := n.origin()
	if !ok {
		return state.Point{}, false
	}
	if e.HasOffset {
		return e.Offset, true
	}
	return e.Page.Sub(origin), true
}

// Touch returns the surface-local position of the single active touch in e.
// Gestures with no touches or with more than one are declined and keep
// their default behaviour; single-finger drawing gestures have it
// suppressed.
func (n *Normalizer) Touch(e *TouchEvent) (state.Point, bool) {
	if e == nil || len(e.Touches) != 1 {
		return state.Point{}, false
	}
	origin, ok := n.origin()
	if !ok {
		return state.Point{}, false
	}
	e.PreventDefault()
	return e.Touches[0].Page.Sub(origin), true
}

func (n *Normalizer) origin() (state.Point, bool) {
	if n.Frame == nil {
		return state.Point{}, false
	}
	return n.Frame.Origin()
}
