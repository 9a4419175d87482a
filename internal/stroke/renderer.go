// Package stroke paints freehand strokes onto a surface as the pointer
// moves.
package stroke

import (
	"errors"
	"image/color"

	"ArtistryCanvas/internal/state"
	"ArtistryCanvas/internal/surface"
)

// DefaultWidth is used when a stroke is begun with a non-positive width.
const DefaultWidth float32 = 3

// ErrStrokeOpen is returned by Begin while another stroke is open.
var ErrStrokeOpen = errors.New("stroke: a stroke is already open")

// State is the renderer's lifecycle state.
type State int

const (
	Idle State = iota
	Stroking
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stroking:
		return "stroking"
	}
	return "unknown"
}

// Renderer paints one stroke at a time. Segments are painted as soon as
// they are added; nothing is batched or redrawn later.
type Renderer struct {
	surface *surface.Surface
	paint   painter

	state  State
	color  color.Color
	width  float32
	last   state.Point
	points int
}

// New returns an idle renderer painting onto s.
func New(s *surface.Surface) *Renderer {
	return &Renderer{surface: s}
}

// State returns the current lifecycle state.
func (r *Renderer) State() State { return r.state }

// Points returns the number of points recorded for the open or most
// recently closed stroke.
func (r *Renderer) Points() int { return r.points }

// Width returns the width of the open or most recently closed stroke.
func (r *Renderer) Width() float32 { return r.width }

// Last returns the most recently recorded point.
func (r *Renderer) Last() state.Point { return r.last }

// Begin opens a stroke at p. The color and width are captured here and
// used until End.
func (r *Renderer) Begin(p state.Point, c color.Color, width float32) error {
	if r.state == Stroking {
		return ErrStrokeOpen
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if c == nil {
		c = color.Black
	}
	r.color = c
	r.width = width
	r.last = p
	r.points = 1
	r.state = Stroking
	return nil
}

// Extend paints a segment from the last point to p. It reports false and
// does nothing when no stroke is open.
func (r *Renderer) Extend(p state.Point) bool {
	if r.state != Stroking {
		return false
	}
	r.paint.segment(r.surface.Image(), r.last, p, r.width, r.color)
	r.last = p
	r.points++
	return true
}

// End closes the open stroke, if any.
func (r *Renderer) End() {
	r.state = Idle
}

// Clear erases the surface. An open stroke stays open.
func (r *Renderer) Clear() {
	r.surface.Clear()
}
