package state

import (
	"time"
)

// Point is a position in surface-local coordinates.
type Point struct{ X, Y float32 }

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a displayed (layout) size.
type Size struct{ Width, Height float32 }

// Settings is the drawing configuration owned by the board and read by the
// stroke renderer at stroke start.
type Settings struct {
	Color string  // Selected color as typed or picked, usually "#rrggbb"
	Width float32 // Stroke width in surface pixels
}

// StrokeRecord describes a finished stroke. Strokes are painted directly
// onto the surface, so this is the only trace of one after it ends.
type StrokeRecord struct {
	ID     string
	Color  string
	Width  float32
	Points int
	Start  Point
	End    Point
	Began  time.Time
	Ended  time.Time
}
