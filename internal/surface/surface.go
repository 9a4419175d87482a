// Package surface owns the raster the strokes are painted onto and keeps
// its backing resolution in step with its displayed size.
package surface

import (
	"image"
	"image/draw"
	"math"

	"ArtistryCanvas/internal/state"
)

// Surface is the drawable raster target. The backing buffer is replaced,
// and therefore cleared, on every Resize.
type Surface struct {
	img      *image.RGBA
	display  state.Size
	measured bool
}

// New returns an unmeasured surface with an empty backing buffer.
func New() *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, 0, 0))}
}

// Resize sets the displayed size and reallocates the backing buffer to match.
// Any painted content is lost, as with a browser canvas whose width is
// reassigned.
func (s *Surface) Resize(display state.Size) {
	w, h := backingDim(display.Width), backingDim(display.Height)
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.display = display
	s.measured = true
}

func backingDim(v float32) int {
	if v <= 0 || math.IsNaN(float64(v)) {
		return 0
	}
	return int(math.Round(float64(v)))
}

// Measured reports whether Resize has been called at least once.
func (s *Surface) Measured() bool { return s.measured }

// Display returns the displayed size last passed to Resize.
func (s *Surface) Display() state.Size { return s.display }

// Width returns the backing width in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the backing height in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Image returns the live backing buffer. Callers that keep the image past
// the next mutation should use Snapshot.
func (s *Surface) Image() *image.RGBA { return s.img }

// Clear erases all painted content to transparent.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Rect, image.Transparent, image.Point{}, draw.Src)
}

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	c := image.NewRGBA(s.img.Rect)
	copy(c.Pix, s.img.Pix)
	return c
}

// Blank reports whether no pixel carries any ink.
func (s *Surface) Blank() bool {
	for i := 3; i < len(s.img.Pix); i += 4 {
		if s.img.Pix[i] != 0 {
			return false
		}
	}
	return true
}
