package stroke

import (
	"image"
	"image/color"
	"math"

	"ArtistryCanvas/internal/state"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// painter rasterises round-capped line segments onto an RGBA image.
type painter struct {
	z *vector.Rasterizer
}

// segment paints a segment from a to b of the given width. Every sub-shape
// is traced with the same orientation so that overlapping coverage adds up
// and clamps instead of cancelling.
func (p *painter) segment(dst *image.RGBA, a, b state.Point, width float32, c color.Color) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	if p.z == nil {
		p.z = vector.NewRasterizer(w, h)
	} else {
		p.z.Reset(w, h)
	}

	r := width / 2
	dx, dy := b.X-a.X, b.Y-a.Y
	if l := float32(math.Hypot(float64(dx), float64(dy))); l > 0 {
		nx, ny := -dy/l*r, dx/l*r
		p.z.MoveTo(a.X+nx, a.Y+ny)
		p.z.LineTo(b.X+nx, b.Y+ny)
		p.z.LineTo(b.X-nx, b.Y-ny)
		p.z.LineTo(a.X-nx, a.Y-ny)
		p.z.ClosePath()
		p.circle(b, r)
	}
	p.circle(a, r)

	p.z.Draw(dst, dst.Rect, image.NewUniform(c), image.Point{})
}

// circle traces a circle clockwise in screen terms, matching the winding
// of the segment body above.
func (p *painter) circle(c state.Point, r float32) {
	k := r * kappa
	p.z.MoveTo(c.X+r, c.Y)
	p.z.CubeTo(c.X+r, c.Y-k, c.X+k, c.Y-r, c.X, c.Y-r)
	p.z.CubeTo(c.X-k, c.Y-r, c.X-r, c.Y-k, c.X-r, c.Y)
	p.z.CubeTo(c.X-r, c.Y+k, c.X-k, c.Y+r, c.X, c.Y+r)
	p.z.CubeTo(c.X+k, c.Y+r, c.X+r, c.Y+k, c.X+r, c.Y)
	p.z.ClosePath()
}
