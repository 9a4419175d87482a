package stroke

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColor is the initial selected color.
const DefaultColor = "#000000"

// ParseColor parses "#rgb" or "#rrggbb" into an opaque color.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("stroke: invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// HexString formats c as "#rrggbb", ignoring alpha.
func HexString(c color.Color) string {
	if c == nil {
		return DefaultColor
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return DefaultColor
	}
	return cf.Hex()
}
