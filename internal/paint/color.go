package paint

import (
	"fmt"

	"github.com/gogpu/gg"
)

// Color is an immutable HSL color. H is in degrees, S and L in percent.
type Color struct {
	H, S, L float64
}

// HSL builds a Color from hue (degrees), saturation and lightness (percent).
func HSL(h, s, l float64) Color {
	return Color{H: h, S: s, L: l}
}

// RGBA converts the color to an opaque gg color.
func (c Color) RGBA() gg.RGBA {
	return gg.HSL(c.H, c.S/100, c.L/100)
}

func (c Color) String() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", c.H, c.S, c.L)
}

// RandomColor picks a saturated mid-lightness color: hue in [0,360),
// saturation in [70,100) and lightness in [40,60).
func RandomColor(r Rand) Color {
	return Color{
		H: between(r, 0, 360),
		S: between(r, 70, 100),
		L: between(r, 40, 60),
	}
}
