package orb

import (
	"fmt"
	"image/color"

	css "github.com/mazznoer/csscolorparser"
)

// RGB is a linear color with channels nominally in [0, 1].
type RGB struct {
	R, G, B float64
}

func ParseRGB(str string) (RGB, error) {
	c, err := css.Parse(str)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", str, err)
	}

	return RGB{R: c.R, G: c.G, B: c.B}, nil
}

// MustParseRGB is for built-in tables only.
func MustParseRGB(str string) RGB {
	c, err := ParseRGB(str)
	if err != nil {
		panic(err)
	}
	return c
}

func (c RGB) Lerp(to RGB, t float64) RGB {
	return RGB{
		R: Lerp(c.R, to.R, t),
		G: Lerp(c.G, to.G, t),
		B: Lerp(c.B, to.B, t),
	}
}

func (c RGB) Scale(s float64) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Clamp01 clamps every channel to [0, 1], NaN channels become 0.
func (c RGB) Clamp01() RGB {
	return RGB{
		R: Clamp(finiteOr(c.R, 0), 0, 1),
		G: Clamp(finiteOr(c.G, 0), 0, 1),
		B: Clamp(finiteOr(c.B, 0), 0, 1),
	}
}

// Distance is the largest per channel difference.
func (c RGB) Distance(o RGB) float64 {
	return max(abs(c.R-o.R), abs(c.G-o.G), abs(c.B-o.B))
}

func (c RGB) NRGBA() color.NRGBA {
	c = c.Clamp01()
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 255,
	}
}

func (c RGB) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
