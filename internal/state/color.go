package state

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// LinearRGBA is a color with linear (not gamma encoded) components.
type LinearRGBA struct {
	R, G, B, A float32
}

func (c LinearRGBA) Lerp(o LinearRGBA, t float32) LinearRGBA {
	return LinearRGBA{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// NRGBA converts to an 8 bit sRGB color for software renderers.
func (c LinearRGBA) NRGBA() color.NRGBA {
	r, g, b := colorful.LinearRgb(float64(c.R), float64(c.G), float64(c.B)).Clamped().RGB255()
	a := math32.Max(0, math32.Min(1, c.A))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

// ColorFromHex parses "#rrggbb" into an opaque linear color.
func ColorFromHex(s string) (LinearRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return LinearRGBA{}, err
	}
	return FromColor(c), nil
}

// FromColor converts any image color to linear RGBA.
func FromColor(c color.Color) LinearRGBA {
	cf, alpha := colorful.MakeColor(c)
	if !alpha {
		return LinearRGBA{}
	}
	r, g, b := cf.LinearRgb()
	_, _, _, a := c.RGBA()
	return LinearRGBA{R: float32(r), G: float32(g), B: float32(b), A: float32(a) / 0xffff}
}
