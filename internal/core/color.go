package core

import (
	"image/color"

	corerng "pepse/pkg/core"
)

// Approximate shifts each channel of c by a uniform amount in [-delta, delta],
// keeping alpha. A nil rng returns c unchanged.
func Approximate(rng *corerng.RNG, c color.RGBA, delta int) color.RGBA {
	if rng == nil || delta <= 0 {
		return c
	}
	ch := func(v uint8) uint8 {
		n := int(v) + rng.IntRange(-delta, delta)
		if n < 0 {
			n = 0
		} else if n > 255 {
			n = 255
		}
		return uint8(n)
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// Blend mixes two colors using t in [0,1].
func Blend(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
