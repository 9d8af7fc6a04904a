package render

import (
	"image/color"

	"pepse/internal/core"
)

// fillRGBA paints every pixel of buf with c.
func fillRGBA(buf []byte, c color.RGBA) {
	for base := 0; base+3 < len(buf); base += 4 {
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}

// blendPixel composites c over the pixel at base with the given coverage in
// [0,1]. The destination stays opaque.
func blendPixel(buf []byte, base int, c color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	dst := color.RGBA{R: buf[base+0], G: buf[base+1], B: buf[base+2], A: 255}
	out := core.Blend(dst, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}, alpha)
	buf[base+0] = out.R
	buf[base+1] = out.G
	buf[base+2] = out.B
	buf[base+3] = 255
}
