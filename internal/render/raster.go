// Package render rasterizes scene objects into RGBA buffers on the CPU. Every
// frontend draws through it.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/core"
)

// Scene is the read side of the host scene graph.
type Scene interface {
	Layers() []core.Layer
	Objects(layer core.Layer) []*core.Object
}

// Rasterizer draws scenes into a fixed-size image.
type Rasterizer struct {
	img        *image.RGBA
	background color.RGBA
}

// NewRasterizer allocates a w×h frame.
func NewRasterizer(w, h int) *Rasterizer {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Rasterizer{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		background: color.RGBA{A: 255},
	}
}

// Image returns the frame. It is overwritten by the next Draw.
func (r *Rasterizer) Image() *image.RGBA { return r.img }

// Pixels returns the frame's backing RGBA bytes.
func (r *Rasterizer) Pixels() []byte { return r.img.Pix }

// Size returns the frame size.
func (r *Rasterizer) Size() core.Size {
	b := r.img.Bounds()
	return core.Size{W: b.Dx(), H: b.Dy()}
}

// Draw clears the frame and paints every visible layer bottom to top. World
// space objects are shifted by -camera; camera space objects are not.
func (r *Rasterizer) Draw(scene Scene, camera mgl64.Vec2) {
	fillRGBA(r.img.Pix, r.background)
	for _, layer := range scene.Layers() {
		if layer == core.LayerTasks {
			continue
		}
		for _, o := range scene.Objects(layer) {
			r.drawObject(o, camera)
		}
	}
}

func (r *Rasterizer) drawObject(o *core.Object, camera mgl64.Vec2) {
	if o.Shape == core.ShapeNone || o.Opacity <= 0 || o.Color.A == 0 {
		return
	}
	pos := o.Pos
	if o.Space == core.SpaceWorld {
		pos = pos.Sub(camera)
	}
	alpha := o.Opacity * float64(o.Color.A) / 255
	size := o.Size
	center := pos.Add(size.Mul(0.5))

	// Rotated shapes are sampled inside the bounding box of the rotated
	// rectangle through the inverse rotation.
	var inv mgl64.Mat2
	ext := size.Mul(0.5)
	rotated := o.Angle != 0
	if rotated {
		rad := mgl64.DegToRad(o.Angle)
		inv = mgl64.Rotate2D(-rad)
		c, s := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
		ext = mgl64.Vec2{ext.X()*c + ext.Y()*s, ext.X()*s + ext.Y()*c}
	}

	bounds := r.img.Bounds()
	x0 := max(bounds.Min.X, int(math.Floor(center.X()-ext.X())))
	y0 := max(bounds.Min.Y, int(math.Floor(center.Y()-ext.Y())))
	x1 := min(bounds.Max.X, int(math.Ceil(center.X()+ext.X())))
	y1 := min(bounds.Max.Y, int(math.Ceil(center.Y()+ext.Y())))
	if x0 >= x1 || y0 >= y1 {
		return
	}

	hw, hh := size.X()/2, size.Y()/2
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			// Sample at the pixel center, relative to the shape center.
			p := mgl64.Vec2{float64(x) + 0.5, float64(y) + 0.5}.Sub(center)
			if rotated {
				p = inv.Mul2x1(p)
			}
			if !inside(o.Shape, p, hw, hh) {
				continue
			}
			blendPixel(r.img.Pix, r.img.PixOffset(x, y), o.Color, alpha)
		}
	}
}

func inside(shape core.Shape, p mgl64.Vec2, hw, hh float64) bool {
	if hw <= 0 || hh <= 0 {
		return false
	}
	switch shape {
	case core.ShapeOval:
		nx, ny := p.X()/hw, p.Y()/hh
		return nx*nx+ny*ny <= 1
	default:
		return math.Abs(p.X()) <= hw && math.Abs(p.Y()) <= hh
	}
}

// Downsample averages the frame into cols×rows cells, row-major. Terminal
// frontends draw one character per cell.
func (r *Rasterizer) Downsample(cols, rows int) []color.RGBA {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	b := r.img.Bounds()
	out := make([]color.RGBA, cols*rows)
	for cy := 0; cy < rows; cy++ {
		py0, py1 := cy*b.Dy()/rows, max((cy+1)*b.Dy()/rows, cy*b.Dy()/rows+1)
		for cx := 0; cx < cols; cx++ {
			px0, px1 := cx*b.Dx()/cols, max((cx+1)*b.Dx()/cols, cx*b.Dx()/cols+1)
			var sr, sg, sb, n int
			for y := py0; y < py1 && y < b.Dy(); y++ {
				for x := px0; x < px1 && x < b.Dx(); x++ {
					i := r.img.PixOffset(x, y)
					sr += int(r.img.Pix[i])
					sg += int(r.img.Pix[i+1])
					sb += int(r.img.Pix[i+2])
					n++
				}
			}
			if n > 0 {
				out[cy*cols+cx] = color.RGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: 255}
			}
		}
	}
	return out
}
