//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"pepse/internal/flora"
	"pepse/internal/world"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the world view. Keys 1-3
// toggle chunk borders, the raw height curve and hit boxes.
type Overlay struct {
	world      *world.World
	showChunks bool
	showHeight bool
	showBoxes  bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Attach points the overlay at w.
func (o *Overlay) Attach(w *world.World) { o.world = w }

// Update handles the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showChunks = !o.showChunks
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHeight = !o.showHeight
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showBoxes = !o.showBoxes
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.world == nil {
		return
	}
	cam := o.world.Camera()
	cfg := o.world.Config()
	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)

	if o.showChunks {
		width := cfg.ChunkWidth()
		first := math.Floor(cam.X() / width)
		for x := first * width; x <= cam.X()+w; x += width {
			sx := x - cam.X()
			col := color.RGBA{R: 255, G: 80, B: 200, A: 160}
			if !o.world.HasChunk(int(math.Floor(x / width))) {
				col = color.RGBA{R: 120, G: 120, B: 120, A: 120}
			}
			o.drawLine(screen, sx, 0, sx, h, 1, col)
		}
	}

	if o.showHeight {
		field := o.world.Terrain()
		const stride = 4
		prevY := field.HeightAt(cam.X()) - cam.Y()
		for sx := float64(stride); sx <= w; sx += stride {
			y := field.HeightAt(cam.X()+sx) - cam.Y()
			o.drawLine(screen, sx-stride, prevY, sx, y, 2, color.RGBA{R: 255, G: 240, B: 60, A: 220})
			prevY = y
		}
		base := field.Baseline() - cam.Y()
		o.drawLine(screen, 0, base, w, base, 1, color.RGBA{R: 255, G: 255, B: 255, A: 90})
	}

	if o.showBoxes {
		av := o.world.Avatar()
		o.drawBox(screen, av.Pos.Sub(cam), av.Size, color.RGBA{R: 255, G: 60, B: 60, A: 220})
		for _, f := range o.world.Fruit() {
			if f.State() != flora.Available {
				continue
			}
			obj := f.Object()
			p := obj.Pos.Sub(cam)
			if p.X()+obj.Size.X() < 0 || p.X() > w {
				continue
			}
			o.drawBox(screen, p, obj.Size, color.RGBA{R: 60, G: 255, B: 120, A: 200})
		}
	}
}

func (o *Overlay) drawBox(screen *ebiten.Image, p, size mgl64.Vec2, col color.RGBA) {
	x0, y0 := p.X(), p.Y()
	x1, y1 := x0+size.X(), y0+size.Y()
	o.drawLine(screen, x0, y0, x1, y0, 1, col)
	o.drawLine(screen, x1, y0, x1, y1, 1, col)
	o.drawLine(screen, x1, y1, x0, y1, 1, col)
	o.drawLine(screen, x0, y1, x0, y0, 1, col)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
