// Package weather drifts pixel-art clouds across the sky and turns them into
// short rain bursts when the avatar jumps.
package weather

import (
	"fmt"
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/core"
	corerng "pepse/pkg/core"
)

// CloudColor is the base color of cloud blocks.
var CloudColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// DefaultShape is the bitmap every spawned cloud uses. The empty last row is
// part of the shape and does not count toward its bounds.
var DefaultShape = core.ByteGridFromRows([][]uint8{
	{0, 1, 1, 0, 0, 0},
	{1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1},
	{0, 1, 1, 1, 0, 0},
	{0, 0, 0, 0, 0, 0},
})

// CloudOptions configure one cloud.
type CloudOptions struct {
	Cell   float64
	Travel float64
	// Speed is the drift in pixels per second.
	Speed float64
	Layer core.Layer
	// Shade, when set, varies each block's grey level.
	Shade *corerng.RNG
}

// Cloud is a rigid group of blocks drifting right in a loop.
type Cloud struct {
	origin  mgl64.Vec2
	blocks  []*core.Object
	offsets []mgl64.Vec2
	driver  *core.Object
	shift   float64
}

// NewCloud builds one block per filled cell of shape, with topLeft as the
// origin of cell (0,0), and starts its drift loop. A nil shape means
// DefaultShape.
func NewCloud(host core.Host, topLeft mgl64.Vec2, shape *core.ByteGrid, opts CloudOptions) (*Cloud, error) {
	if host == nil {
		return nil, fmt.Errorf("%w: cloud needs a host", ErrInvalidOptions)
	}
	if !(opts.Cell > 0) {
		return nil, fmt.Errorf("%w: cloud cell %v must be positive", ErrInvalidOptions, opts.Cell)
	}
	if opts.Travel < 0 || opts.Speed < 0 {
		return nil, fmt.Errorf("%w: cloud travel %v and speed %v must not be negative", ErrInvalidOptions, opts.Travel, opts.Speed)
	}
	if shape == nil {
		shape = DefaultShape
	}
	c := &Cloud{origin: topLeft, driver: core.NewDriver("cloud")}
	size := mgl64.Vec2{opts.Cell, opts.Cell}
	for y := 0; y < shape.H; y++ {
		for x := 0; x < shape.W; x++ {
			if shape.At(x, y) == 0 {
				continue
			}
			off := mgl64.Vec2{float64(x) * opts.Cell, float64(y) * opts.Cell}
			b := core.NewObject(core.TagCloud, topLeft.Add(off), size, mono(opts.Shade, CloudColor))
			b.Space = core.SpaceCamera
			host.Add(b, opts.Layer)
			c.blocks = append(c.blocks, b)
			c.offsets = append(c.offsets, off)
		}
	}

	host.Add(c.driver, core.LayerTasks)
	if opts.Speed > 0 && opts.Travel > 0 {
		host.Tween(c.driver, core.Tween{
			From:     0,
			To:       opts.Travel,
			Duration: time.Duration(opts.Travel / opts.Speed * float64(time.Second)),
			Mode:     core.TweenLoop,
			OnTick:   c.moveTo,
		})
	}
	return c, nil
}

// moveTo places every block at the same horizontal shift from its spawn
// position, so the shape never deforms and a loop wrap snaps it back whole.
func (c *Cloud) moveTo(shift float64) {
	c.shift = shift
	for i, b := range c.blocks {
		b.Pos = c.origin.Add(c.offsets[i]).Add(mgl64.Vec2{shift, 0})
	}
}

// BottomCenter returns the midpoint of the bottom edge of the cloud's current
// bounding box. It is recomputed from the blocks on every call.
func (c *Cloud) BottomCenter() mgl64.Vec2 {
	lo, hi, ok := core.Bounds(c.blocks)
	if !ok {
		return c.origin.Add(mgl64.Vec2{c.shift, 0})
	}
	return mgl64.Vec2{(lo.X() + hi.X()) / 2, hi.Y()}
}

// Blocks returns the cloud's blocks.
func (c *Cloud) Blocks() []*core.Object {
	out := make([]*core.Object, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Shift returns the current drift distance from the spawn position.
func (c *Cloud) Shift() float64 { return c.shift }

// Origin returns the spawn top-left corner.
func (c *Cloud) Origin() mgl64.Vec2 { return c.origin }

func mono(rng *corerng.RNG, base color.RGBA) color.RGBA {
	if rng == nil {
		return base
	}
	d := rng.IntRange(-20, 0)
	v := func(ch uint8) uint8 { return uint8(max(0, min(255, int(ch)+d))) }
	return color.RGBA{R: v(base.R), G: v(base.G), B: v(base.B), A: base.A}
}
