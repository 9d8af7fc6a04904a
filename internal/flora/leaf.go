package flora

import (
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/core"
)

// LeafColor is the base leaf color.
var LeafColor = color.RGBA{R: 50, G: 200, B: 30, A: 255}

// SwayOptions shape the wind motion of a leaf.
type SwayOptions struct {
	// Angle is the maximum tilt in degrees either side of upright.
	Angle  float64
	Period time.Duration
	// Delay is when the sway starts, drawn per leaf.
	Delay time.Duration
	// Squeeze is the fraction of width lost at the narrowest point.
	Squeeze float64
}

// Leaf is a decorative canopy block.
type Leaf struct {
	obj *core.Object
}

func newLeaf(host core.Host, topLeft mgl64.Vec2, size float64, c color.RGBA, layer core.Layer, sway SwayOptions) *Leaf {
	obj := core.NewObject(core.TagLeaf, topLeft, mgl64.Vec2{size, size}, c)
	host.Add(obj, layer)
	l := &Leaf{obj: obj}
	if sway.Period > 0 {
		host.ScheduleOnce(obj, sway.Delay, func() { l.startSway(host, sway) })
	}
	return l
}

func (l *Leaf) startSway(host core.Host, sway SwayOptions) {
	host.Tween(l.obj, core.Tween{
		From: -sway.Angle, To: sway.Angle,
		Duration: sway.Period,
		Mode:     core.TweenBackAndForth,
		OnTick:   func(a float64) { l.obj.Angle = a },
	})
	if sway.Squeeze <= 0 {
		return
	}
	full := l.obj.Size.X()
	host.Tween(l.obj, core.Tween{
		From: full, To: full * (1 - sway.Squeeze),
		Duration: sway.Period,
		Mode:     core.TweenBackAndForth,
		OnTick: func(w float64) {
			c := l.obj.Center()
			l.obj.Size = mgl64.Vec2{w, l.obj.Size.Y()}
			l.obj.SetCenter(c)
		},
	})
}

// Object returns the scene object drawn for the leaf.
func (l *Leaf) Object() *core.Object { return l.obj }
