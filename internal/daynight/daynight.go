// Package daynight adds the sky backdrop, the night overlay and the orbiting
// sun with its halo.
package daynight

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/config"
	"pepse/internal/core"
)

var (
	SkyColor   = color.RGBA{R: 0x80, G: 0xC6, B: 0xE5, A: 255}
	NightColor = color.RGBA{A: 255}
	SunColor   = color.RGBA{R: 255, G: 255, A: 255}
	HaloColor  = color.RGBA{R: 255, G: 255, A: 20}
)

// Tags of the day/night objects.
const (
	TagSky   = "sky"
	TagNight = "night"
	TagSun   = "sun"
	TagHalo  = "sun-halo"
)

// Cycle is the assembled day/night scenery.
type Cycle struct {
	Sky   *core.Object
	Night *core.Object
	Sun   *core.Object
	Halo  *core.Object

	orbit mgl64.Vec2
	start mgl64.Vec2
	angle float64
}

// New creates the scenery for a window of the given size and starts the
// night fade and the sun orbit.
func New(host core.Host, window core.Size, cfg config.DayNightConfig) (*Cycle, error) {
	if !(cfg.Cycle > 0) {
		return nil, fmt.Errorf("daynight: cycle must be positive, got %v", cfg.Cycle)
	}
	if window.W <= 0 || window.H <= 0 {
		return nil, fmt.Errorf("daynight: window %dx%d is empty", window.W, window.H)
	}
	size := window.Vec()

	c := &Cycle{
		Sky:   camera(core.NewObject(TagSky, mgl64.Vec2{}, size, SkyColor)),
		Night: camera(core.NewObject(TagNight, mgl64.Vec2{}, size, NightColor)),
		Sun:   camera(oval(TagSun, cfg.SunDiameter, SunColor)),
		Halo:  camera(oval(TagHalo, cfg.HaloDiameter, HaloColor)),
		orbit: mgl64.Vec2{size.X() / 2, size.Y() / 3},
	}
	c.start = c.orbit.Sub(mgl64.Vec2{0, cfg.OrbitRadius})
	c.Night.Opacity = 0
	c.Sun.SetCenter(c.start)
	c.Halo.SetCenter(c.start)

	host.Add(c.Sky, core.LayerBackground)
	host.Add(c.Sun, core.LayerBackground)
	host.Add(c.Halo, core.LayerBackground)
	host.Add(c.Night, core.LayerForeground)

	host.Tween(c.Night, core.Tween{
		From: 0, To: cfg.MidnightOpacity,
		Duration: config.Seconds(cfg.Cycle / 2),
		Mode:     core.TweenBackAndForth,
		Ease:     core.EaseCubicInOut,
		OnTick:   func(v float64) { c.Night.Opacity = v },
	})
	host.Tween(c.Sun, core.Tween{
		From: 0, To: 360,
		Duration: config.Seconds(cfg.Cycle),
		Mode:     core.TweenLoop,
		OnTick:   c.setAngle,
	})
	return c, nil
}

// setAngle places the sun on its orbit and brings the halo along in the
// same tick.
func (c *Cycle) setAngle(deg float64) {
	c.angle = deg
	rot := mgl64.Rotate2D(mgl64.DegToRad(deg))
	p := c.orbit.Add(rot.Mul2x1(c.start.Sub(c.orbit)))
	c.Sun.SetCenter(p)
	c.Halo.SetCenter(p)
}

// Angle returns the sun's current orbit angle in degrees.
func (c *Cycle) Angle() float64 { return c.angle }

// OrbitCenter returns the point the sun circles.
func (c *Cycle) OrbitCenter() mgl64.Vec2 { return c.orbit }

// Daylight returns 1 at noon and 0 at the darkest point of the night.
func (c *Cycle) Daylight(midnight float64) float64 {
	if midnight <= 0 {
		return 1
	}
	return math.Max(0, 1-c.Night.Opacity/midnight)
}

func camera(o *core.Object) *core.Object {
	o.Space = core.SpaceCamera
	return o
}

func oval(tag string, d float64, c color.RGBA) *core.Object {
	o := core.NewObject(tag, mgl64.Vec2{}, mgl64.Vec2{d, d}, c)
	o.Shape = core.ShapeOval
	return o
}
