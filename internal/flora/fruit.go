package flora

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/core"
)

// State is the lifecycle state of a fruit.
type State uint8

const (
	Available State = iota
	Consumed
)

func (s State) String() string {
	if s == Consumed {
		return "consumed"
	}
	return "available"
}

// Forager receives the energy of eaten fruit. Capping is the forager's job.
type Forager interface {
	AddEnergy(amount float64)
}

// FruitColors are the base colors a fruit is drawn from.
var FruitColors = []color.RGBA{
	{R: 255, G: 100, B: 100, A: 255},
	{R: 255, G: 165, B: 0, A: 255},
}

// FruitOptions configure a single fruit.
type FruitOptions struct {
	Diameter float64
	Energy   float64
	Respawn  time.Duration

	// The fruit bobs between -FloatOffset and +FloatOffset every FloatPeriod.
	FloatOffset float64
	FloatPeriod time.Duration

	Color   color.RGBA
	Layer   core.Layer
	Forager Forager
	Logger  *slog.Logger
}

// Fruit is a consumable that respawns at its anchor after a fixed delay.
type Fruit struct {
	obj      *core.Object
	restorer *core.Object
	anchor   mgl64.Vec2

	state   State
	host    core.Host
	opts    FruitOptions
	eaten   int
	respawn int
}

// NewFruit places a fruit centered on anchor and starts its floating motion.
// The float tween and respawn timer live on an auxiliary restorer object so
// they survive the fruit leaving the scene.
func NewFruit(host core.Host, anchor mgl64.Vec2, opts FruitOptions) (*Fruit, error) {
	if host == nil {
		return nil, fmt.Errorf("%w: fruit needs a host", ErrInvalidOptions)
	}
	if !(opts.Diameter > 0) {
		return nil, fmt.Errorf("%w: fruit diameter %v must be positive", ErrInvalidOptions, opts.Diameter)
	}
	if opts.Respawn < 0 {
		return nil, fmt.Errorf("%w: fruit respawn %v is negative", ErrInvalidOptions, opts.Respawn)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	size := mgl64.Vec2{opts.Diameter, opts.Diameter}
	obj := core.NewObject(core.TagFruit, anchor.Sub(size.Mul(0.5)), size, opts.Color)
	obj.Shape = core.ShapeOval

	f := &Fruit{
		obj:      obj,
		restorer: core.NewDriver("fruit-restorer"),
		anchor:   anchor,
		host:     host,
		opts:     opts,
	}
	obj.OnCollision = func(other *core.Object) {
		if other.Tag == core.TagAvatar {
			f.Consume()
		}
	}

	host.Add(f.restorer, core.LayerTasks)
	host.Add(obj, opts.Layer)
	if opts.FloatPeriod > 0 && opts.FloatOffset != 0 {
		host.Tween(f.restorer, core.Tween{
			From:     -opts.FloatOffset,
			To:       opts.FloatOffset,
			Duration: opts.FloatPeriod,
			Mode:     core.TweenBackAndForth,
			OnTick: func(dy float64) {
				f.obj.SetCenter(f.anchor.Add(mgl64.Vec2{0, dy}))
			},
		})
	}
	return f, nil
}

// Consume grants the fruit's energy and hides it until the respawn timer
// expires. It returns false if the fruit was already consumed.
func (f *Fruit) Consume() bool {
	if f.state != Available {
		return false
	}
	if f.opts.Forager != nil {
		f.opts.Forager.AddEnergy(f.opts.Energy)
	}
	f.state = Consumed
	f.eaten++
	f.host.Remove(f.obj, f.opts.Layer)
	f.host.ScheduleOnce(f.restorer, f.opts.Respawn, f.restore)
	return true
}

func (f *Fruit) restore() {
	f.obj.SetCenter(f.anchor)
	f.state = Available
	f.respawn++
	f.host.Add(f.obj, f.opts.Layer)
	f.opts.Logger.Debug("fruit respawned", "x", f.anchor.X(), "y", f.anchor.Y())
}

// State returns the current lifecycle state.
func (f *Fruit) State() State { return f.state }

// Object returns the scene object drawn for the fruit.
func (f *Fruit) Object() *core.Object { return f.obj }

// Restorer returns the always-alive object owning the fruit's timers.
func (f *Fruit) Restorer() *core.Object { return f.restorer }

// Anchor returns the spawn center the fruit returns to.
func (f *Fruit) Anchor() mgl64.Vec2 { return f.anchor }

// Energy returns the energy granted when eaten.
func (f *Fruit) Energy() float64 { return f.opts.Energy }

// Stats returns how many times the fruit was eaten and respawned.
func (f *Fruit) Stats() (eaten, respawned int) { return f.eaten, f.respawn }
