package weather

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/config"
	"pepse/internal/core"
	corerng "pepse/pkg/core"
)

// DropColor is the color of rain drops.
var DropColor = color.RGBA{R: 45, G: 74, B: 214, A: 255}

// CloudSource lists the clouds rain falls from.
type CloudSource interface {
	Clouds() []*Cloud
}

// RainOptions configure a Rain.
type RainOptions struct {
	Config config.WeatherConfig
	Host   core.Host
	Clouds CloudSource
	RNG    *corerng.RNG
	Layer  core.Layer
	Logger *slog.Logger
}

// Rain runs at most one burst at a time. A burst spawns drops under every
// cloud on a fixed cadence for a fixed duration, then ends on its own. Drops
// already falling finish their animation after the burst ends.
type Rain struct {
	host   core.Host
	clouds CloudSource
	cfg    config.WeatherConfig
	rng    *corerng.RNG
	layer  core.Layer
	log    *slog.Logger

	active  bool
	bursts  int
	spawned int
	live    int
}

var _ core.JumpListener = (*Rain)(nil)

// NewRain validates opts and returns an idle Rain.
func NewRain(opts RainOptions) (*Rain, error) {
	c := opts.Config
	if opts.Host == nil || opts.Clouds == nil || opts.RNG == nil {
		return nil, fmt.Errorf("%w: host, clouds and rng are required", ErrInvalidOptions)
	}
	if !(c.DropInterval > 0) || !(c.BurstDuration > 0) || !(c.DropDuration > 0) {
		return nil, fmt.Errorf("%w: drop interval, drop duration and burst duration must be positive", ErrInvalidOptions)
	}
	if c.DropSpread < 0 {
		return nil, fmt.Errorf("%w: drop spread must not be negative", ErrInvalidOptions)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Rain{
		host:   opts.Host,
		clouds: opts.Clouds,
		cfg:    c,
		rng:    opts.RNG,
		layer:  opts.Layer,
		log:    log,
	}, nil
}

// OnJump starts a burst unless one is already running.
func (r *Rain) OnJump() {
	if r.active {
		return
	}
	r.active = true
	r.bursts++

	driver := core.NewDriver("rain-burst")
	r.host.Add(driver, core.LayerTasks)
	r.host.ScheduleRepeating(driver, config.Seconds(r.cfg.DropInterval), r.spawnDrops)
	r.host.ScheduleOnce(driver, config.Seconds(r.cfg.BurstDuration), func() {
		r.host.Remove(driver, core.LayerTasks)
		r.active = false
		r.log.Debug("rain burst ended", "burst", r.bursts, "drops", r.spawned)
	})
	r.log.Debug("rain burst started", "burst", r.bursts)
}

func (r *Rain) spawnDrops() {
	for _, cl := range r.clouds.Clouds() {
		r.spawnDrop(cl.BottomCenter())
	}
}

func (r *Rain) spawnDrop(base mgl64.Vec2) {
	c := r.cfg
	x := base.X() + r.rng.Between(-c.DropSpread, c.DropSpread)
	y := base.Y()
	drop := core.NewObject(core.TagDrop, mgl64.Vec2{x - c.DropWidth/2, y}, mgl64.Vec2{c.DropWidth, c.DropHeight}, DropColor)
	drop.Space = core.SpaceCamera
	r.host.Add(drop, r.layer)
	r.spawned++
	r.live++

	d := config.Seconds(c.DropDuration)
	r.host.Tween(drop, core.Tween{
		From: y, To: y + c.DropFall,
		Duration: d,
		Mode:     core.TweenOnce,
		OnTick:   func(v float64) { drop.Pos = mgl64.Vec2{drop.Pos.X(), v} },
	})
	r.host.Tween(drop, core.Tween{
		From: 1, To: 0,
		Duration: d,
		Mode:     core.TweenOnce,
		OnTick:   func(v float64) { drop.Opacity = v },
		OnComplete: func() {
			r.host.Remove(drop, r.layer)
			r.live--
		},
	})
}

// Active reports whether a burst is running.
func (r *Rain) Active() bool { return r.active }

// Bursts returns how many bursts have started.
func (r *Rain) Bursts() int { return r.bursts }

// Drops returns how many drops were spawned in total and how many are still
// falling.
func (r *Rain) Drops() (spawned, live int) { return r.spawned, r.live }

// SetSpread changes the horizontal jitter of drops spawned from now on.
func (r *Rain) SetSpread(spread float64) {
	r.cfg.DropSpread = max(0, spread)
}

// Spread returns the current drop jitter radius.
func (r *Rain) Spread() float64 { return r.cfg.DropSpread }
