// Package world assembles terrain, flora, weather and the day/night cycle into
// a scrolling world driven by a host runtime.
package world

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/config"
	"pepse/internal/core"
	"pepse/internal/daynight"
	"pepse/internal/flora"
	"pepse/internal/noise"
	"pepse/internal/terrain"
	"pepse/internal/weather"
	corerng "pepse/pkg/core"
)

// AvatarColor is the color of the avatar marker.
var AvatarColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}

// Host is the runtime a World needs: the core host contract plus a contact
// query standing in for the collision engine.
type Host interface {
	core.Host
	Contacts(actor *core.Object, layer core.Layer) int
}

// Options carry the collaborators that are not part of the configuration.
type Options struct {
	Logger *slog.Logger
	// FloraRNG drives tree, cloud and rain placement. When nil it is seeded
	// from WorldConfig.FloraSeed, or from entropy if that is zero.
	FloraRNG *corerng.RNG
	// CosmeticRNG varies block colors. It defaults to a stream seeded with
	// the terrain seed.
	CosmeticRNG *corerng.RNG
}

// Stats counts what the world has generated so far.
type Stats struct {
	Chunks int
	Blocks int
	Trees  int
	Leaves int
	Fruit  int
}

// World owns every generator and the avatar marker.
type World struct {
	cfg  config.WorldConfig
	host Host
	log  *slog.Logger

	field     *terrain.Field
	generator *terrain.Generator
	planter   *flora.Planter
	scatterer *flora.Scatterer
	spawner   *weather.Spawner
	rain      *weather.Rain
	cycle     *daynight.Cycle

	bus    JumpBus
	energy *Energy
	avatar *core.Object

	chunks map[int]bool
	stats  Stats
	fruit  []*flora.Fruit
}

// New validates cfg and builds the world. Nothing moves until Start is called
// and the host ticks.
func New(cfg config.WorldConfig, h Host, opts Options) (*World, error) {
	if h == nil {
		return nil, errors.New("world: nil host")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	floraRNG := opts.FloraRNG
	if floraRNG == nil {
		if cfg.FloraSeed != 0 {
			floraRNG = corerng.NewRNG(cfg.FloraSeed)
		} else {
			floraRNG = corerng.NewEntropyRNG()
		}
	}
	shade := opts.CosmeticRNG
	if shade == nil {
		shade = corerng.NewRNG(cfg.Seed)
	}

	t := cfg.Terrain
	n, err := noise.New(t.Noise, noise.Params{Seed: cfg.Seed, Amplitude: t.Amplitude, Scale: t.Scale, Octaves: t.Octaves})
	if err != nil {
		return nil, fmt.Errorf("world: terrain noise: %w", err)
	}
	field, err := terrain.NewField(n, cfg.Baseline(), t.CellSize)
	if err != nil {
		return nil, fmt.Errorf("world: terrain field: %w", err)
	}
	gen, err := terrain.NewGenerator(field, terrain.GeneratorOptions{Depth: t.Depth, Physics: h, Shade: shade})
	if err != nil {
		return nil, fmt.Errorf("world: terrain generator: %w", err)
	}

	w := &World{
		cfg:       cfg,
		host:      h,
		log:       log,
		field:     field,
		generator: gen,
		energy:    NewEnergy(cfg.Avatar.MaxEnergy),
		chunks:    make(map[int]bool),
	}

	w.planter, err = flora.NewPlanter(flora.Options{
		Config:  cfg.Flora,
		Host:    h,
		Ground:  field,
		Forager: w.energy,
		Logger:  log,
	})
	if err != nil {
		return nil, fmt.Errorf("world: flora: %w", err)
	}
	w.scatterer, err = flora.NewScatterer(w.planter, floraRNG)
	if err != nil {
		return nil, fmt.Errorf("world: flora: %w", err)
	}

	w.spawner, err = weather.NewSpawner(weather.SpawnerOptions{
		Config: cfg.Weather,
		Host:   h,
		RNG:    floraRNG.Child(),
		Layer:  core.LayerClouds,
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("world: clouds: %w", err)
	}
	w.rain, err = weather.NewRain(weather.RainOptions{
		Config: cfg.Weather,
		Host:   h,
		Clouds: w.spawner,
		RNG:    floraRNG.Child(),
		Layer:  core.LayerClouds,
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("world: rain: %w", err)
	}
	w.bus.Subscribe(w.rain)

	w.cycle, err = daynight.New(h, core.Size{W: cfg.Window.Width, H: cfg.Window.Height}, cfg.DayNight)
	if err != nil {
		return nil, fmt.Errorf("world: day/night: %w", err)
	}

	a := cfg.Avatar
	w.avatar = core.NewObject(core.TagAvatar, mgl64.Vec2{}, mgl64.Vec2{a.Width, a.Height}, AvatarColor)
	h.Add(w.avatar, core.LayerDefault)
	w.Follow(float64(cfg.Window.Width) / 2)

	log.Info("world assembled",
		"seed", cfg.Seed, "noise", t.Noise, "chunks", w.stats.Chunks, "blocks", w.stats.Blocks, "trees", w.stats.Trees)
	return w, nil
}

// Start begins cloud spawning.
func (w *World) Start() {
	w.spawner.Start()
}

// Subscribe adds a jump listener. Intended for assembly time only.
func (w *World) Subscribe(l core.JumpListener) { w.bus.Subscribe(l) }

// Jump spends the jump cost and, if the avatar could afford it, notifies
// every jump listener.
func (w *World) Jump() bool {
	if !w.energy.Spend(w.cfg.Avatar.JumpCost) {
		return false
	}
	w.bus.Publish()
	return true
}

// Walk moves the avatar horizontally by dx if it has the energy for a step.
func (w *World) Walk(dx float64) bool {
	if dx == 0 || !w.energy.Spend(w.cfg.Avatar.MoveCost) {
		return false
	}
	w.Follow(w.avatar.Center().X() + dx)
	return true
}

// Rest recovers idle energy without exceeding the maximum.
func (w *World) Rest() {
	w.energy.Recover(w.cfg.Avatar.IdleRecovery)
}

// Follow stands the avatar on the ground at x and streams the visible range
// plus the configured margin.
func (w *World) Follow(x float64) {
	size := w.avatar.Size
	ground := w.field.SurfaceAt(x)
	w.avatar.Pos = mgl64.Vec2{x - size.X()/2, ground - size.Y()}

	half := float64(w.cfg.Window.Width) / 2
	margin := float64(w.cfg.Terrain.MarginChunks) * w.cfg.ChunkWidth()
	w.EnsureRange(x-half-margin, x+half+margin)
}

// Update dispatches avatar contacts with fruit. Call once per frame after the
// host ticks.
func (w *World) Update() int {
	return w.host.Contacts(w.avatar, flora.DefaultLayers.Fruit)
}

// EnsureRange generates terrain and flora for every chunk overlapping
// [minX, maxX] that has not been generated yet and returns how many chunks
// were added. Chunks are never unloaded.
func (w *World) EnsureRange(minX, maxX float64) int {
	if minX > maxX {
		return 0
	}
	width := w.cfg.ChunkWidth()
	first := int(math.Floor(minX / width))
	last := int(math.Floor(maxX / width))
	added := 0
	for i := first; i <= last; i++ {
		if w.chunks[i] {
			continue
		}
		w.chunks[i] = true
		w.streamChunk(i, width)
		added++
	}
	return added
}

func (w *World) streamChunk(i int, width float64) {
	lo := float64(i) * width
	hi := lo + width
	blocks := w.generator.Generate(lo, hi-w.field.CellSize())
	for _, b := range blocks {
		w.host.Add(b, core.LayerStatic)
	}
	trees := w.scatterer.Scatter(lo, hi)
	for _, tr := range trees {
		w.stats.Leaves += len(tr.Leaves)
		w.stats.Fruit += len(tr.Fruit)
		w.fruit = append(w.fruit, tr.Fruit...)
	}
	w.stats.Chunks++
	w.stats.Blocks += len(blocks)
	w.stats.Trees += len(trees)
	w.log.Debug("chunk streamed", "chunk", i, "min_x", lo, "blocks", len(blocks), "trees", len(trees))
}

// HasChunk reports whether chunk i has been generated.
func (w *World) HasChunk(i int) bool { return w.chunks[i] }

// Camera returns the world-space top-left corner of the view, centered on the
// avatar horizontally.
func (w *World) Camera() mgl64.Vec2 {
	return mgl64.Vec2{w.avatar.Center().X() - float64(w.cfg.Window.Width)/2, 0}
}

func (w *World) Config() config.WorldConfig { return w.cfg }
func (w *World) Terrain() *terrain.Field { return w.field }
func (w *World) Generator() *terrain.Generator { return w.generator }
func (w *World) Scatterer() *flora.Scatterer { return w.scatterer }
func (w *World) Spawner() *weather.Spawner { return w.spawner }
func (w *World) Rain() *weather.Rain { return w.rain }
func (w *World) Cycle() *daynight.Cycle { return w.cycle }
func (w *World) Avatar() *core.Object { return w.avatar }
func (w *World) Energy() *Energy { return w.energy }
func (w *World) Bus() *JumpBus { return &w.bus }
func (w *World) Stats() Stats { return w.stats }
func (w *World) Fruit() []*flora.Fruit { return w.fruit }
