// Package flora plants trees on the terrain: trunks, swaying leaves and
// respawning fruit.
package flora

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/config"
	"pepse/internal/core"
	corerng "pepse/pkg/core"
)

// ErrInvalidOptions is returned by constructors for unusable parameters.
var ErrInvalidOptions = errors.New("flora: invalid options")

// TrunkColor is the base trunk color.
var TrunkColor = color.RGBA{R: 100, G: 50, B: 20, A: 255}

// Ground answers where the top of the rendered ground is at x.
type Ground interface {
	SurfaceAt(x float64) float64
}

// Layers selects where each part of a tree goes.
type Layers struct {
	Trunk  core.Layer
	Leaves core.Layer
	Fruit  core.Layer
}

// DefaultLayers draws fruit in front of leaves, and leaves in front of trunks.
var DefaultLayers = Layers{
	Trunk:  core.LayerStatic,
	Leaves: core.LayerCanopy,
	Fruit:  core.LayerDefault,
}

// Options configure a Planter.
type Options struct {
	Config  config.FloraConfig
	Host    core.Host
	Ground  Ground
	Forager Forager
	// Layers defaults to DefaultLayers.
	Layers *Layers
	Logger *slog.Logger
}

// Planter builds trees. It keeps no reference to the trees it plants.
type Planter struct {
	cfg     config.FloraConfig
	host    core.Host
	ground  Ground
	forager Forager
	layers  Layers
	log     *slog.Logger
}

// TreeReport describes one planted tree.
type TreeReport struct {
	X      float64
	Trunk  *core.Object
	Leaves []*Leaf
	Fruit  []*Fruit

	// Candidate slots in each bucket before sampling.
	LeafSlots  int
	FruitSlots int
}

// NewPlanter validates opts and returns a Planter.
func NewPlanter(opts Options) (*Planter, error) {
	c := opts.Config
	var errs []error
	if opts.Host == nil || opts.Ground == nil {
		errs = append(errs, fmt.Errorf("%w: host and ground are required", ErrInvalidOptions))
	}
	if c.TrunkMinHeight <= 0 || c.TrunkMaxHeight < c.TrunkMinHeight {
		errs = append(errs, fmt.Errorf("%w: trunk height range [%d,%d]", ErrInvalidOptions, c.TrunkMinHeight, c.TrunkMaxHeight))
	}
	if !(c.TrunkWidth > 0) || !(c.LeafSize > 0) || !(c.FruitSize > 0) {
		errs = append(errs, fmt.Errorf("%w: trunk width, leaf size and fruit size must be positive", ErrInvalidOptions))
	}
	if c.CanopyWidth < 0 || c.CanopyHeight < 0 {
		errs = append(errs, fmt.Errorf("%w: canopy box %vx%v", ErrInvalidOptions, c.CanopyWidth, c.CanopyHeight))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	layers := DefaultLayers
	if opts.Layers != nil {
		layers = *opts.Layers
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Planter{
		cfg:     c,
		host:    opts.Host,
		ground:  opts.Ground,
		forager: opts.Forager,
		layers:  layers,
		log:     log,
	}, nil
}

// PlantTree builds a trunk standing on the ground at x and a canopy of leaves
// and fruit above it, drawing every random choice from rng.
//
// Canopy slots tile a box centered on the trunk's center column and on the
// trunk top, one slot per leaf size. Each slot lands in the leaf or the fruit
// bucket by a coin flip. Each bucket is shuffled and a fixed fraction of it is
// kept. A canopy box smaller than one slot yields no leaves or fruit.
func (p *Planter) PlantTree(x float64, rng *corerng.RNG) TreeReport {
	c := p.cfg
	height := float64(rng.IntRange(c.TrunkMinHeight, c.TrunkMaxHeight))
	bottom := p.ground.SurfaceAt(x)
	top := bottom - height

	trunk := core.NewObject(core.TagTrunk, mgl64.Vec2{x, top}, mgl64.Vec2{c.TrunkWidth, height},
		core.Approximate(rng, TrunkColor, 10))
	p.host.MarkImmovable(trunk)
	p.host.BlockIntersectionFrom(trunk, core.FromAllDirections)
	p.host.Add(trunk, p.layers.Trunk)

	report := TreeReport{X: x, Trunk: trunk}

	cols := int(c.CanopyWidth / c.LeafSize)
	rows := int(c.CanopyHeight / c.LeafSize)
	startX := x + c.TrunkWidth/2 - c.CanopyWidth/2
	startY := top - c.CanopyHeight/2

	var leafSlots, fruitSlots []mgl64.Vec2
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			pos := mgl64.Vec2{startX + float64(col)*c.LeafSize, startY + float64(row)*c.LeafSize}
			if rng.Bool() {
				leafSlots = append(leafSlots, pos)
			} else {
				fruitSlots = append(fruitSlots, pos)
			}
		}
	}
	report.LeafSlots, report.FruitSlots = len(leafSlots), len(fruitSlots)

	rng.Shuffle(len(leafSlots), func(i, j int) { leafSlots[i], leafSlots[j] = leafSlots[j], leafSlots[i] })
	for _, pos := range leafSlots[:keep(c.LeafProbability, len(leafSlots))] {
		report.Leaves = append(report.Leaves, newLeaf(p.host, pos, c.LeafSize,
			core.Approximate(rng, LeafColor, 20), p.layers.Leaves, p.sway(rng)))
	}

	rng.Shuffle(len(fruitSlots), func(i, j int) { fruitSlots[i], fruitSlots[j] = fruitSlots[j], fruitSlots[i] })
	for _, pos := range fruitSlots[:keep(c.FruitProbability, len(fruitSlots))] {
		base := FruitColors[rng.IntRange(0, len(FruitColors)-1)]
		anchor := pos.Add(mgl64.Vec2{c.FruitSize / 2, c.FruitSize / 2})
		f, err := NewFruit(p.host, anchor, FruitOptions{
			Diameter:    c.FruitSize,
			Energy:      c.FruitEnergy,
			Respawn:     config.Seconds(c.FruitRespawn),
			FloatOffset: c.FruitFloatOffset,
			FloatPeriod: config.Seconds(c.FruitFloatSeconds),
			Color:       core.Approximate(rng, base, 10),
			Layer:       p.layers.Fruit,
			Forager:     p.forager,
			Logger:      p.log,
		})
		if err != nil {
			p.log.Error("fruit skipped", "x", x, "err", err)
			continue
		}
		report.Fruit = append(report.Fruit, f)
	}

	p.log.Debug("tree planted", "x", x, "height", height,
		"leaves", len(report.Leaves), "fruit", len(report.Fruit))
	return report
}

func (p *Planter) sway(rng *corerng.RNG) SwayOptions {
	return SwayOptions{
		Angle:   p.cfg.LeafSwayAngle,
		Period:  config.Seconds(p.cfg.LeafSwaySeconds),
		Delay:   config.Seconds(rng.Between(0, p.cfg.LeafSwayDelay)),
		Squeeze: 0.1,
	}
}

// keep returns floor(fraction*n), clamped to [0, n].
func keep(fraction float64, n int) int {
	k := int(math.Floor(fraction*float64(n) + 1e-9))
	return max(0, min(k, n))
}
