package terrain

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/core"
	corerng "pepse/pkg/core"
)

// GroundColor is the base color of ground blocks.
var GroundColor = color.RGBA{R: 212, G: 123, B: 74, A: 255}

// GeneratorOptions configure a Generator.
type GeneratorOptions struct {
	// Depth is the number of blocks stacked below each column top.
	Depth   int
	Physics core.Physics
	// Color defaults to GroundColor.
	Color color.RGBA
	// Shade, when set, jitters each block's color slightly. It never affects
	// geometry.
	Shade *corerng.RNG
}

// Generator emits depth-stacked ground blocks for a horizontal range.
type Generator struct {
	field   *Field
	depth   int
	physics core.Physics
	color   color.RGBA
	shade   *corerng.RNG
}

// NewGenerator validates opts and returns a generator over field.
func NewGenerator(field *Field, opts GeneratorOptions) (*Generator, error) {
	if field == nil {
		return nil, errors.New("terrain: nil field")
	}
	if opts.Depth <= 0 {
		return nil, fmt.Errorf("terrain: depth must be positive, got %d", opts.Depth)
	}
	if opts.Physics == nil {
		return nil, errors.New("terrain: physics is required")
	}
	c := opts.Color
	if c == (color.RGBA{}) {
		c = GroundColor
	}
	return &Generator{field: field, depth: opts.Depth, physics: opts.Physics, color: c, shade: opts.Shade}, nil
}

// Field returns the height field the generator samples.
func (g *Generator) Field() *Field { return g.field }

// Columns returns the aligned column x positions covering [minX, maxX],
// including the aligned maximum. minX > maxX yields nil.
func (g *Generator) Columns(minX, maxX float64) []float64 {
	if minX > maxX {
		return nil
	}
	lo, hi := g.field.floorIndex(minX), g.field.ceilIndex(maxX)
	xs := make([]float64, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		xs = append(xs, g.field.column(k))
	}
	return xs
}

// Generate returns fresh ground blocks for every column in [minX, maxX]. The
// same aligned range always yields the same geometry; deduplication is left
// to the caller.
func (g *Generator) Generate(minX, maxX float64) []*core.Object {
	cols := g.Columns(minX, maxX)
	if len(cols) == 0 {
		return nil
	}
	cell := g.field.CellSize()
	size := mgl64.Vec2{cell, cell}
	blocks := make([]*core.Object, 0, len(cols)*g.depth)
	for _, x := range cols {
		top := g.field.quantize(g.field.HeightAt(x))
		for k := 0; k < g.depth; k++ {
			b := core.NewObject(core.TagGround, mgl64.Vec2{x, top + float64(k)*cell}, size, g.blockColor())
			g.physics.MarkImmovable(b)
			g.physics.BlockIntersectionFrom(b, core.FromAllDirections)
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func (g *Generator) blockColor() color.RGBA {
	if g.shade == nil {
		return g.color
	}
	return core.Approximate(g.shade, g.color, 10)
}
