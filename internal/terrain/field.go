// Package terrain turns a noise field into a ground height profile and the
// grid-aligned block columns that render it.
package terrain

import (
	"errors"
	"fmt"
	"math"

	"pepse/internal/noise"
)

// ErrInvalidCellSize is returned when the grid cell size is not a positive
// finite number.
var ErrInvalidCellSize = errors.New("terrain: cell size must be positive")

// Field answers "where is the ground at x". It holds no mutable state.
type Field struct {
	noise    noise.Field
	baseline float64
	cell     float64
}

// NewField wraps n around baseline. Y grows downward, so larger noise values
// raise the ground.
func NewField(n noise.Field, baseline, cellSize float64) (*Field, error) {
	if n == nil {
		return nil, errors.New("terrain: nil noise field")
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidCellSize, cellSize)
	}
	if math.IsNaN(baseline) || math.IsInf(baseline, 0) {
		return nil, fmt.Errorf("terrain: baseline must be finite, got %v", baseline)
	}
	return &Field{noise: n, baseline: baseline, cell: cellSize}, nil
}

// HeightAt returns the continuous ground height at x.
func (f *Field) HeightAt(x float64) float64 {
	return f.baseline - f.noise.Value(x)
}

// SurfaceAt returns the top of the rendered ground column that contains x:
// the height at the column's aligned x, quantized down to the grid.
func (f *Field) SurfaceAt(x float64) float64 {
	return f.quantize(f.HeightAt(f.AlignDown(x)))
}

// CellSize returns the grid cell size in pixels.
func (f *Field) CellSize() float64 { return f.cell }

// Baseline returns the height the noise is applied around.
func (f *Field) Baseline() float64 { return f.baseline }

// AlignDown returns the x of the grid column containing x.
func (f *Field) AlignDown(x float64) float64 {
	return f.column(f.floorIndex(x))
}

// AlignUp returns the x of the first grid column at or after x.
func (f *Field) AlignUp(x float64) float64 {
	return f.column(f.ceilIndex(x))
}

// column is the single source of grid x positions. Every column x in the
// package is k*cell for an integer k, so equal k always yields equal floats.
func (f *Field) column(k int64) float64 {
	return float64(k) * f.cell
}

// floorIndex returns the largest k with column(k) <= x. The division can be
// off by one ulp, so the estimate is corrected against column itself.
func (f *Field) floorIndex(x float64) int64 {
	k := int64(math.Floor(x / f.cell))
	for f.column(k) > x {
		k--
	}
	for f.column(k+1) <= x {
		k++
	}
	return k
}

// ceilIndex returns the smallest k with column(k) >= x.
func (f *Field) ceilIndex(x float64) int64 {
	k := f.floorIndex(x)
	if f.column(k) < x {
		k++
	}
	return k
}

func (f *Field) quantize(h float64) float64 {
	return math.Floor(h/f.cell) * f.cell
}
