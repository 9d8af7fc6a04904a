// Package noise provides deterministic one-dimensional noise fields used to
// shape the terrain profile.
package noise

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownKind is returned by New for names that were never registered.
var ErrUnknownKind = errors.New("unknown noise kind")

// ErrInvalidParams is returned by New when the parameters cannot build a field.
var ErrInvalidParams = errors.New("invalid noise parameters")

// Field maps a world x coordinate to a displacement in [-Amplitude, Amplitude].
// Implementations are deterministic in (seed, x) and continuous in x.
type Field interface {
	Value(x float64) float64
}

// Params configure a Field.
type Params struct {
	Seed      int64
	Amplitude float64
	// Scale is the horizontal distance, in pixels, of one noise period.
	Scale   float64
	Octaves int
}

// Factory builds a raw field whose output lies roughly in [-1, 1].
type Factory func(p Params) Field

var kinds = map[string]Factory{}

// Register adds a noise factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	kinds[name] = f
}

// Known reports whether name has been registered.
func Known(name string) bool {
	_, ok := kinds[name]
	return ok
}

// Kinds lists the registered names in sorted order.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named field, scaled to Amplitude and clamped to it.
func New(kind string, p Params) (Field, error) {
	f, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownKind, kind, Kinds())
	}
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return nil, fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidParams, p.Scale)
	}
	if p.Amplitude < 0 || math.IsNaN(p.Amplitude) {
		return nil, fmt.Errorf("%w: amplitude must not be negative, got %v", ErrInvalidParams, p.Amplitude)
	}
	if p.Octaves <= 0 {
		p.Octaves = 1
	}
	return scaled{raw: f(p), amp: p.Amplitude}, nil
}

type scaled struct {
	raw Field
	amp float64
}

func (s scaled) Value(x float64) float64 {
	v := s.raw.Value(x)
	if math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return v * s.amp
}

// fractal sums octaves of base, halving amplitude and doubling frequency each
// step, and normalizes the result back into [-1, 1].
func fractal(base func(x float64) float64, x float64, octaves int) float64 {
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		sum += base(x*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
