package flora

import (
	"fmt"
	"log/slog"

	corerng "pepse/pkg/core"
)

// Scatterer walks a horizontal span and plants trees at random.
type Scatterer struct {
	planter     *Planter
	rng         *corerng.RNG
	spacing     float64
	probability float64
	log         *slog.Logger
}

// NewScatterer returns a scatterer drawing from rng, which should be
// independent of the terrain seed.
func NewScatterer(p *Planter, rng *corerng.RNG) (*Scatterer, error) {
	if p == nil || rng == nil {
		return nil, fmt.Errorf("%w: planter and rng are required", ErrInvalidOptions)
	}
	if !(p.cfg.Spacing > 0) {
		return nil, fmt.Errorf("%w: spacing must be positive, got %v", ErrInvalidOptions, p.cfg.Spacing)
	}
	return &Scatterer{
		planter:     p,
		rng:         rng,
		spacing:     p.cfg.Spacing,
		probability: p.cfg.PlantProbability,
		log:         p.log,
	}, nil
}

// Scatter steps through [minX, maxX) at the configured spacing and plants a
// tree wherever a uniform draw falls below the plant probability. Each tree
// gets its own stream derived from the scatterer's. Overlapping trees are
// allowed.
func (s *Scatterer) Scatter(minX, maxX float64) []TreeReport {
	var trees []TreeReport
	for i := 0; ; i++ {
		x := minX + float64(i)*s.spacing
		if x >= maxX {
			break
		}
		if s.rng.Float64() < s.probability {
			trees = append(trees, s.planter.PlantTree(x, s.rng.Child()))
		}
	}
	s.log.Debug("flora scattered", "min_x", minX, "max_x", maxX, "trees", len(trees))
	return trees
}

// SetProbability changes the plant probability for spans scattered from now
// on. Values are clamped to [0, 1].
func (s *Scatterer) SetProbability(p float64) {
	s.probability = max(0, min(1, p))
}

// Probability returns the current plant probability.
func (s *Scatterer) Probability() float64 { return s.probability }
