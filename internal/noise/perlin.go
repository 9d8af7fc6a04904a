package noise

import "github.com/aquilax/go-perlin"

func init() {
	Register("perlin", func(p Params) Field { return newPerlinField(p) })
}

type perlinField struct {
	gen   *perlin.Perlin
	scale float64
}

func newPerlinField(p Params) *perlinField {
	return &perlinField{
		gen:   perlin.NewPerlin(2, 2, int32(p.Octaves), p.Seed),
		scale: p.Scale,
	}
}

// Value samples go-perlin, which sums the octaves itself. Its raw output
// peaks near ±0.7, so it is stretched before the shared clamp.
func (f *perlinField) Value(x float64) float64 {
	return f.gen.Noise1D(x/f.scale) * 1.4
}
