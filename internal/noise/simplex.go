package noise

import "github.com/ojrac/opensimplex-go"

func init() {
	Register("simplex", func(p Params) Field { return newSimplexField(p) })
}

type simplexField struct {
	gen     opensimplex.Noise
	scale   float64
	octaves int
}

func newSimplexField(p Params) *simplexField {
	return &simplexField{gen: opensimplex.New(p.Seed), scale: p.Scale, octaves: p.Octaves}
}

// Value walks the y=0 line of the 2D simplex field.
func (f *simplexField) Value(x float64) float64 {
	return fractal(func(u float64) float64 { return f.gen.Eval2(u, 0) }, x/f.scale, f.octaves)
}
