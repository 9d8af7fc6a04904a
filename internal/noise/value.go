package noise

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

func init() {
	Register("value", func(p Params) Field { return newValueField(p) })
}

// valueField is lattice value noise: each integer lattice point gets a
// pseudo-random value hashed from (seed, octave, index) and neighbouring
// points are blended with a quintic fade.
type valueField struct {
	seed    uint64
	scale   float64
	octaves int
}

func newValueField(p Params) *valueField {
	return &valueField{seed: uint64(p.Seed), scale: p.Scale, octaves: p.Octaves}
}

func (f *valueField) Value(x float64) float64 {
	octave := 0
	return fractal(func(u float64) float64 {
		v := f.sample(u, octave)
		octave++
		return v
	}, x/f.scale, f.octaves)
}

func (f *valueField) sample(u float64, octave int) float64 {
	i0 := math.Floor(u)
	t := u - i0
	a := f.lattice(int64(i0), octave)
	b := f.lattice(int64(i0)+1, octave)
	return a + (b-a)*fade(t)
}

// lattice returns a value in [-1, 1] for the given lattice index.
func (f *valueField) lattice(i int64, octave int) float64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], f.seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(octave))
	binary.LittleEndian.PutUint64(buf[16:], uint64(i))
	h := xxhash.Sum64(buf[:])
	return float64(h>>11)/float64(1<<53)*2 - 1
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}
