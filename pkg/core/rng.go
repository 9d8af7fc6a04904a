package core

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewEntropyRNG creates an RNG seeded from the operating system. Streams built
// this way are intentionally not reproducible between runs.
func NewEntropyRNG() *RNG {
	return NewRNG(EntropySeed())
}

// EntropySeed returns a fresh seed read from crypto/rand, falling back to the
// global math/rand/v2 source if the read fails.
func EntropySeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return rand.Int64()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Between returns a uniform value in [lo, hi).
func (r *RNG) Between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + (hi-lo)*r.r.Float64()
}

// IntRange returns a uniform integer in [lo, hi]. Inverted bounds collapse to lo.
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Int64 returns a non-negative pseudo-random int64, used to seed child streams.
func (r *RNG) Int64() int64 {
	return r.r.Int64()
}

// Child derives an independent stream from the next value of r.
func (r *RNG) Child() *RNG {
	return NewRNG(r.r.Int64())
}

// Shuffle randomizes the order of n elements through swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.r.Shuffle(n, swap)
}
