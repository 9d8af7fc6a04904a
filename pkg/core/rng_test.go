package core

import (
	"slices"
	"testing"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 64; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d diverged: %v != %v", i, x, y)
		}
	}
}

func TestIntRangeInclusive(t *testing.T) {
	r := NewRNG(7)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := r.IntRange(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("IntRange(3,5) = %d, out of bounds", v)
		}
		seen[v] = true
	}
	for _, want := range []int{3, 4, 5} {
		if !seen[want] {
			t.Fatalf("IntRange never produced %d", want)
		}
	}
	if got := r.IntRange(9, 2); got != 9 {
		t.Fatalf("inverted range should collapse to lo, got %d", got)
	}
}

func TestChildStreamsReproducible(t *testing.T) {
	first := NewRNG(1).Child()
	second := NewRNG(1).Child()

	draw := func(r *RNG) []int {
		out := make([]int, 16)
		for i := range out {
			out[i] = r.IntRange(0, 1000)
		}
		return out
	}
	if !slices.Equal(draw(first), draw(second)) {
		t.Fatal("children of equal parents must produce equal streams")
	}
}

func TestBetweenBounds(t *testing.T) {
	r := NewRNG(99)
	for i := 0; i < 500; i++ {
		v := r.Between(-80, 80)
		if v < -80 || v >= 80 {
			t.Fatalf("Between(-80,80) = %v", v)
		}
	}
	if got := r.Between(5, 5); got != 5 {
		t.Fatalf("empty interval should return lo, got %v", got)
	}
}
