package noise

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func sample(f Field, from, to, step float64) []float64 {
	var out []float64
	for x := from; x <= to; x += step {
		out = append(out, f.Value(x))
	}
	return out
}

func TestKindsRegistered(t *testing.T) {
	want := []string{"perlin", "simplex", "value"}
	if got := Kinds(); !slices.Equal(got, want) {
		t.Fatalf("Kinds() = %v, want %v", got, want)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New("plasma", Params{Scale: 1}); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if _, err := New("value", Params{Scale: 0}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for zero scale, got %v", err)
	}
	if _, err := New("value", Params{Scale: 10, Amplitude: -1}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for negative amplitude, got %v", err)
	}
}

func TestFieldsAreDeterministicAndBounded(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind, func(t *testing.T) {
			p := Params{Seed: 42, Amplitude: 210, Scale: 420, Octaves: 3}
			a, err := New(kind, p)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			b, _ := New(kind, p)
			xs := sample(a, -5000, 5000, 7.3)
			if !slices.Equal(xs, sample(b, -5000, 5000, 7.3)) {
				t.Fatal("same seed must produce identical samples")
			}
			for i, v := range xs {
				if math.Abs(v) > p.Amplitude || math.IsNaN(v) {
					t.Fatalf("sample %d = %v exceeds amplitude %v", i, v, p.Amplitude)
				}
			}
		})
	}
}

func TestFieldsAreContinuous(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind, func(t *testing.T) {
			f, err := New(kind, Params{Seed: 9, Amplitude: 100, Scale: 400, Octaves: 2})
			if err != nil {
				t.Fatal(err)
			}
			for x := -1000.0; x < 1000; x += 3.1 {
				if d := math.Abs(f.Value(x+0.01) - f.Value(x)); d > 1 {
					t.Fatalf("jump of %v between %v and %v", d, x, x+0.01)
				}
			}
		})
	}
}

func TestValueNoiseSeedsDiffer(t *testing.T) {
	a, _ := New("value", Params{Seed: 1, Amplitude: 1, Scale: 50, Octaves: 1})
	b, _ := New("value", Params{Seed: 2, Amplitude: 1, Scale: 50, Octaves: 1})
	if slices.Equal(sample(a, 0, 2000, 25), sample(b, 0, 2000, 25)) {
		t.Fatal("different seeds should produce different profiles")
	}
}

func TestZeroAmplitudeIsFlat(t *testing.T) {
	f, _ := New("simplex", Params{Seed: 3, Amplitude: 0, Scale: 100, Octaves: 1})
	for x := 0.0; x < 500; x += 13 {
		if f.Value(x) != 0 {
			t.Fatalf("Value(%v) = %v with zero amplitude", x, f.Value(x))
		}
	}
}
