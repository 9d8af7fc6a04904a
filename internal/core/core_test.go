package core

import (
	"image/color"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestByteGridFromRowsPadsShortRows(t *testing.T) {
	g := ByteGridFromRows([][]uint8{
		{0, 1, 1},
		{1},
	})
	if g.W != 3 || g.H != 2 {
		t.Fatalf("expected 3x2 grid, got %dx%d", g.W, g.H)
	}
	if g.At(0, 1) != 1 || g.At(1, 1) != 0 || g.At(2, 1) != 0 {
		t.Fatalf("second row not padded: %v", g.Cells())
	}
	if g.Filled() != 3 {
		t.Fatalf("expected 3 filled cells, got %d", g.Filled())
	}
	if g.At(-1, 0) != 0 || g.At(3, 0) != 0 {
		t.Fatal("out of range reads must return 0")
	}
}

func TestObjectGeometry(t *testing.T) {
	o := NewObject("box", mgl64.Vec2{10, 20}, mgl64.Vec2{30, 40}, color.RGBA{})
	if c := o.Center(); c != (mgl64.Vec2{25, 40}) {
		t.Fatalf("center = %v", c)
	}
	o.SetCenter(mgl64.Vec2{0, 0})
	if o.Pos != (mgl64.Vec2{-15, -20}) {
		t.Fatalf("SetCenter moved top-left to %v", o.Pos)
	}
	other := NewObject("other", mgl64.Vec2{15, 0}, mgl64.Vec2{5, 5}, color.RGBA{})
	if o.Overlaps(other) {
		t.Fatal("touching edges must not count as overlap")
	}
	other.Pos = mgl64.Vec2{10, 10}
	if !o.Overlaps(other) {
		t.Fatal("expected overlap")
	}
}

func TestBounds(t *testing.T) {
	if _, _, ok := Bounds(nil); ok {
		t.Fatal("empty slice must report !ok")
	}
	a := NewObject("a", mgl64.Vec2{0, 0}, mgl64.Vec2{30, 30}, color.RGBA{})
	b := NewObject("b", mgl64.Vec2{60, 30}, mgl64.Vec2{30, 30}, color.RGBA{})
	min, max, ok := Bounds([]*Object{a, b})
	if !ok || min != (mgl64.Vec2{0, 0}) || max != (mgl64.Vec2{90, 60}) {
		t.Fatalf("bounds = %v..%v ok=%v", min, max, ok)
	}
}

func TestFixedStepAccumulates(t *testing.T) {
	fs := NewFixedStep(10)
	start := time.Unix(0, 0)
	if !fs.advance(start) {
		t.Fatal("first call should step because the accumulator starts full")
	}
	if fs.advance(start.Add(50 * time.Millisecond)) {
		t.Fatal("half a step must not trigger")
	}
	if !fs.advance(start.Add(100 * time.Millisecond)) {
		t.Fatal("a full step should trigger")
	}
	if fs.Step() != 100*time.Millisecond {
		t.Fatalf("step = %v", fs.Step())
	}
}

func TestBlend(t *testing.T) {
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if Blend(black, white, -1) != black || Blend(black, white, 2) != white {
		t.Fatal("t outside [0,1] must clamp to an endpoint")
	}
	if got := Blend(black, white, 0.5); got != (color.RGBA{R: 128, G: 128, B: 128, A: 255}) {
		t.Fatalf("midpoint = %v", got)
	}
}
