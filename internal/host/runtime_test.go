package host

import (
	"image/color"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/core"
)

const frame = 100 * time.Millisecond

func box(tag string, x, y float64) *core.Object {
	return core.NewObject(tag, mgl64.Vec2{x, y}, mgl64.Vec2{10, 10}, color.RGBA{})
}

func TestSceneAddRemove(t *testing.T) {
	r := Discard()
	a, b := box("a", 0, 0), box("b", 0, 0)
	r.Add(a, core.LayerDefault)
	r.Add(b, core.LayerStatic)
	if r.Count() != 2 || !r.Contains(a) {
		t.Fatalf("count = %d", r.Count())
	}
	if !slices.Equal(r.Layers(), []core.Layer{core.LayerStatic, core.LayerDefault}) {
		t.Fatalf("layers = %v", r.Layers())
	}
	if r.Remove(a, core.LayerStatic) {
		t.Fatal("removing from the wrong layer must fail")
	}
	if !r.Remove(a, core.LayerDefault) || r.Contains(a) {
		t.Fatal("remove failed")
	}
	if r.Remove(a, core.LayerDefault) {
		t.Fatal("second remove must report false")
	}
	r.Add(b, core.LayerForeground)
	if l, _ := r.LayerOf(b); l != core.LayerForeground || len(r.Objects(core.LayerStatic)) != 0 {
		t.Fatal("re-adding must move the object")
	}
}

func TestScheduleOnceAndRepeating(t *testing.T) {
	r := Discard()
	var once, rep int
	r.ScheduleOnce(nil, 250*time.Millisecond, func() { once++ })
	r.ScheduleRepeating(nil, 200*time.Millisecond, func() { rep++ })
	for i := 0; i < 10; i++ {
		r.Tick(frame)
	}
	if once != 1 {
		t.Fatalf("once fired %d times", once)
	}
	if rep != 5 {
		t.Fatalf("repeating fired %d times in 1s at 200ms, want 5", rep)
	}
}

func TestRemovingOwnerCancelsTasks(t *testing.T) {
	r := Discard()
	owner := core.NewDriver("test")
	r.Add(owner, core.LayerTasks)
	fired := 0
	r.ScheduleRepeating(owner, frame, func() { fired++ })
	r.Tween(owner, core.Tween{From: 0, To: 1, Duration: time.Second, Mode: core.TweenLoop, OnTick: func(float64) { fired++ }})
	r.Tick(frame)
	if fired != 2 {
		t.Fatalf("fired %d before removal", fired)
	}
	r.Remove(owner, core.LayerTasks)
	r.Tick(frame)
	r.Tick(frame)
	if fired != 2 {
		t.Fatalf("tasks kept running after owner removal: %d", fired)
	}
	if r.Pending() != 0 {
		t.Fatalf("pending = %d", r.Pending())
	}
}

func TestRepeatingStopsWhenCallbackRemovesOwner(t *testing.T) {
	r := Discard()
	owner := core.NewDriver("self")
	r.Add(owner, core.LayerTasks)
	fired := 0
	r.ScheduleRepeating(owner, 10*time.Millisecond, func() {
		fired++
		r.Remove(owner, core.LayerTasks)
	})
	r.Tick(time.Second)
	if fired != 1 {
		t.Fatalf("fired %d times in one long tick", fired)
	}
}

func TestTasksRunInRegistrationOrder(t *testing.T) {
	r := Discard()
	var order []int
	for i := 0; i < 5; i++ {
		r.ScheduleOnce(nil, frame, func() { order = append(order, i) })
	}
	r.Tick(frame)
	if !slices.Equal(order, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("order = %v", order)
	}
}

func TestTasksAddedDuringTickWaitForNextTick(t *testing.T) {
	r := Discard()
	inner := 0
	r.ScheduleOnce(nil, 0, func() {
		r.ScheduleOnce(nil, 0, func() { inner++ })
	})
	r.Tick(frame)
	if inner != 0 {
		t.Fatal("nested task ran in the same tick")
	}
	r.Tick(frame)
	if inner != 1 {
		t.Fatalf("nested task ran %d times", inner)
	}
}

func TestTweenOnce(t *testing.T) {
	r := Discard()
	var values []float64
	done := 0
	r.Tween(nil, core.Tween{
		From: 10, To: 20, Duration: 400 * time.Millisecond, Mode: core.TweenOnce,
		OnTick:     func(v float64) { values = append(values, v) },
		OnComplete: func() { done++ },
	})
	for i := 0; i < 6; i++ {
		r.Tick(frame)
	}
	want := []float64{12.5, 15, 17.5, 20}
	if len(values) != len(want) {
		t.Fatalf("values = %v", values)
	}
	for i := range want {
		if math.Abs(values[i]-want[i]) > 1e-4 {
			t.Fatalf("values = %v, want %v", values, want)
		}
	}
	if done != 1 {
		t.Fatalf("OnComplete fired %d times", done)
	}
}

func TestTweenLoopWraps(t *testing.T) {
	r := Discard()
	var last float64
	completed := false
	r.Tween(nil, core.Tween{
		From: 0, To: 100, Duration: 500 * time.Millisecond, Mode: core.TweenLoop,
		OnTick:     func(v float64) { last = v },
		OnComplete: func() { completed = true },
	})
	for i := 0; i < 4; i++ {
		r.Tick(frame)
	}
	if math.Abs(last-80) > 1e-3 {
		t.Fatalf("value at 400ms = %v", last)
	}
	r.Tick(frame)
	if last != 0 {
		t.Fatalf("loop should wrap to the start, got %v", last)
	}
	r.Tick(frame)
	if math.Abs(last-20) > 1e-3 || completed {
		t.Fatalf("value after wrap = %v completed=%v", last, completed)
	}
}

func TestTweenBackAndForth(t *testing.T) {
	r := Discard()
	var got []float64
	r.Tween(nil, core.Tween{
		From: -3, To: 3, Duration: 200 * time.Millisecond, Mode: core.TweenBackAndForth,
		OnTick: func(v float64) { got = append(got, v) },
	})
	for i := 0; i < 5; i++ {
		r.Tick(frame)
	}
	want := []float64{0, 3, 0, -3, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-4 {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestTweenCubicEaseEndpoints(t *testing.T) {
	r := Discard()
	var got []float64
	r.Tween(nil, core.Tween{
		From: 0, To: 1, Duration: 400 * time.Millisecond, Mode: core.TweenOnce, Ease: core.EaseCubicInOut,
		OnTick: func(v float64) { got = append(got, v) },
	})
	for i := 0; i < 4; i++ {
		r.Tick(frame)
	}
	if got[0] >= 0.25 {
		t.Fatalf("cubic ease should start slower than linear, got %v", got[0])
	}
	if math.Abs(got[1]-0.5) > 1e-4 || got[3] != 1 {
		t.Fatalf("unexpected cubic samples %v", got)
	}
}

func TestContactsDispatchesOverlaps(t *testing.T) {
	r := Discard()
	actor := box(core.TagAvatar, 0, 0)
	hit, far := box("fruit", 5, 5), box("fruit", 50, 50)
	var touched []*core.Object
	for _, o := range []*core.Object{hit, far} {
		o.OnCollision = func(other *core.Object) { touched = append(touched, other) }
		r.Add(o, core.LayerDefault)
	}
	if n := r.Contacts(actor, core.LayerDefault); n != 1 {
		t.Fatalf("contacts = %d", n)
	}
	if len(touched) != 1 || touched[0] != actor {
		t.Fatalf("touched = %v", touched)
	}
}

func TestPhysicsFlags(t *testing.T) {
	r := Discard()
	o := box("ground", 0, 0)
	r.MarkImmovable(o)
	r.BlockIntersectionFrom(o, core.FromAllDirections)
	if !o.Immovable || !o.Blocking {
		t.Fatal("physics flags not set")
	}
}
