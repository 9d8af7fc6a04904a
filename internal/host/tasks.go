package host

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"pepse/internal/core"
)

type taskKind uint8

const (
	kindOnce taskKind = iota
	kindRepeat
	kindTween
)

type task struct {
	kind  taskKind
	owner *core.Object
	done  bool

	elapsed time.Duration
	period  time.Duration
	fn      func()

	tween core.Tween
	curve *gween.Tween
}

// ScheduleOnce runs fn once after delay.
func (r *Runtime) ScheduleOnce(owner *core.Object, delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	r.push(&task{kind: kindOnce, owner: owner, period: max(delay, 0), fn: fn})
}

// ScheduleRepeating runs fn every interval until the owner leaves the scene.
// A non-positive interval fires once per Tick.
func (r *Runtime) ScheduleRepeating(owner *core.Object, interval time.Duration, fn func()) {
	if fn == nil {
		return
	}
	r.push(&task{kind: kindRepeat, owner: owner, period: interval, fn: fn})
}

// Tween interpolates tw.From to tw.To, calling tw.OnTick on every Tick.
func (r *Runtime) Tween(owner *core.Object, tw core.Tween) {
	if tw.Duration <= 0 {
		tw.Duration = time.Nanosecond
	}
	// gween drives a normalized 0..1 progress curve; the value range is
	// applied in float64 so world coordinates keep full precision.
	curve := gween.New(0, 1, 1, easing(tw.Ease))
	r.push(&task{kind: kindTween, owner: owner, period: tw.Duration, tween: tw, curve: curve})
}

func easing(e core.Easing) ease.TweenFunc {
	switch e {
	case core.EaseCubicInOut:
		return ease.InOutCubic
	default:
		return ease.Linear
	}
}

func (t *task) advance(r *Runtime, dt time.Duration) {
	t.elapsed += dt
	switch t.kind {
	case kindOnce:
		if t.elapsed >= t.period {
			t.done = true
			t.fn()
		}
	case kindRepeat:
		if t.period <= 0 {
			t.fn()
			return
		}
		for t.elapsed >= t.period {
			t.elapsed -= t.period
			t.fn()
			if !r.alive(t) {
				t.done = true
				return
			}
		}
	case kindTween:
		t.step()
	}
}

func (t *task) step() {
	tw := t.tween
	var phase float64
	finished := false
	switch tw.Mode {
	case core.TweenLoop:
		phase = float64(t.elapsed%t.period) / float64(t.period)
	case core.TweenBackAndForth:
		phase = float64(t.elapsed%(2*t.period)) / float64(t.period)
		if phase > 1 {
			phase = 2 - phase
		}
	default:
		phase = float64(t.elapsed) / float64(t.period)
		if phase >= 1 {
			phase = 1
			finished = true
		}
	}
	p, _ := t.curve.Set(float32(phase))
	value := tw.From + (tw.To-tw.From)*float64(p)
	if finished {
		value = tw.To
	}
	if tw.OnTick != nil {
		tw.OnTick(value)
	}
	if finished {
		t.done = true
		if tw.OnComplete != nil {
			tw.OnComplete()
		}
	}
}
