package core

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Size describes the dimensions of the visible window in pixels.
type Size struct {
	W int
	H int
}

// Vec returns the size as a vector.
func (s Size) Vec() mgl64.Vec2 { return mgl64.Vec2{float64(s.W), float64(s.H)} }

// Layer orders objects in the scene. Lower layers are drawn first.
type Layer int

const (
	LayerBackground Layer = -200
	LayerClouds     Layer = -150
	LayerStatic     Layer = -100
	LayerCanopy     Layer = -90
	LayerDefault    Layer = 0
	LayerForeground Layer = 100

	// LayerTasks holds invisible driver objects that own timers and tweens.
	// Frontends never draw it.
	LayerTasks Layer = 1 << 20
)

// FromAllDirections passed to Physics.BlockIntersectionFrom blocks every
// approach direction.
var FromAllDirections = mgl64.Vec2{}

// Scene is the layered scene-graph container provided by the host.
type Scene interface {
	Add(obj *Object, layer Layer)
	// Remove reports whether obj was present on layer.
	Remove(obj *Object, layer Layer) bool
}

// Physics marks objects for the host's collision resolver.
type Physics interface {
	MarkImmovable(obj *Object)
	BlockIntersectionFrom(obj *Object, dir mgl64.Vec2)
}

// Scheduler fires callbacks after a delay. Tasks are bound to an owner
// object that must already be in the scene; removing the owner cancels them.
// A nil owner binds the task to the lifetime of the host.
type Scheduler interface {
	ScheduleOnce(owner *Object, delay time.Duration, fn func())
	ScheduleRepeating(owner *Object, interval time.Duration, fn func())
}

// TweenMode selects what a tween does when it reaches its end value.
type TweenMode uint8

const (
	// TweenOnce stops at the end value and fires OnComplete.
	TweenOnce TweenMode = iota
	// TweenLoop jumps back to the start value and repeats.
	TweenLoop
	// TweenBackAndForth reverses direction at each end.
	TweenBackAndForth
)

func (m TweenMode) String() string {
	switch m {
	case TweenOnce:
		return "once"
	case TweenLoop:
		return "loop"
	case TweenBackAndForth:
		return "back-and-forth"
	default:
		return "unknown"
	}
}

// Easing selects the interpolation curve of a tween.
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseCubicInOut
)

// Tween describes an interpolation from From to To over Duration.
type Tween struct {
	From, To float64
	Duration time.Duration
	Mode     TweenMode
	Ease     Easing

	OnTick func(value float64)
	// OnComplete only fires for TweenOnce.
	OnComplete func()
}

// Tweener runs value interpolations bound to an owner object, with the same
// ownership rules as Scheduler.
type Tweener interface {
	Tween(owner *Object, tw Tween)
}

// Host is the full set of capabilities the world core consumes.
type Host interface {
	Scene
	Physics
	Scheduler
	Tweener
}

// JumpListener receives jump notifications from the avatar.
type JumpListener interface {
	OnJump()
}
