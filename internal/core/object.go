package core

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Shape selects how frontends draw an object.
type Shape uint8

const (
	ShapeRect Shape = iota
	ShapeOval
	// ShapeNone is never drawn; used for driver objects.
	ShapeNone
)

// Space selects the coordinate system an object lives in.
type Space uint8

const (
	// SpaceWorld objects scroll with the camera.
	SpaceWorld Space = iota
	// SpaceCamera objects are pinned to the window.
	SpaceCamera
)

// Common object tags.
const (
	TagGround = "ground"
	TagTrunk  = "trunk"
	TagLeaf   = "leaf"
	TagFruit  = "fruit"
	TagCloud  = "cloud"
	TagDrop   = "rain"
	TagAvatar = "avatar"
	TagDriver = "driver"
)

// Object is a positioned rectangle owned by the scene. Positions are top-left
// corners with y growing downward.
type Object struct {
	ID    uuid.UUID
	Tag   string
	Pos   mgl64.Vec2
	Size  mgl64.Vec2
	Angle float64

	Color   color.RGBA
	Opacity float64
	Shape   Shape
	Space   Space

	Immovable   bool
	Blocking    bool
	BlockedFrom mgl64.Vec2

	// OnCollision is invoked by the host when another object touches this one.
	OnCollision func(other *Object)
}

// NewObject returns a fully opaque rectangle.
func NewObject(tag string, topLeft, size mgl64.Vec2, c color.RGBA) *Object {
	return &Object{
		ID:      uuid.New(),
		Tag:     tag,
		Pos:     topLeft,
		Size:    size,
		Color:   c,
		Opacity: 1,
	}
}

// NewDriver returns an invisible zero-size object used to own timers and tweens.
func NewDriver(name string) *Object {
	o := NewObject(TagDriver+":"+name, mgl64.Vec2{}, mgl64.Vec2{}, color.RGBA{})
	o.Shape = ShapeNone
	o.Opacity = 0
	return o
}

// Center returns the midpoint of the object.
func (o *Object) Center() mgl64.Vec2 {
	return o.Pos.Add(o.Size.Mul(0.5))
}

// SetCenter moves the object so that its midpoint is c.
func (o *Object) SetCenter(c mgl64.Vec2) {
	o.Pos = c.Sub(o.Size.Mul(0.5))
}

// Max returns the bottom-right corner.
func (o *Object) Max() mgl64.Vec2 {
	return o.Pos.Add(o.Size)
}

// Overlaps reports whether the two objects' rectangles intersect.
func (o *Object) Overlaps(other *Object) bool {
	a0, a1 := o.Pos, o.Max()
	b0, b1 := other.Pos, other.Max()
	return a0.X() < b1.X() && b0.X() < a1.X() && a0.Y() < b1.Y() && b0.Y() < a1.Y()
}

// Bounds returns the bounding box of objs. ok is false when objs is empty.
func Bounds(objs []*Object) (min, max mgl64.Vec2, ok bool) {
	for i, o := range objs {
		lo, hi := o.Pos, o.Max()
		if i == 0 {
			min, max = lo, hi
			continue
		}
		min = mgl64.Vec2{minf(min.X(), lo.X()), minf(min.Y(), lo.Y())}
		max = mgl64.Vec2{maxf(max.X(), hi.X()), maxf(max.Y(), hi.Y())}
	}
	return min, max, len(objs) > 0
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
