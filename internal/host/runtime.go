// Package host is the in-process runtime the world runs on: a layered scene,
// physics flags, owner-bound timers and tweens, all advanced by Tick.
package host

import (
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"pepse/internal/core"
)

// Options configure a Runtime.
type Options struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Runtime implements core.Host. It is not safe for concurrent use; a single
// goroutine owns it and calls Tick once per frame.
type Runtime struct {
	log *slog.Logger

	layers map[core.Layer][]*core.Object
	index  map[uuid.UUID]core.Layer

	tasks []*task
	now   time.Duration
}

var _ core.Host = (*Runtime)(nil)

// New returns an empty runtime.
func New(opts Options) *Runtime {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Runtime{
		log:    log,
		layers: make(map[core.Layer][]*core.Object),
		index:  make(map[uuid.UUID]core.Layer),
	}
}

// Discard returns a runtime whose logger drops everything. Handy in tests and
// batch tools.
func Discard() *Runtime {
	return New(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

// Logger returns the runtime's logger.
func (r *Runtime) Logger() *slog.Logger { return r.log }

// Add places obj on layer. An object already in the scene is moved.
func (r *Runtime) Add(obj *core.Object, layer core.Layer) {
	if obj == nil {
		return
	}
	if prev, ok := r.index[obj.ID]; ok {
		if prev == layer {
			return
		}
		r.Remove(obj, prev)
	}
	r.layers[layer] = append(r.layers[layer], obj)
	r.index[obj.ID] = layer
}

// Remove takes obj off layer and reports whether it was there. Tasks owned by
// obj are dropped on the next Tick.
func (r *Runtime) Remove(obj *core.Object, layer core.Layer) bool {
	if obj == nil {
		return false
	}
	if l, ok := r.index[obj.ID]; !ok || l != layer {
		return false
	}
	objs := r.layers[layer]
	i := slices.Index(objs, obj)
	if i < 0 {
		return false
	}
	r.layers[layer] = slices.Delete(objs, i, i+1)
	delete(r.index, obj.ID)
	return true
}

// Contains reports whether obj is currently in the scene.
func (r *Runtime) Contains(obj *core.Object) bool {
	if obj == nil {
		return false
	}
	_, ok := r.index[obj.ID]
	return ok
}

// LayerOf returns the layer obj is on.
func (r *Runtime) LayerOf(obj *core.Object) (core.Layer, bool) {
	l, ok := r.index[obj.ID]
	return l, ok
}

// Objects returns a snapshot of the objects on layer in insertion order.
func (r *Runtime) Objects(layer core.Layer) []*core.Object {
	return slices.Clone(r.layers[layer])
}

// Layers returns the non-empty layers in draw order.
func (r *Runtime) Layers() []core.Layer {
	out := make([]core.Layer, 0, len(r.layers))
	for l, objs := range r.layers {
		if len(objs) > 0 {
			out = append(out, l)
		}
	}
	slices.Sort(out)
	return out
}

// Count returns the number of objects in the scene.
func (r *Runtime) Count() int { return len(r.index) }

// CountTag returns how many objects on layer carry tag.
func (r *Runtime) CountTag(layer core.Layer, tag string) int {
	n := 0
	for _, o := range r.layers[layer] {
		if o.Tag == tag {
			n++
		}
	}
	return n
}

// MarkImmovable flags obj as static for the collision resolver.
func (r *Runtime) MarkImmovable(obj *core.Object) {
	obj.Immovable = true
}

// BlockIntersectionFrom makes obj solid when approached from dir. The zero
// vector blocks every direction.
func (r *Runtime) BlockIntersectionFrom(obj *core.Object, dir mgl64.Vec2) {
	obj.Blocking = true
	obj.BlockedFrom = dir
}

// Contacts calls OnCollision on every object of layer overlapping actor and
// returns how many were touched.
func (r *Runtime) Contacts(actor *core.Object, layer core.Layer) int {
	n := 0
	for _, o := range r.Objects(layer) {
		if o == actor || o.OnCollision == nil || !r.Contains(o) {
			continue
		}
		if actor.Overlaps(o) {
			o.OnCollision(actor)
			n++
		}
	}
	return n
}

// Now returns the simulated time accumulated by Tick.
func (r *Runtime) Now() time.Duration { return r.now }

// Pending returns the number of live timers and tweens.
func (r *Runtime) Pending() int {
	n := 0
	for _, t := range r.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// Tick advances simulated time by dt and runs every task registered before
// the call, in registration order. Tasks registered while ticking first run
// on the next Tick. Tasks whose owner has left the scene are dropped without
// running.
func (r *Runtime) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	r.now += dt
	n := len(r.tasks)
	for i := 0; i < n; i++ {
		t := r.tasks[i]
		if t.done {
			continue
		}
		if !r.alive(t) {
			t.done = true
			continue
		}
		t.advance(r, dt)
	}
	r.tasks = slices.DeleteFunc(r.tasks, func(t *task) bool { return t.done })
}

func (r *Runtime) alive(t *task) bool {
	return t.owner == nil || r.Contains(t.owner)
}

func (r *Runtime) push(t *task) {
	r.tasks = append(r.tasks, t)
}
