package weather

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/config"
	"pepse/internal/core"
	"pepse/internal/host"
	corerng "pepse/pkg/core"
)

func newSpawner(t *testing.T, rt *host.Runtime, cfg config.WeatherConfig) *Spawner {
	t.Helper()
	s, err := NewSpawner(SpawnerOptions{Config: cfg, Host: rt, RNG: corerng.NewRNG(1), Layer: core.LayerClouds, Logger: rt.Logger()})
	if err != nil {
		t.Fatalf("NewSpawner: %v", err)
	}
	return s
}

func newCloud(t *testing.T, rt *host.Runtime, topLeft mgl64.Vec2, opts CloudOptions) *Cloud {
	t.Helper()
	c, err := NewCloud(rt, topLeft, DefaultShape, opts)
	if err != nil {
		t.Fatalf("NewCloud: %v", err)
	}
	return c
}

func newRain(t *testing.T, rt *host.Runtime, src CloudSource, cfg config.WeatherConfig) *Rain {
	t.Helper()
	r, err := NewRain(RainOptions{Config: cfg, Host: rt, Clouds: src, RNG: corerng.NewRNG(2), Layer: core.LayerClouds, Logger: rt.Logger()})
	if err != nil {
		t.Fatalf("NewRain: %v", err)
	}
	return r
}

func TestCloudBuildsOneBlockPerFilledCell(t *testing.T) {
	rt := host.Discard()
	c := newCloud(t, rt, mgl64.Vec2{-500, 100}, CloudOptions{Cell: 30, Travel: 1600, Speed: 40, Layer: core.LayerClouds})
	if got := len(c.Blocks()); got != DefaultShape.Filled() || got != 17 {
		t.Fatalf("cloud has %d blocks, want 17", got)
	}
	for _, b := range c.Blocks() {
		if b.Space != core.SpaceCamera || !rt.Contains(b) {
			t.Fatal("cloud blocks must be camera-space scene objects")
		}
	}
	bc := c.BottomCenter()
	if bc != (mgl64.Vec2{-500 + 90, 100 + 120}) {
		t.Fatalf("bottom center = %v", bc)
	}
}

func TestNewCloudRejectsDegenerateOptions(t *testing.T) {
	rt := host.Discard()
	for _, opts := range []CloudOptions{
		{Cell: 0, Travel: 100, Speed: 10},
		{Cell: -30, Travel: 100, Speed: 10},
		{Cell: math.NaN(), Travel: 100, Speed: 10},
		{Cell: 30, Travel: -1, Speed: 10},
		{Cell: 30, Travel: 100, Speed: -5},
	} {
		before := len(rt.Objects(core.LayerClouds))
		if _, err := NewCloud(rt, mgl64.Vec2{}, DefaultShape, opts); !errors.Is(err, ErrInvalidOptions) {
			t.Fatalf("opts %+v: err = %v, want ErrInvalidOptions", opts, err)
		}
		if len(rt.Objects(core.LayerClouds)) != before {
			t.Fatalf("opts %+v: rejected cloud left blocks in the scene", opts)
		}
	}
	if _, err := NewCloud(nil, mgl64.Vec2{}, DefaultShape, CloudOptions{Cell: 30}); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("nil host: err = %v", err)
	}
	c, err := NewCloud(rt, mgl64.Vec2{}, nil, CloudOptions{Cell: 30, Layer: core.LayerClouds})
	if err != nil {
		t.Fatalf("nil shape: %v", err)
	}
	if len(c.Blocks()) != DefaultShape.Filled() {
		t.Fatalf("nil shape should fall back to the default, got %d blocks", len(c.Blocks()))
	}
}

func TestCloudBottomCenterAdvancesAndWraps(t *testing.T) {
	rt := host.Discard()
	c := newCloud(t, rt, mgl64.Vec2{-500, 100}, CloudOptions{Cell: 30, Travel: 1600, Speed: 40, Layer: core.LayerClouds})
	start := c.BottomCenter()
	prev := start.X()
	// One loop lasts 1600/40 = 40s.
	for i := 1; i < 40; i++ {
		rt.Tick(time.Second)
		x := c.BottomCenter().X()
		if x <= prev {
			t.Fatalf("tick %d: bottom center x %v did not increase from %v", i, x, prev)
		}
		prev = x
	}
	if math.Abs(prev-(start.X()+39*40)) > 1e-3 {
		t.Fatalf("after 39s x = %v", prev)
	}
	rt.Tick(time.Second)
	if got := c.BottomCenter(); got != start {
		t.Fatalf("loop boundary should return the cloud to %v, got %v", start, got)
	}
	if c.BottomCenter().Y() != start.Y() {
		t.Fatal("cloud must only move horizontally")
	}
}

func TestCloudKeepsItsShape(t *testing.T) {
	rt := host.Discard()
	c := newCloud(t, rt, mgl64.Vec2{0, 0}, CloudOptions{Cell: 30, Travel: 100, Speed: 7, Layer: core.LayerClouds})
	before := c.Blocks()
	rel := make([]mgl64.Vec2, len(before))
	for i, b := range before {
		rel[i] = b.Pos.Sub(before[0].Pos)
	}
	for i := 0; i < 33; i++ {
		rt.Tick(700 * time.Millisecond)
		for j, b := range c.Blocks() {
			if d := b.Pos.Sub(c.Blocks()[0].Pos).Sub(rel[j]); d.Len() > 1e-9 {
				t.Fatalf("block %d drifted relative to the cloud by %v", j, d)
			}
		}
	}
}

func TestSpawnerSpawnsOnIntervalAndKeepsClouds(t *testing.T) {
	rt := host.Discard()
	cfg := config.Default().Weather
	s := newSpawner(t, rt, cfg)
	s.Start()
	s.Start()
	for i := 0; i < 35; i++ {
		rt.Tick(time.Second)
	}
	clouds := s.Clouds()
	if len(clouds) != 3 {
		t.Fatalf("%d clouds after 35s at a 10s interval", len(clouds))
	}
	for _, c := range clouds {
		o := c.Origin()
		if o.X() != cfg.CloudSpawnX || o.Y() < cfg.CloudMinY || o.Y() > cfg.CloudMaxY {
			t.Fatalf("cloud spawned at %v outside the band", o)
		}
	}
	clouds[0] = nil
	if s.Clouds()[0] == nil {
		t.Fatal("Clouds must return a snapshot")
	}
}

func TestNewSpawnerRejectsInvertedBand(t *testing.T) {
	cfg := config.Default().Weather
	cfg.CloudMinY, cfg.CloudMaxY = 300, 20
	_, err := NewSpawner(SpawnerOptions{Config: cfg, Host: host.Discard(), RNG: corerng.NewRNG(1)})
	if !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestRainAtMostOneBurst(t *testing.T) {
	rt := host.Discard()
	cfg := config.Default().Weather
	s := newSpawner(t, rt, cfg)
	if _, err := s.Spawn(); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	r := newRain(t, rt, s, cfg)

	step := 50 * time.Millisecond
	r.OnJump()
	if !r.Active() || r.Bursts() != 1 {
		t.Fatal("jump should start a burst")
	}
	// 2s burst at 50ms per tick: the burst ends on tick 40.
	for i := 1; i <= 40; i++ {
		if i%10 == 0 {
			r.OnJump()
		}
		rt.Tick(step)
		if i < 40 && !r.Active() {
			t.Fatalf("burst ended early at tick %d", i)
		}
	}
	if r.Active() {
		t.Fatal("extra jumps must not extend the burst")
	}
	if r.Bursts() != 1 {
		t.Fatalf("bursts = %d, want 1", r.Bursts())
	}
	spawned, live := r.Drops()
	if spawned != 40 || live != 40 {
		t.Fatalf("spawned=%d live=%d, want 40 from one cloud", spawned, live)
	}

	// Drops in flight finish on their own.
	rt.Tick(step)
	if _, more := r.Drops(); more != 40 {
		t.Fatalf("no drops should spawn after the burst, live=%d", more)
	}
	for i := 0; i < 110; i++ {
		rt.Tick(step)
	}
	if _, live := r.Drops(); live != 0 {
		t.Fatalf("%d drops still falling after their duration", live)
	}
	if n := rt.CountTag(core.LayerClouds, core.TagDrop); n != 0 {
		t.Fatalf("%d drops left in the scene", n)
	}

	r.OnJump()
	if !r.Active() || r.Bursts() != 2 {
		t.Fatal("a jump after the burst ended should start a new one")
	}
}

func TestRainDropsFallAndFade(t *testing.T) {
	rt := host.Discard()
	cfg := config.Default().Weather
	s := newSpawner(t, rt, cfg)
	c, err := s.Spawn()
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	r := newRain(t, rt, s, cfg)
	r.OnJump()
	rt.Tick(50 * time.Millisecond)

	var drop *core.Object
	for _, o := range rt.Objects(core.LayerClouds) {
		if o.Tag == core.TagDrop {
			drop = o
		}
	}
	if drop == nil {
		t.Fatal("expected a drop after the first interval")
	}
	base := c.BottomCenter()
	if dx := drop.Center().X() - base.X(); math.Abs(dx) > cfg.DropSpread+1 {
		t.Fatalf("drop %v is %v away from the cloud", drop.Center(), dx)
	}
	startY := drop.Pos.Y()
	rt.Tick(2500 * time.Millisecond)
	if drop.Opacity >= 1 || drop.Opacity <= 0 {
		t.Fatalf("opacity mid-fall = %v", drop.Opacity)
	}
	if math.Abs(drop.Pos.Y()-(startY+cfg.DropFall/2)) > 1e-3 {
		t.Fatalf("drop at y=%v halfway through, want %v", drop.Pos.Y(), startY+cfg.DropFall/2)
	}
}

func TestRainWithoutCloudsStillTimesOut(t *testing.T) {
	rt := host.Discard()
	cfg := config.Default().Weather
	r := newRain(t, rt, newSpawner(t, rt, cfg), cfg)
	r.OnJump()
	rt.Tick(2 * time.Second)
	if r.Active() {
		t.Fatal("burst should end after its duration")
	}
	if spawned, _ := r.Drops(); spawned != 0 {
		t.Fatalf("spawned %d drops without clouds", spawned)
	}
}
