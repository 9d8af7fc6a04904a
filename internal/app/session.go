package app

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"pepse/internal/config"
	"pepse/internal/host"
	"pepse/internal/render"
	"pepse/internal/world"
)

// Input is the player intent for one tick.
type Input struct {
	Left  bool
	Right bool
	Jump  bool
}

func (in Input) idle() bool { return in.Left == in.Right && !in.Jump }

// Session owns one world, the runtime it lives on and a frame buffer. Every
// frontend drives the simulation through it, one fixed step per Step call.
type Session struct {
	cfg    config.WorldConfig
	log    *slog.Logger
	step   time.Duration
	rt     *host.Runtime
	world  *world.World
	raster *render.Rasterizer
	ticks  int
}

// NewSession builds a world from cfg and starts it. tps fixes the simulated
// duration of each Step.
func NewSession(cfg config.WorldConfig, tps int, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	if tps <= 0 {
		tps = 60
	}
	s := &Session{
		cfg:    cfg,
		log:    log,
		step:   time.Second / time.Duration(tps),
		raster: render.NewRasterizer(cfg.Window.Width, cfg.Window.Height),
	}
	if err := s.Reset(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards the current world and builds a fresh one from seed.
func (s *Session) Reset(seed int64) error {
	cfg := s.cfg
	cfg.Seed = seed
	rt := host.New(host.Options{Logger: s.log})
	w, err := world.New(cfg, rt, world.Options{Logger: s.log})
	if err != nil {
		return fmt.Errorf("reset seed %d: %w", seed, err)
	}
	w.Start()
	s.cfg = cfg
	s.rt = rt
	s.world = w
	s.ticks = 0
	return nil
}

// Step applies in and advances the simulation by one tick.
func (s *Session) Step(in Input) {
	dx := s.cfg.Avatar.Speed * s.step.Seconds()
	switch {
	case in.Left && !in.Right:
		s.world.Walk(-dx)
	case in.Right && !in.Left:
		s.world.Walk(dx)
	}
	if in.Jump {
		s.world.Jump()
	}
	if in.idle() {
		s.world.Rest()
	}
	s.rt.Tick(s.step)
	s.world.Update()
	s.ticks++
}

// Run advances d of simulated time with no input.
func (s *Session) Run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += s.step {
		s.Step(Input{})
	}
}

// Render draws the current frame and returns it. The image is reused by the
// next call.
func (s *Session) Render() *image.RGBA {
	s.raster.Draw(s.rt, s.world.Camera())
	return s.raster.Image()
}

func (s *Session) Config() config.WorldConfig { return s.cfg }
func (s *Session) Seed() int64 { return s.cfg.Seed }
func (s *Session) World() *world.World { return s.world }
func (s *Session) Runtime() *host.Runtime { return s.rt }
func (s *Session) Raster() *render.Rasterizer { return s.raster }
func (s *Session) StepDuration() time.Duration { return s.step }
func (s *Session) Ticks() int { return s.ticks }
