package weather

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"pepse/internal/config"
	"pepse/internal/core"
	corerng "pepse/pkg/core"
)

// ErrInvalidOptions is returned by constructors for unusable parameters.
var ErrInvalidOptions = errors.New("weather: invalid options")

// Spawner creates a cloud on a fixed interval and keeps every cloud it has
// ever made. The list only grows.
type Spawner struct {
	host  core.Host
	cfg   config.WeatherConfig
	rng   *corerng.RNG
	shape *core.ByteGrid
	layer core.Layer
	log   *slog.Logger

	driver  *core.Object
	started bool
	clouds  []*Cloud
}

// SpawnerOptions configure a Spawner.
type SpawnerOptions struct {
	Config config.WeatherConfig
	Host   core.Host
	// RNG picks cloud heights and shades.
	RNG *corerng.RNG
	// Shape defaults to DefaultShape.
	Shape  *core.ByteGrid
	Layer  core.Layer
	Logger *slog.Logger
}

// NewSpawner validates opts and returns an idle spawner.
func NewSpawner(opts SpawnerOptions) (*Spawner, error) {
	c := opts.Config
	if opts.Host == nil || opts.RNG == nil {
		return nil, fmt.Errorf("%w: host and rng are required", ErrInvalidOptions)
	}
	if !(c.CloudInterval > 0) || !(c.CloudCell > 0) {
		return nil, fmt.Errorf("%w: cloud interval and cell must be positive", ErrInvalidOptions)
	}
	if c.CloudMaxY < c.CloudMinY {
		return nil, fmt.Errorf("%w: cloud band [%v,%v] is inverted", ErrInvalidOptions, c.CloudMinY, c.CloudMaxY)
	}
	shape := opts.Shape
	if shape == nil {
		shape = DefaultShape
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Spawner{
		host:   opts.Host,
		cfg:    c,
		rng:    opts.RNG,
		shape:  shape,
		layer:  opts.Layer,
		log:    log,
		driver: core.NewDriver("cloud-spawner"),
	}, nil
}

// Start begins spawning one cloud every interval. Repeated calls are no-ops.
func (s *Spawner) Start() {
	if s.started {
		return
	}
	s.started = true
	s.host.Add(s.driver, core.LayerTasks)
	s.host.ScheduleRepeating(s.driver, config.Seconds(s.cfg.CloudInterval), func() {
		if _, err := s.Spawn(); err != nil {
			s.log.Error("cloud spawn failed", "err", err)
		}
	})
}

// Spawn creates one cloud right away at a random height in the band.
func (s *Spawner) Spawn() (*Cloud, error) {
	y := s.cfg.CloudMinY
	if s.cfg.CloudMaxY > s.cfg.CloudMinY {
		y = s.rng.Between(s.cfg.CloudMinY, s.cfg.CloudMaxY)
	}
	cl, err := NewCloud(s.host, mgl64.Vec2{s.cfg.CloudSpawnX, y}, s.shape, CloudOptions{
		Cell:   s.cfg.CloudCell,
		Travel: s.cfg.CloudTravel,
		Speed:  s.cfg.CloudSpeed,
		Layer:  s.layer,
		Shade:  s.rng,
	})
	if err != nil {
		return nil, err
	}
	s.clouds = append(s.clouds, cl)
	s.log.Debug("cloud spawned", "y", y, "clouds", len(s.clouds))
	return cl, nil
}

// Clouds returns a snapshot of every cloud spawned so far.
func (s *Spawner) Clouds() []*Cloud {
	out := make([]*Cloud, len(s.clouds))
	copy(out, s.clouds)
	return out
}

// Started reports whether Start has been called.
func (s *Spawner) Started() bool { return s.started }
