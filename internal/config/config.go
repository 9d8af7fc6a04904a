package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"pepse/internal/noise"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("invalid world config")

// WorldConfig is the explicit, immutable-after-construction description of a
// world. Durations are expressed in seconds.
type WorldConfig struct {
	Seed int64 `yaml:"seed" toml:"seed"`
	// FloraSeed fixes the flora/weather random stream. Zero draws a fresh
	// stream on every run.
	FloraSeed int64 `yaml:"flora_seed" toml:"flora_seed"`

	Window   WindowConfig   `yaml:"window" toml:"window"`
	Terrain  TerrainConfig  `yaml:"terrain" toml:"terrain"`
	Flora    FloraConfig    `yaml:"flora" toml:"flora"`
	Weather  WeatherConfig  `yaml:"weather" toml:"weather"`
	DayNight DayNightConfig `yaml:"day_night" toml:"day_night"`
	Avatar   AvatarConfig   `yaml:"avatar" toml:"avatar"`
}

type WindowConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

type TerrainConfig struct {
	Noise     string  `yaml:"noise" toml:"noise"`
	Amplitude float64 `yaml:"amplitude" toml:"amplitude"`
	Scale     float64 `yaml:"scale" toml:"scale"`
	Octaves   int     `yaml:"octaves" toml:"octaves"`
	CellSize  float64 `yaml:"cell_size" toml:"cell_size"`
	Depth     int     `yaml:"depth" toml:"depth"`
	// BaselineRatio places the baseline as a fraction of the window height.
	BaselineRatio float64 `yaml:"baseline_ratio" toml:"baseline_ratio"`
	// ChunkCells is the width of one streamed chunk, in cells.
	ChunkCells int `yaml:"chunk_cells" toml:"chunk_cells"`
	// MarginChunks extra chunks are kept generated on either side of the view.
	MarginChunks int `yaml:"margin_chunks" toml:"margin_chunks"`
}

type FloraConfig struct {
	Spacing          float64 `yaml:"spacing" toml:"spacing"`
	PlantProbability float64 `yaml:"plant_probability" toml:"plant_probability"`

	TrunkMinHeight int     `yaml:"trunk_min_height" toml:"trunk_min_height"`
	TrunkMaxHeight int     `yaml:"trunk_max_height" toml:"trunk_max_height"`
	TrunkWidth     float64 `yaml:"trunk_width" toml:"trunk_width"`

	LeafSize         float64 `yaml:"leaf_size" toml:"leaf_size"`
	CanopyWidth      float64 `yaml:"canopy_width" toml:"canopy_width"`
	CanopyHeight     float64 `yaml:"canopy_height" toml:"canopy_height"`
	LeafProbability  float64 `yaml:"leaf_probability" toml:"leaf_probability"`
	FruitProbability float64 `yaml:"fruit_probability" toml:"fruit_probability"`

	LeafSwayAngle   float64 `yaml:"leaf_sway_angle" toml:"leaf_sway_angle"`
	LeafSwaySeconds float64 `yaml:"leaf_sway_seconds" toml:"leaf_sway_seconds"`
	LeafSwayDelay   float64 `yaml:"leaf_sway_delay" toml:"leaf_sway_delay"`

	FruitSize         float64 `yaml:"fruit_size" toml:"fruit_size"`
	FruitEnergy       float64 `yaml:"fruit_energy" toml:"fruit_energy"`
	FruitRespawn      float64 `yaml:"fruit_respawn" toml:"fruit_respawn"`
	FruitFloatOffset  float64 `yaml:"fruit_float_offset" toml:"fruit_float_offset"`
	FruitFloatSeconds float64 `yaml:"fruit_float_seconds" toml:"fruit_float_seconds"`
}

type WeatherConfig struct {
	CloudInterval float64 `yaml:"cloud_interval" toml:"cloud_interval"`
	CloudMinY     float64 `yaml:"cloud_min_y" toml:"cloud_min_y"`
	CloudMaxY     float64 `yaml:"cloud_max_y" toml:"cloud_max_y"`
	CloudSpawnX   float64 `yaml:"cloud_spawn_x" toml:"cloud_spawn_x"`
	CloudCell     float64 `yaml:"cloud_cell" toml:"cloud_cell"`
	CloudTravel   float64 `yaml:"cloud_travel" toml:"cloud_travel"`
	CloudSpeed    float64 `yaml:"cloud_speed" toml:"cloud_speed"`

	DropInterval  float64 `yaml:"drop_interval" toml:"drop_interval"`
	DropFall      float64 `yaml:"drop_fall" toml:"drop_fall"`
	DropDuration  float64 `yaml:"drop_duration" toml:"drop_duration"`
	DropSpread    float64 `yaml:"drop_spread" toml:"drop_spread"`
	DropWidth     float64 `yaml:"drop_width" toml:"drop_width"`
	DropHeight    float64 `yaml:"drop_height" toml:"drop_height"`
	BurstDuration float64 `yaml:"burst_duration" toml:"burst_duration"`
}

type DayNightConfig struct {
	Cycle           float64 `yaml:"cycle" toml:"cycle"`
	MidnightOpacity float64 `yaml:"midnight_opacity" toml:"midnight_opacity"`
	SunDiameter     float64 `yaml:"sun_diameter" toml:"sun_diameter"`
	HaloDiameter    float64 `yaml:"halo_diameter" toml:"halo_diameter"`
	OrbitRadius     float64 `yaml:"orbit_radius" toml:"orbit_radius"`
}

type AvatarConfig struct {
	Width     float64 `yaml:"width" toml:"width"`
	Height    float64 `yaml:"height" toml:"height"`
	MaxEnergy float64 `yaml:"max_energy" toml:"max_energy"`
	// Speed is the walking speed in pixels per second.
	Speed        float64 `yaml:"speed" toml:"speed"`
	JumpCost     float64 `yaml:"jump_cost" toml:"jump_cost"`
	MoveCost     float64 `yaml:"move_cost" toml:"move_cost"`
	IdleRecovery float64 `yaml:"idle_recovery" toml:"idle_recovery"`
}

// Default returns the standard configuration.
func Default() WorldConfig {
	return WorldConfig{
		Seed:   42,
		Window: WindowConfig{Width: 960, Height: 600},
		Terrain: TerrainConfig{
			Noise:         "simplex",
			Amplitude:     210,
			Scale:         420,
			Octaves:       3,
			CellSize:      30,
			Depth:         20,
			BaselineRatio: 2.0 / 3.0,
			ChunkCells:    16,
			MarginChunks:  1,
		},
		Flora: FloraConfig{
			Spacing:           30,
			PlantProbability:  0.1,
			TrunkMinHeight:    150,
			TrunkMaxHeight:    200,
			TrunkWidth:        30,
			LeafSize:          25,
			CanopyWidth:       150,
			CanopyHeight:      200,
			LeafProbability:   0.8,
			FruitProbability:  0.2,
			LeafSwayAngle:     10,
			LeafSwaySeconds:   0.5,
			LeafSwayDelay:     1,
			FruitSize:         25,
			FruitEnergy:       10,
			FruitRespawn:      30,
			FruitFloatOffset:  3,
			FruitFloatSeconds: 2,
		},
		Weather: WeatherConfig{
			CloudInterval: 10,
			CloudMinY:     20,
			CloudMaxY:     300,
			CloudSpawnX:   -500,
			CloudCell:     30,
			CloudTravel:   1600,
			CloudSpeed:    40,
			DropInterval:  0.05,
			DropFall:      800,
			DropDuration:  5,
			DropSpread:    80,
			DropWidth:     3,
			DropHeight:    7,
			BurstDuration: 2,
		},
		DayNight: DayNightConfig{
			Cycle:           30,
			MidnightOpacity: 0.5,
			SunDiameter:     100,
			HaloDiameter:    250,
			OrbitRadius:     300,
		},
		Avatar: AvatarConfig{
			Width:        30,
			Height:       50,
			MaxEnergy:    100,
			Speed:        300,
			JumpCost:     10,
			MoveCost:     0.5,
			IdleRecovery: 1,
		},
	}
}

// Seconds converts a configured number of seconds to a time.Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Baseline returns the terrain baseline height in pixels.
func (c WorldConfig) Baseline() float64 {
	return float64(c.Window.Height) * c.Terrain.BaselineRatio
}

// ChunkWidth returns the width of one streamed chunk in pixels.
func (c WorldConfig) ChunkWidth() float64 {
	return float64(c.Terrain.ChunkCells) * c.Terrain.CellSize
}

// Validate reports every invalid setting, joined into one error wrapping ErrInvalid.
func (c WorldConfig) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			fail("%s must be positive, got %v", name, v)
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 || math.IsNaN(v) {
			fail("%s must be within [0,1], got %v", name, v)
		}
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		fail("window dimensions must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	t := c.Terrain
	if !noise.Known(t.Noise) {
		fail("terrain.noise %q is not one of %v", t.Noise, noise.Kinds())
	}
	if t.Amplitude < 0 {
		fail("terrain.amplitude must not be negative, got %v", t.Amplitude)
	}
	positive("terrain.scale", t.Scale)
	positive("terrain.cell_size", t.CellSize)
	if t.Octaves <= 0 {
		fail("terrain.octaves must be positive, got %d", t.Octaves)
	}
	if t.Depth <= 0 {
		fail("terrain.depth must be positive, got %d", t.Depth)
	}
	if t.BaselineRatio <= 0 || t.BaselineRatio >= 1 {
		fail("terrain.baseline_ratio must be within (0,1), got %v", t.BaselineRatio)
	}
	if t.ChunkCells <= 0 {
		fail("terrain.chunk_cells must be positive, got %d", t.ChunkCells)
	}
	if t.MarginChunks < 0 {
		fail("terrain.margin_chunks must not be negative, got %d", t.MarginChunks)
	}

	f := c.Flora
	positive("flora.spacing", f.Spacing)
	probability("flora.plant_probability", f.PlantProbability)
	if f.TrunkMinHeight <= 0 || f.TrunkMaxHeight < f.TrunkMinHeight {
		fail("flora trunk height range [%d,%d] is invalid", f.TrunkMinHeight, f.TrunkMaxHeight)
	}
	positive("flora.trunk_width", f.TrunkWidth)
	positive("flora.leaf_size", f.LeafSize)
	if f.CanopyWidth < 0 || f.CanopyHeight < 0 {
		fail("flora canopy box must not be negative, got %vx%v", f.CanopyWidth, f.CanopyHeight)
	}
	probability("flora.leaf_probability", f.LeafProbability)
	probability("flora.fruit_probability", f.FruitProbability)
	positive("flora.leaf_sway_seconds", f.LeafSwaySeconds)
	positive("flora.fruit_size", f.FruitSize)
	if f.FruitEnergy < 0 {
		fail("flora.fruit_energy must not be negative, got %v", f.FruitEnergy)
	}
	positive("flora.fruit_respawn", f.FruitRespawn)
	positive("flora.fruit_float_seconds", f.FruitFloatSeconds)

	w := c.Weather
	positive("weather.cloud_interval", w.CloudInterval)
	if w.CloudMaxY < w.CloudMinY {
		fail("weather cloud height band [%v,%v] is inverted", w.CloudMinY, w.CloudMaxY)
	}
	positive("weather.cloud_cell", w.CloudCell)
	positive("weather.cloud_travel", w.CloudTravel)
	positive("weather.cloud_speed", w.CloudSpeed)
	positive("weather.drop_interval", w.DropInterval)
	positive("weather.drop_duration", w.DropDuration)
	positive("weather.burst_duration", w.BurstDuration)
	if w.DropSpread < 0 {
		fail("weather.drop_spread must not be negative, got %v", w.DropSpread)
	}

	d := c.DayNight
	positive("day_night.cycle", d.Cycle)
	probability("day_night.midnight_opacity", d.MidnightOpacity)

	a := c.Avatar
	positive("avatar.width", a.Width)
	positive("avatar.height", a.Height)
	positive("avatar.max_energy", a.MaxEnergy)
	if a.Speed < 0 || a.JumpCost < 0 || a.MoveCost < 0 || a.IdleRecovery < 0 {
		fail("avatar speed and energy costs must not be negative")
	}

	return errors.Join(errs...)
}
