package world

import "pepse/internal/core"

const (
	paramPlantProbability = "flora.plant_probability"
	paramDropSpread       = "weather.drop_spread"
)

// Parameters returns the live state shown on the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	spawned, live := w.rain.Drops()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.Int64Param("seed", "Seed", w.cfg.Seed),
				core.StringParam("noise", "Noise", w.cfg.Terrain.Noise),
				core.FloatParam("avatar.x", "Avatar X", w.avatar.Center().X()),
				core.FloatParam("energy", "Energy", float64(int(w.energy.Value()))),
			},
		},
		{
			Name: "Streaming",
			Params: []core.Parameter{
				core.IntParam("chunks", "Chunks", w.stats.Chunks),
				core.IntParam("blocks", "Blocks", w.stats.Blocks),
				core.IntParam("trees", "Trees", w.stats.Trees),
				core.IntParam("fruit", "Fruit", w.stats.Fruit),
				core.FloatParam(paramPlantProbability, "Plant prob", w.scatterer.Probability()),
			},
		},
		{
			Name: "Weather",
			Params: []core.Parameter{
				core.IntParam("clouds", "Clouds", len(w.spawner.Clouds())),
				core.BoolParam("raining", "Raining", w.rain.Active()),
				core.IntParam("bursts", "Bursts", w.rain.Bursts()),
				core.IntParam("drops", "Drops", spawned),
				core.IntParam("drops.live", "Falling", live),
				core.FloatParam(paramDropSpread, "Drop spread", w.rain.Spread()),
			},
		},
		{
			Name: "Sky",
			Params: []core.Parameter{
				core.FloatParam("sun.angle", "Sun angle", float64(int(w.cycle.Angle()))),
				core.FloatParam("daylight", "Daylight", float64(int(w.cycle.Daylight(w.cfg.DayNight.MidnightOpacity)*100))/100),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: paramPlantProbability, Label: "Plant prob", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: paramDropSpread, Label: "Drop spread", Type: core.ParamTypeFloat, Step: 10, Min: 0, HasMin: true},
	}
}

// SetFloatParameter applies a HUD adjustment. Changes only affect content
// generated afterwards.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case paramPlantProbability:
		w.scatterer.SetProbability(value)
	case paramDropSpread:
		w.rain.SetSpread(value)
	default:
		return false
	}
	return true
}

var (
	_ core.ParameterControlsProvider = (*World)(nil)
	_ core.FloatParameterSetter      = (*World)(nil)
)
