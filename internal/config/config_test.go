package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDefaultConfig(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default configuration should be valid: %v", err)
	}
}

func TestValidateDetectsInvalidConfigurations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WorldConfig)
		wantErr string
	}{
		{
			name:    "non positive window",
			mutate:  func(c *WorldConfig) { c.Window.Height = 0 },
			wantErr: "window dimensions must be positive",
		},
		{
			name:    "unknown noise kind",
			mutate:  func(c *WorldConfig) { c.Terrain.Noise = "plasma" },
			wantErr: `terrain.noise "plasma"`,
		},
		{
			name:    "zero cell size",
			mutate:  func(c *WorldConfig) { c.Terrain.CellSize = 0 },
			wantErr: "terrain.cell_size must be positive",
		},
		{
			name:    "inverted trunk range",
			mutate:  func(c *WorldConfig) { c.Flora.TrunkMaxHeight = c.Flora.TrunkMinHeight - 1 },
			wantErr: "trunk height range",
		},
		{
			name:    "plant probability above one",
			mutate:  func(c *WorldConfig) { c.Flora.PlantProbability = 1.5 },
			wantErr: "flora.plant_probability must be within [0,1]",
		},
		{
			name:    "inverted cloud band",
			mutate:  func(c *WorldConfig) { c.Weather.CloudMinY, c.Weather.CloudMaxY = 300, 20 },
			wantErr: "cloud height band",
		},
		{
			name:    "zero burst duration",
			mutate:  func(c *WorldConfig) { c.Weather.BurstDuration = 0 },
			wantErr: "weather.burst_duration must be positive",
		},
		{
			name:    "baseline outside window",
			mutate:  func(c *WorldConfig) { c.Terrain.BaselineRatio = 1 },
			wantErr: "terrain.baseline_ratio",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("error must wrap ErrInvalid: %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Depth = 0
	cfg.Weather.CloudSpeed = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"terrain.depth", "weather.cloud_speed"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("joined error %q is missing %q", err, want)
		}
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	doc := `seed: 7
terrain:
  noise: perlin
  cell_size: 20
flora:
  plant_probability: 0.25
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 7 || cfg.Terrain.Noise != "perlin" || cfg.Terrain.CellSize != 20 {
		t.Fatalf("unexpected terrain settings: %+v seed=%d", cfg.Terrain, cfg.Seed)
	}
	if cfg.Flora.PlantProbability != 0.25 {
		t.Fatalf("plant probability = %v", cfg.Flora.PlantProbability)
	}
	if cfg.Terrain.Depth != Default().Terrain.Depth {
		t.Fatal("fields absent from the document must keep their defaults")
	}
}

func TestLoadYAMLRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yml")
	if err := os.WriteFile(path, []byte("terrain:\n  wobble: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.toml")
	doc := `seed = 1234

[weather]
burst_duration = 3.5
drop_spread = 40.0
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 1234 || cfg.Weather.BurstDuration != 3.5 || cfg.Weather.DropSpread != 40 {
		t.Fatalf("unexpected values: seed=%d weather=%+v", cfg.Seed, cfg.Weather)
	}
}

func TestLoadTOMLRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.toml")
	if err := os.WriteFile(path, []byte("[terrain]\nwobble = 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestLoadInvalidValuesFailValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte("terrain:\n  depth: -2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestDecodeUnsupportedExtension(t *testing.T) {
	cfg := Default()
	if err := Decode(&cfg, ".json", []byte("{}")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestEncodeRoundTripYAML(t *testing.T) {
	want := Default()
	want.Seed = -99
	data, err := Encode(want, ".yaml")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got := Default()
	if err := Decode(&got, ".yaml", data); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestFlagsResolveOverridesOnlyExplicitFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte("seed: 5\nwindow:\n  width: 640\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := NewFlags()
	f.Bind(fs)
	if err := fs.Parse([]string{"-config", path, "-noise", "value"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := f.Resolve(fs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Seed != 5 {
		t.Fatalf("seed from file should survive when -seed is not passed, got %d", cfg.Seed)
	}
	if cfg.Window.Width != 640 {
		t.Fatalf("width from file should survive, got %d", cfg.Window.Width)
	}
	if cfg.Terrain.Noise != "value" {
		t.Fatalf("explicit -noise should win, got %q", cfg.Terrain.Noise)
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(0.05).Milliseconds(); got != 50 {
		t.Fatalf("Seconds(0.05) = %dms", got)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("warn", &buf)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "k=1") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := NewLogger("loud", &buf); err == nil {
		t.Fatal("expected unknown level to fail")
	}
}
