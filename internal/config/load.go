package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Load reads a configuration file on top of Default(). The format is chosen by
// extension: .yaml/.yml or .toml. The result is validated.
func Load(path string) (WorldConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(&cfg, filepath.Ext(path), data); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode unmarshals data of the given extension into cfg, keeping any field the
// document does not mention.
func Decode(cfg *WorldConfig, ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
		return nil
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data)).Strict(true)
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("parse toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Encode renders cfg in the format selected by ext.
func Encode(cfg WorldConfig, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	case ".toml":
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Flags are the command-line parameters shared by the binaries.
type Flags struct {
	ConfigPath string
	Seed       int64
	FloraSeed  int64
	Noise      string
	Width      int
	Height     int
	TPS        int
	LogLevel   string
}

// NewFlags returns Flags populated from Default().
func NewFlags() *Flags {
	d := Default()
	return &Flags{
		Seed:     d.Seed,
		Noise:    d.Terrain.Noise,
		Width:    d.Window.Width,
		Height:   d.Window.Height,
		TPS:      60,
		LogLevel: "info",
	}
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "YAML or TOML world config file")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "terrain seed")
	fs.Int64Var(&f.FloraSeed, "flora-seed", f.FloraSeed, "flora and weather seed (0 = random each run)")
	fs.StringVar(&f.Noise, "noise", f.Noise, "terrain noise kind")
	fs.IntVar(&f.Width, "width", f.Width, "window width in pixels")
	fs.IntVar(&f.Height, "height", f.Height, "window height in pixels")
	fs.IntVar(&f.TPS, "tps", f.TPS, "ticks per second")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "log level: debug, info, warn, error")
}

// Resolve loads the config file, if any, then applies flags that were set
// explicitly on fs.
func (f *Flags) Resolve(fs *flag.FlagSet) (WorldConfig, error) {
	cfg := Default()
	if f.ConfigPath != "" {
		loaded, err := Load(f.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if set["seed"] || f.ConfigPath == "" {
		cfg.Seed = f.Seed
	}
	if set["flora-seed"] {
		cfg.FloraSeed = f.FloraSeed
	}
	if set["noise"] {
		cfg.Terrain.Noise = f.Noise
	}
	if set["width"] {
		cfg.Window.Width = f.Width
	}
	if set["height"] {
		cfg.Window.Height = f.Height
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
