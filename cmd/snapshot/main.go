// Command snapshot runs the world headless for a while and writes the final
// frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"time"

	"pepse/internal/app"
	"pepse/internal/config"
)

func main() {
	flags := config.NewFlags()
	flags.Bind(flag.CommandLine)
	seconds := flag.Float64("seconds", 12, "simulated seconds before the frame is taken")
	walk := flag.Float64("walk", 0, "seconds to walk right before the capture (negative walks left)")
	jump := flag.Bool("jump", false, "jump once at the start to trigger a rain burst")
	out := flag.String("out", "pepse.png", "output PNG path")
	flag.Parse()

	log, err := config.NewLogger(flags.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg, err := flags.Resolve(flag.CommandLine)
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	s, err := app.NewSession(cfg, flags.TPS, log)
	if err != nil {
		log.Error("build world", "err", err)
		os.Exit(1)
	}

	total := config.Seconds(*seconds)
	walking := config.Seconds(max(*walk, -*walk))
	for elapsed := time.Duration(0); elapsed < total; elapsed += s.StepDuration() {
		in := app.Input{Jump: *jump && elapsed == 0}
		if elapsed < walking {
			in.Right = *walk > 0
			in.Left = *walk < 0
		}
		s.Step(in)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Error("create output", "path", *out, "err", err)
		os.Exit(1)
	}
	if err := png.Encode(f, s.Render()); err != nil {
		f.Close()
		log.Error("encode png", "path", *out, "err", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		log.Error("close output", "path", *out, "err", err)
		os.Exit(1)
	}
	st := s.World().Stats()
	log.Info("snapshot written", "path", *out, "seed", s.Seed(), "ticks", s.Ticks(),
		"chunks", st.Chunks, "trees", st.Trees, "clouds", len(s.World().Spawner().Clouds()))
}
