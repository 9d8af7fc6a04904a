//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"pepse/internal/app"
	"pepse/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := config.NewFlags()
	flags.Bind(flag.CommandLine)
	hud := flag.Int("hud", 220, "HUD panel width in pixels (0 hides it)")
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

	session, err := app.NewSession(cfg, flags.TPS, log)
	if err != nil {
		log.Error("build world", "err", err)
		os.Exit(1)
	}
	game := app.New(session, *hud, log)

	ebiten.SetWindowTitle(fmt.Sprintf("pepse (seed %d)", cfg.Seed))
	ebiten.SetTPS(flags.TPS)
	ebiten.SetWindowSize(cfg.Window.Width+*hud, cfg.Window.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("game stopped", "err", err)
		os.Exit(1)
	}
}
