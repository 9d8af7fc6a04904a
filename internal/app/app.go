//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"pepse/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	session *Session
	log     *slog.Logger
	frame   *ebiten.Image
	hud     *ui.HUD
	overlay *ui.Overlay

	hudWidth int
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided session. hudWidth reserves a panel
// to the right of the world view; zero hides it.
func New(s *Session, hudWidth int, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	cfg := s.Config()
	g := &Game{
		session:  s,
		log:      log,
		frame:    ebiten.NewImage(cfg.Window.Width, cfg.Window.Height),
		hud:      ui.NewHUD("pepse", hudWidth),
		overlay:  ui.NewOverlay(),
		hudWidth: hudWidth,
	}
	g.attach()
	return g
}

func (g *Game) attach() {
	g.hud.Attach(g.session.World())
	g.overlay.Attach(g.session.World())
}

// Reset rebuilds the world with the provided seed. A failed reset keeps the
// current world.
func (g *Game) Reset(seed int64) {
	if err := g.session.Reset(seed); err != nil {
		g.log.Error("reset failed", "seed", seed, "err", err)
		return
	}
	g.log.Info("world reset", "seed", seed)
	g.tickOnce = false
	g.attach()
}

// Update handles per-frame input and advances the session by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.session.Seed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.session.Config().Window.Width)

	if !g.paused || g.tickOnce {
		g.session.Step(Input{
			Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
			Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
			Jump:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		})
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current frame, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.frame.WritePixels(g.session.Render().Pix)
	screen.DrawImage(g.frame, nil)
	g.overlay.Draw(screen)
	cfg := g.session.Config()
	g.hud.Draw(screen, cfg.Window.Width, cfg.Window.Height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.session.Config()
	return cfg.Window.Width + g.hudWidth, cfg.Window.Height
}
