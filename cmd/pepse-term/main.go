// Command pepse-term runs the world in a terminal, two raster rows per cell.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"pepse/internal/app"
	"pepse/internal/config"
	"pepse/internal/core"
)

// holdTicks is how long one key event keeps the avatar walking. Terminals
// only report key repeats, never releases.
const holdTicks = 8

type viewer struct {
	screen  tcell.Screen
	session *app.Session
	log     *slog.Logger
	pace    *core.FixedStep

	walk     int
	walkLeft int
	jump     bool
	paused   bool
}

func main() {
	flags := config.NewFlags()
	flags.Bind(flag.CommandLine)
	logPath := flag.String("log-file", "", "write logs to this file; the terminal is busy drawing")
	flag.Parse()

	var sink io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		defer f.Close()
		sink = f
	}
	log, err := config.NewLogger(flags.LogLevel, sink)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg, err := flags.Resolve(flag.CommandLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	session, err := app.NewSession(cfg, flags.TPS, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build world:", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "open terminal:", err)
		os.Exit(1)
	}
	v := &viewer{screen: screen, session: session, log: log, pace: core.NewFixedStep(flags.TPS)}
	if err := v.play(); err != nil {
		fmt.Fprintln(os.Stderr, "init terminal:", err)
		os.Exit(1)
	}
}

// play takes over the terminal until the user quits. The terminal is
// restored on every exit path, panics included.
func (v *viewer) play() error {
	if err := v.screen.Init(); err != nil {
		return err
	}
	defer v.screen.Fini()
	v.run()
	return nil
}

func (v *viewer) run() {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				return
			}
		case <-timer.C:
			for v.pace.ShouldStep() {
				v.tick()
			}
			v.draw()
			timer.Reset(v.pace.Wait())
		}
	}
}

func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.walk, v.walkLeft = -1, holdTicks
		case tcell.KeyRight:
			v.walk, v.walkLeft = 1, holdTicks
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.jump = true
			case 'p':
				v.paused = !v.paused
			case 'r':
				v.reset(v.session.Seed())
			case 's':
				v.reset(time.Now().UnixNano())
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) reset(seed int64) {
	if err := v.session.Reset(seed); err != nil {
		v.log.Error("reset failed", "seed", seed, "err", err)
	}
}

func (v *viewer) tick() {
	if v.paused {
		return
	}
	in := app.Input{Jump: v.jump}
	if v.walkLeft > 0 {
		in.Left = v.walk < 0
		in.Right = v.walk > 0
		v.walkLeft--
	}
	v.jump = false
	v.session.Step(in)
}

func (v *viewer) draw() {
	cols, rows := v.screen.Size()
	if cols <= 0 || rows <= 1 {
		return
	}
	v.session.Render()
	cells := v.session.Raster().Downsample(cols, (rows-1)*2)
	for y := 0; y < rows-1; y++ {
		for x := 0; x < cols; x++ {
			top := cells[(2*y)*cols+x]
			bottom := cells[(2*y+1)*cols+x]
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			v.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	v.drawStatus(cols, rows-1)
	v.screen.Show()
}

func (v *viewer) drawStatus(cols, row int) {
	w := v.session.World()
	st := w.Stats()
	line := fmt.Sprintf(" seed %d  energy %3.0f  x %6.0f  chunks %d  trees %d  rain %v  [arrows walk, space jump, p pause, r/s reset, q quit]",
		v.session.Seed(), w.Energy().Value(), w.Avatar().Center().X(), st.Chunks, st.Trees, w.Rain().Active())
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		v.screen.SetContent(x, row, r, nil, style)
	}
}
