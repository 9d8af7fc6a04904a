package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"pepse/internal/core"
)

type finiRecorder struct {
	tcell.Screen
	finished bool
}

func (f *finiRecorder) Fini() {
	f.finished = true
	f.Screen.Fini()
}

func TestPlayRestoresTerminalOnPanic(t *testing.T) {
	screen := &finiRecorder{Screen: tcell.NewSimulationScreen("")}
	// No session: the first tick panics.
	v := &viewer{screen: screen, pace: core.NewFixedStep(60)}
	defer func() {
		if recover() == nil {
			t.Fatal("expected the tick to panic")
		}
		if !screen.finished {
			t.Fatal("terminal left in raw mode after a panic")
		}
	}()
	v.play()
}
