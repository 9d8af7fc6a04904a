//go:build !ebiten

package ui

import "pepse/internal/core"

// Source is what the HUD reads each frame.
type Source interface {
	Parameters() core.ParameterSnapshot
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(string, int) *HUD { return nil }

// Attach is a no-op in the headless build.
func (h *HUD) Attach(Source) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
