//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"pepse/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Source is what the HUD reads each frame.
type Source interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the parameter panel to the right of the world view.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	source       Source
	controls     []hudControlState
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD with the given title and panel width.
func NewHUD(title string, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{width: width, title: title}
	if h.title == "" {
		h.title = "Controls"
	}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Attach points the HUD at a new source, typically after a world reset.
func (h *HUD) Attach(src Source) {
	if h == nil {
		return
	}
	h.source = src
	h.controls = nil
	h.floatSetter = nil
	if provider, ok := src.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
		h.layoutControls()
	}
	if setter, ok := src.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
}

// Update refreshes the cached parameter snapshot and handles clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	if h.source == nil {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = h.source.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	y := h.drawControls()
	h.drawReadout(y)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok || state.control.Type != core.ParamTypeFloat {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.floatValue = parsed
		state.value = formatFloat(state.control, parsed)
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if h.floatSetter == nil || direction == 0 {
		return
	}
	target, ok := adjusted(state.control, state.floatValue, direction)
	if !ok || math.Abs(target-state.floatValue) < 1e-9 {
		return
	}
	if h.floatSetter.SetFloatParameter(state.control.Key, target) {
		state.floatValue = target
		state.value = formatFloat(state.control, target)
	}
}

func (h *HUD) drawControls() int {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if len(h.controls) == 0 {
		return headerY + infoSpacing
	}
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", state.hasValue && h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", state.hasValue && h.canAdjust(state, 1))
	}
	last := h.controls[len(h.controls)-1]
	return last.top + lineHeight + infoSpacing/2
}

// drawReadout lists every snapshot parameter below the controls.
func (h *HUD) drawReadout(top int) {
	face := basicfont.Face7x13
	y := top
	for _, group := range h.snapshot.Groups {
		if y > h.lastHeight {
			return
		}
		text.Draw(h.panel, group.Name, face, panelPadding, y, color.RGBA{R: 150, G: 190, B: 230, A: 255})
		y += readoutLine
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label, face, panelPadding+8, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
			bounds := text.BoundString(face, p.Value)
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-bounds.Dx(), y, color.RGBA{R: 230, G: 230, B: 240, A: 255})
			y += readoutLine
		}
		y += readoutLine / 2
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if h.floatSetter == nil {
		return false
	}
	_, ok := adjusted(state.control, state.floatValue, direction)
	return ok
}

// adjusted steps value in direction, clamping into the control's bounds. It
// reports false when the value already sits on the bound in that direction.
func adjusted(ctrl core.ParameterControl, value float64, direction int) (float64, bool) {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	target := value + float64(direction)*step
	if ctrl.HasMin && target < ctrl.Min {
		if direction < 0 && value <= ctrl.Min {
			return value, false
		}
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		if direction > 0 && value >= ctrl.Max {
			return value, false
		}
		target = ctrl.Max
	}
	return target, true
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if len(h.controls) == 0 || h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	var precision int
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	case step < 1:
		precision = 1
	default:
		precision = 0
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	readoutLine    = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
