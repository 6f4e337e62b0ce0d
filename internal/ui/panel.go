package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button represents a clickable button.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
	active     bool // For toggle buttons
}

// Panel is the side panel: scores, controls and the status line.
type Panel struct {
	game    *Game
	buttons []*Button
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}

	x := BoardPixels + 20
	p.buttons = append(p.buttons, &Button{
		X: x, Y: 150, W: PanelWidth - 40, H: 40,
		Label:   "New Game (N)",
		OnClick: g.NewGameAction,
	})
	p.buttons = append(p.buttons, &Button{
		X: x, Y: 200, W: PanelWidth - 40, H: 40,
		Label:   "Undo (U)",
		OnClick: g.UndoAction,
	})
	p.buttons = append(p.buttons, &Button{
		X: x, Y: 250, W: PanelWidth - 40, H: 40,
		Label:   "AI Autoplay (Space)",
		OnClick: g.ToggleAutoplayAction,
	})
	p.buttons = append(p.buttons, &Button{
		X: x, Y: 300, W: PanelWidth - 40, H: 40,
		Label:   "AI Hint Move (H)",
		OnClick: g.HintAction,
	})
	p.buttons = append(p.buttons, &Button{
		X: x, Y: 350, W: PanelWidth - 40, H: 40,
		Label:   "Custom Board (C)",
		OnClick: g.ToggleCustomModeAction,
	})

	return p
}

// HandleInput processes clicks and hover states for the panel.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	for _, btn := range p.buttons {
		btn.hovered = mx >= btn.X && mx < btn.X+btn.W && my >= btn.Y && my < btn.Y+btn.H
	}

	if !input.IsLeftJustPressed() {
		return false
	}
	for _, btn := range p.buttons {
		if btn.hovered {
			btn.OnClick()
			return true
		}
	}
	return false
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	theme := p.game.renderer.Theme()
	x := BoardPixels + 20

	p.drawScoreBox(screen, x, 20, "SCORE", int(p.game.state.Score()))
	p.drawScoreBox(screen, x+(PanelWidth-40)/2+5, 20, "BEST", int(p.game.state.BestScore()))

	p.buttons[2].active = p.game.autoplay
	p.buttons[4].active = p.game.customMode

	for _, btn := range p.buttons {
		c := theme.ButtonColor
		if btn.hovered || btn.active {
			c = theme.ButtonHover
		}
		vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y),
			float32(btn.W), float32(btn.H), c, true)

		face := GetRegularFace()
		if face == nil {
			continue
		}
		w, h := MeasureText(btn.Label, face)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(btn.X)+(float64(btn.W)-w)/2, float64(btn.Y)+(float64(btn.H)-h)/2)
		op.ColorScale.ScaleWithColor(theme.LightText)
		text.Draw(screen, btn.Label, face, op)
	}

	if p.game.status != "" {
		face := GetRegularFace()
		if face != nil {
			op := &text.DrawOptions{}
			op.GeoM.Translate(float64(x), float64(ScreenHeight-40))
			op.ColorScale.ScaleWithColor(theme.PanelText)
			text.Draw(screen, p.game.status, face, op)
		}
	}
}

// drawScoreBox renders one labeled score well.
func (p *Panel) drawScoreBox(screen *ebiten.Image, x, y int, label string, value int) {
	theme := p.game.renderer.Theme()
	w := (PanelWidth - 50) / 2
	h := 60

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), theme.BoardWell, true)

	face := GetRegularFace()
	bold := GetBoldFace()
	if face == nil || bold == nil {
		return
	}

	lw, _ := MeasureText(label, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)+(float64(w)-lw)/2, float64(y)+6)
	op.ColorScale.ScaleWithColor(theme.LightText)
	text.Draw(screen, label, face, op)

	val := fmt.Sprintf("%d", value)
	vw, _ := MeasureText(val, bold)
	op = &text.DrawOptions{}
	op.GeoM.Translate(float64(x)+(float64(w)-vw)/2, float64(y)+28)
	op.ColorScale.ScaleWithColor(theme.LightText)
	text.Draw(screen, val, bold, op)
}
