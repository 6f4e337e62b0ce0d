package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/go2048/internal/board"
)

// Theme defines the color scheme.
type Theme struct {
	Background   color.RGBA
	BoardWell    color.RGBA
	DarkText     color.RGBA
	LightText    color.RGBA
	PanelText    color.RGBA
	ButtonColor  color.RGBA
	ButtonHover  color.RGBA
	OverlayColor color.RGBA
	SelectColor  color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Background:   color.RGBA{250, 248, 239, 255}, // Cream
		BoardWell:    color.RGBA{187, 173, 160, 255}, // Warm gray
		DarkText:     color.RGBA{119, 110, 101, 255}, // For 2 and 4 tiles
		LightText:    color.RGBA{249, 246, 242, 255}, // For 8 and up
		PanelText:    color.RGBA{80, 72, 64, 255},
		ButtonColor:  color.RGBA{143, 122, 102, 255},
		ButtonHover:  color.RGBA{160, 139, 118, 255},
		OverlayColor: color.RGBA{238, 228, 218, 186}, // Game-over veil
		SelectColor:  color.RGBA{100, 160, 220, 200}, // Custom-mode cursor
	}
}

// Renderer draws the board and its tiles.
type Renderer struct {
	sprites  *SpriteManager
	theme    *Theme
	tileSize int
	tileGap  int
}

// NewRenderer creates a new renderer.
func NewRenderer(tileSize, tileGap int) *Renderer {
	return &Renderer{
		sprites:  NewSpriteManager(tileSize),
		theme:    DefaultTheme(),
		tileSize: tileSize,
		tileGap:  tileGap,
	}
}

// Theme returns the active theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// CellOrigin returns the top-left pixel of grid cell (row, col).
func (r *Renderer) CellOrigin(row, col int) (int, int) {
	x := r.tileGap + col*(r.tileSize+r.tileGap)
	y := r.tileGap + row*(r.tileSize+r.tileGap)
	return x, y
}

// CellAt maps a pixel position to a grid cell. ok is false outside the
// board.
func (r *Renderer) CellAt(px, py int) (row, col int, ok bool) {
	stride := r.tileSize + r.tileGap
	col = (px - r.tileGap) / stride
	row = (py - r.tileGap) / stride
	if px < r.tileGap || py < r.tileGap || row >= board.GridSize || col >= board.GridSize {
		return 0, 0, false
	}
	// Reject clicks landing in the gap between tiles.
	if (px-r.tileGap)%stride >= r.tileSize || (py-r.tileGap)%stride >= r.tileSize {
		return 0, 0, false
	}
	return row, col, true
}

// DrawBoard draws the well and all tiles.
func (r *Renderer) DrawBoard(screen *ebiten.Image, b board.Board) {
	wellSize := board.GridSize*(r.tileSize+r.tileGap) + r.tileGap
	vector.DrawFilledRect(screen, 0, 0, float32(wellSize), float32(wellSize), r.theme.BoardWell, true)

	for row := 0; row < board.GridSize; row++ {
		for col := 0; col < board.GridSize; col++ {
			rank := b.Cell(row*board.GridSize + col)
			x, y := r.CellOrigin(row, col)
			r.sprites.DrawTileAt(screen, rank, x, y)
			if rank > 0 {
				r.drawTileLabel(screen, rank, x, y)
			}
		}
	}
}

// drawTileLabel centers the tile value on its sprite.
func (r *Renderer) drawTileLabel(screen *ebiten.Image, rank, x, y int) {
	label := fmt.Sprintf("%d", 1<<rank)

	size := 36.0
	switch {
	case len(label) >= 5:
		size = 20.0
	case len(label) == 4:
		size = 24.0
	case len(label) == 3:
		size = 30.0
	}
	face := GetBoldFaceWithSize(size)
	if face == nil {
		return
	}

	c := r.theme.LightText
	if rank <= 2 {
		c = r.theme.DarkText
	}

	w, h := MeasureText(label, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)+(float64(r.tileSize)-w)/2, float64(y)+(float64(r.tileSize)-h)/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, label, face, op)
}

// DrawSelection outlines the custom-mode cursor cell.
func (r *Renderer) DrawSelection(screen *ebiten.Image, row, col int) {
	x, y := r.CellOrigin(row, col)
	vector.StrokeRect(screen, float32(x), float32(y),
		float32(r.tileSize), float32(r.tileSize), 4, r.theme.SelectColor, true)
}

// DrawGameOver veils the board and announces the result.
func (r *Renderer) DrawGameOver(screen *ebiten.Image) {
	wellSize := board.GridSize*(r.tileSize+r.tileGap) + r.tileGap
	vector.DrawFilledRect(screen, 0, 0, float32(wellSize), float32(wellSize), r.theme.OverlayColor, true)

	face := GetBoldFaceWithSize(40)
	if face == nil {
		return
	}
	label := "Game over"
	w, h := MeasureText(label, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate((float64(wellSize)-w)/2, (float64(wellSize)-h)/2)
	op.ColorScale.ScaleWithColor(r.theme.PanelText)
	text.Draw(screen, label, face, op)
}
