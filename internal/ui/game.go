package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/go2048/internal/board"
	"github.com/hailam/go2048/internal/engine"
	"github.com/hailam/go2048/internal/game"
	"github.com/hailam/go2048/internal/storage"
)

// UI constants.
const (
	TileSize    = 110
	TileGap     = 12
	BoardPixels = board.GridSize*(TileSize+TileGap) + TileGap
	PanelWidth  = 270

	ScreenWidth  = BoardPixels + PanelWidth
	ScreenHeight = BoardPixels
)

// Game implements ebiten.Game.
type Game struct {
	state     *game.State
	engine    *engine.Engine
	moveCount int

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel

	// AI. One search runs at a time on a background goroutine; the
	// result arrives on aiMove.
	aiMove     chan int
	aiThinking bool
	autoplay   bool
	lastAIMove time.Time

	// Custom-board editor
	customMode   bool
	selectedRow  int
	selectedCol  int
	haveSelected bool

	status       string
	gameRecorded bool
}

// NewGame creates the 2048 game.
func NewGame() *Game {
	g := &Game{
		state:    game.NewState(),
		engine:   engine.NewEngine(),
		renderer: NewRenderer(TileSize, TileGap),
		input:    NewInputHandler(),
		aiMove:   make(chan int, 1),
	}

	var err error
	g.storage, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: failed to initialize storage: %v", err)
	}
	g.loadPersisted()

	g.panel = NewPanel(g)
	g.state.Init()

	return g
}

// loadPersisted seeds preferences and the best score from storage.
func (g *Game) loadPersisted() {
	g.prefs = storage.DefaultPreferences()
	if g.storage == nil {
		return
	}

	prefs, err := g.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: failed to load preferences: %v", err)
	} else {
		g.prefs = prefs
	}

	best, err := g.storage.LoadBestScore()
	if err != nil {
		log.Printf("Warning: failed to load best score: %v", err)
		return
	}
	g.state.SetBestScore(best)
}

// Update advances the game one tick.
func (g *Game) Update() error {
	g.input.Update()

	if g.panel.HandleInput(g.input) {
		return nil
	}

	switch {
	case IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case IsKeyJustPressed(ebiten.KeyU):
		g.UndoAction()
	case IsKeyJustPressed(ebiten.KeySpace):
		g.ToggleAutoplayAction()
	case IsKeyJustPressed(ebiten.KeyH):
		g.HintAction()
	case IsKeyJustPressed(ebiten.KeyC):
		g.ToggleCustomModeAction()
	}

	if g.customMode {
		g.updateCustomMode()
		return nil
	}

	if d, ok := MoveKeyPressed(); ok && !g.aiThinking {
		g.applyMove(d)
	}

	g.updateAI()
	g.maybeRecordGame()
	return nil
}

// updateAI drains a finished search and schedules the next one when
// autoplay is on.
func (g *Game) updateAI() {
	select {
	case move := <-g.aiMove:
		g.aiThinking = false
		if move == engine.NoMove {
			g.autoplay = false
			g.status = "No legal move"
			break
		}
		g.applyMove(board.Direction(move))
		info := g.engine.LastSearchInfo()
		g.status = fmt.Sprintf("AI: %s d%d %.0f%% cached",
			board.Direction(move), info.Depth, info.CacheRate)
	default:
	}

	if g.autoplay && !g.aiThinking && !g.state.GameOver() &&
		time.Since(g.lastAIMove) >= g.prefs.AutoplayDelay {
		g.startSearch()
	}
}

// startSearch kicks off one background search for the current board.
func (g *Game) startSearch() {
	g.aiThinking = true
	g.lastAIMove = time.Now()
	b := g.state.Board()
	depth := g.prefs.SearchDepth
	go func() {
		g.aiMove <- g.engine.FindBestMove(b, depth)
	}()
}

func (g *Game) applyMove(d board.Direction) {
	if g.state.Move(d) {
		g.moveCount++
	}
}

// updateCustomMode lets the user compose a board: click a cell, then
// raise or lower its tile with +/- (0 clears, cap 32768).
func (g *Game) updateCustomMode() {
	if g.input.IsLeftJustPressed() {
		mx, my := g.input.MousePosition()
		if row, col, ok := g.renderer.CellAt(mx, my); ok {
			g.selectedRow, g.selectedCol = row, col
			g.haveSelected = true
		}
	}
	if !g.haveSelected {
		return
	}

	grid := g.state.Grid()
	value := grid[g.selectedRow][g.selectedCol]

	if IsKeyJustPressed(ebiten.KeyEqual) || IsKeyJustPressed(ebiten.KeyKPAdd) {
		switch {
		case value == 0:
			value = 2
		case value < 1<<board.MaxTileRank:
			value *= 2
		}
		g.state.SetTile(g.selectedRow, g.selectedCol, value)
	}
	if IsKeyJustPressed(ebiten.KeyMinus) || IsKeyJustPressed(ebiten.KeyKPSubtract) {
		if value <= 2 {
			value = 0
		} else {
			value /= 2
		}
		g.state.SetTile(g.selectedRow, g.selectedCol, value)
	}
}

// maybeRecordGame persists stats and best score once per finished game.
func (g *Game) maybeRecordGame() {
	if !g.state.GameOver() || g.gameRecorded {
		return
	}
	g.gameRecorded = true
	g.autoplay = false

	if g.storage == nil {
		return
	}
	rec := storage.GameRecord{
		Score:   g.state.Score(),
		MaxTile: 1 << board.MaxRank(g.state.Board()),
		Moves:   g.moveCount,
	}
	if err := g.storage.RecordGame(rec); err != nil {
		log.Printf("Warning: failed to record game: %v", err)
	}
}

// NewGameAction starts a fresh game.
func (g *Game) NewGameAction() {
	g.state.Init()
	g.moveCount = 0
	g.gameRecorded = false
	g.autoplay = false
	g.customMode = false
	g.status = ""
}

// UndoAction restores the state before the last move.
func (g *Game) UndoAction() {
	if g.aiThinking {
		return
	}
	if g.state.Undo() {
		g.gameRecorded = false
		g.status = "Undone"
	}
}

// ToggleAutoplayAction starts or stops AI autoplay.
func (g *Game) ToggleAutoplayAction() {
	g.autoplay = !g.autoplay
	if g.autoplay {
		g.customMode = false
		g.status = "Autoplay on"
	} else {
		g.status = "Autoplay off"
	}
}

// HintAction plays a single AI-chosen move.
func (g *Game) HintAction() {
	if g.aiThinking || g.state.GameOver() || g.customMode {
		return
	}
	g.startSearch()
}

// ToggleCustomModeAction enters or leaves the custom-board editor.
func (g *Game) ToggleCustomModeAction() {
	g.customMode = !g.customMode
	g.haveSelected = false
	if g.customMode {
		g.autoplay = false
		g.status = "Custom: click a cell, +/- to edit"
	} else {
		g.status = ""
	}
}

// Draw renders one frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen, g.state.Board())
	if g.customMode && g.haveSelected {
		g.renderer.DrawSelection(screen, g.selectedRow, g.selectedCol)
	}
	if g.state.GameOver() {
		g.renderer.DrawGameOver(screen)
	}
	g.panel.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// SavePreferences writes the current preferences back to storage.
func (g *Game) SavePreferences() {
	if g.storage == nil {
		return
	}
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: failed to save preferences: %v", err)
	}
}

// Close flushes persistence.
func (g *Game) Close() error {
	if g.storage == nil {
		return nil
	}
	if err := g.storage.SaveBestScore(g.state.BestScore()); err != nil {
		log.Printf("Warning: failed to save best score: %v", err)
	}
	return g.storage.Close()
}
