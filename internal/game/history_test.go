package game

import (
	"testing"

	"github.com/hailam/go2048/internal/board"
)

// makeOneMove performs the first legal move and fails the test if none
// exists.
func makeOneMove(t *testing.T, s *State) {
	t.Helper()
	for d := board.Up; d <= board.Right; d++ {
		if s.Move(d) {
			return
		}
	}
	t.Fatal("no legal move available")
}

func TestUndoRestoresPreviousState(t *testing.T) {
	s := NewStateWithRand(seededRand(10, 10))
	s.Init()

	before := s.Board()
	score := s.Score()
	makeOneMove(t, s)

	if !s.Undo() {
		t.Fatal("undo failed after a move")
	}
	if s.Board() != before {
		t.Error("undo did not restore the board")
	}
	if s.Score() != score {
		t.Error("undo did not restore the score")
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	s := NewStateWithRand(seededRand(11, 11))
	s.Init()

	if s.CanUndo() {
		t.Error("fresh game should have no history")
	}
	if s.Undo() {
		t.Error("undo with no history should fail")
	}
}

func TestUndoRingDepth(t *testing.T) {
	s := NewStateWithRand(seededRand(12, 12))
	s.Init()

	for i := 0; i < 15; i++ {
		makeOneMove(t, s)
	}

	undone := 0
	for s.Undo() {
		undone++
	}
	if undone != 10 {
		t.Errorf("undo depth %d, want 10", undone)
	}
}

func TestUndoIsBounded(t *testing.T) {
	// With a full ring the oldest snapshot is dropped, so the deepest
	// undo lands 10 moves back, not at the start of the game.
	s := NewStateWithRand(seededRand(13, 13))
	s.Init()
	start := s.Board()

	var boards []board.Board
	for i := 0; i < 12; i++ {
		boards = append(boards, s.Board())
		makeOneMove(t, s)
	}

	for s.Undo() {
	}
	if s.Board() == start {
		t.Error("ring should have dropped the oldest snapshots")
	}
	if s.Board() != boards[2] {
		t.Errorf("deepest undo should land at move 2's pre-state")
	}
}

func TestIllegalMovePushesNothing(t *testing.T) {
	s := stateWithGrid(t, seededRand(14, 14), [4][4]int{
		{2, 0, 0, 0},
	})
	if s.MoveLeft() {
		t.Fatal("LEFT should be illegal")
	}
	if s.CanUndo() {
		t.Error("illegal move must not push history")
	}
}
