package game

import (
	"github.com/hailam/go2048/internal/board"
)

// historyDepth bounds the undo ring.
const historyDepth = 10

// snapshot is one restorable point of a game.
type snapshot struct {
	board     board.Board
	score     int32
	bestScore int32
	gameOver  bool
}

// historyRing keeps the last historyDepth snapshots, oldest first.
type historyRing struct {
	entries [historyDepth]snapshot
	count   int
}

func (h *historyRing) reset() {
	h.count = 0
}

func (h *historyRing) push(s snapshot) {
	if h.count == historyDepth {
		copy(h.entries[:], h.entries[1:])
		h.count--
	}
	h.entries[h.count] = s
	h.count++
}

func (h *historyRing) pop() (snapshot, bool) {
	if h.count == 0 {
		return snapshot{}, false
	}
	h.count--
	return h.entries[h.count], true
}

func (s *State) snapshot() snapshot {
	return snapshot{
		board:     s.board,
		score:     s.score,
		bestScore: s.bestScore,
		gameOver:  s.gameOver,
	}
}

func (s *State) restore(snap snapshot) {
	s.board = snap.board
	s.score = snap.score
	s.bestScore = snap.bestScore
	s.gameOver = snap.gameOver
}

// Undo restores the state recorded before the most recent legal move.
// Returns false when no history remains.
func (s *State) Undo() bool {
	snap, ok := s.history.pop()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// CanUndo reports whether an undo snapshot is available.
func (s *State) CanUndo() bool {
	return s.history.count > 0
}
