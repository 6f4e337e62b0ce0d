package engine

import (
	"log"

	"github.com/hailam/go2048/internal/board"
)

// NoMove is returned by FindBestMove when no direction is legal.
const NoMove = -1

// SearchInfo describes the search that produced the last best move.
type SearchInfo struct {
	Depth       int     // Effective depth limit after state-based clamping
	MaxDepth    int     // Deepest ply actually reached
	MovesEvaled int     // Directions tried across all move nodes
	CacheHits   uint64  // Transposition table hits
	CacheRate   float64 // Hit rate percentage
}

// Engine is the expectimax AI. The zero value is not usable; create one
// with NewEngine. An Engine is not safe for concurrent searches.
type Engine struct {
	ttSize uint64

	// Deadline, when set, is polled at chance-node entry; once it
	// returns true the search unwinds with heuristic scores.
	Deadline func() bool

	// Verbose enables per-move search logging.
	Verbose bool

	lastInfo SearchInfo
}

// NewEngine creates an engine with the default transposition budget.
func NewEngine() *Engine {
	initHeurTable()
	board.InitTables()
	return &Engine{ttSize: TranstableSize}
}

// NewEngineWithTableSize creates an engine whose per-search
// transposition table has approximately the given number of entries.
func NewEngineWithTableSize(entries uint64) *Engine {
	e := NewEngine()
	e.ttSize = entries
	return e
}

// LastSearchInfo returns statistics from the most recent FindBestMove.
func (e *Engine) LastSearchInfo() SearchInfo {
	return e.lastInfo
}

// FindBestMove searches the four root moves and returns the best
// direction (0-3), or NoMove when nothing is legal. The caller-supplied
// depth limit is clamped to 15 and then reduced according to the board:
// fuller boards and higher max tiles earn deeper searches, and a board
// whose max tile sits in [512, 1024) gets one extra ply.
func (e *Engine) FindBestMove(b board.Board, depthLimit int) int {
	if !board.HasLegalMove(b) {
		return NoMove
	}

	if depthLimit > maxSearchDepth {
		depthLimit = maxSearchDepth
	}

	emptyCount := board.CountEmpty(b)
	maxRank := board.MaxRank(b)

	switch {
	case emptyCount < 4:
		depthLimit = min(depthLimit, pick(maxRank >= 10, 7, 6))
	case emptyCount < 7:
		depthLimit = min(depthLimit, pick(maxRank >= 9, 6, 5))
	case emptyCount < 10:
		depthLimit = min(depthLimit, pick(maxRank >= 9, 5, 4))
	default:
		depthLimit = min(depthLimit, 4)
	}

	maxTile := 1 << maxRank
	if maxTile >= 512 && maxTile < 1024 {
		depthLimit = min(depthLimit+1, 7)
	}

	es := &evalState{
		tt:         NewTransTable(e.ttSize),
		depthLimit: depthLimit,
		deadline:   e.Deadline,
	}
	if es.tt == nil {
		log.Printf("[Engine] transposition table allocation failed, searching uncached")
	}

	bestScore := 0.0
	bestMove := NoMove
	for _, d := range board.MoveOrder {
		if board.ExecuteMove(d, b) == b {
			continue
		}
		score := es.scoreTopLevelMove(b, d)
		if e.Verbose {
			log.Printf("[Engine] %s score %.0f", d, score)
		}
		if score > bestScore {
			bestScore = score
			bestMove = int(d)
		}
	}

	e.lastInfo = SearchInfo{
		Depth:       depthLimit,
		MaxDepth:    es.maxDepth,
		MovesEvaled: es.movesEvaled,
		CacheHits:   es.tt.Hits(),
		CacheRate:   es.tt.HitRate(),
	}
	if e.Verbose {
		log.Printf("[Engine] evaluated %d moves, %d cache hits, max depth %d, best %d",
			es.movesEvaled, es.tt.Hits(), es.maxDepth, bestMove)
	}

	return bestMove
}

func pick(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
