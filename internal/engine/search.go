package engine

import (
	"github.com/hailam/go2048/internal/board"
)

// Search pruning constants.
const (
	// CProbThreshBase prunes chance branches whose cumulative
	// probability drops below this threshold.
	CProbThreshBase = 1e-4
	// CacheDepthLimit is the depth below which chance nodes consult the
	// transposition table.
	CacheDepthLimit = 20
	// maxSearchDepth clamps the caller-supplied depth limit.
	maxSearchDepth = 15
)

// evalState carries one top-level search: its cache, depth bookkeeping
// and statistics.
type evalState struct {
	tt         *TransTable
	curDepth   int
	depthLimit int

	maxDepth    int
	movesEvaled int

	deadline func() bool
}

// scoreChanceNode models the spawner's randomness: the expectation over
// rank-1 and rank-2 tiles (and, near the top of deep endgames, rank-3)
// in each sampled empty cell. Pruned by cumulative probability and
// depth; memoized in the transposition table.
func (es *evalState) scoreChanceNode(b board.Board, cprob float64) float64 {
	if cprob < CProbThreshBase || es.curDepth >= es.depthLimit {
		if es.curDepth > es.maxDepth {
			es.maxDepth = es.curDepth
		}
		return ScoreHeurBoard(b)
	}
	if es.deadline != nil && es.deadline() {
		return ScoreHeurBoard(b)
	}

	numEmpty := board.CountEmpty(b)
	if numEmpty == 0 {
		return LostPenalty
	}

	if es.curDepth < CacheDepthLimit {
		if depth, score, ok := es.tt.Probe(uint64(b)); ok && int(depth) <= es.curDepth {
			return score
		}
	}

	cprob /= float64(numEmpty)

	maxRank := board.MaxRank(b)
	prob2, prob4 := 0.6, 0.3
	switch {
	case maxRank >= 10:
		prob2 = 0.54
	case maxRank >= 9:
		prob2 = 0.57
	}

	// Sample every empty cell when there are few; otherwise spread a
	// bounded number of samples evenly across the empty-cell sequence.
	maxSamples := numEmpty
	if numEmpty > 6 {
		maxSamples = 7
		if numEmpty > 10 {
			maxSamples = 8
		}
	}

	res := 0.0
	sampleCount := 0
	emptyIndex := -1
	for pos := 0; pos < 16; pos++ {
		if b.Cell(pos) != 0 {
			continue
		}
		emptyIndex++
		if numEmpty > 6 && (emptyIndex*maxSamples)/numEmpty == ((emptyIndex+1)*maxSamples)/numEmpty {
			continue
		}

		score2 := es.scoreMoveNode(b.WithTile(pos, 1), cprob*prob2)
		score4 := es.scoreMoveNode(b.WithTile(pos, 2), cprob*prob4)

		totalProb := prob2 + prob4
		weighted := score2*prob2 + score4*prob4

		if maxRank >= 9 && es.curDepth < 2 {
			const prob8 = 0.1
			score8 := es.scoreMoveNode(b.WithTile(pos, 3), cprob*prob8)
			totalProb += prob8
			weighted += score8 * prob8
		}

		res += weighted / totalProb
		sampleCount++
	}

	// Averaging over sampled cells. Under partial sampling this divides
	// an already-normalized per-cell expectation once more, a small bias
	// kept for parity with the tuned evaluator.
	if sampleCount > 0 {
		res /= float64(sampleCount)
	}

	if es.curDepth < CacheDepthLimit {
		es.tt.Store(uint64(b), int32(es.curDepth), res)
	}

	return res
}

// scoreMoveNode returns the best chance-node value over the four
// directions, or 0 when no move is legal.
func (es *evalState) scoreMoveNode(b board.Board, cprob float64) float64 {
	if es.curDepth >= es.depthLimit {
		if es.curDepth > es.maxDepth {
			es.maxDepth = es.curDepth
		}
		return ScoreHeurBoard(b)
	}

	es.curDepth++
	best := 0.0
	for _, d := range board.MoveOrder {
		newBoard := board.ExecuteMove(d, b)
		es.movesEvaled++
		if newBoard == b {
			continue
		}
		if score := es.scoreChanceNode(newBoard, cprob); score > best {
			best = score
		}
	}
	es.curDepth--
	return best
}

// scoreTopLevelMove evaluates one root move as a chance node with full
// probability, plus a tiny tie-breaker so a legal move always beats the
// zero score of an illegal one.
func (es *evalState) scoreTopLevelMove(b board.Board, d board.Direction) float64 {
	newBoard := board.ExecuteMove(d, b)
	if newBoard == b {
		return 0
	}
	return es.scoreChanceNode(newBoard, 1.0) + 1e-6
}
