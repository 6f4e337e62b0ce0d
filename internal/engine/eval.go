// Package engine implements the expectimax AI: a heuristic evaluator
// over the 16-bit row space, a probability- and depth-limited search,
// and a per-search transposition cache.
package engine

import (
	"math"
	"sync"

	"github.com/hailam/go2048/internal/board"
)

// Heuristic weights. LostPenalty keeps evaluator values positive and is
// also the value of a board with no empty cell.
const (
	LostPenalty      = 200000.0
	emptyWeight      = 270.0
	mergesWeight     = 700.0
	monotonicityPow  = 4.0
	monotonicityWght = 47.0
	sumPow           = 3.5
	sumWeight        = 11.0
)

// heurScoreTable maps a packed row to its heuristic score. Built once,
// immutable afterwards.
var heurScoreTable [65536]float64

var heurOnce sync.Once

func initHeurTable() {
	heurOnce.Do(func() {
		for row := 0; row < 65536; row++ {
			heurScoreTable[row] = rowHeuristic([4]int{
				row >> 0 & 0xF,
				row >> 4 & 0xF,
				row >> 8 & 0xF,
				row >> 12 & 0xF,
			})
		}
	})
}

// rowHeuristic aggregates the four row-local features: empty cells,
// mergeable runs, monotonicity and the rank-power sum.
func rowHeuristic(line [4]int) float64 {
	sum := 0.0
	empty := 0
	merges := 0

	prev := 0
	counter := 0
	for _, rank := range line {
		sum += math.Pow(float64(rank), sumPow)
		if rank == 0 {
			empty++
			continue
		}
		if prev == rank {
			counter++
		} else if counter > 0 {
			merges += 1 + counter
			counter = 0
		}
		prev = rank
	}
	if counter > 0 {
		merges += 1 + counter
	}

	monoLeft := 0.0
	monoRight := 0.0
	for i := 1; i < 4; i++ {
		if line[i-1] > line[i] {
			monoLeft += math.Pow(float64(line[i-1]), monotonicityPow) - math.Pow(float64(line[i]), monotonicityPow)
		} else {
			monoRight += math.Pow(float64(line[i]), monotonicityPow) - math.Pow(float64(line[i-1]), monotonicityPow)
		}
	}

	return LostPenalty +
		emptyWeight*float64(empty) +
		mergesWeight*float64(merges) -
		monotonicityWght*math.Min(monoLeft, monoRight) -
		sumWeight*sum
}

// ScoreHeurBoard evaluates a board by summing the row heuristic over the
// board and its transpose, covering rows and columns alike.
func ScoreHeurBoard(b board.Board) float64 {
	initHeurTable()
	return heurHelper(b) + heurHelper(board.Transpose(b))
}

func heurHelper(b board.Board) float64 {
	return heurScoreTable[b.Row(0)] + heurScoreTable[b.Row(1)] +
		heurScoreTable[b.Row(2)] + heurScoreTable[b.Row(3)]
}
