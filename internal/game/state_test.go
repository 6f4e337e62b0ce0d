package game

import (
	"math/rand/v2"
	"testing"

	"github.com/hailam/go2048/internal/board"
)

// fixedRand returns scripted values, for spawn scenarios that pin the
// exact draw.
type fixedRand struct {
	float float64
	index int
}

func (f fixedRand) Float64() float64 { return f.float }
func (f fixedRand) IntN(n int) int   { return f.index % n }

// seededRand satisfies Rand with a reproducible PCG stream.
func seededRand(a, b uint64) Rand {
	return rand.New(rand.NewPCG(a, b))
}

// stateWithGrid builds a state holding the given grid of tile values.
func stateWithGrid(t *testing.T, rng Rand, grid [4][4]int) *State {
	t.Helper()
	s := NewStateWithRand(rng)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s.SetTile(r, c, grid[r][c])
		}
	}
	return s
}

func TestInitSpawnsTwoTiles(t *testing.T) {
	s := NewStateWithRand(seededRand(1, 1))
	s.Init()

	if got := board.CountEmpty(s.Board()); got != 14 {
		t.Errorf("after Init, %d empty cells, want 14", got)
	}
	if s.Score() != 0 {
		t.Errorf("after Init, score %d, want 0", s.Score())
	}
	if s.GameOver() {
		t.Error("fresh game should not be over")
	}
}

func TestInitKeepsBestScore(t *testing.T) {
	s := NewStateWithRand(seededRand(2, 2))
	s.SetBestScore(1234)
	s.Init()
	if s.BestScore() != 1234 {
		t.Errorf("Init cleared best score: %d", s.BestScore())
	}
}

func TestSpawnLocality(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	s := NewStateWithRand(rng)

	for i := 0; i < 500; i++ {
		var b board.Board
		// Random partial board with at least one empty cell.
		for pos := 0; pos < 16; pos++ {
			if rng.IntN(3) == 0 {
				b = b.WithTile(pos, 1+rng.IntN(10))
			}
		}

		after := s.AddRandomTile(b)
		changed := 0
		for pos := 0; pos < 16; pos++ {
			if b.Cell(pos) != after.Cell(pos) {
				changed++
				if b.Cell(pos) != 0 {
					t.Fatalf("spawn landed on occupied cell %d", pos)
				}
				if after.Cell(pos) == 0 {
					t.Fatalf("spawn cleared cell %d", pos)
				}
			}
		}
		if changed != 1 {
			t.Fatalf("spawn changed %d cells, want 1", changed)
		}
	}
}

func TestSpawnFullBoardUnchanged(t *testing.T) {
	s := NewStateWithRand(seededRand(4, 4))
	full := ^board.Board(0) & 0x1111111111111111
	if got := s.AddRandomTile(full); got != full {
		t.Error("spawn on a full board must be a no-op")
	}
}

// spawnedRank returns the rank of the single tile AddRandomTile placed.
func spawnedRank(t *testing.T, before, after board.Board) int {
	t.Helper()
	for pos := 0; pos < 16; pos++ {
		if before.Cell(pos) == 0 && after.Cell(pos) != 0 {
			return after.Cell(pos)
		}
	}
	t.Fatal("no tile spawned")
	return 0
}

// chiSquared runs N spawns into base and checks observed rank counts
// against the expected distribution. Critical values are chi-squared at
// p = 0.01 for k-1 degrees of freedom.
func chiSquared(t *testing.T, base board.Board, expected map[int]float64, critical float64) {
	t.Helper()
	const n = 10000

	s := NewStateWithRand(seededRand(42, 1042))
	counts := make(map[int]int)
	for i := 0; i < n; i++ {
		after := s.AddRandomTile(base)
		counts[spawnedRank(t, base, after)]++
	}

	chi2 := 0.0
	for rank, p := range expected {
		exp := p * n
		diff := float64(counts[rank]) - exp
		chi2 += diff * diff / exp
	}
	for rank := range counts {
		if _, ok := expected[rank]; !ok {
			t.Errorf("unexpected spawn rank %d (%d times)", rank, counts[rank])
		}
	}
	if chi2 > critical {
		t.Errorf("chi-squared %.2f exceeds %.2f; counts %v", chi2, critical, counts)
	}
}

func TestSpawnDistributionBase(t *testing.T) {
	chiSquared(t, 0, map[int]float64{1: 0.60, 2: 0.30, 3: 0.10}, 9.21)
}

func TestSpawnDistribution512(t *testing.T) {
	base := board.Board(0).WithTile(15, 9)
	chiSquared(t, base, map[int]float64{1: 0.57, 2: 0.30, 3: 0.10, 4: 0.03}, 11.34)
}

func TestSpawnDistribution1024(t *testing.T) {
	base := board.Board(0).WithTile(15, 10)
	chiSquared(t, base, map[int]float64{1: 0.54, 2: 0.30, 3: 0.10, 4: 0.03, 5: 0.03}, 13.28)
}

func TestSpawnExactDraw(t *testing.T) {
	// One empty cell at position 7, max rank 10; a draw of 0.5 with
	// index 0 must place rank 1 there (0.5 < 0.54).
	var b board.Board
	for pos := 0; pos < 16; pos++ {
		switch {
		case pos == 7:
			// stays empty
		case pos == 15:
			b = b.WithTile(pos, 10)
		default:
			b = b.WithTile(pos, 1+pos%9)
		}
	}

	s := NewStateWithRand(fixedRand{float: 0.5, index: 0})
	after := s.AddRandomTile(b)
	if got := after.Cell(7); got != 1 {
		t.Errorf("spawned rank %d at position 7, want 1", got)
	}
}

func TestMoveScoreNondecreasing(t *testing.T) {
	s := NewStateWithRand(seededRand(5, 5))
	s.Init()

	prev := s.Score()
	for i := 0; i < 300 && !s.GameOver(); i++ {
		moved := false
		for d := board.Up; d <= board.Right; d++ {
			if s.Move(d) {
				moved = true
				break
			}
		}
		if !moved {
			break
		}
		if s.Score() < prev {
			t.Fatalf("score decreased: %d -> %d", prev, s.Score())
		}
		if s.BestScore() < s.Score() {
			t.Fatalf("best score %d below score %d", s.BestScore(), s.Score())
		}
		prev = s.Score()
	}
}

func TestIllegalMoveLeavesStateUntouched(t *testing.T) {
	// All tiles pinned to the left edge: LEFT is a no-op.
	s := stateWithGrid(t, seededRand(6, 6), [4][4]int{
		{2, 0, 0, 0},
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{16, 0, 0, 0},
	})
	before := s.Board()
	score := s.Score()

	if s.MoveLeft() {
		t.Fatal("LEFT should be illegal")
	}
	if s.Board() != before || s.Score() != score {
		t.Error("illegal move mutated state")
	}
}

func TestMoveSpawnsOneTile(t *testing.T) {
	s := stateWithGrid(t, seededRand(7, 7), [4][4]int{
		{2, 2, 0, 0},
	})
	if !s.MoveLeft() {
		t.Fatal("LEFT should be legal")
	}
	// One merge (2 tiles -> 1) plus one spawn: occupancy stays at 2.
	if got := 16 - board.CountEmpty(s.Board()); got != 2 {
		t.Errorf("%d occupied cells after move, want 2", got)
	}
	if s.Score() != 4 {
		t.Errorf("score %d after merging two 2s, want 4", s.Score())
	}
}

func TestOutOfRangeMove(t *testing.T) {
	s := NewStateWithRand(seededRand(8, 8))
	s.Init()
	before := s.Board()
	if s.Move(board.Direction(7)) {
		t.Error("out-of-range direction should return false")
	}
	if s.Board() != before {
		t.Error("out-of-range direction mutated the board")
	}
}

func TestGameOverDetection(t *testing.T) {
	// Checkerboard: full board, no merges anywhere.
	s := stateWithGrid(t, seededRand(9, 9), [4][4]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})
	if !s.IsGameOver() {
		t.Error("checkerboard should be game over")
	}

	// Open one cell: a move becomes possible again.
	s.SetTile(0, 0, 0)
	if s.IsGameOver() {
		t.Error("board with an empty cell is not game over")
	}

	// Full board with one adjacent equal pair is not over either.
	s.SetTile(0, 0, 4)
	s.SetTile(0, 1, 4)
	s.SetTile(0, 2, 2)
	s.SetTile(0, 3, 4)
	if s.IsGameOver() {
		t.Error("full board with a mergeable pair is not game over")
	}
}
