package game

import (
	"math/rand/v2"
)

// Rand is the randomness the spawner consumes. The two methods mirror
// what the tile spawner needs: a uniform draw for the rank distribution
// and a bounded index for the cell choice. Tests inject deterministic
// sequences.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// defaultRand adapts math/rand/v2's global functions.
type defaultRand struct{}

func (defaultRand) Float64() float64 { return rand.Float64() }
func (defaultRand) IntN(n int) int   { return rand.IntN(n) }

// NewDefaultRand returns the process-global PRNG. Quality requirements
// are modest; no reproducibility guarantee is made across runs.
func NewDefaultRand() Rand {
	return defaultRand{}
}
