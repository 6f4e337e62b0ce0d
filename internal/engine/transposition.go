package engine

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// TranstableSize is the entry budget of a per-search transposition
// table. Rounded down to a power of two at allocation for mask indexing.
const TranstableSize = 10_485_760

// probeLimit bounds the linear-probe run. The table is rebuilt for every
// top-level search, so the load factor stays low and long runs are rare.
const probeLimit = 8

// ttEntry memoizes one chance-node evaluation. A zero board is a valid
// key, so presence is tracked with an explicit bit.
type ttEntry struct {
	key      uint64
	score    float64
	depth    int32
	occupied bool
}

// TransTable is a fixed-capacity open-address hash with linear probing,
// keyed by board value. It lives for one top-level search and is never
// shared across searches.
type TransTable struct {
	entries []ttEntry
	mask    uint64

	probes uint64
	hits   uint64
}

// NewTransTable allocates a table with approximately the given number of
// entries. Returns nil when the allocation fails; a nil table degrades
// every operation to a miss, so the search runs uncached with identical
// semantics.
func NewTransTable(size uint64) (tt *TransTable) {
	defer func() {
		if recover() != nil {
			tt = nil
		}
	}()

	n := roundDownToPowerOf2(size)
	if n == 0 {
		return nil
	}
	return &TransTable{
		entries: make([]ttEntry, n),
		mask:    n - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// index hashes a board key into the table.
func (tt *TransTable) index(key uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return xxhash.Sum64(buf[:]) & tt.mask
}

// Probe looks up a board. Returns the stored depth and score, and
// whether an entry was found.
func (tt *TransTable) Probe(key uint64) (depth int32, score float64, ok bool) {
	if tt == nil {
		return 0, 0, false
	}
	tt.probes++

	idx := tt.index(key)
	for i := 0; i < probeLimit; i++ {
		e := &tt.entries[(idx+uint64(i))&tt.mask]
		if !e.occupied {
			return 0, 0, false
		}
		if e.key == key {
			tt.hits++
			return e.depth, e.score, true
		}
	}
	return 0, 0, false
}

// Store records a chance-node evaluation. An existing entry for the same
// board is updated in place; when the probe run is exhausted the first
// slot is overwritten.
func (tt *TransTable) Store(key uint64, depth int32, score float64) {
	if tt == nil {
		return
	}

	idx := tt.index(key)
	for i := 0; i < probeLimit; i++ {
		e := &tt.entries[(idx+uint64(i))&tt.mask]
		if !e.occupied || e.key == key {
			*e = ttEntry{key: key, score: score, depth: depth, occupied: true}
			return
		}
	}
	tt.entries[idx] = ttEntry{key: key, score: score, depth: depth, occupied: true}
}

// Hits returns the number of successful probes.
func (tt *TransTable) Hits() uint64 {
	if tt == nil {
		return 0
	}
	return tt.hits
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TransTable) HitRate() float64 {
	if tt == nil || tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of slots in the table.
func (tt *TransTable) Size() uint64 {
	if tt == nil {
		return 0
	}
	return uint64(len(tt.entries))
}
