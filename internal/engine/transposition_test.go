package engine

import (
	"testing"
)

func TestTransTableProbeStore(t *testing.T) {
	tt := NewTransTable(1 << 16)
	if tt == nil {
		t.Fatal("allocation failed")
	}

	// First probe should miss.
	if _, _, ok := tt.Probe(0xDEADBEEF); ok {
		t.Error("expected miss on empty table")
	}

	tt.Store(0xDEADBEEF, 3, 1234.5)
	depth, score, ok := tt.Probe(0xDEADBEEF)
	if !ok {
		t.Fatal("expected hit after store")
	}
	if depth != 3 || score != 1234.5 {
		t.Errorf("got depth=%d score=%v, want 3, 1234.5", depth, score)
	}
}

func TestTransTableZeroKey(t *testing.T) {
	// A zero board is a legitimate key; presence must not depend on it.
	tt := NewTransTable(1 << 12)
	if _, _, ok := tt.Probe(0); ok {
		t.Error("zero key should miss before store")
	}
	tt.Store(0, 1, 42)
	if _, score, ok := tt.Probe(0); !ok || score != 42 {
		t.Error("zero key should hit after store")
	}
}

func TestTransTableUpdateInPlace(t *testing.T) {
	tt := NewTransTable(1 << 12)
	tt.Store(7, 5, 100)
	tt.Store(7, 2, 200)

	depth, score, ok := tt.Probe(7)
	if !ok {
		t.Fatal("expected hit")
	}
	if depth != 2 || score != 200 {
		t.Errorf("entry not updated: depth=%d score=%v", depth, score)
	}
}

func TestTransTableStats(t *testing.T) {
	tt := NewTransTable(1 << 12)
	tt.Store(1, 0, 1)
	tt.Probe(1)
	tt.Probe(2)

	if tt.Hits() != 1 {
		t.Errorf("hits = %d, want 1", tt.Hits())
	}
	if rate := tt.HitRate(); rate != 50 {
		t.Errorf("hit rate = %v, want 50", rate)
	}
}

func TestTransTableRoundsToPowerOfTwo(t *testing.T) {
	tt := NewTransTable(1000)
	if tt.Size() != 512 {
		t.Errorf("size = %d, want 512", tt.Size())
	}
}

func TestNilTransTableDegradesToMisses(t *testing.T) {
	var tt *TransTable
	tt.Store(1, 1, 1)
	if _, _, ok := tt.Probe(1); ok {
		t.Error("nil table must always miss")
	}
	if tt.Hits() != 0 || tt.HitRate() != 0 || tt.Size() != 0 {
		t.Error("nil table stats must be zero")
	}
}
