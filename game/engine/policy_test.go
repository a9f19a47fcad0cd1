package engine

import (
	"bytes"
	"math"
	"testing"
)

func TestProgramRemoval_HardIsOptimal(t *testing.T) {
	for c := uint32(1); c <= 6; c++ {
		for p := uint32(1); p <= 60; p++ {
			state := &GameState{PebblesRemaining: p, MaxPebblesPerTurn: c, Difficulty: Hard}
			n, err := ProgramRemoval(state, nil)
			if err != nil {
				t.Fatalf("p=%d c=%d: unexpected error %v", p, c, err)
			}

			m := p % (c + 1)
			want := m
			if m == 0 {
				want = c + 1
			}
			if n != want {
				t.Errorf("p=%d c=%d: expected %d, got %d", p, c, want, n)
			}
			if m != 0 && (p-n)%(c+1) != 0 {
				t.Errorf("p=%d c=%d: remaining %d is not a multiple of %d", p, c, p-n, c+1)
			}
		}
	}
}

func TestProgramRemoval_HardFallbackExceedsCap(t *testing.T) {
	state := &GameState{PebblesRemaining: 8, MaxPebblesPerTurn: 3, Difficulty: Hard}
	n, _ := ProgramRemoval(state, nil)
	if n != 4 {
		t.Errorf("Expected fallback of 4 (cap+1), got %d", n)
	}
}

func TestProgramRemoval_HardMaxCapDoesNotOverflow(t *testing.T) {
	state := &GameState{PebblesRemaining: 7, MaxPebblesPerTurn: math.MaxUint32, Difficulty: Hard}
	n, err := ProgramRemoval(state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("Expected to take the whole pile of 7, got %d", n)
	}
}

func TestProgramRemoval_EasyRange(t *testing.T) {
	src := NewSaltedSource([]byte("easy"), []byte("range"))
	seen := map[uint32]bool{}
	for i := 0; i < 500; i++ {
		state := &GameState{PebblesRemaining: 100, MaxPebblesPerTurn: 4, Difficulty: Easy}
		n, err := ProgramRemoval(state, src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n < 1 || n > 4 {
			t.Fatalf("Expected removal in [1,4], got %d", n)
		}
		seen[n] = true
	}
	if len(seen) != 4 {
		t.Errorf("Expected every amount in [1,4] to appear, saw %v", seen)
	}
}

func TestFirstMoverWins(t *testing.T) {
	tests := []struct {
		pebbles, max uint32
		want         bool
	}{
		{15, 3, true},
		{16, 3, false},
		{20, 4, false},
		{1, 3, true},
		{10, 3, true},
	}
	for _, tt := range tests {
		if got := FirstMoverWins(tt.pebbles, tt.max); got != tt.want {
			t.Errorf("FirstMoverWins(%d, %d) = %v, want %v", tt.pebbles, tt.max, got, tt.want)
		}
	}
}

func TestHardBeatable(t *testing.T) {
	tests := []struct {
		pebbles, max uint32
		want         bool
	}{
		{3, 3, true},
		{2, 5, true},
		{4, 3, false},
		{15, 3, false},
		{101, 5, false},
	}
	for _, tt := range tests {
		if got := HardBeatable(tt.pebbles, tt.max); got != tt.want {
			t.Errorf("HardBeatable(%d, %d) = %v, want %v", tt.pebbles, tt.max, got, tt.want)
		}
	}
}

// A perfect user who moves first against hard wins exactly when the whole
// pile can be taken in one turn.
func TestHardBeatable_MatchesPlay(t *testing.T) {
	for c := uint32(1); c <= 5; c++ {
		for p := uint32(1); p <= 30; p++ {
			eng := NewEngine()
			rt, _, _ := newRuntime(0) // even -> user
			if err := eng.Initialize(rt, InitParams{PebblesCount: p, MaxPebblesPerTurn: c, Difficulty: Hard}); err != nil {
				t.Fatalf("p=%d c=%d: Initialize failed: %v", p, c, err)
			}
			state := mustSnapshot(t, eng)
			for state.Winner == nil {
				if err := eng.ApplyTurn(rt, PerfectMove(state.PebblesRemaining, c)); err != nil {
					t.Fatalf("p=%d c=%d: ApplyTurn failed: %v", p, c, err)
				}
				state = mustSnapshot(t, eng)
			}
			if userWon := *state.Winner == User; userWon != HardBeatable(p, c) {
				t.Errorf("p=%d c=%d: user won = %v, HardBeatable = %v", p, c, userWon, HardBeatable(p, c))
			}
		}
	}
}

func TestPerfectMove(t *testing.T) {
	tests := []struct {
		remaining, max, want uint32
	}{
		{15, 3, 3},
		{16, 3, 1},
		{7, 4, 2},
		{1, 3, 1},
		{2, 5, 2},
	}
	for _, tt := range tests {
		if got := PerfectMove(tt.remaining, tt.max); got != tt.want {
			t.Errorf("PerfectMove(%d, %d) = %d, want %d", tt.remaining, tt.max, got, tt.want)
		}
	}
}

func TestSaltedSource_Deterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := NewSaltedSource(seed, []byte("message-1"))
	b := NewSaltedSource(seed, []byte("message-1"))
	c := NewSaltedSource(seed, []byte("message-2"))

	var seqA, seqC []uint32
	for i := 0; i < 8; i++ {
		va, _ := a.RandomU32()
		vb, _ := b.RandomU32()
		vc, _ := c.RandomU32()
		if va != vb {
			t.Fatalf("call %d: same seed and salt diverged (%d vs %d)", i, va, vb)
		}
		seqA = append(seqA, va)
		seqC = append(seqC, vc)
	}

	same := true
	for i := range seqA {
		if seqA[i] != seqC[i] {
			same = false
		}
	}
	if same {
		t.Error("Expected different salts to produce different sequences")
	}
}

func TestSaltedSource_LongSeed(t *testing.T) {
	seed := bytes.Repeat([]byte("x"), 65)
	a := NewSaltedSource(seed, []byte("msg"))
	b := NewSaltedSource(seed, []byte("msg"))
	for i := 0; i < 4; i++ {
		va, err := a.RandomU32()
		if err != nil {
			t.Fatalf("RandomU32 failed for a 65-byte seed: %v", err)
		}
		vb, _ := b.RandomU32()
		if va != vb {
			t.Fatalf("draw %d: expected identical values, got %d and %d", i, va, vb)
		}
	}

	if _, err := NewSaltedSource(nil, nil).RandomU32(); err != nil {
		t.Errorf("Expected an empty seed to work, got %v", err)
	}
}

func TestCryptoSource(t *testing.T) {
	if _, err := (CryptoSource{}).RandomU32(); err != nil {
		t.Errorf("CryptoSource failed: %v", err)
	}
	seed, err := NewSeed()
	if err != nil || len(seed) != 32 {
		t.Errorf("NewSeed returned %d bytes, %v", len(seed), err)
	}
}
