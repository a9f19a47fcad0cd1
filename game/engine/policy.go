package engine

// ProgramRemoval returns how many pebbles the program takes from the pile.
// Easy draws uniformly from [1, max]. Hard plays the Nim strategy: leave a
// multiple of max+1, or take max+1 when the pile already is one. The Hard
// fallback is not bound by max and may exceed the pile.
func ProgramRemoval(state *GameState, rnd RandomSource) (uint32, error) {
	switch state.Difficulty {
	case Hard:
		return hardRemoval(state.PebblesRemaining, state.MaxPebblesPerTurn), nil
	default:
		r, err := randomU32(rnd)
		if err != nil {
			return 0, err
		}
		return 1 + r%state.MaxPebblesPerTurn, nil
	}
}

func hardRemoval(remaining, maxPerTurn uint32) uint32 {
	// uint64 so max == MaxUint32 does not wrap to a zero modulus
	period := uint64(maxPerTurn) + 1
	if m := uint64(remaining) % period; m != 0 {
		return uint32(m)
	}
	if period > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(period)
}

// playProgramTurn mutates state with the program's move and returns the
// event to deliver. State is untouched when randomness fails.
func playProgramTurn(state *GameState, rnd RandomSource) (Event, error) {
	n, err := ProgramRemoval(state, rnd)
	if err != nil {
		return Event{}, err
	}

	state.PebblesRemaining = saturatingSub(state.PebblesRemaining, n)
	if state.PebblesRemaining == 0 {
		winner := Program
		state.Winner = &winner
		return Won(Program), nil
	}
	return CounterTurn(n), nil
}

// FirstMoverWins reports whether the player moving first wins under optimal play
func FirstMoverWins(pebbles, maxPerTurn uint32) bool {
	return uint64(pebbles)%(uint64(maxPerTurn)+1) != 0
}

// HardBeatable reports whether a user can beat the hard program at all. Hard
// answers a multiple of max+1 with max+1, so the pile never leaves a multiple
// once the program has moved. The user wins only by moving first and taking
// the whole pile.
func HardBeatable(pebbles, maxPerTurn uint32) bool {
	return pebbles <= maxPerTurn
}

// PerfectMove leaves the opponent a multiple of max+1 when it can and takes
// a single pebble otherwise.
func PerfectMove(remaining, maxPerTurn uint32) uint32 {
	period := uint64(maxPerTurn) + 1
	if m := uint64(remaining) % period; m != 0 {
		return uint32(m)
	}
	return 1
}
