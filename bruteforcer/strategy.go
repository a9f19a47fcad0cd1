package main

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/pebblesgame/game/engine"
)

// Strategy picks how many pebbles the bot removes on its turn.
type Strategy interface {
	Name() string
	NextMove(state *engine.GameState) (uint32, error)
}

// NewStrategy resolves a strategy by name. Random strategies draw from
// source.
func NewStrategy(name string, source engine.RandomSource) (Strategy, error) {
	switch strings.ToLower(name) {
	case "", "perfect":
		return PerfectStrategy{}, nil
	case "greedy":
		return GreedyStrategy{}, nil
	case "random":
		if source == nil {
			return nil, fmt.Errorf("random strategy needs a randomness source")
		}
		return &RandomStrategy{source: source}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (perfect, greedy, random)", name)
	}
}

// PerfectStrategy leaves the opponent a multiple of max+1 whenever it can
// and stalls with a single pebble otherwise.
type PerfectStrategy struct{}

func (PerfectStrategy) Name() string { return "perfect" }

func (PerfectStrategy) NextMove(state *engine.GameState) (uint32, error) {
	return engine.PerfectMove(state.PebblesRemaining, state.MaxPebblesPerTurn), nil
}

// GreedyStrategy always takes as many pebbles as allowed.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string { return "greedy" }

func (GreedyStrategy) NextMove(state *engine.GameState) (uint32, error) {
	return legalMax(state), nil
}

// RandomStrategy takes a uniformly chosen legal amount.
type RandomStrategy struct {
	source engine.RandomSource
}

func (s *RandomStrategy) Name() string { return "random" }

func (s *RandomStrategy) NextMove(state *engine.GameState) (uint32, error) {
	r, err := s.source.RandomU32()
	if err != nil {
		return 0, err
	}
	return 1 + r%legalMax(state), nil
}

func legalMax(state *engine.GameState) uint32 {
	if state.PebblesRemaining < state.MaxPebblesPerTurn {
		return state.PebblesRemaining
	}
	return state.MaxPebblesPerTurn
}
