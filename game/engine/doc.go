// Package engine provides the core game logic for the Pebbles Game.
//
// Two players, the User and the Program, take turns removing between one and
// MaxPebblesPerTurn pebbles from a shared pile. Whoever takes the last pebble
// wins. The engine implements:
//   - Parameter and move validation
//   - The fair coin flip that picks the first player
//   - The program's move policies (Easy and Hard)
//   - Win detection, forfeiture and restart
//
// Core Types:
//
// GameEngine owns exactly one GameState. Every operation receives a Runtime
// carrying the request's RandomSource and Responder; the engine never keeps
// references to either between calls.
//
// Usage:
//
//	eng := engine.NewEngine()
//	rt := engine.Runtime{
//		Random:    engine.NewSaltedSource(seed, []byte(messageID)),
//		Responses: engine.ResponderFunc(func(ev engine.Event) error { ... }),
//	}
//	if err := eng.Initialize(rt, engine.InitParams{PebblesCount: 15, MaxPebblesPerTurn: 3, Difficulty: engine.Hard}); err != nil {
//		return err
//	}
//	err := eng.ApplyTurn(rt, 2)
//
// Program Policies:
//
// Easy removes a uniformly random amount in [1, MaxPebblesPerTurn]. Hard
// leaves the pile at a multiple of MaxPebblesPerTurn+1 when it can and
// otherwise removes MaxPebblesPerTurn+1, which may exceed both the user's cap
// and the pile itself.
//
// Failures:
//
// Validation failures and randomness failures leave the state untouched and
// deliver nothing. A delivery failure is reported after the move has been
// committed.
package engine
