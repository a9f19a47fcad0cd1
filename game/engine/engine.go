package engine

import "fmt"

// Responder is the channel responses are delivered through
type Responder interface {
	DeliverResponse(ev Event) error
}

// ResponderFunc adapts a function to Responder
type ResponderFunc func(ev Event) error

func (f ResponderFunc) DeliverResponse(ev Event) error { return f(ev) }

// Runtime bundles the collaborators available to a single request
type Runtime struct {
	Random    RandomSource
	Responses Responder
}

// GameEngine owns the state of one game. It is not safe for concurrent use;
// callers serialize requests.
type GameEngine struct {
	state *GameState
}

// NewEngine returns an engine that has not been initialized yet
func NewEngine() *GameEngine {
	return &GameEngine{}
}

// Initialized reports whether Initialize has succeeded at least once
func (e *GameEngine) Initialized() bool {
	return e.state != nil
}

// Initialize validates the settings, flips for the first player and starts a
// new game, replacing any previous one. When the program goes first its move
// is played and reported before Initialize returns.
func (e *GameEngine) Initialize(rt Runtime, params InitParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	first, err := drawFirstPlayer(rt.Random)
	if err != nil {
		return err
	}

	next := &GameState{
		PebblesCount:      params.PebblesCount,
		MaxPebblesPerTurn: params.MaxPebblesPerTurn,
		PebblesRemaining:  params.PebblesCount,
		Difficulty:        params.Difficulty,
		FirstPlayer:       first,
	}

	if first != Program {
		e.state = next
		return nil
	}

	ev, err := playProgramTurn(next, rt.Random)
	if err != nil {
		return err
	}
	e.state = next
	return deliver(rt.Responses, ev)
}

// Restart behaves exactly like Initialize but requires an existing game
func (e *GameEngine) Restart(rt Runtime, params InitParams) error {
	if e.state == nil {
		return ErrNotInitialized
	}
	return e.Initialize(rt, params)
}

// ApplyTurn removes the user's pebbles and, unless that empties the pile,
// answers with the program's move. Exactly one response is delivered.
func (e *GameEngine) ApplyTurn(rt Runtime, pebbles uint32) error {
	if e.state == nil {
		return ErrNotInitialized
	}
	if pebbles == 0 || pebbles > e.state.MaxPebblesPerTurn {
		return fmt.Errorf("%w: must remove between 1 and %d pebbles, got %d",
			ErrValidation, e.state.MaxPebblesPerTurn, pebbles)
	}
	if e.state.IsOver() {
		return ErrGameOver
	}

	next := e.state.clone()
	next.PebblesRemaining = saturatingSub(next.PebblesRemaining, pebbles)

	var ev Event
	if next.PebblesRemaining == 0 {
		winner := User
		next.Winner = &winner
		ev = Won(User)
	} else {
		var err error
		ev, err = playProgramTurn(next, rt.Random)
		if err != nil {
			return err
		}
	}

	e.state = next
	return deliver(rt.Responses, ev)
}

// GiveUp forfeits the game to the program without touching the pile
func (e *GameEngine) GiveUp(rt Runtime) error {
	if e.state == nil {
		return ErrNotInitialized
	}
	winner := Program
	e.state.Winner = &winner
	return deliver(rt.Responses, Won(Program))
}

// Snapshot returns an independent copy of the current state
func (e *GameEngine) Snapshot() (*GameState, error) {
	if e.state == nil {
		return nil, ErrNotInitialized
	}
	return e.state.clone(), nil
}

// Apply dispatches an action to the matching operation
func (e *GameEngine) Apply(rt Runtime, a Action) error {
	switch a.Type {
	case ActionInit:
		return e.Initialize(rt, a.Params())
	case ActionTurn:
		return e.ApplyTurn(rt, a.Pebbles)
	case ActionGiveUp:
		return e.GiveUp(rt)
	case ActionRestart:
		return e.Restart(rt, a.Params())
	default:
		return fmt.Errorf("%w: unknown action %q", ErrValidation, a.Type)
	}
}

func drawFirstPlayer(rnd RandomSource) (Player, error) {
	r, err := randomU32(rnd)
	if err != nil {
		return "", err
	}
	if r%2 == 0 {
		return User, nil
	}
	return Program, nil
}

func deliver(r Responder, ev Event) error {
	if r == nil {
		return fmt.Errorf("%w: no responder", ErrDelivery)
	}
	if err := r.DeliverResponse(ev); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

func randomU32(rnd RandomSource) (uint32, error) {
	if rnd == nil {
		return 0, fmt.Errorf("%w: no source", ErrRandomSource)
	}
	r, err := rnd.RandomU32()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return r, nil
}

func saturatingSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}
