package engine

import (
	"fmt"
	"strings"
)

// Player identifies one of the two participants
type Player string

const (
	User    Player = "user"
	Program Player = "program"
)

// Difficulty selects the program's move policy
type Difficulty string

const (
	Easy Difficulty = "easy"
	Hard Difficulty = "hard"
)

// ParseDifficulty accepts "easy" or "hard" in any case
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case Easy:
		return Easy, nil
	case Hard:
		return Hard, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrValidation, s)
	}
}

// UnmarshalText normalizes case; an empty value is left for Validate to reject
func (d *Difficulty) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = ""
		return nil
	}
	parsed, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GameState is the complete state of one game
type GameState struct {
	PebblesCount      uint32     `json:"pebbles_count"`
	MaxPebblesPerTurn uint32     `json:"max_pebbles_per_turn"`
	PebblesRemaining  uint32     `json:"pebbles_remaining"`
	Difficulty        Difficulty `json:"difficulty"`
	FirstPlayer       Player     `json:"first_player"`
	Winner            *Player    `json:"winner"`
}

// IsOver reports whether a winner has been decided
func (s *GameState) IsOver() bool {
	return s.Winner != nil
}

func (s *GameState) clone() *GameState {
	c := *s
	if s.Winner != nil {
		w := *s.Winner
		c.Winner = &w
	}
	return &c
}

// InitParams are the settings a game is (re)started with
type InitParams struct {
	PebblesCount      uint32     `json:"pebbles_count"`
	MaxPebblesPerTurn uint32     `json:"max_pebbles_per_turn"`
	Difficulty        Difficulty `json:"difficulty"`
}

// Validate checks the preconditions shared by initialize and restart
func (p InitParams) Validate() error {
	if p.PebblesCount == 0 {
		return fmt.Errorf("%w: pebbles_count must be positive", ErrValidation)
	}
	if p.MaxPebblesPerTurn == 0 {
		return fmt.Errorf("%w: max_pebbles_per_turn must be positive", ErrValidation)
	}
	if p.Difficulty != Easy && p.Difficulty != Hard {
		return fmt.Errorf("%w: unknown difficulty %q", ErrValidation, p.Difficulty)
	}
	return nil
}

// EventType distinguishes response payloads
type EventType string

const (
	EventWon         EventType = "won"
	EventCounterTurn EventType = "counter_turn"
)

// Event is the payload delivered to the response channel
type Event struct {
	Type           EventType `json:"type"`
	Winner         Player    `json:"winner,omitempty"`
	PebblesRemoved uint32    `json:"pebbles_removed,omitempty"`
}

// Won builds the event announcing the winner
func Won(p Player) Event {
	return Event{Type: EventWon, Winner: p}
}

// CounterTurn builds the event reporting the program's removal
func CounterTurn(n uint32) Event {
	return Event{Type: EventCounterTurn, PebblesRemoved: n}
}

func (e Event) String() string {
	if e.Type == EventWon {
		return fmt.Sprintf("Won(%s)", e.Winner)
	}
	return fmt.Sprintf("CounterTurn(%d)", e.PebblesRemoved)
}

// ActionType enumerates the request kinds the engine accepts
type ActionType string

const (
	ActionInit    ActionType = "init"
	ActionTurn    ActionType = "turn"
	ActionGiveUp  ActionType = "give_up"
	ActionRestart ActionType = "restart"
)

// Action is a single request. Only the fields relevant to Type are read.
type Action struct {
	Type              ActionType `json:"type"`
	Pebbles           uint32     `json:"pebbles,omitempty"`
	Difficulty        Difficulty `json:"difficulty,omitempty"`
	PebblesCount      uint32     `json:"pebbles_count,omitempty"`
	MaxPebblesPerTurn uint32     `json:"max_pebbles_per_turn,omitempty"`
}

// Params extracts the init/restart settings carried by the action
func (a Action) Params() InitParams {
	return InitParams{
		PebblesCount:      a.PebblesCount,
		MaxPebblesPerTurn: a.MaxPebblesPerTurn,
		Difficulty:        a.Difficulty,
	}
}

// Preset is a named, reusable set of game settings
type Preset struct {
	Name              string     `json:"name" yaml:"name"`
	Description       string     `json:"description" yaml:"description"`
	PebblesCount      uint32     `json:"pebbles_count" yaml:"pebbles_count"`
	MaxPebblesPerTurn uint32     `json:"max_pebbles_per_turn" yaml:"max_pebbles_per_turn"`
	Difficulty        Difficulty `json:"difficulty" yaml:"difficulty"`
}

// Params returns the preset's settings
func (p *Preset) Params() InitParams {
	return InitParams{
		PebblesCount:      p.PebblesCount,
		MaxPebblesPerTurn: p.MaxPebblesPerTurn,
		Difficulty:        p.Difficulty,
	}
}

// Validate checks the preset has a name and playable settings
func (p *Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: preset name is required", ErrValidation)
	}
	return p.Params().Validate()
}
