package service

import (
	"time"

	"github.com/wricardo/mcp-training/pebblesgame/game/engine"
)

// CreateSessionRequest selects how a new session starts. Explicit settings
// override the preset's; Deferred leaves the game uninitialized until an
// init action arrives.
type CreateSessionRequest struct {
	Preset            string            `json:"preset,omitempty"`
	PebblesCount      uint32            `json:"pebbles_count,omitempty"`
	MaxPebblesPerTurn uint32            `json:"max_pebbles_per_turn,omitempty"`
	Difficulty        engine.Difficulty `json:"difficulty,omitempty"`
	Deferred          bool              `json:"deferred,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	Preset         string            `json:"preset,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	Initialized    bool              `json:"initialized"`
	GameState      *engine.GameState `json:"game_state,omitempty"`

	// Set on creation only: responses delivered while starting the game
	MessageID string         `json:"message_id,omitempty"`
	Events    []engine.Event `json:"events,omitempty"`
}

// ActionResult is the outcome of a single request
type ActionResult struct {
	SessionID string            `json:"session_id"`
	MessageID string            `json:"message_id"`
	Action    engine.ActionType `json:"action"`
	Events    []engine.Event    `json:"events"`
	GameState *engine.GameState `json:"game_state"`
}

// Winner returns the decided winner, if any
func (r *ActionResult) Winner() *engine.Player {
	if r.GameState == nil {
		return nil
	}
	return r.GameState.Winner
}

// PresetInfo provides information about a game preset
type PresetInfo struct {
	Filename          string            `json:"filename,omitempty"`
	PresetID          string            `json:"preset_id"` // The identifier to use for session creation
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	PebblesCount      uint32            `json:"pebbles_count"`
	MaxPebblesPerTurn uint32            `json:"max_pebbles_per_turn"`
	Difficulty        engine.Difficulty `json:"difficulty"`
	Builtin           bool              `json:"builtin"`
}
