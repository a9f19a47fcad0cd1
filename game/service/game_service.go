package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/mcp-training/pebblesgame/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrPresetNotFound  = errors.New("preset not found")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Apply(ctx context.Context, sessionID string, action engine.Action) (*ActionResult, error)
	Turn(ctx context.Context, sessionID string, pebbles uint32) (*ActionResult, error)
	GiveUp(ctx context.Context, sessionID string) (*ActionResult, error)
	Restart(ctx context.Context, sessionID string, params engine.InitParams) (*ActionResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Presets
	ListPresets(ctx context.Context) ([]*PresetInfo, error)
	LoadPreset(ctx context.Context, name string) (*engine.Preset, error)
	SavePreset(ctx context.Context, preset *engine.Preset) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// PresetManager handles game preset loading
type PresetManager interface {
	LoadPreset(name string) (*engine.Preset, error)
	ListPresets() ([]*PresetInfo, error)
	GetDefault() *engine.Preset
	SavePreset(preset *engine.Preset) error
}

// Session is one hosted game instance
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Preset         string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
