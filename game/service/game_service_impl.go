package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/pebblesgame/game/engine"
)

// Option customizes the game service
type Option func(*gameServiceImpl)

// WithSeed fixes the process seed that per-request randomness is derived from
func WithSeed(seed []byte) Option {
	return func(s *gameServiceImpl) {
		s.seed = append([]byte(nil), seed...)
	}
}

// WithMessageIDs replaces the message id generator. Message ids double as the
// randomness salt, so a fixed sequence makes games reproducible.
func WithMessageIDs(next func() string) Option {
	return func(s *gameServiceImpl) {
		s.nextMessageID = next
	}
}

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions      SessionManager
	presets       PresetManager
	seed          []byte
	nextMessageID func() string
	mu            sync.Mutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, presets PresetManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions:      sessions,
		presets:       presets,
		nextMessageID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed == nil {
		seed, err := engine.NewSeed()
		if err != nil {
			u := uuid.New()
			seed = u[:]
		}
		s.seed = seed
	}
	return s
}

// request carries the collaborators of one in-flight message
type request struct {
	id     string
	events []engine.Event
	rt     engine.Runtime
}

func (s *gameServiceImpl) newRequest(sessionID string) *request {
	req := &request{id: s.nextMessageID()}
	req.rt = engine.Runtime{
		Random: engine.NewSaltedSource(s.seed, []byte(req.id)),
		Responses: engine.ResponderFunc(func(ev engine.Event) error {
			req.events = append(req.events, ev)
			log.Debug().
				Str("session", sessionID).
				Str("message", req.id).
				Stringer("event", ev).
				Msg("response delivered")
			return nil
		}),
	}
	return req
}

// CreateSession creates a new game session and, unless deferred, starts its game
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		presetName string
		params     engine.InitParams
	)
	if !req.Deferred {
		var err error
		presetName, params, err = s.resolveParams(req)
		if err != nil {
			return nil, err
		}
		if err := params.Validate(); err != nil {
			return nil, err
		}
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("")
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sess.Preset = presetName

	info := &SessionInfo{
		ID:             sess.ID,
		Preset:         presetName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
	}
	if req.Deferred {
		return info, nil
	}

	r := s.newRequest(sess.ID)
	if err := sess.Engine.Initialize(r.rt, params); err != nil {
		s.sessions.Delete(sess.ID)
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	state, _ := sess.Engine.Snapshot()
	info.Initialized = true
	info.GameState = state
	info.MessageID = r.id
	info.Events = r.events

	log.Info().
		Str("session", sess.ID).
		Str("preset", presetName).
		Uint32("pebbles", state.PebblesCount).
		Uint32("max_per_turn", state.MaxPebblesPerTurn).
		Str("difficulty", string(state.Difficulty)).
		Str("first", string(state.FirstPlayer)).
		Msg("session created")

	return info, nil
}

// resolveParams merges the named (or default) preset with explicit overrides
func (s *gameServiceImpl) resolveParams(req CreateSessionRequest) (string, engine.InitParams, error) {
	explicit := req.PebblesCount != 0 && req.MaxPebblesPerTurn != 0 && req.Difficulty != ""

	var preset *engine.Preset
	switch {
	case req.Preset != "":
		p, err := s.presets.LoadPreset(req.Preset)
		if err != nil {
			return "", engine.InitParams{}, s.presetError(req.Preset, err)
		}
		preset = p
	case !explicit:
		preset = s.presets.GetDefault()
	}

	var name string
	var params engine.InitParams
	if preset != nil {
		name = req.Preset
		if name == "" {
			name = preset.Name
		}
		params = preset.Params()
	}
	if req.PebblesCount != 0 {
		params.PebblesCount = req.PebblesCount
	}
	if req.MaxPebblesPerTurn != 0 {
		params.MaxPebblesPerTurn = req.MaxPebblesPerTurn
	}
	if req.Difficulty != "" {
		params.Difficulty = req.Difficulty
	}
	return name, params, nil
}

// presetError lists the available presets when the requested one is missing
func (s *gameServiceImpl) presetError(name string, err error) error {
	available, listErr := s.presets.ListPresets()
	if listErr != nil || len(available) == 0 {
		return fmt.Errorf("preset '%s': %w", name, err)
	}
	ids := make([]string, 0, len(available))
	for _, p := range available {
		ids = append(ids, p.PresetID)
	}
	return fmt.Errorf("preset '%s': %w. Available presets: %v", name, err, ids)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Delete(sessionID)
}

// Apply runs one action against a session's game. The responses delivered
// while handling it are returned with the resulting state.
func (s *gameServiceImpl) Apply(ctx context.Context, sessionID string, action engine.Action) (*ActionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	r := s.newRequest(sess.ID)
	if err := sess.Engine.Apply(r.rt, action); err != nil {
		log.Warn().
			Err(err).
			Str("session", sess.ID).
			Str("message", r.id).
			Str("action", string(action.Type)).
			Msg("action rejected")
		return nil, fmt.Errorf("%s: %w", action.Type, err)
	}
	if action.Type == engine.ActionInit || action.Type == engine.ActionRestart {
		sess.Preset = ""
	}

	state, _ := sess.Engine.Snapshot()
	result := &ActionResult{
		SessionID: sess.ID,
		MessageID: r.id,
		Action:    action.Type,
		Events:    r.events,
		GameState: state,
	}
	if result.Events == nil {
		result.Events = []engine.Event{}
	}

	ev := log.Info().
		Str("session", sess.ID).
		Str("action", string(action.Type)).
		Uint32("remaining", state.PebblesRemaining).
		Int("responses", len(result.Events))
	if w := result.Winner(); w != nil {
		ev = ev.Str("winner", string(*w))
	}
	ev.Msg("action applied")

	return result, nil
}

// Turn removes the user's pebbles
func (s *gameServiceImpl) Turn(ctx context.Context, sessionID string, pebbles uint32) (*ActionResult, error) {
	return s.Apply(ctx, sessionID, engine.Action{Type: engine.ActionTurn, Pebbles: pebbles})
}

// GiveUp forfeits the session's game
func (s *gameServiceImpl) GiveUp(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.Apply(ctx, sessionID, engine.Action{Type: engine.ActionGiveUp})
}

// Restart replaces the session's game with a new one
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string, params engine.InitParams) (*ActionResult, error) {
	return s.Apply(ctx, sessionID, engine.Action{
		Type:              engine.ActionRestart,
		PebblesCount:      params.PebblesCount,
		MaxPebblesPerTurn: params.MaxPebblesPerTurn,
		Difficulty:        params.Difficulty,
	})
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return sess.Engine.Snapshot()
}

// ListPresets returns available game presets
func (s *gameServiceImpl) ListPresets(ctx context.Context) ([]*PresetInfo, error) {
	return s.presets.ListPresets()
}

// LoadPreset loads a specific game preset
func (s *gameServiceImpl) LoadPreset(ctx context.Context, name string) (*engine.Preset, error) {
	return s.presets.LoadPreset(name)
}

// SavePreset stores a preset for later sessions
func (s *gameServiceImpl) SavePreset(ctx context.Context, preset *engine.Preset) error {
	return s.presets.SavePreset(preset)
}

func sessionInfo(sess *Session) *SessionInfo {
	info := &SessionInfo{
		ID:             sess.ID,
		Preset:         sess.Preset,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
	}
	if state, err := sess.Engine.Snapshot(); err == nil {
		info.Initialized = true
		info.GameState = state
	}
	return info
}
