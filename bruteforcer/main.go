// Command bruteforcer plays the pebbles game against a running server over
// its REST API, restarting until the bot wins or runs out of attempts.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/pebblesgame/game/engine"
	"github.com/wricardo/mcp-training/pebblesgame/game/service"
)

// Client talks to the game REST API for a single session
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do sends an optional JSON body and decodes a JSON reply into out
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

// CreateSession starts a new game from preset and remembers its id
func (c *Client) CreateSession(ctx context.Context, preset string) (*service.SessionInfo, error) {
	var session service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", service.CreateSessionRequest{Preset: preset}, &session); err != nil {
		return nil, err
	}
	c.sessionID = session.ID
	return &session, nil
}

func (c *Client) GetState(ctx context.Context) (*engine.GameState, error) {
	var state engine.GameState
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+c.sessionID+"/state", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) Turn(ctx context.Context, pebbles uint32) (*service.ActionResult, error) {
	return c.action(ctx, "turn", map[string]uint32{"pebbles": pebbles})
}

func (c *Client) Restart(ctx context.Context, params engine.InitParams) (*service.ActionResult, error) {
	return c.action(ctx, "restart", params)
}

func (c *Client) action(ctx context.Context, name string, body interface{}) (*service.ActionResult, error) {
	var result service.ActionResult
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+c.sessionID+"/"+name, body, &result); err != nil {
		return nil, err
	}
	if result.GameState == nil {
		return nil, fmt.Errorf("%s: response carried no game state", name)
	}
	return &result, nil
}

// Options bound a bot run
type Options struct {
	MaxAttempts int
	MaxMoves    int
	Delay       time.Duration
}

// Outcome summarizes a bot run
type Outcome struct {
	SessionID string
	Attempts  int
	Moves     int
	Won       bool
}

var errNoProgress = errors.New("move limit reached")

// play runs games in the client's session until the bot wins. Each attempt
// after the first restarts with the same settings.
func play(ctx context.Context, c *Client, strategy Strategy, state *engine.GameState, opts Options) (*Outcome, error) {
	outcome := &Outcome{SessionID: c.sessionID}
	params := engine.InitParams{
		PebblesCount:      state.PebblesCount,
		MaxPebblesPerTurn: state.MaxPebblesPerTurn,
		Difficulty:        state.Difficulty,
	}

	for outcome.Attempts < opts.MaxAttempts {
		outcome.Attempts++

		if outcome.Attempts > 1 || state.IsOver() {
			result, err := c.Restart(ctx, params)
			if err != nil {
				return outcome, fmt.Errorf("restart: %w", err)
			}
			state = result.GameState
		}

		log.Info().
			Int("attempt", outcome.Attempts).
			Str("first", string(state.FirstPlayer)).
			Uint32("pebbles", state.PebblesRemaining).
			Msg("game started")

		final, moves, err := playGame(ctx, c, strategy, state, opts)
		outcome.Moves += moves
		if err != nil && !errors.Is(err, errNoProgress) {
			return outcome, err
		}
		state = final
		if winner := state.Winner; winner != nil && *winner == engine.User {
			outcome.Won = true
			log.Info().Int("attempt", outcome.Attempts).Int("moves", moves).Msg("victory")
			return outcome, nil
		}
		log.Info().Int("attempt", outcome.Attempts).Int("moves", moves).Msg("game lost")
	}
	return outcome, nil
}

// playGame takes turns until the game ends. It returns the last state seen
// and the number of turns taken.
func playGame(ctx context.Context, c *Client, strategy Strategy, state *engine.GameState, opts Options) (*engine.GameState, int, error) {
	moves := 0
	for !state.IsOver() {
		if opts.MaxMoves > 0 && moves >= opts.MaxMoves {
			return state, moves, errNoProgress
		}

		pebbles, err := strategy.NextMove(state)
		if err != nil {
			return state, moves, fmt.Errorf("%s strategy: %w", strategy.Name(), err)
		}

		result, err := c.Turn(ctx, pebbles)
		if err != nil {
			return state, moves, err
		}
		moves++

		log.Debug().
			Uint32("took", pebbles).
			Interface("events", result.Events).
			Uint32("remaining", result.GameState.PebblesRemaining).
			Msg("turn")

		state = result.GameState
		if opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return state, moves, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}
	return state, moves, nil
}

func main() {
	cmd := &cli.Command{
		Name:  "bruteforcer",
		Usage: "Play the pebbles game over the REST API until the bot wins",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL"},
			&cli.StringFlag{Name: "preset", Usage: "Game preset (classic, easy, hard, ...)"},
			&cli.StringFlag{Name: "continue", Usage: "Resume playing an existing session by ID"},
			&cli.StringFlag{Name: "strategy", Value: "perfect", Usage: "Move strategy (perfect, greedy, random)"},
			&cli.StringFlag{Name: "seed", Usage: "Seed for the random strategy (crypto/rand when empty)"},
			&cli.IntFlag{Name: "max-moves", Value: 1000, Usage: "Maximum moves per attempt"},
			&cli.IntFlag{Name: "max-attempts", Value: 100, Usage: "Maximum attempts before giving up"},
			&cli.IntFlag{Name: "delay", Usage: "Delay between moves in milliseconds"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("bruteforcer failed")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cmd.Bool("v") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var source engine.RandomSource = engine.CryptoSource{}
	if seed := cmd.String("seed"); seed != "" {
		source = engine.NewSaltedSource([]byte(seed), []byte("bruteforcer"))
	}
	strategy, err := NewStrategy(cmd.String("strategy"), source)
	if err != nil {
		return err
	}

	log.Info().Str("url", cmd.String("url")).Str("strategy", strategy.Name()).Msg("connecting to game server")
	client := NewClient(cmd.String("url"))

	var state *engine.GameState
	if id := cmd.String("continue"); id != "" {
		client.sessionID = id
		if state, err = client.GetState(ctx); err != nil {
			return fmt.Errorf("resume session %s: %w", id, err)
		}
		log.Info().Str("session", id).Msg("session resumed")
	} else {
		session, err := client.CreateSession(ctx, cmd.String("preset"))
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		state = session.GameState
		log.Info().Str("session", session.ID).Str("preset", session.Preset).Msg("session created")
	}

	outcome, err := play(ctx, client, strategy, state, Options{
		MaxAttempts: int(cmd.Int("max-attempts")),
		MaxMoves:    int(cmd.Int("max-moves")),
		Delay:       time.Duration(cmd.Int("delay")) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	if !outcome.Won {
		return fmt.Errorf("failed to win after %d attempts (session %s)", outcome.Attempts, outcome.SessionID)
	}
	log.Info().Str("session", outcome.SessionID).Int("attempts", outcome.Attempts).Msg("won")
	return nil
}
