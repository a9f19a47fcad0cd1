package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/pebblesgame/game/engine"
	"github.com/wricardo/mcp-training/pebblesgame/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Pebbles Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Pebbles Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
A pile of pebbles sits between you and the program. You take turns removing
between 1 and the per-turn maximum. Whoever takes the last pebble wins.

AVAILABLE TOOLS:
- create_game: Start a new game from a preset or explicit settings
- list_games: List all active games
- game_state: Get the current pile and winner
- take_turn: Remove pebbles - requires intent explanation
- give_up: Forfeit the game to the program
- restart_game: Start over in the same session with new settings
- list_presets: List named game settings
- game_rules: Rules, difficulties and strategy hints

NOTE: The 'intent' parameter on take_turn serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func settingsSchema() map[string]interface{} {
	return map[string]interface{}{
		"pebbles_count": map[string]interface{}{
			"type":        "integer",
			"minimum":     1,
			"description": "Pebbles in the pile at the start",
		},
		"max_pebbles_per_turn": map[string]interface{}{
			"type":        "integer",
			"minimum":     1,
			"description": "Most pebbles either player may take in one turn",
		},
		"difficulty": map[string]interface{}{
			"type":        "string",
			"enum":        []string{string(engine.Easy), string(engine.Hard)},
			"description": "easy picks a random amount, hard plays the winning strategy",
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	createProps := settingsSchema()
	createProps["preset"] = map[string]interface{}{
		"type":        "string",
		"description": "Preset to start from (optional, see list_presets). Explicit settings override it.",
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new game session. The program may move first; its opening move is reported.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: createProps,
		},
	}, c.handleCreateGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "take_turn",
		Description: "Remove pebbles from the pile. The program answers in the same call unless you took the last pebble.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema(),
				"pebbles": map[string]interface{}{
					"type":        "integer",
					"minimum":     1,
					"description": "How many pebbles to remove",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this turn (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "pebbles"},
		},
	}, c.handleTakeTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "give_up",
		Description: "Forfeit the game. The program is declared the winner.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGiveUp)

	restartProps := settingsSchema()
	restartProps["session_id"] = sessionIDSchema()
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart_game",
		Description: "Replace the session's game with a new one. First player is drawn again.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: restartProps,
			Required:   []string{"session_id", "pebbles_count", "max_pebbles_per_turn", "difficulty"},
		},
	}, c.handleRestartGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_presets",
		Description: "List available game presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPresets)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Get the rules of the game and how each difficulty plays",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameRules)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// uintArg reads a non-negative integer argument; JSON numbers arrive as float64
func uintArg(args map[string]interface{}, name string) (uint32, bool, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, false, nil
	}
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("%s must be a number", name)
		}
		f = parsed
	default:
		return 0, false, fmt.Errorf("%s must be a number", name)
	}
	if f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, false, fmt.Errorf("%s must be a whole number between 0 and %d", name, uint32(math.MaxUint32))
	}
	return uint32(f), true, nil
}

// settingsArgs collects pebbles_count, max_pebbles_per_turn and difficulty
func settingsArgs(args map[string]interface{}) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	for _, name := range []string{"pebbles_count", "max_pebbles_per_turn"} {
		v, ok, err := uintArg(args, name)
		if err != nil {
			return nil, err
		}
		if ok {
			body[name] = v
		}
	}
	if d, _ := args["difficulty"].(string); d != "" {
		body["difficulty"] = d
	}
	return body, nil
}

// Tool handlers

func (c *Client) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body, err := settingsArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if preset, _ := args["preset"].(string); preset != "" {
		body["preset"] = preset
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Created session: %s\n", session.ID)
	if session.Preset != "" {
		fmt.Fprintf(&b, "Preset: %s\n", session.Preset)
	}
	b.WriteString(formatEvents(session.Events))
	if session.GameState != nil {
		b.WriteString(formatGameState(session.GameState))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Games (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += "- " + formatSessionLine(&s) + "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleTakeTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pebbles, ok, err := uintArg(args, "pebbles")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !ok {
		return mcp.NewToolResultError("pebbles is required"), nil
	}

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = request.GetString("intent", "")

	var result service.ActionResult
	path := fmt.Sprintf("/api/sessions/%s/turn", sessionID)
	if err := c.apiCall(ctx, "POST", path, map[string]uint32{"pebbles": pebbles}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("You removed %d.\n", pebbles) + formatActionResult(&result)
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleGiveUp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/give-up", sessionID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleRestartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := settingsArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/restart", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Game restarted.\n" + formatActionResult(&result)), nil
}

func (c *Client) handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var presets []service.PresetInfo
	if err := c.apiCall(ctx, "GET", "/api/presets", nil, &presets); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available Presets (%d):\n\n", len(presets))
	for _, p := range presets {
		fmt.Fprintf(&b, "- %s: %d pebbles, up to %d per turn, %s", p.PresetID, p.PebblesCount, p.MaxPebblesPerTurn, p.Difficulty)
		if p.Description != "" {
			fmt.Fprintf(&b, " (%s)", p.Description)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := `PEBBLES GAME RULES

SETUP:
- A game has a pile size, a per-turn maximum and a difficulty.
- The first player is drawn at random when the game starts or restarts.
- If the program goes first it moves immediately.

TURNS:
- On your turn remove between 1 and the per-turn maximum.
- Unless you took the last pebble, the program answers right away.
- Whoever takes the last pebble wins. A finished game accepts no more turns.

DIFFICULTIES:
- easy: the program removes a random amount between 1 and the maximum.
- hard: the program leaves a multiple of (maximum + 1) whenever it can.

STRATEGY:
- Piles that are a multiple of (maximum + 1) lose for the player about to move.
- Against easy, leave the program a multiple of (maximum + 1) whenever you can.
- Hard answers a multiple of (maximum + 1) by taking (maximum + 1), so the pile stays a multiple.
  You can only beat hard by moving first when the whole pile fits in one turn.

OTHER ACTIONS:
- give_up ends the game in the program's favour.
- restart_game starts a new game in the same session.`

	return mcp.NewToolResultText(rules), nil
}

// Formatting helpers

func formatSessionLine(s *service.SessionInfo) string {
	line := s.ID
	if s.Preset != "" {
		line += fmt.Sprintf(" (Preset: %s)", s.Preset)
	}
	switch {
	case !s.Initialized || s.GameState == nil:
		line += " - not started"
	case s.GameState.Winner != nil:
		line += fmt.Sprintf(" - won by %s", *s.GameState.Winner)
	default:
		line += fmt.Sprintf(" - %d/%d pebbles left", s.GameState.PebblesRemaining, s.GameState.PebblesCount)
	}
	if !s.CreatedAt.IsZero() {
		line += fmt.Sprintf(", Created: %s", s.CreatedAt.Format("15:04:05"))
	}
	return line
}

func formatGameState(state *engine.GameState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pebbles remaining: %d of %d\n", state.PebblesRemaining, state.PebblesCount)
	fmt.Fprintf(&b, "Max per turn: %d\n", state.MaxPebblesPerTurn)
	fmt.Fprintf(&b, "Difficulty: %s\n", state.Difficulty)
	fmt.Fprintf(&b, "First player: %s\n", state.FirstPlayer)
	if state.Winner != nil {
		fmt.Fprintf(&b, "GAME OVER - winner: %s\n", *state.Winner)
	} else {
		fmt.Fprintf(&b, "Your move: take 1 to %d\n", state.MaxPebblesPerTurn)
	}
	return b.String()
}

func formatEvents(events []engine.Event) string {
	var b strings.Builder
	for _, ev := range events {
		switch ev.Type {
		case engine.EventCounterTurn:
			fmt.Fprintf(&b, "Program removed %d.\n", ev.PebblesRemoved)
		case engine.EventWon:
			if ev.Winner == engine.User {
				b.WriteString("You win!\n")
			} else {
				b.WriteString("The program wins.\n")
			}
		}
	}
	return b.String()
}

func formatActionResult(result *service.ActionResult) string {
	out := formatEvents(result.Events)
	if result.GameState != nil {
		out += formatGameState(result.GameState)
	}
	return out
}
