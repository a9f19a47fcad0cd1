// Package mcp provides a Model Context Protocol server for the Pebbles Game.
//
// The server is a thin proxy: every tool call becomes a request against the
// REST API, so agents and HTTP clients share the same sessions.
//
// MCP Tools:
//   - create_game: Create a session from a preset or explicit settings
//   - list_games: List active sessions
//   - game_state: Current pile, settings and winner
//   - take_turn: Remove pebbles; the program's answer is included
//   - give_up: Forfeit to the program
//   - restart_game: Replace a session's game
//   - list_presets: Named game settings
//   - game_rules: Rules and strategy hints
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST /mcp on the main server, answered with HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
