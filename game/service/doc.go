// Package service provides the business logic layer for the Pebbles Game.
//
// The service package implements:
//   - Multi-session game management
//   - Preset lookup for new sessions
//   - Request dispatch to each session's game engine
//   - Per-request randomness and response collection
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// PresetManager loads the named game settings sessions can start from.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Every request gets a fresh message id; the id salts the
// request's random source and tags the responses the engine delivers. Requests
// are serialized, so a turn and the program's answer complete before the next
// request is looked at.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	presetMgr, _ := config.NewManager("presets")
//	gameService := service.NewGameService(sessionMgr, presetMgr)
//
//	// Create a new session from a preset
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{Preset: "hard"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Take two pebbles
//	result, err := gameService.Turn(ctx, info.ID, 2)
//
// Sessions:
//
// Sessions are identified by unique 4-character IDs and each hosts exactly one
// game. A session may be created deferred, in which case every action except
// init fails until the game is initialized.
package service
