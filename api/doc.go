// Package api provides HTTP REST API handlers for the Pebbles Game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session from a preset or explicit settings
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/actions - Generic action envelope
//   - POST /api/sessions/{id}/init - Start the game: {"pebbles_count", "max_pebbles_per_turn", "difficulty"}
//   - POST /api/sessions/{id}/turn - Remove pebbles: {"pebbles": n}
//   - POST /api/sessions/{id}/give-up - Forfeit to the program
//   - POST /api/sessions/{id}/restart - Replace the game, same body as init
//
// Presets:
//   - GET /api/presets - List presets
//   - POST /api/presets - Save a preset
//   - GET /api/presets/{name} - Get a preset
//
// Other:
//   - GET /health - Liveness
//   - GET /ws?session={id} - WebSocket stream of responses and state updates
//
// Actions are sent as POST with JSON body:
//
//	{
//	  "type": "init|turn|give_up|restart",
//	  "pebbles": 2,
//	  "pebbles_count": 15,
//	  "max_pebbles_per_turn": 3,
//	  "difficulty": "easy|hard"
//	}
//
// Only the fields relevant to the type are read. A successful action returns
// the message id, the responses delivered while handling it and the
// resulting state.
//
// Error Handling:
//
// Errors are returned as JSON:
//
//	{"error": "turn: invalid input: must remove between 1 and 3 pebbles, got 5"}
//
// Invalid input answers 400, an unknown session or preset 404, acting on an
// uninitialized or finished game 409, and randomness or delivery failures 500.
package api
