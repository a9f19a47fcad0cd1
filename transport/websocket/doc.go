// Package websocket provides WebSocket transport for the Pebbles Game.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a pair of
// goroutines that read keepalives and write queued messages.
//
// Message Protocol:
//
// Clients connect to /ws?session=<id> and only listen. Every outgoing frame
// is one JSON Message:
//   - event "response": one engine response (Won or CounterTurn) in Data,
//     tagged with the message id of the request that produced it
//   - event "state_update": the session's GameState after a request
//   - event "session": session lifecycle notices such as deletion
//
// Responses for a request are sent in delivery order, followed by the state
// update.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Broadcasting never blocks the caller; when the hub's queue is full the
// message is dropped and logged. A client whose own buffer is full is
// disconnected.
package websocket
