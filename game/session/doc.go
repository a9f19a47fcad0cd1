// Package session provides session management for the Pebbles Game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session cleanup and expiration
//
// Each session hosts exactly one game engine. A new session's game is
// uninitialized; the service layer starts it from a preset or an explicit
// init action.
//
// Session Identifiers:
//
// Generated IDs are 4 lowercase hex characters. Lookups ignore case, so
// "AB12" and "ab12" name the same session.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
// Cleanup:
//
// Sessions are held in memory only. CleanupExpiredSessions drops sessions
// that have not been accessed within the given age.
package session
