package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/pebblesgame/game/engine"
	"github.com/wricardo/mcp-training/pebblesgame/game/service"
)

// fixedRuntime always hands out zero, so the user moves first
func fixedRuntime() engine.Runtime {
	return engine.Runtime{
		Random:    engine.RandomFunc(func() (uint32, error) { return 0, nil }),
		Responses: engine.ResponderFunc(func(engine.Event) error { return nil }),
	}
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil {
			t.Fatal("Expected engine to be present")
		}
		if session.Engine.Initialized() {
			t.Error("Expected a fresh session to host an uninitialized game")
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character session ID, got %q", session.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session")
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION")
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid ID", func(t *testing.T) {
		_, err := manager.Create("a/b")
		if !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, _ := manager.Create("get-test")

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		if _, err := manager.Get("GET-TEST"); err != nil {
			t.Errorf("Expected case-insensitive lookup, got %v", err)
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("missing")
		if !errors.Is(err, service.ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	manager.Create("delete-me")

	if err := manager.Delete("DELETE-ME"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := manager.Get("delete-me"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected deleted session to be gone, got %v", err)
	}
	if err := manager.Delete("delete-me"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	manager.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, id := range []string{"c", "a", "b"} {
		if _, err := manager.Create(id); err != nil {
			t.Fatalf("Failed to create %s: %v", id, err)
		}
	}

	sessions := manager.List()
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}
	for i, want := range []string{"c", "a", "b"} {
		if sessions[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, sessions[i].ID)
		}
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()

	active, _ := manager.Create("active")
	expired, _ := manager.Create("expired")

	// Simulate expired session
	expired.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	active.LastAccessedAt = time.Now()

	deleted := manager.CleanupExpiredSessions(1 * time.Hour)
	if deleted != 1 {
		t.Errorf("Expected 1 session to be deleted, got %d", deleted)
	}
	if _, err := manager.Get("expired"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected expired session to be deleted")
	}
	if _, err := manager.Get("active"); err != nil {
		t.Error("Expected active session to still exist")
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return now }

	session, _ := manager.Create("access-test")
	originalTime := session.LastAccessedAt

	now = now.Add(time.Minute)
	if err := manager.UpdateLastAccessed("ACCESS-TEST"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}

	if !session.LastAccessedAt.After(originalTime) {
		t.Error("Expected LastAccessedAt to be updated")
	}
	if !session.CreatedAt.Equal(originalTime) {
		t.Error("Expected CreatedAt to stay put")
	}
	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			sessionID := fmt.Sprintf("conc-%d", id%50)
			if _, err := manager.Create(sessionID); err != nil && !errors.Is(err, ErrSessionAlreadyExists) {
				errs <- err
			}
			if _, err := manager.Get(sessionID); err != nil {
				errs <- err
			}
			manager.UpdateLastAccessed(sessionID)
			manager.List()
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	if manager.Count() != 50 {
		t.Errorf("Expected 50 sessions, got %d", manager.Count())
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager()

	session1, _ := manager.Create("iso-1")
	session2, _ := manager.Create("iso-2")

	params := engine.InitParams{PebblesCount: 10, MaxPebblesPerTurn: 3, Difficulty: engine.Easy}
	if err := session1.Engine.Initialize(fixedRuntime(), params); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := session2.Engine.Initialize(fixedRuntime(), params); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if err := session1.Engine.GiveUp(fixedRuntime()); err != nil {
		t.Fatalf("GiveUp failed: %v", err)
	}

	state2, err := session2.Engine.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if state2.Winner != nil {
		t.Error("Session 2 should not be affected by session 1 giving up")
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()
	generatedIDs := make(map[string]bool)

	for i := 0; i < 50; i++ {
		session, err := manager.Create("")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if generatedIDs[session.ID] {
			t.Errorf("Duplicate session ID generated: %s", session.ID)
		}
		generatedIDs[session.ID] = true

		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character ID, got %d", len(session.ID))
		}
		for _, r := range session.ID {
			if !('0' <= r && r <= '9' || 'a' <= r && r <= 'f') {
				t.Errorf("Expected hex ID, got %q", session.ID)
				break
			}
		}
	}
}
