package session

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/questline/internal/id"
)

// Table is a concurrency-safe session registry keyed by user id.
type Table struct {
	mu       sync.Mutex
	sessions map[string]*Session

	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewTable creates a Table with default dependencies.
func NewTable() *Table {
	return &Table{
		sessions:    make(map[string]*Session),
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// GetOrCreate returns the session for a user, creating an idle one on
// first contact. LastActivity is bumped on every call.
func (t *Table) GetOrCreate(userID string) *Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[userID]
	if !ok {
		now := t.clock().UTC()
		sessionID, err := t.idGenerator()
		if err != nil {
			// ID generation only fails when the entropy source does;
			// fall back to the user id so the session still works.
			sessionID = userID
		}
		s = &Session{
			ID:        sessionID,
			UserID:    userID,
			State:     StateIdle,
			CreatedAt: now,
		}
		t.sessions[userID] = s
	}
	s.LastActivity = t.clock().UTC()
	return s
}

// Reset returns the user's session to idle and drops the feature
// payload. This is the only way a feature releases the conversation,
// so starting any feature must reset first.
func (t *Table) Reset(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[userID]
	if !ok {
		return
	}
	s.State = StateIdle
	s.Payload = nil
	s.LastActivity = t.clock().UTC()
}

// SetState resets the session and then activates the given state with
// its payload, preserving the exactly-one-active-feature invariant.
func (t *Table) SetState(userID string, state State, payload any) *Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[userID]
	if !ok {
		now := t.clock().UTC()
		sessionID, err := t.idGenerator()
		if err != nil {
			sessionID = userID
		}
		s = &Session{ID: sessionID, UserID: userID, CreatedAt: now}
		t.sessions[userID] = s
	}
	s.State = state
	s.Payload = payload
	s.LastActivity = t.clock().UTC()
	return s
}

// Sweep evicts sessions idle longer than ttl and reports how many were
// removed.
func (t *Table) Sweep(ttl time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.clock().UTC().Add(-ttl)
	removed := 0
	for userID, s := range t.sessions {
		if s.LastActivity.Before(cutoff) {
			delete(t.sessions, userID)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is done.
func (t *Table) StartSweeper(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.Sweep(ttl)
			}
		}
	}()
}

// Len reports the number of live sessions.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
