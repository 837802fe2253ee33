package memory

import (
	"context"
	"sync"
	"time"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// DefaultMaxSessions bounds the sessions kept by NewSessionStore.
const DefaultMaxSessions = 10000

// SessionStore is an in-memory implementation of driven.SessionStore.
// Sessions are copied on the way in and out so callers never share slices
// with the store. When full, saving a new conversation evicts the session
// updated longest ago.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.SearchSession
	capacity int
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return NewBoundedSessionStore(DefaultMaxSessions)
}

// NewBoundedSessionStore creates a store holding at most capacity sessions.
// A non-positive capacity uses DefaultMaxSessions.
func NewBoundedSessionStore(capacity int) *SessionStore {
	if capacity <= 0 {
		capacity = DefaultMaxSessions
	}
	return &SessionStore{
		sessions: make(map[string]domain.SearchSession),
		capacity: capacity,
	}
}

// Get retrieves a session by conversation ID.
func (s *SessionStore) Get(_ context.Context, conversationID string) (*domain.SearchSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[conversationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneSession(sess)
	return &out, nil
}

// Save stores or replaces a session.
func (s *SessionStore) Save(_ context.Context, session *domain.SearchSession) error {
	if session == nil || session.ConversationID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ConversationID]; !ok && len(s.sessions) >= s.capacity {
		s.evictOldest()
	}
	s.sessions[session.ConversationID] = cloneSession(*session)
	return nil
}

// evictOldest drops the least recently updated session. Callers hold mu.
func (s *SessionStore) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
		found    bool
	)
	for id, sess := range s.sessions {
		if !found || sess.UpdatedAt.Before(oldest) {
			oldestID, oldest, found = id, sess.UpdatedAt, true
		}
	}
	if found {
		delete(s.sessions, oldestID)
	}
}

// Delete removes a session.
func (s *SessionStore) Delete(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, conversationID)
	return nil
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func cloneSession(s domain.SearchSession) domain.SearchSession {
	s.Results = append([]domain.CatalogEntry(nil), s.Results...)
	s.Suggestions = append([]domain.Suggestion(nil), s.Suggestions...)
	return s
}
