// Package bbolt persists conversation sessions in a bbolt file.
// Sessions are JSON values in one bucket keyed by conversation id. Writes
// are transactional, so a crash mid-write keeps the previous session.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driven"
)

// SessionsFile is the default file name inside the data directory.
const SessionsFile = "sessions.db"

var bucketSessions = []byte("sessions")

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore implements driven.SessionStore backed by bbolt.
type SessionStore struct {
	db *bolt.DB
}

// NewSessionStore opens (or creates) the session file at path.
func NewSessionStore(path string) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessions)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sessions bucket: %w", err)
	}
	return &SessionStore{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

// Get retrieves a session by conversation ID.
func (s *SessionStore) Get(_ context.Context, conversationID string) (*domain.SearchSession, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSessions).Get([]byte(conversationID)); v != nil {
			// v is only valid inside the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bbolt view: %w", err)
	}
	if data == nil {
		return nil, domain.ErrNotFound
	}

	var sess domain.SearchSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", conversationID, err)
	}
	return &sess, nil
}

// Save stores or replaces a session.
func (s *SessionStore) Save(_ context.Context, session *domain.SearchSession) error {
	if session == nil || session.ConversationID == "" {
		return domain.ErrInvalidInput
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).Put([]byte(session.ConversationID), data)
	})
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SessionStore) Delete(_ context.Context, conversationID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).Delete([]byte(conversationID))
	})
}

// Prune removes sessions last updated before cutoff and returns how many
// were removed.
func (s *SessionStore) Prune(_ context.Context, cutoff time.Time) (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var head struct {
				UpdatedAt time.Time `json:"updated_at"`
			}
			if err := json.Unmarshal(v, &head); err != nil || head.UpdatedAt.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return removed, nil
}
