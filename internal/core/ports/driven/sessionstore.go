package driven

import (
	"context"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

// SessionStore persists search sessions keyed by conversation ID.
type SessionStore interface {
	// Get retrieves a session. Returns domain.ErrNotFound if none exists.
	Get(ctx context.Context, conversationID string) (*domain.SearchSession, error)

	// Save stores or replaces a session.
	Save(ctx context.Context, session *domain.SearchSession) error

	// Delete removes a session.
	Delete(ctx context.Context, conversationID string) error
}
