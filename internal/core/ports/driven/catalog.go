package driven

import (
	"context"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

// CatalogStore persists and searches catalog entries.
// Backed by SQLite with FTS5 and a trigram similarity function.
type CatalogStore interface {
	// Add stores a new entry with its normalized search text.
	// On success entry.ID and entry.UploadedAt are set.
	// Returns domain.ErrAlreadyExists for a duplicate file reference.
	Add(ctx context.Context, entry *domain.CatalogEntry, searchText string) error

	// Get retrieves an entry by ID.
	Get(ctx context.Context, id int64) (*domain.CatalogEntry, error)

	// GetByReference retrieves an entry by file reference.
	GetByReference(ctx context.Context, fileReference string) (*domain.CatalogEntry, error)

	// List returns entries ordered by upload time, newest first.
	List(ctx context.Context, offset, limit int) ([]domain.CatalogEntry, error)

	// Count returns the number of entries.
	Count(ctx context.Context) (int, error)

	// Delete removes an entry.
	Delete(ctx context.Context, id int64) error

	// Search runs one match-then-rank pass. Ordering is exact match desc,
	// rank desc, similarity desc.
	Search(ctx context.Context, q domain.StoreQuery) ([]domain.ScoredEntry, error)

	// MatchTerms runs a single full-text query ordered by rank desc.
	MatchTerms(ctx context.Context, expression string, limit int) ([]domain.CatalogEntry, error)
}
