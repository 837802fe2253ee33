package driving

import (
	"context"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

// CatalogService manages catalog entries for administrators and ingestion.
type CatalogService interface {
	// Add registers a stored file. The search text is derived from the name.
	Add(ctx context.Context, fileReference, fileName string) (*domain.CatalogEntry, error)

	// Get retrieves an entry by ID.
	Get(ctx context.Context, id int64) (*domain.CatalogEntry, error)

	// GetByReference retrieves an entry by file reference.
	GetByReference(ctx context.Context, fileReference string) (*domain.CatalogEntry, error)

	// List returns a page of entries, newest first.
	List(ctx context.Context, page, pageSize int) (domain.Page[domain.CatalogEntry], error)

	// Remove deletes an entry.
	Remove(ctx context.Context, id int64) error
}
