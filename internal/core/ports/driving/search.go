package driving

import (
	"context"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

// SearchService provides ranked retrieval to external actors.
type SearchService interface {
	// Search normalizes the raw query and returns ranked entries.
	// An empty result is not an error.
	Search(ctx context.Context, rawQuery string) ([]domain.ScoredEntry, error)

	// SearchTopic returns ranked entries for a topical index definition.
	SearchTopic(ctx context.Context, def domain.IndexDefinition) ([]domain.ScoredEntry, error)

	// Suggest returns relaxed fallback matches for a raw query.
	// An empty result is not an error.
	Suggest(ctx context.Context, rawQuery string) ([]domain.Suggestion, error)
}
