package driven

import (
	"context"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

// IndexSource loads the static topical index catalogs, one per language.
type IndexSource interface {
	Load(ctx context.Context) (map[domain.Language][]domain.IndexDefinition, error)
}
