package driving

import "github.com/maktaba-labs/maktaba-cli/internal/core/domain"

// IndexService exposes the static topical index catalogs.
type IndexService interface {
	// Languages returns languages that have a catalog.
	Languages() []domain.Language

	// List returns page n of a language catalog (fixed page size).
	List(lang domain.Language, page int) (domain.Page[domain.IndexDefinition], error)

	// Get returns one definition by key.
	Get(lang domain.Language, key string) (*domain.IndexDefinition, error)

	// Find looks a key up in every catalog, preferring lang.
	Find(lang domain.Language, key string) (*domain.IndexDefinition, domain.Language, error)
}
