package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driven"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService serves the topical index catalogs.
// Catalogs are only replaced as a whole, by Reload.
type IndexService struct {
	source driven.IndexSource

	mu       sync.RWMutex
	catalogs map[domain.Language][]domain.IndexDefinition
}

// NewIndexService loads and validates the catalogs from source.
func NewIndexService(ctx context.Context, source driven.IndexSource) (*IndexService, error) {
	catalogs, err := loadCatalogs(ctx, source)
	if err != nil {
		return nil, err
	}
	return &IndexService{source: source, catalogs: catalogs}, nil
}

// Reload reads the source again. On failure the current catalogs stay.
func (s *IndexService) Reload(ctx context.Context) error {
	catalogs, err := loadCatalogs(ctx, s.source)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.catalogs = catalogs
	s.mu.Unlock()
	return nil
}

func loadCatalogs(ctx context.Context, source driven.IndexSource) (map[domain.Language][]domain.IndexDefinition, error) {
	catalogs, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load indexes: %w", err)
	}
	if err := validateCatalogs(catalogs); err != nil {
		return nil, err
	}
	return catalogs, nil
}

// catalog returns the definitions of lang. The slice is never mutated.
func (s *IndexService) catalog(lang domain.Language) []domain.IndexDefinition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalogs[lang]
}

// Languages returns the languages that have a catalog, in display order.
func (s *IndexService) Languages() []domain.Language {
	var langs []domain.Language
	for _, l := range domain.AllLanguages() {
		if len(s.catalog(l)) > 0 {
			langs = append(langs, l)
		}
	}
	return langs
}

// List returns page n of the catalog for lang.
func (s *IndexService) List(lang domain.Language, page int) (domain.Page[domain.IndexDefinition], error) {
	if !lang.IsValid() {
		return domain.Page[domain.IndexDefinition]{}, fmt.Errorf("%w: language %q", domain.ErrInvalidInput, lang)
	}
	defs := s.catalog(lang)
	if page != 0 && !domain.ValidPage(len(defs), domain.IndexPageSize, page) {
		return domain.Page[domain.IndexDefinition]{}, domain.ErrInvalidNavigation
	}
	return domain.Paginate(defs, page, domain.IndexPageSize), nil
}

// Get returns the definition with key in the catalog for lang.
func (s *IndexService) Get(lang domain.Language, key string) (*domain.IndexDefinition, error) {
	key = normalizeKey(key)
	defs := s.catalog(lang)
	for i := range defs {
		if defs[i].Key == key {
			def := defs[i]
			return &def, nil
		}
	}
	return nil, fmt.Errorf("index %q (%s): %w", key, lang, domain.ErrNotFound)
}

// Find looks key up in lang first, then in the other catalogs.
func (s *IndexService) Find(lang domain.Language, key string) (*domain.IndexDefinition, domain.Language, error) {
	if def, err := s.Get(lang, key); err == nil {
		return def, lang, nil
	}
	for _, l := range domain.AllLanguages() {
		if l == lang {
			continue
		}
		if def, err := s.Get(l, key); err == nil {
			return def, l, nil
		}
	}
	return nil, lang, fmt.Errorf("index %q: %w", normalizeKey(key), domain.ErrNotFound)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func validateCatalogs(catalogs map[domain.Language][]domain.IndexDefinition) error {
	for lang, defs := range catalogs {
		if !lang.IsValid() {
			return fmt.Errorf("%w: unknown index language %q", domain.ErrInvalidInput, lang)
		}
		seen := make(map[string]struct{}, len(defs))
		for i := range defs {
			defs[i].Key = normalizeKey(defs[i].Key)
			def := defs[i]
			if def.Key == "" {
				return fmt.Errorf("%w: index %d (%s) has no key", domain.ErrInvalidInput, i, lang)
			}
			if _, dup := seen[def.Key]; dup {
				return fmt.Errorf("%w: duplicate index key %q (%s)", domain.ErrInvalidInput, def.Key, lang)
			}
			seen[def.Key] = struct{}{}
			if len(def.Keywords) == 0 {
				return fmt.Errorf("%w: index %q (%s) has no keywords", domain.ErrInvalidInput, def.Key, lang)
			}
			if def.DisplayName == "" {
				defs[i].DisplayName = def.Key
			}
		}
	}
	return nil
}
