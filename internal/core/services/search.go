package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driven"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
	"github.com/maktaba-labs/maktaba-cli/internal/core/query"
	"github.com/maktaba-labs/maktaba-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs ranked retrieval and the suggestion fallback against
// the catalog store.
type SearchService struct {
	store    driven.CatalogStore
	settings domain.SearchSettings
}

// NewSearchService creates a new search service.
// Zero-valued settings fields fall back to the domain defaults.
func NewSearchService(store driven.CatalogStore, settings domain.SearchSettings) *SearchService {
	return &SearchService{
		store:    store,
		settings: withSearchDefaults(settings),
	}
}

// Search normalizes rawQuery and returns ranked entries.
// A query matching nothing returns an empty slice and no error.
func (s *SearchService) Search(ctx context.Context, rawQuery string) ([]domain.ScoredEntry, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", rawQuery)

	if s.store == nil {
		return nil, fmt.Errorf("search: %w", domain.ErrStoreUnavailable)
	}

	normalized := query.SearchNormalizer.Normalize(rawQuery)
	if normalized == "" {
		logger.Debug("Empty query after normalization, returning no results")
		return []domain.ScoredEntry{}, nil
	}
	keywords := query.KeywordExtractor.Extract(normalized)
	logger.Debug("Normalized: %q, keywords: %v", normalized, keywords)

	return s.retrieve(ctx, query.Build(normalized, keywords))
}

// SearchTopic returns ranked entries for a topical index.
// Keywords are normalized with the index normalizer and OR-joined.
func (s *SearchService) SearchTopic(ctx context.Context, def domain.IndexDefinition) ([]domain.ScoredEntry, error) {
	logger.Section("Topic Search")
	logger.Debug("Topic: %s (%d keywords)", def.Key, len(def.Keywords))

	if s.store == nil {
		return nil, fmt.Errorf("search topic: %w", domain.ErrStoreUnavailable)
	}

	keywords := make([]string, 0, len(def.Keywords))
	for _, kw := range def.Keywords {
		if n := query.IndexNormalizer.Normalize(kw); n != "" {
			keywords = append(keywords, n)
		}
	}
	mq := query.BuildTopic(keywords)
	if mq.IsEmpty() {
		logger.Debug("Topic has no usable keywords")
		return []domain.ScoredEntry{}, nil
	}

	return s.retrieve(ctx, mq)
}

// Suggest returns relaxed fallback matches built from stemmed keywords.
// A query with no usable stems returns an empty slice and no error.
func (s *SearchService) Suggest(ctx context.Context, rawQuery string) ([]domain.Suggestion, error) {
	logger.Section("Suggestion Fallback")

	if s.store == nil {
		return nil, fmt.Errorf("suggest: %w", domain.ErrStoreUnavailable)
	}

	stems := query.SuggestionExtractor.Extract(query.SearchNormalizer.Normalize(rawQuery))
	logger.Debug("Stems: %v", stems)
	expr := query.BuildOr(stems)
	if expr == "" {
		return []domain.Suggestion{}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	entries, err := s.store.MatchTerms(ctx, expr, s.settings.SuggestionLimit)
	if err != nil {
		return nil, storeError("suggest", err)
	}

	suggestions := make([]domain.Suggestion, 0, len(entries))
	for _, e := range entries {
		if !e.Valid() {
			logger.Debug("Skipping incomplete entry %d", e.ID)
			continue
		}
		suggestions = append(suggestions, domain.NewSuggestion(e))
	}
	logger.Debug("Suggestions: %d", len(suggestions))
	return suggestions, nil
}

// retrieve runs the AND pass and, when it finds nothing, the OR pass.
func (s *SearchService) retrieve(ctx context.Context, mq domain.MatchQuery) ([]domain.ScoredEntry, error) {
	results, err := s.runPass(ctx, mq)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		logger.Info("AND pass: %d results", len(results))
		return results, nil
	}

	if mq.Or == "" || mq.Or == mq.And {
		logger.Debug("No results and nothing to loosen")
		return results, nil
	}

	logger.Info("AND pass empty, loosening to OR")
	results, err = s.runPass(ctx, mq.Loosened())
	if err != nil {
		return nil, err
	}
	logger.Info("OR pass: %d results", len(results))
	return results, nil
}

func (s *SearchService) runPass(ctx context.Context, mq domain.MatchQuery) ([]domain.ScoredEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	results, err := s.store.Search(ctx, domain.StoreQuery{
		Expression:          mq.And,
		Substring:           mq.Substring,
		SimilarityKey:       mq.Similarity,
		SimilarityThreshold: s.settings.SimilarityThreshold,
		CandidateLimit:      s.settings.CandidateLimit,
		Limit:               s.settings.ResultLimit,
	})
	if err != nil {
		return nil, storeError("search", err)
	}
	if results == nil {
		results = []domain.ScoredEntry{}
	}
	return results, nil
}

func (s *SearchService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.settings.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.settings.Timeout)
}

// storeError logs a store failure and maps it to a domain error.
// Timeouts count as an unavailable store.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, domain.ErrStoreUnavailable):
		logger.Error("%s: catalog store unavailable: %v", op, err)
		return fmt.Errorf("%s: %w", op, domain.ErrStoreUnavailable)
	default:
		logger.Error("%s: %v", op, err)
		return fmt.Errorf("%s: %w", op, domain.ErrStoreQueryFailed)
	}
}

func withSearchDefaults(s domain.SearchSettings) domain.SearchSettings {
	d := domain.DefaultAppSettings().Search
	if s.PageSize <= 0 {
		s.PageSize = d.PageSize
	}
	if s.ResultLimit <= 0 {
		s.ResultLimit = d.ResultLimit
	}
	if s.CandidateLimit <= 0 {
		s.CandidateLimit = d.CandidateLimit
	}
	if s.SimilarityThreshold <= 0 {
		s.SimilarityThreshold = d.SimilarityThreshold
	}
	if s.SuggestionLimit <= 0 {
		s.SuggestionLimit = d.SuggestionLimit
	}
	if s.Timeout <= 0 {
		s.Timeout = d.Timeout
	}
	return s
}
