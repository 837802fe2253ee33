package services

import (
	"context"
	"sync"
	"time"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driven"
)

// mockCatalogStore answers Search by expression and records every call.
type mockCatalogStore struct {
	mu sync.Mutex

	entries  map[int64]domain.CatalogEntry
	byExpr   map[string][]domain.ScoredEntry
	matches  []domain.CatalogEntry
	err      error
	delay    time.Duration
	queries  []domain.StoreQuery
	matchLog []string
	nextID   int64
}

func newMockCatalogStore() *mockCatalogStore {
	return &mockCatalogStore{
		entries: make(map[int64]domain.CatalogEntry),
		byExpr:  make(map[string][]domain.ScoredEntry),
	}
}

var _ driven.CatalogStore = (*mockCatalogStore)(nil)

func (m *mockCatalogStore) Add(_ context.Context, entry *domain.CatalogEntry, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, e := range m.entries {
		if e.FileReference == entry.FileReference {
			return domain.ErrAlreadyExists
		}
	}
	m.nextID++
	entry.ID = m.nextID
	entry.UploadedAt = time.Unix(1700000000+m.nextID, 0).UTC()
	m.entries[entry.ID] = *entry
	return nil
}

func (m *mockCatalogStore) Get(_ context.Context, id int64) (*domain.CatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (m *mockCatalogStore) GetByReference(_ context.Context, ref string) (*domain.CatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.FileReference == ref {
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogStore) List(_ context.Context, offset, limit int) ([]domain.CatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.CatalogEntry
	for id := m.nextID; id > 0; id-- {
		if e, ok := m.entries[id]; ok {
			out = append(out, e)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockCatalogStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return len(m.entries), nil
}

func (m *mockCatalogStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *mockCatalogStore) Search(ctx context.Context, q domain.StoreQuery) ([]domain.ScoredEntry, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	err, delay, res := m.err, m.delay, m.byExpr[q.Expression]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (m *mockCatalogStore) MatchTerms(_ context.Context, expr string, limit int) ([]domain.CatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchLog = append(m.matchLog, expr)
	if m.err != nil {
		return nil, m.err
	}
	out := m.matches
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockCatalogStore) searchCalls() []domain.StoreQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.StoreQuery(nil), m.queries...)
}

// mockIndexSource returns fixed catalogs.
type mockIndexSource struct {
	catalogs map[domain.Language][]domain.IndexDefinition
	err      error
}

func (m *mockIndexSource) Load(_ context.Context) (map[domain.Language][]domain.IndexDefinition, error) {
	return m.catalogs, m.err
}

func scored(entries ...domain.CatalogEntry) []domain.ScoredEntry {
	out := make([]domain.ScoredEntry, len(entries))
	for i, e := range entries {
		out[i] = domain.ScoredEntry{Entry: e, Rank: float64(len(entries) - i)}
	}
	return out
}

func entry(id int64, name string) domain.CatalogEntry {
	return domain.CatalogEntry{
		ID:            id,
		FileReference: "ref-" + name,
		FileName:      name,
		UploadedAt:    time.Unix(1700000000, 0).UTC(),
	}
}

func testIndexCatalogs() map[domain.Language][]domain.IndexDefinition {
	ar := make([]domain.IndexDefinition, 0, 12)
	ar = append(ar,
		domain.IndexDefinition{DisplayName: "روايات", Key: "novels", Keywords: []string{"رواية", "قصة"}},
		domain.IndexDefinition{DisplayName: "فيزياء", Key: "physics", Keywords: []string{"فيزياء"}},
	)
	for i := 0; i < 10; i++ {
		ar = append(ar, domain.IndexDefinition{
			DisplayName: "موضوع",
			Key:         "topic-" + string(rune('a'+i)),
			Keywords:    []string{"موضوع"},
		})
	}
	return map[domain.Language][]domain.IndexDefinition{
		domain.LanguageArabic: ar,
		domain.LanguageEnglish: {
			{DisplayName: "History", Key: "history", Keywords: []string{"history"}},
		},
	}
}
