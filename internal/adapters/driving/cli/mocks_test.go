package cli

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
)

type mockSearchService struct {
	results     []domain.ScoredEntry
	suggestions []domain.Suggestion
	err         error

	topics []string
}

func (m *mockSearchService) Search(_ context.Context, _ string) ([]domain.ScoredEntry, error) {
	return m.results, m.err
}

func (m *mockSearchService) SearchTopic(_ context.Context, def domain.IndexDefinition) ([]domain.ScoredEntry, error) {
	m.topics = append(m.topics, def.Key)
	return m.results, m.err
}

func (m *mockSearchService) Suggest(_ context.Context, _ string) ([]domain.Suggestion, error) {
	return m.suggestions, m.err
}

// mockChatService answers every line with a notice naming the call.
type mockChatService struct {
	err   error
	calls []string
	convs []string
}

func (m *mockChatService) record(conv, call string) (*driving.Reply, error) {
	m.calls = append(m.calls, call)
	m.convs = append(m.convs, conv)
	if m.err != nil {
		return nil, m.err
	}
	return &driving.Reply{Kind: driving.ReplyNotice, Category: domain.CategoryOK, Message: "did " + call}, nil
}

func (m *mockChatService) Query(_ context.Context, conv, text string) (*driving.Reply, error) {
	return m.record(conv, "query:"+text)
}

func (m *mockChatService) Handle(_ context.Context, conv, event string) (*driving.Reply, error) {
	return m.record(conv, event)
}

func (m *mockChatService) Next(_ context.Context, conv string) (*driving.Reply, error) {
	return m.record(conv, "next")
}

func (m *mockChatService) Prev(_ context.Context, conv string) (*driving.Reply, error) {
	return m.record(conv, "prev")
}

func (m *mockChatService) Select(_ context.Context, conv, ref string) (*driving.Reply, error) {
	return m.record(conv, "select:"+ref)
}

func (m *mockChatService) BrowseIndex(_ context.Context, conv, key string) (*driving.Reply, error) {
	return m.record(conv, "index:"+key)
}

func (m *mockChatService) IndexPage(_ context.Context, conv string, page int) (*driving.Reply, error) {
	return m.record(conv, "index_page:"+strconv.Itoa(page))
}

func (m *mockChatService) SetLanguage(_ context.Context, conv string, lang domain.Language) (*driving.Reply, error) {
	return m.record(conv, "lang:"+lang.String())
}

type mockIndexService struct {
	defs map[domain.Language][]domain.IndexDefinition
}

func (m *mockIndexService) Languages() []domain.Language {
	return []domain.Language{domain.LanguageArabic, domain.LanguageEnglish}
}

func (m *mockIndexService) List(lang domain.Language, page int) (domain.Page[domain.IndexDefinition], error) {
	defs := m.defs[lang]
	if page != 0 && !domain.ValidPage(len(defs), domain.IndexPageSize, page) {
		return domain.Page[domain.IndexDefinition]{}, domain.ErrInvalidNavigation
	}
	return domain.Paginate(defs, page, domain.IndexPageSize), nil
}

func (m *mockIndexService) Get(lang domain.Language, key string) (*domain.IndexDefinition, error) {
	for _, d := range m.defs[lang] {
		if d.Key == key {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("index %q: %w", key, domain.ErrNotFound)
}

func (m *mockIndexService) Find(lang domain.Language, key string) (*domain.IndexDefinition, domain.Language, error) {
	for _, l := range []domain.Language{lang, domain.LanguageArabic, domain.LanguageEnglish} {
		if d, err := m.Get(l, key); err == nil {
			return d, l, nil
		}
	}
	return nil, lang, fmt.Errorf("index %q: %w", key, domain.ErrNotFound)
}

type mockCatalogService struct {
	entries []domain.CatalogEntry
	err     error

	removed []int64
}

func (m *mockCatalogService) Add(_ context.Context, ref, name string) (*domain.CatalogEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if ref == "" {
		ref = "generated-ref"
	}
	e := domain.CatalogEntry{ID: int64(len(m.entries) + 1), FileReference: ref, FileName: name, UploadedAt: time.Now()}
	m.entries = append(m.entries, e)
	return &e, nil
}

func (m *mockCatalogService) Get(_ context.Context, id int64) (*domain.CatalogEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, e := range m.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogService) GetByReference(_ context.Context, ref string) (*domain.CatalogEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, e := range m.entries {
		if e.FileReference == ref {
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogService) List(_ context.Context, page, size int) (domain.Page[domain.CatalogEntry], error) {
	if m.err != nil {
		return domain.Page[domain.CatalogEntry]{}, m.err
	}
	return domain.Paginate(m.entries, page, size), nil
}

func (m *mockCatalogService) Remove(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, id)
	return nil
}

type mockSettingsService struct {
	settings domain.AppSettings
	err      error

	set map[string]string
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return m.err
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	if m.set == nil {
		m.set = map[string]string{}
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.err
}

// testServices is the set of mocks installed by setupTestServices.
type testServices struct {
	search   *mockSearchService
	chat     *mockChatService
	index    *mockIndexService
	catalog  *mockCatalogService
	settings *mockSettingsService
}

// setupTestServices installs mocks and resets command flags. Everything
// is restored when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	ts := &testServices{
		search: &mockSearchService{},
		chat:   &mockChatService{},
		index: &mockIndexService{defs: map[domain.Language][]domain.IndexDefinition{
			domain.LanguageArabic: {
				{Key: "novels", DisplayName: "روايات", Keywords: []string{"رواي"}},
			},
			domain.LanguageEnglish: {
				{Key: "novels", DisplayName: "Novels", Keywords: []string{"novel"}},
				{Key: "poetry", DisplayName: "Poetry", Keywords: []string{"poem"}},
			},
		}},
		catalog:  &mockCatalogService{},
		settings: &mockSettingsService{settings: domain.DefaultAppSettings()},
	}

	oldSearch, oldChat, oldIndex := searchService, chatService, indexService
	oldCatalog, oldSettings := catalogService, settingsService
	oldPageSize, oldLanguage, oldWatch := pageSize, defaultLanguage, watchIndexes

	searchService = ts.search
	chatService = ts.chat
	indexService = ts.index
	catalogService = ts.catalog
	settingsService = ts.settings
	pageSize = 2
	defaultLanguage = domain.LanguageEnglish
	watchIndexes = nil
	resetFlags()

	t.Cleanup(func() {
		searchService, chatService, indexService = oldSearch, oldChat, oldIndex
		catalogService, settingsService = oldCatalog, oldSettings
		pageSize, defaultLanguage, watchIndexes = oldPageSize, oldLanguage, oldWatch
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	return ts
}

// resetFlags restores flag variables, which cobra keeps between runs.
func resetFlags() {
	verboseFlag, homeFlag = false, ""
	searchPage, searchJSON = 1, false
	suggestJSON = false
	indexLang, indexPage = "", 1
	catalogRef, catalogPage, catalogPageSize, catalogJSON = "", 1, 20, false
	catalogGetRef = ""
	chatConversation, chatPlain = "", false
}

func entry(id int64, name string) domain.CatalogEntry {
	return domain.CatalogEntry{
		ID:            id,
		FileName:      name,
		FileReference: "ref-" + strconv.FormatInt(id, 10),
		UploadedAt:    time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}
}
