package mcp

import (
	"context"
	"strconv"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
)

// mockChatService records calls and returns a canned reply.
type mockChatService struct {
	reply *driving.Reply
	err   error

	calls []string
	convs []string
}

func (m *mockChatService) record(conv, call string) (*driving.Reply, error) {
	m.calls = append(m.calls, call)
	m.convs = append(m.convs, conv)
	return m.reply, m.err
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

// mockIndexService serves a fixed catalog two definitions per page.
type mockIndexService struct {
	defs map[domain.Language][]domain.IndexDefinition
	err  error
}

func (m *mockIndexService) Languages() []domain.Language {
	return []domain.Language{domain.LanguageArabic, domain.LanguageEnglish}
}

func (m *mockIndexService) List(lang domain.Language, page int) (domain.Page[domain.IndexDefinition], error) {
	if m.err != nil {
		return domain.Page[domain.IndexDefinition]{}, m.err
	}
	return domain.Paginate(m.defs[lang], page, 2), nil
}

func (m *mockIndexService) Get(lang domain.Language, key string) (*domain.IndexDefinition, error) {
	for _, d := range m.defs[lang] {
		if d.Key == key {
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockIndexService) Find(lang domain.Language, key string) (*domain.IndexDefinition, domain.Language, error) {
	d, err := m.Get(lang, key)
	return d, lang, err
}
