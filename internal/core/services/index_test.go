package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

func newTestIndexService(t *testing.T) *IndexService {
	t.Helper()
	svc, err := NewIndexService(context.Background(), &mockIndexSource{catalogs: testIndexCatalogs()})
	require.NoError(t, err)
	return svc
}

func TestIndexService_Languages(t *testing.T) {
	svc := newTestIndexService(t)
	assert.Equal(t, []domain.Language{domain.LanguageArabic, domain.LanguageEnglish}, svc.Languages())
}

func TestIndexService_List(t *testing.T) {
	svc := newTestIndexService(t)

	first, err := svc.List(domain.LanguageArabic, 0)
	require.NoError(t, err)
	assert.Len(t, first.Items, domain.IndexPageSize)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.HasNext)

	second, err := svc.List(domain.LanguageArabic, 1)
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)
	assert.False(t, second.HasNext)

	_, err = svc.List(domain.LanguageArabic, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidNavigation)

	_, err = svc.List(domain.Language("fr"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexService_GetAndFind(t *testing.T) {
	svc := newTestIndexService(t)

	def, err := svc.Get(domain.LanguageArabic, " Novels ")
	require.NoError(t, err)
	assert.Equal(t, "روايات", def.DisplayName)

	_, err = svc.Get(domain.LanguageArabic, "history")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	def, lang, err := svc.Find(domain.LanguageArabic, "history")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEnglish, lang)
	assert.Equal(t, "History", def.DisplayName)

	_, _, err = svc.Find(domain.LanguageEnglish, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewIndexService_Validation(t *testing.T) {
	tests := []struct {
		name     string
		catalogs map[domain.Language][]domain.IndexDefinition
	}{
		{"unknown language", map[domain.Language][]domain.IndexDefinition{
			"fr": {{Key: "a", Keywords: []string{"a"}}},
		}},
		{"empty key", map[domain.Language][]domain.IndexDefinition{
			domain.LanguageArabic: {{Key: " ", Keywords: []string{"a"}}},
		}},
		{"duplicate key", map[domain.Language][]domain.IndexDefinition{
			domain.LanguageArabic: {
				{Key: "a", Keywords: []string{"a"}},
				{Key: "A", Keywords: []string{"b"}},
			},
		}},
		{"no keywords", map[domain.Language][]domain.IndexDefinition{
			domain.LanguageEnglish: {{Key: "a"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIndexService(context.Background(), &mockIndexSource{catalogs: tt.catalogs})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestNewIndexService_LoadError(t *testing.T) {
	_, err := NewIndexService(context.Background(), &mockIndexSource{err: errors.New("bad toml")})
	assert.ErrorContains(t, err, "bad toml")
}

func TestNewIndexService_DisplayNameDefaultsToKey(t *testing.T) {
	svc, err := NewIndexService(context.Background(), &mockIndexSource{catalogs: map[domain.Language][]domain.IndexDefinition{
		domain.LanguageEnglish: {{Key: "poetry", Keywords: []string{"poem"}}},
	}})
	require.NoError(t, err)

	def, err := svc.Get(domain.LanguageEnglish, "poetry")
	require.NoError(t, err)
	assert.Equal(t, "poetry", def.DisplayName)
	assert.Equal(t, []domain.Language{domain.LanguageEnglish}, svc.Languages())
}

func TestIndexService_Reload(t *testing.T) {
	source := &mockIndexSource{catalogs: testIndexCatalogs()}
	svc, err := NewIndexService(context.Background(), source)
	require.NoError(t, err)

	source.catalogs = map[domain.Language][]domain.IndexDefinition{
		domain.LanguageEnglish: {{Key: "Chess", DisplayName: "Chess", Keywords: []string{"chess"}}},
	}
	require.NoError(t, svc.Reload(context.Background()))

	assert.Equal(t, []domain.Language{domain.LanguageEnglish}, svc.Languages())
	def, err := svc.Get(domain.LanguageEnglish, "chess")
	require.NoError(t, err)
	assert.Equal(t, "Chess", def.DisplayName)
}

func TestIndexService_ReloadKeepsCatalogsOnError(t *testing.T) {
	source := &mockIndexSource{catalogs: testIndexCatalogs()}
	svc, err := NewIndexService(context.Background(), source)
	require.NoError(t, err)
	before := svc.Languages()

	source.catalogs = map[domain.Language][]domain.IndexDefinition{
		domain.LanguageEnglish: {{Key: "", Keywords: []string{"x"}}},
	}
	assert.ErrorIs(t, svc.Reload(context.Background()), domain.ErrInvalidInput)

	source.catalogs, source.err = nil, errors.New("unreadable")
	assert.ErrorContains(t, svc.Reload(context.Background()), "unreadable")

	assert.Equal(t, before, svc.Languages())
}
