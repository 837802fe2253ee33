package bbolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

func newTestStore(t *testing.T) (*SessionStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", SessionsFile)
	store, err := NewSessionStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func sampleSession(id string) *domain.SearchSession {
	sess := domain.NewSearchSession(id, domain.LanguageArabic)
	sess.Reset("الحرافيش", "", []domain.CatalogEntry{
		{ID: 1, FileReference: "ref-1", FileName: "رواية الحرافيش", UploadedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{ID: 2, FileReference: "ref-2", FileName: "ملحمة الحرافيش"},
	})
	sess.Suggestions = []domain.Suggestion{domain.NewSuggestion(sess.Results[0])}
	sess.CurrentPage = 0
	return sess
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	want := sampleSession("chat-1")
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, want.Query, got.Query)
	assert.Equal(t, want.Results, got.Results)
	assert.Equal(t, want.Suggestions, got.Suggestions)
	assert.Equal(t, domain.LanguageArabic, got.Language)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
}

func TestSessionStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	store, path := newTestStore(t)
	require.NoError(t, store.Save(ctx, sampleSession("chat-1")))
	require.NoError(t, store.Close())

	reopened, err := NewSessionStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.Len(t, got.Results, 2)
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	require.NoError(t, store.Save(ctx, sampleSession("chat-1")))

	require.NoError(t, store.Delete(ctx, "chat-1"))
	require.NoError(t, store.Delete(ctx, "chat-1"))

	_, err := store.Get(ctx, "chat-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_SaveInvalid(t *testing.T) {
	store, _ := newTestStore(t)
	assert.ErrorIs(t, store.Save(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(context.Background(), &domain.SearchSession{}), domain.ErrInvalidInput)
}

func TestSessionStore_Prune(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	old := sampleSession("old")
	old.UpdatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, store.Save(ctx, old))
	require.NoError(t, store.Save(ctx, sampleSession("fresh")))

	removed, err := store.Prune(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
}
