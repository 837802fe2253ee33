package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestionKey_Deterministic(t *testing.T) {
	a := SuggestionKey("file-ref-1")
	b := SuggestionKey("file-ref-1")
	c := SuggestionKey("file-ref-2")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 10)
}

func TestCatalogEntry_Valid(t *testing.T) {
	assert.True(t, CatalogEntry{FileName: "a", FileReference: "b"}.Valid())
	assert.False(t, CatalogEntry{FileName: "a"}.Valid())
	assert.False(t, CatalogEntry{FileReference: "b"}.Valid())
}

func TestEntries_KeepsOrder(t *testing.T) {
	scored := []ScoredEntry{
		{Entry: CatalogEntry{ID: 3}},
		{Entry: CatalogEntry{ID: 1}},
	}

	out := Entries(scored)

	assert.Equal(t, int64(3), out[0].ID)
	assert.Equal(t, int64(1), out[1].ID)
}
