package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// suggestionKeyLen is the number of hex characters kept from the digest.
const suggestionKeyLen = 10

// CatalogEntry is a stored book file record.
// Entries are created by ingestion and never mutated afterwards.
type CatalogEntry struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// FileReference is the opaque token used to fetch the stored file.
	FileReference string `json:"file_reference"`

	// FileName is the display name of the file.
	FileName string `json:"file_name"`

	// UploadedAt is when the file was added to the catalog.
	UploadedAt time.Time `json:"uploaded_at"`
}

// Valid reports whether the entry carries everything needed to present it.
func (e CatalogEntry) Valid() bool {
	return e.FileName != "" && e.FileReference != ""
}

// ScoredEntry is a catalog entry as returned by ranked retrieval.
type ScoredEntry struct {
	Entry CatalogEntry `json:"entry"`

	// ExactMatch is true when the normalized file name contains the whole
	// normalized query.
	ExactMatch bool `json:"exact_match"`

	// Rank is the full-text relevance score (higher is better).
	Rank float64 `json:"rank"`

	// Similarity is the trigram similarity to the query in [0, 1].
	Similarity float64 `json:"similarity"`
}

// Entries strips scores from a ranked list, keeping order.
func Entries(scored []ScoredEntry) []CatalogEntry {
	out := make([]CatalogEntry, len(scored))
	for i := range scored {
		out[i] = scored[i].Entry
	}
	return out
}

// Suggestion is a fallback result. Key lets the presentation layer
// reference the entry without another store round-trip.
type Suggestion struct {
	Key   string       `json:"key"`
	Entry CatalogEntry `json:"entry"`
}

// SuggestionKey derives the short deterministic key for a file reference.
func SuggestionKey(fileReference string) string {
	sum := sha256.Sum256([]byte(fileReference))
	return hex.EncodeToString(sum[:])[:suggestionKeyLen]
}

// NewSuggestion wraps an entry with its derived key.
func NewSuggestion(entry CatalogEntry) Suggestion {
	return Suggestion{Key: SuggestionKey(entry.FileReference), Entry: entry}
}
