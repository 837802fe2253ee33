package domain

// MatchQuery holds the candidate match expressions built from one query.
// Empty fields disable the corresponding match clause.
type MatchQuery struct {
	// And requires every keyword (prefix match).
	And string

	// Or requires any keyword (prefix match).
	Or string

	// Substring is a LIKE pattern for containment of the whole query.
	Substring string

	// Similarity is the key used for trigram similarity scoring.
	Similarity string
}

// IsEmpty reports whether no clause can match anything.
func (q MatchQuery) IsEmpty() bool {
	return q.And == "" && q.Or == "" && q.Substring == "" && q.Similarity == ""
}

// Loosened returns the degradation-pass query: Or replaces And.
func (q MatchQuery) Loosened() MatchQuery {
	q.And = q.Or
	return q
}

// StoreQuery is one request to the catalog store.
type StoreQuery struct {
	// Expression is the full-text expression. Empty disables full-text
	// matching.
	Expression string

	// Substring is the containment pattern. Empty disables it.
	Substring string

	// SimilarityKey is compared with trigram similarity. Empty disables it.
	SimilarityKey string

	// SimilarityThreshold is the minimum similarity for a fuzzy candidate.
	SimilarityThreshold float64

	// CandidateLimit caps the candidate set before scoring.
	CandidateLimit int

	// Limit caps the ordered result.
	Limit int
}
