// Package query turns raw user text into catalog match expressions.
//
// The pipeline is pure and stateless:
//
//	raw text -> Normalizer -> Extractor -> Build -> domain.MatchQuery
//
// Two normalizer instances exist on purpose. SearchNormalizer serves
// free-text search, suggestions and catalog ingestion; IndexNormalizer
// serves topical index keywords. They differ only in how taa marbuta is
// folded and must not be merged: catalog rows were normalized with
// SearchNormalizer and ranking depends on it.
//
// Expressions use SQLite FTS5 syntax. Keywords are always quoted, so user
// text can never inject FTS operators, and the resulting strings are bound
// as query parameters by the store.
package query
