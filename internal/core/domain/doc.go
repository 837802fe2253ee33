// Package domain defines the core business entities for Maktaba.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CatalogEntry: An immutable book file record
//   - ScoredEntry: A catalog entry with its retrieval scores
//   - Suggestion: A fallback result addressed by a short opaque key
//   - SearchSession: Per-conversation results and page cursor
//   - IndexDefinition: A static topical index used for browsing
//   - Page: One slice of a paginated sequence
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
