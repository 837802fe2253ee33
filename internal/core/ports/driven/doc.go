// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CatalogStore: Book catalog with full-text, substring and trigram matching (SQLite)
//   - SessionStore: Per-conversation search sessions (memory or bbolt)
//   - IndexSource: Static topical index catalogs (TOML)
//   - ConfigStore: Application configuration (TOML)
//
// A nil CatalogStore is tolerated by the services: every search then
// reports domain.ErrStoreUnavailable instead of failing hard.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
