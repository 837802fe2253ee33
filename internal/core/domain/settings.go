package domain

import "time"

const unknownDescription = "Unknown"

// Search defaults.
const (
	DefaultPageSize            = 10
	DefaultResultLimit         = 500
	DefaultCandidateLimit      = 1000
	DefaultSimilarityThreshold = 0.3
	DefaultSuggestionLimit     = 10
	DefaultSearchTimeout       = 5 * time.Second
)

// SessionBackend selects where conversation sessions are kept.
type SessionBackend string

// Available session backends.
const (
	// SessionBackendMemory keeps sessions in process memory.
	SessionBackendMemory SessionBackend = "memory"

	// SessionBackendBolt persists sessions in a bbolt file.
	SessionBackendBolt SessionBackend = "bolt"
)

// IsValid returns true if the backend is recognised.
func (b SessionBackend) IsValid() bool {
	switch b {
	case SessionBackendMemory, SessionBackendBolt:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b SessionBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b SessionBackend) Description() string {
	switch b {
	case SessionBackendMemory:
		return "Memory (lost on exit)"
	case SessionBackendBolt:
		return "Bolt (persisted to disk)"
	default:
		return unknownDescription
	}
}

// SearchSettings holds retrieval behaviour configuration.
type SearchSettings struct {
	// PageSize is the number of results per page.
	PageSize int

	// ResultLimit caps the ranked result list.
	ResultLimit int

	// CandidateLimit caps the candidate set before scoring.
	CandidateLimit int

	// SimilarityThreshold is the minimum trigram similarity of a fuzzy match.
	SimilarityThreshold float64

	// SuggestionLimit caps the suggestion fallback.
	SuggestionLimit int

	// Timeout bounds each catalog store round-trip.
	Timeout time.Duration
}

// SessionSettings holds conversation session configuration.
type SessionSettings struct {
	Backend SessionBackend
}

// IndexSettings holds topical index configuration.
type IndexSettings struct {
	// Path is an optional TOML file replacing the built-in catalogs.
	Path string

	// DefaultLanguage is the catalog used by new sessions.
	DefaultLanguage Language
}

// RateLimitSettings bounds requests per conversation.
// A zero PerSecond disables limiting.
type RateLimitSettings struct {
	PerSecond float64
	Burst     int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Search    SearchSettings
	Session   SessionSettings
	Index     IndexSettings
	RateLimit RateLimitSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			PageSize:            DefaultPageSize,
			ResultLimit:         DefaultResultLimit,
			CandidateLimit:      DefaultCandidateLimit,
			SimilarityThreshold: DefaultSimilarityThreshold,
			SuggestionLimit:     DefaultSuggestionLimit,
			Timeout:             DefaultSearchTimeout,
		},
		Session: SessionSettings{
			Backend: SessionBackendMemory,
		},
		Index: IndexSettings{
			DefaultLanguage: LanguageArabic,
		},
		RateLimit: RateLimitSettings{
			PerSecond: 2,
			Burst:     5,
		},
	}
}

// AllSessionBackends returns all available session backends.
func AllSessionBackends() []SessionBackend {
	return []SessionBackend{SessionBackendMemory, SessionBackendBolt}
}
