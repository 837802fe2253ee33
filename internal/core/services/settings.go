package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driven"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeySearchPageSize       = "search.page_size"
	KeySearchResultLimit    = "search.result_limit"
	KeySearchCandidateLimit = "search.candidate_limit"
	KeySearchSimilarity     = "search.similarity_threshold"
	KeySearchSuggestLimit   = "search.suggestion_limit"
	KeySearchTimeout        = "search.timeout"
	KeySessionBackend       = "session.backend"
	KeyIndexPath            = "index.path"
	KeyIndexLanguage        = "index.default_language"
	KeyRatePerSecond        = "rate_limit.per_second"
	KeyRateBurst            = "rate_limit.burst"
)

// SettingKeys lists every key accepted by Set, in display order.
func SettingKeys() []string {
	return []string{
		KeySearchPageSize, KeySearchResultLimit, KeySearchCandidateLimit,
		KeySearchSimilarity, KeySearchSuggestLimit, KeySearchTimeout,
		KeySessionBackend, KeyIndexPath, KeyIndexLanguage,
		KeyRatePerSecond, KeyRateBurst,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			PageSize:            s.getInt(KeySearchPageSize, defaults.Search.PageSize),
			ResultLimit:         s.getInt(KeySearchResultLimit, defaults.Search.ResultLimit),
			CandidateLimit:      s.getInt(KeySearchCandidateLimit, defaults.Search.CandidateLimit),
			SimilarityThreshold: s.getFloat(KeySearchSimilarity, defaults.Search.SimilarityThreshold),
			SuggestionLimit:     s.getInt(KeySearchSuggestLimit, defaults.Search.SuggestionLimit),
			Timeout:             s.getDuration(KeySearchTimeout, defaults.Search.Timeout),
		},
		Session: domain.SessionSettings{
			Backend: s.getBackend(defaults.Session.Backend),
		},
		Index: domain.IndexSettings{
			Path:            s.configStore.GetString(KeyIndexPath),
			DefaultLanguage: s.getLanguage(defaults.Index.DefaultLanguage),
		},
		RateLimit: domain.RateLimitSettings{
			PerSecond: s.getFloat(KeyRatePerSecond, defaults.RateLimit.PerSecond),
			Burst:     s.getInt(KeyRateBurst, defaults.RateLimit.Burst),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeySearchPageSize, settings.Search.PageSize},
		{KeySearchResultLimit, settings.Search.ResultLimit},
		{KeySearchCandidateLimit, settings.Search.CandidateLimit},
		{KeySearchSimilarity, settings.Search.SimilarityThreshold},
		{KeySearchSuggestLimit, settings.Search.SuggestionLimit},
		{KeySearchTimeout, settings.Search.Timeout.String()},
		{KeySessionBackend, settings.Session.Backend.String()},
		{KeyIndexPath, settings.Index.Path},
		{KeyIndexLanguage, settings.Index.DefaultLanguage.String()},
		{KeyRatePerSecond, settings.RateLimit.PerSecond},
		{KeyRateBurst, settings.RateLimit.Burst},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set validates and stores one setting given as text.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Validate checks the stored values, reporting the first invalid one.
func (s *SettingsService) Validate() error {
	for _, key := range SettingKeys() {
		val, ok := s.configStore.Get(key)
		if !ok {
			continue
		}
		if _, err := parseSetting(key, fmt.Sprint(val)); err != nil {
			return err
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseSetting(key, value string) (any, error) {
	invalid := func(reason string) error {
		return fmt.Errorf("%w: %s=%q: %s", domain.ErrInvalidInput, key, value, reason)
	}

	switch key {
	case KeySearchPageSize, KeySearchResultLimit, KeySearchCandidateLimit, KeySearchSuggestLimit, KeyRateBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, invalid("must be a positive integer")
		}
		return n, nil
	case KeySearchSimilarity:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 || f > 1 {
			return nil, invalid("must be in (0, 1]")
		}
		return f, nil
	case KeyRatePerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return nil, invalid("must be zero or positive")
		}
		return f, nil
	case KeySearchTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return nil, invalid("must be a positive duration such as 5s")
		}
		return d.String(), nil
	case KeySessionBackend:
		if !domain.SessionBackend(value).IsValid() {
			return nil, invalid("must be memory or bolt")
		}
		return value, nil
	case KeyIndexLanguage:
		if !domain.Language(value).IsValid() {
			return nil, invalid("must be ar or en")
		}
		return value, nil
	case KeyIndexPath:
		return value, nil
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getBackend(defaultVal domain.SessionBackend) domain.SessionBackend {
	backend := domain.SessionBackend(s.configStore.GetString(KeySessionBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getLanguage(defaultVal domain.Language) domain.Language {
	lang := domain.Language(s.configStore.GetString(KeyIndexLanguage))
	if !lang.IsValid() {
		return defaultVal
	}
	return lang
}
