package driving

import "github.com/maktaba-labs/maktaba-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, filling defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Save persists settings.
	Save(settings *domain.AppSettings) error

	// Set stores one key after validating it.
	Set(key, value string) error

	// Validate checks the stored settings.
	Validate() error
}
