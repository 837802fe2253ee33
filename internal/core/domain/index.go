package domain

// Language identifies one of the topical index catalogs.
type Language string

// Supported index catalog languages.
const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// IsValid returns true if the language is recognised.
func (l Language) IsValid() bool {
	switch l {
	case LanguageArabic, LanguageEnglish:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l Language) String() string {
	return string(l)
}

// Description returns a human-readable name of the language.
func (l Language) Description() string {
	switch l {
	case LanguageArabic:
		return "Arabic"
	case LanguageEnglish:
		return "English"
	default:
		return "Unknown"
	}
}

// AllLanguages returns the index catalog languages in display order.
func AllLanguages() []Language {
	return []Language{LanguageArabic, LanguageEnglish}
}

// IndexDefinition is a curated topical index.
type IndexDefinition struct {
	// DisplayName is shown to users.
	DisplayName string `json:"display_name" toml:"name"`

	// Key is unique within one language catalog.
	Key string `json:"key" toml:"key"`

	// Keywords are matched against the catalog when browsing the topic.
	Keywords []string `json:"keywords" toml:"keywords"`
}
