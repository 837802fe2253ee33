package domain

import "time"

// SearchSession is the per-conversation search state.
// A session is created by the first search or index browse and is
// overwritten, not merged, by every later one.
type SearchSession struct {
	// ConversationID identifies the user/chat pair owning the session.
	ConversationID string `json:"conversation_id"`

	// Query is the raw text of the last free-text search.
	Query string `json:"query,omitempty"`

	// Topic is the index key when results came from topic browsing.
	Topic string `json:"topic,omitempty"`

	// Results are the ranked entries of the last search.
	Results []CatalogEntry `json:"results"`

	// Suggestions are the fallback entries when Results is empty.
	Suggestions []Suggestion `json:"suggestions,omitempty"`

	// CurrentPage is the zero-based page cursor into Results.
	CurrentPage int `json:"current_page"`

	// Language selects the index catalog used for browsing.
	Language Language `json:"language"`

	// IndexPage is the zero-based page cursor into the index catalog.
	IndexPage int `json:"index_page"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewSearchSession creates an empty session for a conversation.
func NewSearchSession(conversationID string, lang Language) *SearchSession {
	return &SearchSession{
		ConversationID: conversationID,
		Language:       lang,
		Results:        []CatalogEntry{},
		UpdatedAt:      time.Now().UTC(),
	}
}

// Reset replaces the result state, keeping language preferences.
func (s *SearchSession) Reset(query, topic string, results []CatalogEntry) {
	s.Query = query
	s.Topic = topic
	s.Results = results
	s.Suggestions = nil
	s.CurrentPage = 0
	s.UpdatedAt = time.Now().UTC()
}

// Move shifts the page cursor by delta using pageSize.
// Moves outside [0, TotalPages-1] are rejected and leave the cursor as is.
func (s *SearchSession) Move(delta, pageSize int) error {
	next := s.CurrentPage + delta
	if !ValidPage(len(s.Results), pageSize, next) {
		return ErrInvalidNavigation
	}
	s.CurrentPage = next
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Page returns the current page of results.
func (s *SearchSession) Page(pageSize int) Page[CatalogEntry] {
	return Paginate(s.Results, s.CurrentPage, pageSize)
}

// FindResult returns the session result with the given id.
func (s *SearchSession) FindResult(id int64) (CatalogEntry, bool) {
	for _, e := range s.Results {
		if e.ID == id {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// FindSuggestion returns the suggestion with the given key.
func (s *SearchSession) FindSuggestion(key string) (CatalogEntry, bool) {
	for _, sg := range s.Suggestions {
		if sg.Key == key {
			return sg.Entry, true
		}
	}
	return CatalogEntry{}, false
}
