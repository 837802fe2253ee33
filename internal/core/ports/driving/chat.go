package driving

import (
	"context"
	"strings"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

// ReplyKind says what a Reply carries.
type ReplyKind string

// Reply kinds.
const (
	// ReplyResults carries a page of search results.
	ReplyResults ReplyKind = "results"

	// ReplySuggestions carries fallback suggestions.
	ReplySuggestions ReplyKind = "suggestions"

	// ReplyEntry carries one selected entry.
	ReplyEntry ReplyKind = "entry"

	// ReplyIndexes carries a page of topical indexes.
	ReplyIndexes ReplyKind = "indexes"

	// ReplyNotice carries only a category message.
	ReplyNotice ReplyKind = "notice"
)

// Reply is what the conversation service hands to a presentation layer.
type Reply struct {
	Kind ReplyKind `json:"kind"`

	// Category classifies the outcome; Message is its user-facing text.
	Category domain.Category `json:"category"`
	Message  string          `json:"message,omitempty"`

	// Query or Topic that produced Results.
	Query string `json:"query,omitempty"`
	Topic string `json:"topic,omitempty"`

	Results     *domain.Page[domain.CatalogEntry]    `json:"results,omitempty"`
	Suggestions []domain.Suggestion                  `json:"suggestions,omitempty"`
	Entry       *domain.CatalogEntry                 `json:"entry,omitempty"`
	Indexes     *domain.Page[domain.IndexDefinition] `json:"indexes,omitempty"`
	Language    domain.Language                      `json:"language,omitempty"`
}

// ChatService is the session-aware entry point used by chat front ends.
// Every method is scoped to one conversation.
type ChatService interface {
	// Query runs a free-text search and starts a new session.
	Query(ctx context.Context, conversationID, text string) (*Reply, error)

	// Handle dispatches a presentation event: "next", "prev",
	// "select:<id_or_key>", "index:<key>", "index_page:<n>", "lang:<code>".
	Handle(ctx context.Context, conversationID, event string) (*Reply, error)

	// Next and Prev move the result page cursor.
	Next(ctx context.Context, conversationID string) (*Reply, error)
	Prev(ctx context.Context, conversationID string) (*Reply, error)

	// Select resolves a result id or suggestion key to an entry.
	Select(ctx context.Context, conversationID, ref string) (*Reply, error)

	// BrowseIndex searches the catalog with a topical index.
	BrowseIndex(ctx context.Context, conversationID, key string) (*Reply, error)

	// IndexPage shows page n of the topical indexes.
	IndexPage(ctx context.Context, conversationID string, page int) (*Reply, error)

	// SetLanguage switches the index catalog of the conversation.
	SetLanguage(ctx context.Context, conversationID string, lang domain.Language) (*Reply, error)
}

// Notice returns a reply carrying only a category and its message.
func Notice(cat domain.Category) *Reply {
	return &Reply{Kind: ReplyNotice, Category: cat, Message: cat.Message()}
}

// ErrorReply converts a service error into a notice a user can read.
// Presentation adapters use it so raw errors never reach the user.
func ErrorReply(err error) *Reply {
	return Notice(domain.CategoryOf(err))
}

// CommandPrefix marks a chat line as an event rather than a query.
const CommandPrefix = "/"

// Dispatch routes one line of chat input. "/next" and the other events
// go to Handle, "/indexes" opens the first index page and anything else
// is a query.
func Dispatch(ctx context.Context, chat ChatService, conversationID, line string) (*Reply, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, CommandPrefix) {
		return chat.Query(ctx, conversationID, line)
	}
	event := strings.TrimSpace(strings.TrimPrefix(line, CommandPrefix))
	if event == "indexes" {
		return chat.IndexPage(ctx, conversationID, 0)
	}
	return chat.Handle(ctx, conversationID, event)
}
