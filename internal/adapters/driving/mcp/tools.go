package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
	"github.com/maktaba-labs/maktaba-cli/internal/logger"
)

// Navigation directions accepted by the navigate tool.
const (
	directionNext = "next"
	directionPrev = "prev"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query          string `json:"query" jsonschema:"book name or keywords, Arabic or English"`
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"conversation that keeps the result pages (default: one per server)"`
}

// NavigateInput is the input schema for the navigate tool.
type NavigateInput struct {
	Direction      string `json:"direction" jsonschema:"next or prev"`
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"conversation of the previous search"`
}

// SelectInput is the input schema for the select tool.
type SelectInput struct {
	Ref            string `json:"ref" jsonschema:"result id or suggestion key"`
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"conversation of the previous search"`
}

// BrowseIndexInput is the input schema for the browse_index tool.
type BrowseIndexInput struct {
	Key            string `json:"key" jsonschema:"topical index key, as listed by list_indexes"`
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"conversation that keeps the result pages"`
}

// ListIndexesInput is the input schema for the list_indexes tool.
type ListIndexesInput struct {
	Language       string `json:"language,omitempty" jsonschema:"ar or en (default: the conversation language)"`
	Page           int    `json:"page,omitempty" jsonschema:"zero-based page of the index catalog"`
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"conversation to list indexes for"`
}

// ReplyOutput is the output schema shared by every tool.
type ReplyOutput struct {
	ConversationID string `json:"conversation_id"`
	Kind           string `json:"kind"`
	Category       string `json:"category"`
	Message        string `json:"message,omitempty"`
	Query          string `json:"query,omitempty"`
	Topic          string `json:"topic,omitempty"`
	Language       string `json:"language,omitempty"`

	// Page describes Results or Indexes, whichever is set.
	Page *PageOutput `json:"page,omitempty"`

	Results     []EntryOutput      `json:"results,omitempty"`
	Suggestions []SuggestionOutput `json:"suggestions,omitempty"`
	Entry       *EntryOutput       `json:"entry,omitempty"`
	Indexes     []IndexOutput      `json:"indexes,omitempty"`
}

// PageOutput is the cursor of a paged reply.
type PageOutput struct {
	Index      int  `json:"index"`
	TotalPages int  `json:"total_pages"`
	Total      int  `json:"total"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// EntryOutput represents a single catalog entry.
type EntryOutput struct {
	ID            int64  `json:"id"`
	FileName      string `json:"file_name"`
	FileReference string `json:"file_reference"`
	UploadedAt    string `json:"uploaded_at,omitempty"`
}

// SuggestionOutput is a fallback entry with the key to select it by.
type SuggestionOutput struct {
	Key   string      `json:"key"`
	Entry EntryOutput `json:"entry"`
}

// IndexOutput is one topical index.
type IndexOutput struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the book catalog by name. Returns a page of results or suggestions when nothing matches",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "navigate",
		Description: "Move to the next or previous page of the last search",
	}, s.handleNavigate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select",
		Description: "Show one book from the last results by id or suggestion key",
	}, s.handleSelect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "browse_index",
		Description: "Search the catalog with a curated topical index",
	}, s.handleBrowseIndex)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_indexes",
		Description: "List the curated topical indexes, one page at a time",
	}, s.handleListIndexes)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, ReplyOutput, error) {
	conv := s.conversationID(input.ConversationID)
	reply, err := s.ports.Chat.Query(ctx, conv, input.Query)
	return nil, s.output(conv, "search", reply, err), nil
}

func (s *Server) handleNavigate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NavigateInput,
) (*mcp.CallToolResult, ReplyOutput, error) {
	conv := s.conversationID(input.ConversationID)

	var (
		reply *driving.Reply
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(input.Direction)) {
	case directionNext:
		reply, err = s.ports.Chat.Next(ctx, conv)
	case directionPrev:
		reply, err = s.ports.Chat.Prev(ctx, conv)
	default:
		reply = driving.Notice(domain.CategoryInvalidInput)
	}
	return nil, s.output(conv, "navigate", reply, err), nil
}

func (s *Server) handleSelect(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectInput,
) (*mcp.CallToolResult, ReplyOutput, error) {
	conv := s.conversationID(input.ConversationID)
	reply, err := s.ports.Chat.Select(ctx, conv, strings.TrimSpace(input.Ref))
	return nil, s.output(conv, "select", reply, err), nil
}

func (s *Server) handleBrowseIndex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BrowseIndexInput,
) (*mcp.CallToolResult, ReplyOutput, error) {
	conv := s.conversationID(input.ConversationID)
	reply, err := s.ports.Chat.BrowseIndex(ctx, conv, strings.TrimSpace(input.Key))
	return nil, s.output(conv, "browse_index", reply, err), nil
}

func (s *Server) handleListIndexes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListIndexesInput,
) (*mcp.CallToolResult, ReplyOutput, error) {
	conv := s.conversationID(input.ConversationID)

	if input.Language == "" {
		reply, err := s.ports.Chat.IndexPage(ctx, conv, input.Page)
		return nil, s.output(conv, "list_indexes", reply, err), nil
	}

	// Switching language resets the conversation to the first index page.
	reply, err := s.ports.Chat.SetLanguage(ctx, conv, domain.Language(strings.ToLower(input.Language)))
	if err == nil && input.Page > 0 {
		reply, err = s.ports.Chat.IndexPage(ctx, conv, input.Page)
	}
	return nil, s.output(conv, "list_indexes", reply, err), nil
}

// output turns a chat reply into tool output. Errors are logged and
// replaced by their category notice.
func (s *Server) output(conv, tool string, reply *driving.Reply, err error) ReplyOutput {
	if err != nil {
		logger.Warn("mcp %s (%s): %v", tool, conv, err)
		reply = driving.ErrorReply(err)
	}
	if reply == nil {
		reply = driving.Notice(domain.CategoryInternal)
	}

	out := ReplyOutput{
		ConversationID: conv,
		Kind:           string(reply.Kind),
		Category:       reply.Category.String(),
		Message:        reply.Message,
		Query:          reply.Query,
		Topic:          reply.Topic,
		Language:       reply.Language.String(),
	}
	if r := reply.Results; r != nil {
		out.Page = pageOutput(r.Index, r.TotalPages, r.Total, r.HasPrev, r.HasNext)
		out.Results = make([]EntryOutput, len(r.Items))
		for i := range r.Items {
			out.Results[i] = entryOutput(r.Items[i])
		}
	}
	if r := reply.Indexes; r != nil {
		out.Page = pageOutput(r.Index, r.TotalPages, r.Total, r.HasPrev, r.HasNext)
		out.Indexes = make([]IndexOutput, len(r.Items))
		for i, def := range r.Items {
			out.Indexes[i] = IndexOutput{Key: def.Key, DisplayName: def.DisplayName}
		}
	}
	for _, sg := range reply.Suggestions {
		out.Suggestions = append(out.Suggestions, SuggestionOutput{Key: sg.Key, Entry: entryOutput(sg.Entry)})
	}
	if reply.Entry != nil {
		e := entryOutput(*reply.Entry)
		out.Entry = &e
	}
	return out
}

func pageOutput(index, totalPages, total int, hasPrev, hasNext bool) *PageOutput {
	return &PageOutput{
		Index:      index,
		TotalPages: totalPages,
		Total:      total,
		HasPrev:    hasPrev,
		HasNext:    hasNext,
	}
}

func entryOutput(e domain.CatalogEntry) EntryOutput {
	out := EntryOutput{ID: e.ID, FileName: e.FileName, FileReference: e.FileReference}
	if !e.UploadedAt.IsZero() {
		out.UploadedAt = e.UploadedAt.UTC().Format(time.RFC3339)
	}
	return out
}
