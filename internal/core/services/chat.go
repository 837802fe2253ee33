package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driven"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
	"github.com/maktaba-labs/maktaba-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService keeps one search session per conversation and turns
// presentation events into replies.
//
// Terminal search states (no results, no suggestions, a page move out of
// range) come back as notice replies with a nil error. Failures come back
// as errors; adapters render them with driving.ErrorReply.
type ChatService struct {
	search   driving.SearchService
	indexes  driving.IndexService
	catalog  driven.CatalogStore
	sessions driven.SessionStore

	pageSize        int
	defaultLanguage domain.Language

	locks    *keyedMutex
	throttle *throttle
}

// NewChatService creates a new conversation service.
// catalog may be nil; selecting an id outside the session then fails
// with domain.ErrNotFound.
func NewChatService(
	search driving.SearchService,
	indexes driving.IndexService,
	catalog driven.CatalogStore,
	sessions driven.SessionStore,
	settings domain.AppSettings,
) *ChatService {
	pageSize := settings.Search.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	lang := settings.Index.DefaultLanguage
	if !lang.IsValid() {
		lang = domain.LanguageArabic
	}
	return &ChatService{
		search:          search,
		indexes:         indexes,
		catalog:         catalog,
		sessions:        sessions,
		pageSize:        pageSize,
		defaultLanguage: lang,
		locks:           newKeyedMutex(),
		throttle:        newThrottle(settings.RateLimit),
	}
}

// Query runs a free-text search and replaces the conversation's session.
func (s *ChatService) Query(ctx context.Context, conversationID, text string) (*driving.Reply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	unlock, err := s.enter(conversationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	results, err := s.search.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	sess.Reset(text, "", domain.Entries(results))

	if len(results) > 0 {
		if err := s.save(ctx, sess); err != nil {
			return nil, err
		}
		return s.resultsReply(sess), nil
	}

	suggestions, err := s.search.Suggest(ctx, text)
	if err != nil {
		return nil, err
	}
	sess.Suggestions = suggestions
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	if len(suggestions) == 0 {
		reply := driving.Notice(domain.CategoryNoSuggestions)
		reply.Query = text
		reply.Language = sess.Language
		return reply, nil
	}
	return &driving.Reply{
		Kind:        driving.ReplySuggestions,
		Category:    domain.CategoryNoResults,
		Message:     domain.CategoryNoResults.Message(),
		Query:       text,
		Suggestions: suggestions,
		Language:    sess.Language,
	}, nil
}

// Handle parses a presentation event and dispatches it.
func (s *ChatService) Handle(ctx context.Context, conversationID, event string) (*driving.Reply, error) {
	ev, err := domain.ParseEvent(event)
	if err != nil {
		return nil, err
	}
	logger.Debug("Conversation %s: event %s", conversationID, ev)

	switch ev.Kind {
	case domain.EventNext:
		return s.Next(ctx, conversationID)
	case domain.EventPrev:
		return s.Prev(ctx, conversationID)
	case domain.EventSelect:
		return s.Select(ctx, conversationID, ev.Arg)
	case domain.EventIndex:
		return s.BrowseIndex(ctx, conversationID, ev.Arg)
	case domain.EventIndexPage:
		page, err := ev.PageArg()
		if err != nil {
			return nil, err
		}
		return s.IndexPage(ctx, conversationID, page)
	case domain.EventLanguage:
		return s.SetLanguage(ctx, conversationID, domain.Language(strings.ToLower(ev.Arg)))
	default:
		return nil, fmt.Errorf("%w: unknown event %q", domain.ErrInvalidInput, event)
	}
}

// Next moves to the next result page.
func (s *ChatService) Next(ctx context.Context, conversationID string) (*driving.Reply, error) {
	return s.move(ctx, conversationID, 1)
}

// Prev moves to the previous result page.
func (s *ChatService) Prev(ctx context.Context, conversationID string) (*driving.Reply, error) {
	return s.move(ctx, conversationID, -1)
}

func (s *ChatService) move(ctx context.Context, conversationID string, delta int) (*driving.Reply, error) {
	unlock, err := s.enter(conversationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.sessions.Get(ctx, conversationID)
	if errors.Is(err, domain.ErrNotFound) {
		return driving.Notice(domain.CategoryInvalidNavigation), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	s.clampCursor(sess)

	if err := sess.Move(delta, s.pageSize); err != nil {
		reply := driving.Notice(domain.CategoryOf(err))
		reply.Language = sess.Language
		return reply, nil
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return s.resultsReply(sess), nil
}

// Select resolves a suggestion key or a numeric entry id.
// Ids outside the current results are looked up in the catalog.
func (s *ChatService) Select(ctx context.Context, conversationID, ref string) (*driving.Reply, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty selection", domain.ErrInvalidInput)
	}
	unlock, err := s.enter(conversationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if entry, ok := sess.FindSuggestion(ref); ok {
		return entryReply(entry, sess.Language), nil
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("select %q: %w", ref, domain.ErrNotFound)
	}
	if entry, ok := sess.FindResult(id); ok {
		return entryReply(entry, sess.Language), nil
	}
	if s.catalog == nil {
		return nil, fmt.Errorf("select %d: %w", id, domain.ErrNotFound)
	}
	entry, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, storeError("select", err)
	}
	return entryReply(*entry, sess.Language), nil
}

// BrowseIndex runs topic retrieval for an index key and replaces the
// conversation's session.
func (s *ChatService) BrowseIndex(ctx context.Context, conversationID, key string) (*driving.Reply, error) {
	unlock, err := s.enter(conversationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	def, _, err := s.indexes.Find(sess.Language, key)
	if err != nil {
		return nil, err
	}

	results, err := s.search.SearchTopic(ctx, *def)
	if err != nil {
		return nil, err
	}
	sess.Reset("", def.Key, domain.Entries(results))
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		reply := driving.Notice(domain.CategoryNoResults)
		reply.Topic = def.Key
		reply.Language = sess.Language
		return reply, nil
	}
	return s.resultsReply(sess), nil
}

// IndexPage shows page n of the topical indexes in the session language.
func (s *ChatService) IndexPage(ctx context.Context, conversationID string, page int) (*driving.Reply, error) {
	unlock, err := s.enter(conversationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return s.indexReply(ctx, sess, page)
}

// SetLanguage switches the index catalog and shows its first page.
func (s *ChatService) SetLanguage(ctx context.Context, conversationID string, lang domain.Language) (*driving.Reply, error) {
	if !lang.IsValid() {
		return nil, fmt.Errorf("%w: language %q", domain.ErrInvalidInput, lang)
	}
	unlock, err := s.enter(conversationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	sess.Language = lang
	return s.indexReply(ctx, sess, 0)
}

func (s *ChatService) indexReply(ctx context.Context, sess *domain.SearchSession, page int) (*driving.Reply, error) {
	p, err := s.indexes.List(sess.Language, page)
	if errors.Is(err, domain.ErrInvalidNavigation) {
		reply := driving.Notice(domain.CategoryInvalidNavigation)
		reply.Language = sess.Language
		return reply, nil
	}
	if err != nil {
		return nil, err
	}
	sess.IndexPage = page
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return &driving.Reply{
		Kind:     driving.ReplyIndexes,
		Category: domain.CategoryOK,
		Indexes:  &p,
		Language: sess.Language,
	}, nil
}

// enter applies the rate limit and takes the conversation lock.
func (s *ChatService) enter(conversationID string) (func(), error) {
	if conversationID == "" {
		return nil, fmt.Errorf("%w: missing conversation id", domain.ErrInvalidInput)
	}
	if !s.throttle.Allow(conversationID) {
		logger.Warn("Conversation %s rate limited", conversationID)
		return nil, domain.ErrRateLimited
	}
	return s.locks.Lock(conversationID), nil
}

// load returns the stored session or a fresh one.
func (s *ChatService) load(ctx context.Context, conversationID string) (*domain.SearchSession, error) {
	sess, err := s.sessions.Get(ctx, conversationID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewSearchSession(conversationID, s.defaultLanguage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !sess.Language.IsValid() {
		sess.Language = s.defaultLanguage
	}
	s.clampCursor(sess)
	return sess, nil
}

// clampCursor moves a cursor saved under another page size onto the last
// existing page.
func (s *ChatService) clampCursor(sess *domain.SearchSession) {
	if !domain.ValidPage(len(sess.Results), s.pageSize, sess.CurrentPage) {
		sess.CurrentPage = max(domain.TotalPages(len(sess.Results), s.pageSize)-1, 0)
	}
}

func (s *ChatService) save(ctx context.Context, sess *domain.SearchSession) error {
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *ChatService) resultsReply(sess *domain.SearchSession) *driving.Reply {
	p := sess.Page(s.pageSize)
	return &driving.Reply{
		Kind:     driving.ReplyResults,
		Category: domain.CategoryOK,
		Query:    sess.Query,
		Topic:    sess.Topic,
		Results:  &p,
		Language: sess.Language,
	}
}

func entryReply(entry domain.CatalogEntry, lang domain.Language) *driving.Reply {
	return &driving.Reply{
		Kind:     driving.ReplyEntry,
		Category: domain.CategoryOK,
		Entry:    &entry,
		Language: lang,
	}
}
