package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates a conversation sent too many requests.
	ErrRateLimited = errors.New("rate limited")

	// Catalog store errors.

	// ErrStoreUnavailable indicates the catalog store is not configured
	// or did not answer before its timeout.
	ErrStoreUnavailable = errors.New("catalog store unavailable")

	// ErrStoreQueryFailed indicates the catalog store rejected a query or
	// returned rows that could not be decoded.
	ErrStoreQueryFailed = errors.New("catalog query failed")

	// Terminal search states. These are not failures; they let the
	// presentation layer pick a message without inspecting results.

	// ErrNoResults indicates retrieval found nothing in either pass.
	ErrNoResults = errors.New("no results")

	// ErrNoSuggestions indicates the suggestion fallback found nothing.
	ErrNoSuggestions = errors.New("no suggestions")

	// ErrInvalidNavigation indicates a page move outside the result range.
	ErrInvalidNavigation = errors.New("invalid navigation")
)

// Category is a short, user-facing classification of an outcome.
type Category string

// Outcome categories understood by presentation adapters.
const (
	CategoryOK                Category = "ok"
	CategoryUnavailable       Category = "unavailable"
	CategoryQueryError        Category = "query_error"
	CategoryNoResults         Category = "no_results"
	CategoryNoSuggestions     Category = "no_suggestions"
	CategoryInvalidNavigation Category = "invalid_navigation"
	CategoryNotFound          Category = "not_found"
	CategoryInvalidInput      Category = "invalid_input"
	CategoryRateLimited       Category = "rate_limited"
	CategoryInternal          Category = "internal"
)

// CategoryOf classifies err. A nil error is CategoryOK.
func CategoryOf(err error) Category {
	switch {
	case err == nil:
		return CategoryOK
	case errors.Is(err, ErrStoreUnavailable):
		return CategoryUnavailable
	case errors.Is(err, ErrStoreQueryFailed):
		return CategoryQueryError
	case errors.Is(err, ErrNoResults):
		return CategoryNoResults
	case errors.Is(err, ErrNoSuggestions):
		return CategoryNoSuggestions
	case errors.Is(err, ErrInvalidNavigation):
		return CategoryInvalidNavigation
	case errors.Is(err, ErrNotFound):
		return CategoryNotFound
	case errors.Is(err, ErrInvalidInput):
		return CategoryInvalidInput
	case errors.Is(err, ErrRateLimited):
		return CategoryRateLimited
	default:
		return CategoryInternal
	}
}

// Message returns the short text shown to a user for this category.
func (c Category) Message() string {
	switch c {
	case CategoryOK:
		return ""
	case CategoryUnavailable:
		return "Search is unavailable right now, please try again later."
	case CategoryQueryError:
		return "Something went wrong while searching."
	case CategoryNoResults:
		return "No books matched your search."
	case CategoryNoSuggestions:
		return "No books matched your search and there are no suggestions."
	case CategoryInvalidNavigation:
		return "There is no page in that direction."
	case CategoryNotFound:
		return "That item is no longer available."
	case CategoryInvalidInput:
		return "That request was not understood."
	case CategoryRateLimited:
		return "Too many requests, slow down a little."
	default:
		return "Unexpected error."
	}
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}
