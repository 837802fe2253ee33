package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrStoreUnavailable", ErrStoreUnavailable},
		{"ErrStoreQueryFailed", ErrStoreQueryFailed},
		{"ErrNoResults", ErrNoResults},
		{"ErrNoSuggestions", ErrNoSuggestions},
		{"ErrInvalidNavigation", ErrInvalidNavigation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryOK},
		{"unavailable", ErrStoreUnavailable, CategoryUnavailable},
		{"wrapped unavailable", fmt.Errorf("search: %w", ErrStoreUnavailable), CategoryUnavailable},
		{"query failed", fmt.Errorf("scan: %w", ErrStoreQueryFailed), CategoryQueryError},
		{"no results", ErrNoResults, CategoryNoResults},
		{"no suggestions", ErrNoSuggestions, CategoryNoSuggestions},
		{"invalid navigation", ErrInvalidNavigation, CategoryInvalidNavigation},
		{"not found", ErrNotFound, CategoryNotFound},
		{"invalid input", ErrInvalidInput, CategoryInvalidInput},
		{"rate limited", ErrRateLimited, CategoryRateLimited},
		{"unknown", errors.New("boom"), CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryOf(tt.err))
		})
	}
}

func TestCategory_MessagesAreDistinct(t *testing.T) {
	categories := []Category{
		CategoryUnavailable,
		CategoryQueryError,
		CategoryNoResults,
		CategoryNoSuggestions,
		CategoryInvalidNavigation,
		CategoryNotFound,
		CategoryInvalidInput,
		CategoryRateLimited,
		CategoryInternal,
	}

	seen := make(map[string]Category)
	for _, c := range categories {
		msg := c.Message()
		assert.NotEmpty(t, msg, "category %s has no message", c)
		if other, dup := seen[msg]; dup {
			t.Errorf("categories %s and %s share message %q", c, other, msg)
		}
		seen[msg] = c
	}

	assert.Empty(t, CategoryOK.Message())
}
