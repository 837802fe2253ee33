package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

// execute runs the root command with args and returns everything printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func scoredEntries() []domain.ScoredEntry {
	return []domain.ScoredEntry{
		{Entry: entry(1, "رواية الأيام.pdf"), ExactMatch: true, Rank: 3, Similarity: 0.8},
		{Entry: entry(2, "الأيام ج2.pdf"), Rank: 2, Similarity: 0.5},
		{Entry: entry(3, "أيام العرب.pdf"), Rank: 1, Similarity: 0.3},
	}
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestSearchCmd_HasPageFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("page")
	require.NotNil(t, flag, "page flag should exist")
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "1", flag.DefValue)
}

func TestSearchCmd_FirstPage(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.results = scoredEntries()

	out, err := execute(t, "search", "الأيام")

	require.NoError(t, err)
	assert.Contains(t, out, "Results (page 1 of 2, 3 total):")
	assert.Contains(t, out, "[1] رواية الأيام.pdf (3.00, 0.80) *")
	assert.Contains(t, out, "[2] الأيام ج2.pdf")
	assert.NotContains(t, out, "[3]")
	assert.Contains(t, out, "Next page: --page 2")
}

func TestSearchCmd_SecondPage(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.results = scoredEntries()

	out, err := execute(t, "search", "--page", "2", "الأيام")

	require.NoError(t, err)
	assert.Contains(t, out, "page 2 of 2")
	assert.Contains(t, out, "[3] أيام العرب.pdf")
	assert.NotContains(t, out, "Next page")
}

func TestSearchCmd_PageOutOfRange(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.results = scoredEntries()

	out, err := execute(t, "search", "--page", "5", "الأيام")

	require.NoError(t, err)
	assert.Contains(t, out, domain.CategoryInvalidNavigation.Message())
}

func TestSearchCmd_InvalidPage(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "search", "--page", "0", "x")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "search", "لا شيء")

	require.NoError(t, err)
	assert.Contains(t, out, domain.CategoryNoResults.Message())
	assert.Contains(t, out, `maktaba suggest "لا شيء"`)
}

func TestSearchCmd_JSON(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.results = scoredEntries()

	out, err := execute(t, "search", "--json", "الأيام")

	require.NoError(t, err)
	var page domain.Page[domain.ScoredEntry]
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasNext)
}

func TestSearchCmd_ServiceError(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.err = errors.New("database locked")

	_, err := execute(t, "search", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestSuggestCmd_ListsKeys(t *testing.T) {
	ts := setupTestServices(t)
	ts.search.suggestions = []domain.Suggestion{
		{Key: "a1b2c3d4e5", Entry: entry(7, "كتاب الأغاني.pdf")},
	}

	out, err := execute(t, "suggest", "اغنيه")

	require.NoError(t, err)
	assert.Contains(t, out, "Suggestions:")
	assert.Contains(t, out, "[a1b2c3d4e5] كتاب الأغاني.pdf (id 7)")
}

func TestSuggestCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "suggest", "zzz")

	require.NoError(t, err)
	assert.Contains(t, out, domain.CategoryNoSuggestions.Message())
}

func TestSuggestCmd_ServiceNotConfigured(t *testing.T) {
	setupTestServices(t)
	searchService = nil

	err := runSuggest(suggestCmd, []string{"x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}
