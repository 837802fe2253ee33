package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

var (
	searchPage int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog by file name",
	Long: `Searches the catalog for book files whose names match the query.

The query is normalized (Arabic letter variants, diacritics, punctuation)
and reduced to keywords. Entries containing every keyword are ranked by
exact match, full-text relevance and trigram similarity. When none
contain every keyword, entries containing any of them are returned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "result page to show")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if searchService == nil {
		return errors.New("search service not configured")
	}
	if searchPage < 1 {
		return fmt.Errorf("%w: page must be 1 or more", domain.ErrInvalidInput)
	}

	results, err := searchService.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	page := domain.Paginate(results, searchPage-1, pageSize)

	if searchJSON {
		return outputJSON(cmd, page)
	}

	if len(results) == 0 {
		cmd.Println(domain.CategoryNoResults.Message())
		cmd.Printf("Try: maktaba suggest %q\n", query)
		return nil
	}

	return outputScoredTable(cmd, page)
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputScoredTable(cmd *cobra.Command, page domain.Page[domain.ScoredEntry]) error {
	if len(page.Items) == 0 {
		cmd.Println(domain.CategoryInvalidNavigation.Message())
		return nil
	}

	cmd.Printf("Results (page %d of %d, %d total):\n", page.Index+1, page.TotalPages, page.Total)
	cmd.Println()
	for _, r := range page.Items {
		// Format: [ID] Name (rank, similarity) *exact
		marker := ""
		if r.ExactMatch {
			marker = " *"
		}
		cmd.Printf("  [%d] %s (%.2f, %.2f)%s\n", r.Entry.ID, r.Entry.FileName, r.Rank, r.Similarity, marker)
	}
	if page.HasNext {
		cmd.Println()
		cmd.Printf("Next page: --page %d\n", page.Index+2)
	}

	return nil
}
