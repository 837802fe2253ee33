package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

var suggestJSON bool

var suggestCmd = &cobra.Command{
	Use:   "suggest [query]",
	Short: "Show relaxed suggestions for a query",
	Long: `Runs the suggestion fallback used when a search finds nothing.

Keywords are stemmed and matched as prefixes, any one of them being
enough. Each suggestion has a short key that the chat accepts with
/select:<key>.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output suggestions as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	suggestions, err := searchService.Suggest(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	if suggestJSON {
		return outputJSON(cmd, suggestions)
	}

	if len(suggestions) == 0 {
		cmd.Println(domain.CategoryNoSuggestions.Message())
		return nil
	}

	cmd.Println("Suggestions:")
	for _, s := range suggestions {
		cmd.Printf("  [%s] %s (id %d)\n", s.Key, s.Entry.FileName, s.Entry.ID)
	}
	return nil
}
