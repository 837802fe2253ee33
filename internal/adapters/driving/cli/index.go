package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

var (
	indexLang string
	indexPage int
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Browse topical indexes",
	Long: `Topical indexes are curated keyword lists, one catalog per language.
Browsing an index searches the catalog for any of its keywords.`,
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topical indexes",
	Args:  cobra.NoArgs,
	RunE:  runIndexList,
}

var indexBrowseCmd = &cobra.Command{
	Use:   "browse [key]",
	Short: "Search the catalog with a topical index",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexBrowse,
}

func init() {
	indexCmd.PersistentFlags().StringVarP(&indexLang, "lang", "l", "", "index catalog language (ar, en)")
	indexCmd.PersistentFlags().IntVarP(&indexPage, "page", "p", 1, "page to show")
	indexCmd.AddCommand(indexListCmd)
	indexCmd.AddCommand(indexBrowseCmd)
	rootCmd.AddCommand(indexCmd)
}

// selectedLanguage validates the --lang flag, falling back to the default.
func selectedLanguage() (domain.Language, error) {
	if indexLang == "" {
		return defaultLanguage, nil
	}
	lang := domain.Language(strings.ToLower(indexLang))
	if !lang.IsValid() {
		return "", fmt.Errorf("%w: unknown language %q", domain.ErrInvalidInput, indexLang)
	}
	return lang, nil
}

func runIndexList(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}
	lang, err := selectedLanguage()
	if err != nil {
		return err
	}

	page, err := indexService.List(lang, indexPage-1)
	if err != nil {
		return fmt.Errorf("listing indexes: %w", err)
	}

	if len(page.Items) == 0 {
		cmd.Printf("No indexes for %s.\n", lang.Description())
		return nil
	}

	cmd.Printf("Indexes (%s, page %d of %d):\n", lang.Description(), page.Index+1, page.TotalPages)
	for _, def := range page.Items {
		cmd.Printf("  %-12s %s\n", def.Key, def.DisplayName)
	}
	return nil
}

func runIndexBrowse(cmd *cobra.Command, args []string) error {
	if indexService == nil || searchService == nil {
		return errors.New("index service not configured")
	}
	lang, err := selectedLanguage()
	if err != nil {
		return err
	}

	def, _, err := indexService.Find(lang, args[0])
	if err != nil {
		return fmt.Errorf("index %q: %w", args[0], err)
	}

	results, err := searchService.SearchTopic(cmd.Context(), *def)
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}
	if len(results) == 0 {
		cmd.Println(domain.CategoryNoResults.Message())
		return nil
	}

	cmd.Printf("%s\n", def.DisplayName)
	return outputScoredTable(cmd, domain.Paginate(results, indexPage-1, pageSize))
}
