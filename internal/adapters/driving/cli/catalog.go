package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

var (
	catalogRef      string
	catalogGetRef   string
	catalogPage     int
	catalogPageSize int
	catalogJSON     bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage catalog entries",
	Long: `Add, inspect and remove the book files known to the catalog.

Entries are normally created by the ingestion pipeline. These commands
exist for administration and testing.`,
}

var catalogAddCmd = &cobra.Command{
	Use:   "add [file-name]",
	Short: "Register a stored file",
	Long: `Registers a stored file under its display name.

--ref is the opaque token used to fetch the file. When omitted a random
reference is generated.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogAdd,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one entry",
	Long:  "Show one entry by ID, or by file reference with --ref.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogGet,
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogRemove,
}

func init() {
	catalogAddCmd.Flags().StringVar(&catalogRef, "ref", "", "file reference (generated when empty)")
	catalogGetCmd.Flags().StringVar(&catalogGetRef, "ref", "", "look the entry up by file reference")
	catalogListCmd.Flags().IntVarP(&catalogPage, "page", "p", 1, "page to show")
	catalogListCmd.Flags().IntVarP(&catalogPageSize, "size", "n", 20, "entries per page")
	catalogCmd.PersistentFlags().BoolVar(&catalogJSON, "json", false, "output as JSON")
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogGetCmd)
	catalogCmd.AddCommand(catalogRemoveCmd)
	rootCmd.AddCommand(catalogCmd)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidInput, arg)
	}
	return id, nil
}

func runCatalogAdd(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	entry, err := catalogService.Add(cmd.Context(), catalogRef, args[0])
	if err != nil {
		return fmt.Errorf("adding entry: %w", err)
	}

	if catalogJSON {
		return outputJSON(cmd, entry)
	}
	cmd.Printf("Added [%d] %s\n", entry.ID, entry.FileName)
	cmd.Printf("  Reference: %s\n", entry.FileReference)
	return nil
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	page, err := catalogService.List(cmd.Context(), catalogPage-1, catalogPageSize)
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}

	if catalogJSON {
		return outputJSON(cmd, page)
	}
	if page.Total == 0 {
		cmd.Println("The catalog is empty.")
		return nil
	}

	cmd.Printf("Entries (page %d of %d, %d total):\n", page.Index+1, page.TotalPages, page.Total)
	for _, e := range page.Items {
		cmd.Printf("  [%d] %s  %s\n", e.ID, e.UploadedAt.Local().Format(uploadedLayout), e.FileName)
	}
	return nil
}

func runCatalogGet(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	entry, err := lookupEntry(cmd, args)
	if err != nil {
		return err
	}

	if catalogJSON {
		return outputJSON(cmd, entry)
	}
	renderEntry(cmd.OutOrStdout(), *entry)
	return nil
}

// lookupEntry resolves either the id argument or --ref, never both.
func lookupEntry(cmd *cobra.Command, args []string) (*domain.CatalogEntry, error) {
	switch {
	case catalogGetRef != "" && len(args) > 0:
		return nil, errors.New("give either an id or --ref, not both")
	case catalogGetRef != "":
		entry, err := catalogService.GetByReference(cmd.Context(), catalogGetRef)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", catalogGetRef, err)
		}
		return entry, nil
	case len(args) == 0:
		return nil, errors.New("an id or --ref is required")
	}

	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	entry, err := catalogService.Get(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("entry %d: %w", id, err)
	}
	return entry, nil
}

func runCatalogRemove(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := catalogService.Remove(cmd.Context(), id); err != nil {
		return fmt.Errorf("removing entry %d: %w", id, err)
	}
	cmd.Printf("Removed entry %d\n", id)
	return nil
}
