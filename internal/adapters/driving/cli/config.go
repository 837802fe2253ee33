package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `Settings live in config.toml inside the maktaba home directory.
Any key can be overridden with an environment variable, for example
MAKTABA_SEARCH_PAGE_SIZE=20 overrides search.page_size.`,
	Annotations: map[string]string{scopeAnnotation: scopeSettings},
	RunE:        runConfigList,
}

var configListCmd = &cobra.Command{
	Use:         "list",
	Short:       "Show every setting",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{scopeAnnotation: scopeSettings},
	RunE:        runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:         "get [key]",
	Short:       "Show one setting",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{scopeAnnotation: scopeSettings},
	RunE:        runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:         "set [key] [value]",
	Short:       "Change one setting",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{scopeAnnotation: scopeSettings},
	RunE:        runConfigSet,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	// Stop flag parsing at the key so negative values stay positional.
	configSetCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(configCmd)
}

// settingValues renders effective settings keyed like the config file.
func settingValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		services.KeySearchPageSize:       strconv.Itoa(s.Search.PageSize),
		services.KeySearchResultLimit:    strconv.Itoa(s.Search.ResultLimit),
		services.KeySearchCandidateLimit: strconv.Itoa(s.Search.CandidateLimit),
		services.KeySearchSimilarity:     strconv.FormatFloat(s.Search.SimilarityThreshold, 'g', -1, 64),
		services.KeySearchSuggestLimit:   strconv.Itoa(s.Search.SuggestionLimit),
		services.KeySearchTimeout:        s.Search.Timeout.String(),
		services.KeySessionBackend:       s.Session.Backend.String(),
		services.KeyIndexPath:            s.Index.Path,
		services.KeyIndexLanguage:        s.Index.DefaultLanguage.String(),
		services.KeyRatePerSecond:        strconv.FormatFloat(s.RateLimit.PerSecond, 'g', -1, 64),
		services.KeyRateBurst:            strconv.Itoa(s.RateLimit.Burst),
	}
}

func currentSettings() (map[string]string, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settingValues(settings), nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	values, err := currentSettings()
	if err != nil {
		return err
	}

	for _, key := range services.SettingKeys() {
		val := values[key]
		if val == "" {
			val = "(unset)"
		}
		cmd.Printf("  %-28s %s\n", key, val)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	values, err := currentSettings()
	if err != nil {
		return err
	}

	val, ok := values[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, args[0])
	}
	cmd.Println(val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}
