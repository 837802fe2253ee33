// Package cli is the cobra command tree of the maktaba binary.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
	"github.com/maktaba-labs/maktaba-cli/internal/logger"
)

// Command scopes, set through the scopeAnnotation of a command.
const (
	scopeAnnotation = "maktaba:scope"

	// scopeNone commands need no services at all.
	scopeNone = "none"

	// scopeSettings commands only read and write configuration.
	scopeSettings = "settings"
)

// version is set at build time through SetVersion.
var version = "dev"

// Root flags.
var (
	verboseFlag bool
	homeFlag    string
)

// Services bundles the driving ports used by the commands.
type Services struct {
	Search   driving.SearchService
	Chat     driving.ChatService
	Index    driving.IndexService
	Catalog  driving.CatalogService
	Settings driving.SettingsService

	// PageSize is the result page size for one-shot commands.
	PageSize int

	// Language is the default index catalog.
	Language domain.Language
}

// Service instances, populated by SetServices or lazily by bootstrap.
var (
	searchService   driving.SearchService
	chatService     driving.ChatService
	indexService    driving.IndexService
	catalogService  driving.CatalogService
	settingsService driving.SettingsService
	pageSize        = domain.DefaultPageSize
	defaultLanguage = domain.LanguageArabic

	// closeServices releases stores opened by bootstrap.
	closeServices func() error

	// watchIndexes follows the index override file. Nil when the
	// builtin catalogs are used.
	watchIndexes func(ctx context.Context) (stop func() error, err error)
)

var rootCmd = &cobra.Command{
	Use:   "maktaba",
	Short: "Maktaba - a chat library assistant",
	Long: `Maktaba searches a catalog of book files by name.

Queries are normalized for Arabic (letter variants, diacritics) and
ranked by exact match, full-text relevance and trigram similarity.
When nothing matches, relaxed suggestions are offered instead.`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "",
		"maktaba home directory (default $MAKTABA_HOME or ~/.maktaba)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects services, bypassing bootstrap.
func SetServices(s *Services) {
	searchService = s.Search
	chatService = s.Chat
	indexService = s.Index
	catalogService = s.Catalog
	settingsService = s.Settings
	if s.PageSize > 0 {
		pageSize = s.PageSize
	}
	if s.Language.IsValid() {
		defaultLanguage = s.Language
	}
}

// Execute runs the root command and releases opened stores.
func Execute() error {
	defer func() {
		if closeServices != nil {
			if err := closeServices(); err != nil {
				logger.Warn("closing stores: %v", err)
			}
			closeServices = nil
		}
	}()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// bootstrap enables logging and opens the stores a command needs.
// Services injected with SetServices are left untouched.
func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	switch cmd.Annotations[scopeAnnotation] {
	case scopeNone:
		return nil
	case scopeSettings:
		if settingsService != nil {
			return nil
		}
		return openSettingsOnly(resolveHome(homeFlag))
	default:
		if searchService != nil && chatService != nil {
			return nil
		}
		return openAll(cmd.Context(), resolveHome(homeFlag))
	}
}

// followIndexes starts watchIndexes for long-running commands. The
// returned func stops it; a failing watch is logged and skipped.
func followIndexes(ctx context.Context) func() {
	if watchIndexes == nil {
		return func() {}
	}
	stopWatch, err := watchIndexes(ctx)
	if err != nil {
		logger.Warn("%v", err)
		return func() {}
	}
	return func() {
		if err := stopWatch(); err != nil {
			logger.Debug("stopping index watch: %v", err)
		}
	}
}
