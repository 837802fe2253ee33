package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driven/config/file"
	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driven/indexes"
	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driven/storage/bbolt"
	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driven/storage/memory"
	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driven/storage/sqlite"
	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driven"
	"github.com/maktaba-labs/maktaba-cli/internal/core/services"
	"github.com/maktaba-labs/maktaba-cli/internal/logger"
)

// HomeEnv overrides the default home directory.
const HomeEnv = "MAKTABA_HOME"

// sessionRetention is how long persisted sessions survive without activity.
const sessionRetention = 7 * 24 * time.Hour

// resolveHome picks the home directory: flag, then $MAKTABA_HOME, then
// ~/.maktaba. An empty result lets each store apply its own default.
func resolveHome(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(HomeEnv); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".maktaba")
}

func openSettingsOnly(home string) error {
	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService = services.NewSettingsService(configStore)
	return nil
}

// openAll wires every store and service. Stores opened before a failure
// are closed again.
func openAll(ctx context.Context, home string) (err error) {
	var closers []func() error
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				_ = closers[i]()
			}
		}
	}()

	logger.Section("Startup")

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settingsSvc := services.NewSettingsService(configStore)
	if verr := settingsSvc.Validate(); verr != nil {
		logger.Warn("invalid setting ignored: %v", verr)
	}
	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	dataDir := ""
	if home != "" {
		dataDir = filepath.Join(home, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	closers = append(closers, store.Close)
	if v, verr := store.SchemaVersion(); verr != nil {
		logger.Warn("reading schema version: %v", verr)
	} else {
		logger.Debug("catalog: %s (schema v%d)", store.Path(), v)
	}

	sessions, closeSessions, err := openSessions(ctx, settings.Session.Backend, filepath.Dir(store.Path()))
	if err != nil {
		return err
	}
	closers = append(closers, closeSessions)

	indexSvc, err := services.NewIndexService(ctx, indexes.NewSource(settings.Index.Path))
	if err != nil {
		return fmt.Errorf("loading index catalogs: %w", err)
	}

	catalog := store.CatalogStore()
	searchSvc := services.NewSearchService(catalog, settings.Search)

	SetServices(&Services{
		Search:   searchSvc,
		Chat:     services.NewChatService(searchSvc, indexSvc, catalog, sessions, *settings),
		Index:    indexSvc,
		Catalog:  services.NewCatalogService(catalog),
		Settings: settingsSvc,
		PageSize: settings.Search.PageSize,
		Language: settings.Index.DefaultLanguage,
	})

	if settings.Index.Path != "" {
		watchIndexes = func(ctx context.Context) (func() error, error) {
			return startIndexWatch(ctx, settings.Index.Path, indexSvc)
		}
	}

	closeServices = func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	return nil
}

// openSessions opens the configured session backend. Stale bolt sessions
// are pruned on open.
func openSessions(
	ctx context.Context, backend domain.SessionBackend, dataDir string,
) (driven.SessionStore, func() error, error) {
	if backend != domain.SessionBackendBolt {
		return memory.NewSessionStore(), func() error { return nil }, nil
	}

	path := filepath.Join(dataDir, bbolt.SessionsFile)
	store, err := bbolt.NewSessionStore(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening sessions: %w", err)
	}
	removed, err := store.Prune(ctx, time.Now().Add(-sessionRetention))
	if err != nil {
		logger.Warn("pruning sessions: %v", err)
	} else if removed > 0 {
		logger.Info("pruned %d stale sessions", removed)
	}
	logger.Debug("sessions: %s", path)
	return store, store.Close, nil
}

// startIndexWatch reloads the index catalogs when the override file changes.
func startIndexWatch(ctx context.Context, path string, svc *services.IndexService) (func() error, error) {
	w, err := indexes.NewWatcher(path)
	if err != nil {
		return nil, fmt.Errorf("watching index catalogs: %w", err)
	}
	w.Watch(ctx, func(ctx context.Context) {
		if err := svc.Reload(ctx); err != nil {
			logger.Warn("reloading index catalogs: %v", err)
			return
		}
		logger.Info("reloaded index catalogs from %s", w.Path())
	})
	logger.Debug("watching %s", w.Path())
	return w.Stop, nil
}
