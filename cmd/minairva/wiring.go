package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/minairva-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driven/extract"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driven/triage/httpclient"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driven"
	"github.com/custodia-labs/minairva-cli/internal/core/services"
	"github.com/custodia-labs/minairva-cli/internal/logger"
	"github.com/custodia-labs/minairva-cli/internal/postprocessors"
)

// logFile receives log output while the TUI owns the terminal.
const logFile = "minairva.log"

// bootstrap wires the adapters to the core services.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	dir := filepath.Dir(configStore.Path())
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings := opts.Apply(settingsService.Get())

	pipeline, err := buildPipeline(settings.Processors, configStore)
	if err != nil {
		return nil, fmt.Errorf("configuring text processors: %w", err)
	}

	prefs, closePrefs := openPreferences(settings.PrefsBackend, configStore, dir)
	themeService := services.NewThemeService(prefs)

	client := httpclient.New(clientConfig(settings))
	logger.Debug("triage endpoint: %s (timeout %s)", client.URL(), settings.Timeout)

	channel := services.NewUploadChannel(extract.New(pipeline, extract.Normalisers()...), client, settings.Timeout)

	return &cli.Services{
		Triage:   services.NewOrchestrator(channel),
		Theme:    themeService,
		Settings: settingsService,
		LogPath:  filepath.Join(dir, logFile),
		Close:    closePrefs,
	}, nil
}

// clientConfig maps settings onto the HTTP client.
func clientConfig(settings domain.ClientSettings) httpclient.Config {
	return httpclient.Config{
		URL:             settings.APIURL,
		UserAgent:       "minairva/" + version,
		RatePerSecond:   settings.RatePerSecond,
		RateBurst:       settings.RateBurst,
		Breaker:         settings.Breaker,
		BreakerFailures: uint32(settings.BreakerFailures),
		BreakerCooldown: settings.BreakerCooldown,
	}
}

// buildPipeline assembles the clean-up stages named in extract.processors.
// Each stage reads its options from extract.<name>.<option>.
func buildPipeline(names []string, configStore driven.ConfigStore) (*postprocessors.Pipeline, error) {
	return postprocessors.NewDefaultRegistry().Pipeline(names, func(name string) postprocessors.Options {
		return func(key string) (any, bool) {
			return configStore.Get("extract." + name + "." + key)
		}
	})
}

// openPreferences selects the theme store. A SQLite store that cannot be
// opened falls back to memory so the UI still starts.
func openPreferences(
	backend domain.PrefsBackend,
	configStore *file.ConfigStore,
	dir string,
) (driven.PreferenceStore, func() error) {
	noop := func() error { return nil }

	switch backend {
	case domain.PrefsBackendMemory:
		return memory.NewConfigStore(), noop
	case domain.PrefsBackendSQLite:
		store, err := sqlite.NewStore(filepath.Join(dir, "data"))
		if err != nil {
			logger.Warn("preferences: %v; theme will not be saved", errors.Join(domain.ErrPreferenceUnavailable, err))
			return memory.NewConfigStore(), noop
		}
		logger.Debug("preferences: %s", store.Path())
		return store, store.Close
	default:
		return configStore, noop
	}
}
