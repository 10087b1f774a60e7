package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driven"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAPIURL        = "client.api_url"
	keyTimeout       = "client.timeout"
	keyRatePerSecond = "client.rate_per_second"
	keyRateBurst     = "client.rate_burst"
	keyBreaker       = "client.breaker"
	keyBreakerFails  = "client.breaker_failures"
	keyBreakerCool   = "client.breaker_cooldown"
	keyProcessors    = "extract.processors"
	keyReducedMotion = "ui.reduced_motion"
	keyPrefsBackend  = "prefs.backend"
)

// Environment overrides, highest priority first.
var (
	apiURLEnvVars        = []string{"MINAIRVA_API_URL", "REACT_APP_API_URL"}
	reducedMotionEnvVars = []string{"NO_MOTION", "REDUCE_MOTION"}
)

// SettingsService manages client settings.
// Values resolve as defaults < config file < environment.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// WithLookupEnv replaces the environment lookup (for testing).
func (s *SettingsService) WithLookupEnv(fn func(string) (string, bool)) *SettingsService {
	s.lookupEnv = fn
	return s
}

// Get retrieves current client settings.
func (s *SettingsService) Get() domain.ClientSettings {
	settings := domain.DefaultClientSettings()

	if s.configStore != nil {
		if v := s.configStore.GetString(keyAPIURL); v != "" {
			settings.APIURL = v
		}
		if d, err := time.ParseDuration(s.configStore.GetString(keyTimeout)); err == nil && d > 0 {
			settings.Timeout = d
		}
		if v := s.configStore.GetFloat(keyRatePerSecond); v > 0 {
			settings.RatePerSecond = v
		}
		if v := s.configStore.GetInt(keyRateBurst); v > 0 {
			settings.RateBurst = v
		}
		settings.Breaker = s.configStore.GetBool(keyBreaker)
		if v := s.configStore.GetInt(keyBreakerFails); v > 0 {
			settings.BreakerFailures = v
		}
		if d, err := time.ParseDuration(s.configStore.GetString(keyBreakerCool)); err == nil && d > 0 {
			settings.BreakerCooldown = d
		}
		if v, ok := s.configStore.Get(keyProcessors); ok {
			if names, ok := stringList(v); ok {
				settings.Processors = names
			}
		}
		settings.ReducedMotion = s.configStore.GetBool(keyReducedMotion)
		if b := domain.PrefsBackend(s.configStore.GetString(keyPrefsBackend)); b.IsValid() {
			settings.PrefsBackend = b
		}
	}

	if v, ok := s.firstEnv(apiURLEnvVars); ok && v != "" {
		settings.APIURL = v
	}
	if v, ok := s.firstEnv(reducedMotionEnvVars); ok && isTruthy(v) {
		settings.ReducedMotion = true
	}

	return settings
}

// SetAPIURL persists the triage endpoint.
func (s *SettingsService) SetAPIURL(url string) error {
	url = strings.TrimSpace(url)
	if url == "" || !(strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")) {
		return fmt.Errorf("api url %q: %w", url, domain.ErrInvalidInput)
	}
	return s.set(keyAPIURL, url)
}

// SetTimeout persists the request timeout (a Go duration such as "45s").
func (s *SettingsService) SetTimeout(timeout string) error {
	d, err := time.ParseDuration(strings.TrimSpace(timeout))
	if err != nil || d <= 0 {
		return fmt.Errorf("timeout %q: %w", timeout, domain.ErrInvalidInput)
	}
	return s.set(keyTimeout, d.String())
}

// SetReducedMotion persists the animation preference.
func (s *SettingsService) SetReducedMotion(reduced bool) error {
	return s.set(keyReducedMotion, reduced)
}

func (s *SettingsService) set(key string, value any) error {
	if s.configStore == nil {
		return fmt.Errorf("config store not configured: %w", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func (s *SettingsService) firstEnv(names []string) (string, bool) {
	if s.lookupEnv == nil {
		return "", false
	}
	for _, name := range names {
		if v, ok := s.lookupEnv(name); ok {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// stringList accepts a TOML array of strings. Any other shape is rejected.
func stringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...), true
	case []any:
		names := make([]string, 0, len(list))
		for _, item := range list {
			name, ok := item.(string)
			if !ok {
				return nil, false
			}
			names = append(names, strings.TrimSpace(name))
		}
		return names, true
	default:
		return nil, false
	}
}
