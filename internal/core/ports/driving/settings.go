package driving

import "github.com/custodia-labs/minairva-cli/internal/core/domain"

// SettingsService manages client settings.
type SettingsService interface {
	// Get retrieves current client settings.
	Get() domain.ClientSettings

	// SetAPIURL persists the triage endpoint.
	SetAPIURL(url string) error

	// SetTimeout persists the request timeout.
	SetTimeout(timeout string) error

	// SetReducedMotion persists the animation preference.
	SetReducedMotion(reduced bool) error
}
