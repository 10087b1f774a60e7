package driving

import "github.com/custodia-labs/minairva-cli/internal/core/domain"

// ThemeApplier receives the active mode whenever it is applied.
type ThemeApplier func(mode domain.ThemeMode)

// ThemeService manages the light/dark preference.
type ThemeService interface {
	// Get returns the current mode.
	Get() domain.ThemeMode

	// Toggle flips the mode, persists it and applies it.
	Toggle() domain.ThemeMode

	// Set changes the mode explicitly, persists it and applies it.
	Set(mode domain.ThemeMode) domain.ThemeMode

	// OnApply registers a side-effect hook and applies the current mode to it.
	OnApply(fn ThemeApplier)
}
