// Package tui provides the interactive terminal user interface for minairva.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Triage submits documents and owns the result and tab state.
	Triage driving.TriageOrchestrator

	// Theme manages the light/dark preference.
	Theme driving.ThemeService

	// Settings provides client settings such as reduced motion. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	triage driving.TriageOrchestrator,
	theme driving.ThemeService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Triage:   triage,
		Theme:    theme,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Triage == nil {
		return ErrMissingTriageService
	}
	if p.Theme == nil {
		return ErrMissingThemeService
	}
	return nil
}
