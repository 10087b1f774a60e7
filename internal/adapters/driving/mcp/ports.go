package mcp

import (
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Triage submits documents and owns the installed result.
	Triage driving.TriageOrchestrator

	// Theme exposes the presentation preference. Optional.
	Theme driving.ThemeService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Triage == nil {
		return ErrMissingTriageService
	}
	return nil
}
