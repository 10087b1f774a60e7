package tui

import "errors"

// ErrMissingTriageService is returned when the triage orchestrator is not provided.
var ErrMissingTriageService = errors.New("tui: triage orchestrator is required")

// ErrMissingThemeService is returned when the theme service is not provided.
var ErrMissingThemeService = errors.New("tui: theme service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

// ErrNoPath is shown when enter is pressed on an empty drop zone.
var ErrNoPath = errors.New("drop a file or type its path first")
