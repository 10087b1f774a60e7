// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

// SubmitRequested asks the app to triage an upload.
type SubmitRequested struct {
	Upload domain.Upload
}

// SubmitCompleted carries the state after a submission resolved.
type SubmitCompleted struct {
	Upload   domain.Upload
	Snapshot domain.Snapshot
	Err      error
}

// OrchestratorEvent wraps a state change published by the orchestrator.
type OrchestratorEvent struct {
	Event domain.Event
}

// EventsClosed signals the orchestrator subscription ended.
type EventsClosed struct{}

// ThemeChanged signals the active mode changed.
type ThemeChanged struct {
	Mode domain.ThemeMode
}

// RevealTick advances the entrance animation by one stage.
type RevealTick struct {
	Stage Stage
}

// FadeTick advances the result fade-in.
type FadeTick struct {
	// Seq is the result the fade belongs to; ticks for older results are ignored.
	Seq  uint64
	Step int
}

// Stage identifies how much of the landing screen is visible.
type Stage int

// Entrance animation stages in reveal order.
const (
	// StageHidden shows nothing yet.
	StageHidden Stage = iota
	// StageHeader reveals the wordmark.
	StageHeader
	// StageToggle reveals the theme toggle.
	StageToggle
	// StageDropZone reveals the path input.
	StageDropZone
	// StageCards reveals the info cards.
	StageCards
	// StageFooter reveals the footer. It is the final stage.
	StageFooter
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageHidden:
		return "hidden"
	case StageHeader:
		return "header"
	case StageToggle:
		return "toggle"
	case StageDropZone:
		return "drop_zone"
	case StageCards:
		return "cards"
	case StageFooter:
		return "footer"
	default:
		return "unknown"
	}
}

// Final reports whether every element is visible.
func (s Stage) Final() bool {
	return s >= StageFooter
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
