package domain

// Phase is the orchestrator lifecycle state.
type Phase int

// Orchestrator phases.
const (
	// PhaseIdle means nothing has been submitted yet.
	PhaseIdle Phase = iota
	// PhaseSubmitting means the newest submission is still in flight.
	PhaseSubmitting
	// PhaseReady means a result is installed.
	PhaseReady
	// PhaseFailed means the last submission failed. Any prior result is kept.
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the orchestrator state.
type Snapshot struct {
	// Phase is the lifecycle state.
	Phase Phase

	// Result is the installed result, nil before the first success.
	Result *TriageResult

	// View is the tab state.
	View ViewState

	// LastError is the failure surfaced by the last failed submission.
	LastError *TriageError

	// InFlight counts submissions that have not resolved.
	InFlight int

	// IssuedSeq is the sequence number of the newest submission.
	IssuedSeq uint64

	// AppliedSeq is the sequence number of the installed result.
	AppliedSeq uint64
}

// HasResult reports whether a result is installed.
func (s Snapshot) HasResult() bool {
	return s.Result != nil
}

// EventType identifies an orchestrator event.
type EventType int

// Orchestrator events.
const (
	// EventSubmitting is emitted when a submission starts.
	EventSubmitting EventType = iota
	// EventResultInstalled is emitted when a result replaces the prior one.
	EventResultInstalled
	// EventSubmissionFailed is emitted when a submission fails.
	EventSubmissionFailed
	// EventStaleDiscarded is emitted when an out-of-date response is dropped.
	EventStaleDiscarded
	// EventTabSelected is emitted when the active tab changes.
	EventTabSelected
)

// String returns the event name.
func (e EventType) String() string {
	switch e {
	case EventSubmitting:
		return "submitting"
	case EventResultInstalled:
		return "result_installed"
	case EventSubmissionFailed:
		return "submission_failed"
	case EventStaleDiscarded:
		return "stale_discarded"
	case EventTabSelected:
		return "tab_selected"
	default:
		return "unknown"
	}
}

// Event is a discrete state change a presentation layer can react to.
type Event struct {
	Type     EventType
	Seq      uint64
	Snapshot Snapshot
}
