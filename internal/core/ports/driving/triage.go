package driving

import (
	"context"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

// TriageOrchestrator owns the triage result and view state.
type TriageOrchestrator interface {
	// Submit triages one upload and returns the state after it resolved.
	// A failed submission returns the snapshot and the *domain.TriageError.
	Submit(ctx context.Context, upload domain.Upload) (domain.Snapshot, error)

	// SelectTab switches the active result tab. It never touches the network.
	SelectTab(tab domain.Tab) (domain.Snapshot, error)

	// Snapshot returns the current state.
	Snapshot() domain.Snapshot

	// Subscribe returns a channel of state events and a function to stop them.
	Subscribe(buffer int) (<-chan domain.Event, func())
}
