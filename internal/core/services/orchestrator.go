package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driving"
	"github.com/custodia-labs/minairva-cli/internal/logger"
)

// Ensure Orchestrator implements the interface.
var _ driving.TriageOrchestrator = (*Orchestrator)(nil)

// Submitter performs one triage submission.
// *UploadChannel is the production implementation.
type Submitter interface {
	Submit(ctx context.Context, upload domain.Upload, seq uint64) (*domain.TriageResult, error)
}

// Orchestrator is the only owner of the triage result and view state.
//
// Every submission is tagged with an increasing sequence number. A response
// whose sequence number is below the one of the installed result is
// discarded, so a slow earlier request can never overwrite a newer result.
// Otherwise the last response to resolve wins. Updates are applied under a
// single lock and readers only ever see whole snapshots.
type Orchestrator struct {
	mu        sync.Mutex
	submitter Submitter

	phase   domain.Phase
	result  *domain.TriageResult
	view    domain.ViewState
	lastErr *domain.TriageError

	issued  uint64
	applied uint64
	pending map[uint64]struct{}

	subs    map[int]chan domain.Event
	nextSub int
	dropped uint64
}

// NewOrchestrator creates an orchestrator in the Idle phase.
func NewOrchestrator(submitter Submitter) *Orchestrator {
	return &Orchestrator{
		submitter: submitter,
		phase:     domain.PhaseIdle,
		view:      domain.ViewState{ActiveTab: domain.TabClassification},
		pending:   make(map[uint64]struct{}),
		subs:      make(map[int]chan domain.Event),
	}
}

// Submit triages one upload and blocks until it resolves.
// On failure the returned error is the *domain.TriageError that was surfaced.
// If the response was discarded as stale the error is domain.ErrStaleResponse.
func (o *Orchestrator) Submit(ctx context.Context, upload domain.Upload) (domain.Snapshot, error) {
	seq := o.begin()

	var (
		result *domain.TriageResult
		err    error
	)
	if o.submitter == nil {
		err = domain.NewTriageError(domain.KindNetwork, "triage client not configured", nil)
	} else {
		result, err = o.submitter.Submit(ctx, upload, seq)
	}

	return o.resolve(seq, result, err)
}

// SelectTab switches the active tab. Clauses and Risks are a no-op until a
// result is installed.
func (o *Orchestrator) SelectTab(tab domain.Tab) (domain.Snapshot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, changed, err := o.view.Select(tab)
	if err != nil {
		return o.snapshotLocked(), err
	}
	if changed {
		o.view = next
		o.publishLocked(domain.EventTabSelected, 0)
	}
	return o.snapshotLocked(), nil
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() domain.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// Subscribe returns a channel receiving state events.
// Events are dropped rather than blocking when the buffer is full.
// The returned function unsubscribes and closes the channel.
func (o *Orchestrator) Subscribe(buffer int) (<-chan domain.Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.Event, buffer)

	o.mu.Lock()
	id := o.nextSub
	o.nextSub++
	o.subs[id] = ch
	o.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			close(ch)
			o.mu.Unlock()
		})
	}
}

// Dropped returns how many events were dropped for slow subscribers.
func (o *Orchestrator) Dropped() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dropped
}

// begin registers a new in-flight submission.
func (o *Orchestrator) begin() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.issued++
	seq := o.issued
	o.pending[seq] = struct{}{}
	o.phase = domain.PhaseSubmitting
	o.lastErr = nil

	logger.Debug("orchestrator: submission %d started (%d in flight)", seq, len(o.pending))
	o.publishLocked(domain.EventSubmitting, seq)
	return seq
}

// resolve applies the outcome of submission seq atomically.
func (o *Orchestrator) resolve(seq uint64, result *domain.TriageResult, err error) (domain.Snapshot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.pending, seq)

	if seq < o.applied {
		logger.Debug("orchestrator: discarding stale response %d (installed %d)", seq, o.applied)
		o.publishLocked(domain.EventStaleDiscarded, seq)
		return o.snapshotLocked(), domain.ErrStaleResponse
	}

	if err != nil {
		te, ok := domain.AsTriageError(err)
		if !ok {
			te = domain.NewTriageError(domain.KindNetwork, "", err)
		}
		o.lastErr = te
		o.phase = o.settledPhase(domain.PhaseFailed)
		logger.Debug("orchestrator: submission %d failed: %v", seq, te)
		o.publishLocked(domain.EventSubmissionFailed, seq)
		return o.snapshotLocked(), te
	}

	if result == nil {
		result = &domain.TriageResult{Clauses: []domain.Clause{}, Risks: []domain.Risk{}}
	}
	o.result = result.Clone()
	o.applied = seq
	o.lastErr = nil
	o.view = domain.ResultViewState()
	o.phase = o.settledPhase(domain.PhaseReady)
	logger.Debug("orchestrator: submission %d installed (%d clauses, %d risks)",
		seq, len(o.result.Clauses), len(o.result.Risks))
	o.publishLocked(domain.EventResultInstalled, seq)
	return o.snapshotLocked(), nil
}

// settledPhase keeps Submitting while the newest submission is in flight
// (caller must hold lock).
func (o *Orchestrator) settledPhase(outcome domain.Phase) domain.Phase {
	if _, ok := o.pending[o.issued]; ok {
		return domain.PhaseSubmitting
	}
	return outcome
}

// snapshotLocked copies the state (caller must hold lock).
func (o *Orchestrator) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Phase:      o.phase,
		Result:     o.result.Clone(),
		View:       o.view,
		LastError:  o.lastErr.Clone(),
		InFlight:   len(o.pending),
		IssuedSeq:  o.issued,
		AppliedSeq: o.applied,
	}
}

// publishLocked sends an event to every subscriber without blocking
// (caller must hold lock).
func (o *Orchestrator) publishLocked(eventType domain.EventType, seq uint64) {
	if len(o.subs) == 0 {
		return
	}
	ev := domain.Event{Type: eventType, Seq: seq, Snapshot: o.snapshotLocked()}
	for _, ch := range o.subs {
		select {
		case ch <- ev:
		default:
			o.dropped++
			logger.Warn("orchestrator: dropped %s event for slow subscriber", eventType)
		}
	}
}
