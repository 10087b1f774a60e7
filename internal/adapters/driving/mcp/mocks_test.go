package mcp

import (
	"context"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driving"
)

// mockOrchestrator is a mock implementation of driving.TriageOrchestrator.
type mockOrchestrator struct {
	snapshot  domain.Snapshot
	err       error
	submitted []domain.Upload
}

func (m *mockOrchestrator) Submit(_ context.Context, upload domain.Upload) (domain.Snapshot, error) {
	m.submitted = append(m.submitted, upload)
	return m.snapshot, m.err
}

func (m *mockOrchestrator) SelectTab(tab domain.Tab) (domain.Snapshot, error) {
	m.snapshot.View.ActiveTab = tab
	return m.snapshot, nil
}

func (m *mockOrchestrator) Snapshot() domain.Snapshot {
	return m.snapshot
}

func (m *mockOrchestrator) Subscribe(_ int) (<-chan domain.Event, func()) {
	ch := make(chan domain.Event)
	return ch, func() { close(ch) }
}

var (
	_ driving.TriageOrchestrator = (*mockOrchestrator)(nil)
	_ driving.ThemeService       = (*mockThemeService)(nil)
)

// mockThemeService is a mock implementation of driving.ThemeService.
type mockThemeService struct {
	mode domain.ThemeMode
}

func (m *mockThemeService) Get() domain.ThemeMode { return m.mode }

func (m *mockThemeService) Toggle() domain.ThemeMode {
	m.mode = m.mode.Toggle()
	return m.mode
}

func (m *mockThemeService) Set(mode domain.ThemeMode) domain.ThemeMode {
	m.mode = mode
	return m.mode
}

func (m *mockThemeService) OnApply(_ driving.ThemeApplier) {}

func ndaSnapshot() domain.Snapshot {
	docType := "NDA"
	return domain.Snapshot{
		Phase: domain.PhaseReady,
		Result: &domain.TriageResult{
			DocumentType: &docType,
			Clauses:      []domain.Clause{{Title: "Confidentiality", Body: "Parties shall..."}},
			Risks: []domain.Risk{{
				Level:       domain.RiskHigh,
				RawLevel:    "high",
				Description: "Unlimited term",
				Explanation: "No expiry",
			}},
		},
		View:       domain.ResultViewState(),
		IssuedSeq:  1,
		AppliedSeq: 1,
	}
}
