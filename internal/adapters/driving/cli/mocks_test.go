package cli

import (
	"context"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driving"
)

// MockTriageService implements driving.TriageOrchestrator for testing.
type MockTriageService struct {
	SubmitFunc func(ctx context.Context, upload domain.Upload) (domain.Snapshot, error)
	Submitted  []domain.Upload
	mu         sync.Mutex
}

func (m *MockTriageService) Submit(ctx context.Context, upload domain.Upload) (domain.Snapshot, error) {
	m.mu.Lock()
	m.Submitted = append(m.Submitted, upload)
	m.mu.Unlock()
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, upload)
	}
	return domain.Snapshot{}, nil
}

func (m *MockTriageService) SelectTab(tab domain.Tab) (domain.Snapshot, error) {
	return domain.Snapshot{View: domain.ViewState{ActiveTab: tab}}, nil
}

func (m *MockTriageService) Snapshot() domain.Snapshot {
	return domain.Snapshot{}
}

func (m *MockTriageService) Subscribe(buffer int) (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, buffer)
	return ch, func() {}
}

// MockThemeService implements driving.ThemeService for testing.
type MockThemeService struct {
	Mode domain.ThemeMode
}

func (m *MockThemeService) Get() domain.ThemeMode {
	if m.Mode == "" {
		return domain.DefaultThemeMode
	}
	return m.Mode
}

func (m *MockThemeService) Toggle() domain.ThemeMode {
	m.Mode = m.Get().Toggle()
	return m.Mode
}

func (m *MockThemeService) Set(mode domain.ThemeMode) domain.ThemeMode {
	m.Mode = mode
	return m.Mode
}

func (m *MockThemeService) OnApply(fn driving.ThemeApplier) {
	fn(m.Get())
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings domain.ClientSettings
	Err      error
}

func (m *MockSettingsService) Get() domain.ClientSettings { return m.Settings }

func (m *MockSettingsService) SetAPIURL(url string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Settings.APIURL = url
	return nil
}

func (m *MockSettingsService) SetTimeout(_ string) error {
	return m.Err
}

func (m *MockSettingsService) SetReducedMotion(reduced bool) error {
	if m.Err != nil {
		return m.Err
	}
	m.Settings.ReducedMotion = reduced
	return nil
}

// Verify mocks implement interfaces.
var (
	_ driving.TriageOrchestrator = (*MockTriageService)(nil)
	_ driving.ThemeService       = (*MockThemeService)(nil)
	_ driving.SettingsService    = (*MockSettingsService)(nil)
)

func strPtr(s string) *string { return &s }

func ndaSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Phase: domain.PhaseReady,
		Result: &domain.TriageResult{
			DocumentType: strPtr("NDA"),
			Clauses: []domain.Clause{
				{Title: "Confidentiality", Body: "Keep it secret."},
				{Title: "Term", Body: "Two years."},
			},
			Risks: []domain.Risk{
				{Level: domain.RiskHigh, RawLevel: "high", Description: "Unlimited term",
					Explanation: "No end date."},
			},
		},
		View:       domain.ResultViewState(),
		IssuedSeq:  1,
		AppliedSeq: 1,
	}
}

// setupTestServices installs mock services and returns a cleanup function
// that restores the previous services and resets flag state.
func setupTestServices() (*MockTriageService, *MockThemeService, *MockSettingsService, func()) {
	oldTriage, oldTheme, oldSettings := triageService, themeService, settingsService
	oldLogPath, oldClose, oldBootstrap := tuiLogPath, closeServices, bootstrap

	triage := &MockTriageService{
		SubmitFunc: func(context.Context, domain.Upload) (domain.Snapshot, error) {
			return ndaSnapshot(), nil
		},
	}
	theme := &MockThemeService{}
	settings := &MockSettingsService{Settings: domain.DefaultClientSettings()}

	SetServices(&Services{Triage: triage, Theme: theme, Settings: settings})
	bootstrap = nil

	return triage, theme, settings, func() {
		triageService, themeService, settingsService = oldTriage, oldTheme, oldSettings
		tuiLogPath, closeServices, bootstrap = oldLogPath, oldClose, oldBootstrap
		resetFlags()
	}
}

// resetFlags restores flag variables, which persist between Execute calls.
func resetFlags() {
	verboseFlag = false
	apiURLFlag = ""
	timeoutFlag = ""
	configDirFlag = ""
	prefsBackendFlag = ""
	submitJSON = false
	watchDebounce = watch.DefaultDebounce
	rootCmd.SetArgs(nil)
	rootCmd.SetContext(context.Background())
	resetHelp(rootCmd)
}

// resetHelp clears --help on cmd and its subcommands. Cobra keeps a parsed
// help flag set, so a later run would print help instead of executing.
func resetHelp(cmd *cobra.Command) {
	if f := cmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
	for _, sub := range cmd.Commands() {
		resetHelp(sub)
	}
}
