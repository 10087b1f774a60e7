package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/minairva-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driving"
	"github.com/custodia-labs/minairva-cli/internal/core/services"
)

// stubSubmitter implements services.Submitter for testing.
type stubSubmitter struct {
	SubmitFunc func(ctx context.Context, upload domain.Upload, seq uint64) (*domain.TriageResult, error)
}

func (s *stubSubmitter) Submit(
	ctx context.Context, upload domain.Upload, seq uint64,
) (*domain.TriageResult, error) {
	if s.SubmitFunc != nil {
		return s.SubmitFunc(ctx, upload, seq)
	}
	return &domain.TriageResult{Clauses: []domain.Clause{}, Risks: []domain.Risk{}}, nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings domain.ClientSettings
}

func (m *MockSettingsService) Get() domain.ClientSettings { return m.Settings }

func (m *MockSettingsService) SetAPIURL(url string) error {
	m.Settings.APIURL = url
	return nil
}

func (m *MockSettingsService) SetTimeout(_ string) error { return nil }

func (m *MockSettingsService) SetReducedMotion(reduced bool) error {
	m.Settings.ReducedMotion = reduced
	return nil
}

// Verify mocks implement interfaces.
var (
	_ services.Submitter      = (*stubSubmitter)(nil)
	_ driving.SettingsService = (*MockSettingsService)(nil)
)

func TestNewPorts(t *testing.T) {
	triage := services.NewOrchestrator(&stubSubmitter{})
	theme := services.NewThemeService(memory.NewConfigStore())
	settings := &MockSettingsService{}

	ports := NewPorts(triage, theme, settings)

	require.NotNil(t, ports)
	assert.Equal(t, triage, ports.Triage)
	assert.Equal(t, theme, ports.Theme)
	assert.Equal(t, settings, ports.Settings)
}

func TestPorts_Validate_Success(t *testing.T) {
	ports := &Ports{
		Triage: services.NewOrchestrator(&stubSubmitter{}),
		Theme:  services.NewThemeService(memory.NewConfigStore()),
	}

	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_SettingsOptional(t *testing.T) {
	ports := NewPorts(
		services.NewOrchestrator(&stubSubmitter{}),
		services.NewThemeService(memory.NewConfigStore()),
		nil,
	)

	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_MissingTriage(t *testing.T) {
	ports := &Ports{
		Theme: services.NewThemeService(memory.NewConfigStore()),
	}

	assert.ErrorIs(t, ports.Validate(), ErrMissingTriageService)
}

func TestPorts_Validate_MissingTheme(t *testing.T) {
	ports := &Ports{
		Triage: services.NewOrchestrator(&stubSubmitter{}),
	}

	assert.ErrorIs(t, ports.Validate(), ErrMissingThemeService)
}

func TestPorts_Validate_Nil(t *testing.T) {
	var ports *Ports

	assert.ErrorIs(t, ports.Validate(), ErrInvalidPorts)
}
