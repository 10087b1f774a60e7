package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/minairva-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/services"
)

func strPtr(s string) *string { return &s }

func ndaResult() *domain.TriageResult {
	return &domain.TriageResult{
		DocumentType: strPtr("NDA"),
		Clauses: []domain.Clause{
			{Title: "Confidentiality", Body: "Each party keeps the other's information secret."},
			{Title: "Term", Body: "This agreement lasts two years."},
		},
		Risks: []domain.Risk{
			{Level: domain.RiskHigh, RawLevel: "high", Description: "Unlimited term"},
		},
	}
}

type testEnv struct {
	app   *App
	orch  *services.Orchestrator
	store *memory.ConfigStore
}

func newTestEnv(t *testing.T, submitter *stubSubmitter) *testEnv {
	t.Helper()
	store := memory.NewConfigStore()
	orch := services.NewOrchestrator(submitter)
	ports := NewPorts(orch, services.NewThemeService(store), nil)

	app, err := NewApp(ports)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	return &testEnv{app: app, orch: orch, store: store}
}

func succeeding(result *domain.TriageResult) *stubSubmitter {
	return &stubSubmitter{
		SubmitFunc: func(context.Context, domain.Upload, uint64) (*domain.TriageResult, error) {
			return result, nil
		},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// submitAndDeliver runs a submission to completion the way the program loop
// would, then feeds every pending orchestrator event into the app.
func submitAndDeliver(t *testing.T, env *testEnv, path string) {
	t.Helper()
	msg := submitCmd(context.Background(), env.orch, domain.NewUpload(path))()
	_, ok := msg.(messages.SubmitCompleted)
	require.True(t, ok, "expected SubmitCompleted, got %T", msg)
	env.app.Update(msg)
	drainEvents(env.app)
}

func drainEvents(app *App) {
	for {
		select {
		case ev, ok := <-app.events:
			if !ok {
				return
			}
			app.Update(messages.OrchestratorEvent{Event: ev})
		default:
			return
		}
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewApp_Success(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})

	app := env.app
	assert.Equal(t, domain.PhaseIdle, app.Snapshot().Phase)
	assert.Equal(t, domain.TabClassification, app.ActiveTab())
	assert.Equal(t, messages.StageHidden, app.Stage())
	assert.True(t, app.InputFocused())
	assert.False(t, app.Ready())
	assert.NoError(t, app.Err())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{name: "nil ports", ports: nil, want: ErrInvalidPorts},
		{
			name:  "missing triage",
			ports: &Ports{Theme: services.NewThemeService(memory.NewConfigStore())},
			want:  ErrMissingTriageService,
		},
		{
			name:  "missing theme",
			ports: &Ports{Triage: services.NewOrchestrator(&stubSubmitter{})},
			want:  ErrMissingThemeService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := NewApp(tt.ports)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, app)
		})
	}
}

func TestNewApp_AppliesStoredTheme(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, store.SetPreference(services.KeyTheme, "dark"))

	app, err := NewApp(NewPorts(
		services.NewOrchestrator(&stubSubmitter{}),
		services.NewThemeService(store),
		nil,
	))
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, domain.ThemeDark, app.ThemeMode())
}

func TestNewApp_ReducedMotionFromSettings(t *testing.T) {
	settings := &MockSettingsService{Settings: domain.DefaultClientSettings()}
	settings.Settings.ReducedMotion = true

	app, err := NewApp(NewPorts(
		services.NewOrchestrator(&stubSubmitter{}),
		services.NewThemeService(memory.NewConfigStore()),
		settings,
	))
	require.NoError(t, err)
	defer app.Close()

	assert.True(t, app.Stage().Final())
}

func TestApp_WithContext(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := env.app.WithContext(ctx)

	assert.Equal(t, env.app, result)
	assert.Equal(t, ctx, env.app.ctx)
}

func TestApp_SubmitUsesContext(t *testing.T) {
	type contextKey string
	var seen context.Context
	env := newTestEnv(t, &stubSubmitter{
		SubmitFunc: func(ctx context.Context, _ domain.Upload, _ uint64) (*domain.TriageResult, error) {
			seen = ctx
			return ndaResult(), nil
		},
	})
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	env.app.WithContext(ctx)

	msg := submitCmd(env.app.ctx, env.orch, domain.NewUpload("/tmp/nda.txt"))()
	env.app.Update(msg)

	require.NotNil(t, seen)
	assert.Equal(t, "value", seen.Value(contextKey("key")))
}

func TestApp_Init(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})

	assert.NotNil(t, env.app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})

	assert.Equal(t, "Initialising...", env.app.View())
}

func TestApp_WindowSize(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})

	model, cmd := env.app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, env.app, model)
	assert.Nil(t, cmd)
	assert.True(t, env.app.Ready())
	assert.Equal(t, 120, env.app.width)
	assert.Equal(t, 40, env.app.height)
}

func TestApp_EntranceAnimation(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app
	app.SetDimensions(120, 40)

	assert.NotContains(t, app.View(), Wordmark)

	_, cmd := app.Update(messages.RevealTick{Stage: messages.StageHeader})
	assert.NotNil(t, cmd)
	assert.Equal(t, messages.StageHeader, app.Stage())
	view := app.View()
	assert.Contains(t, view, Wordmark)
	assert.NotContains(t, view, "dark mode")
	assert.NotContains(t, view, Copyright)

	app.Update(messages.RevealTick{Stage: messages.StageToggle})
	assert.Contains(t, app.View(), "[t] dark mode")

	app.Update(messages.RevealTick{Stage: messages.StageCards})
	view = app.View()
	assert.Contains(t, view, "Document:")
	assert.Contains(t, view, "How it works")
	assert.Contains(t, view, "Typical outputs")

	_, cmd = app.Update(messages.RevealTick{Stage: messages.StageFooter})
	assert.Nil(t, cmd)
	assert.True(t, app.Stage().Final())
	assert.Contains(t, app.View(), Copyright)
}

func TestApp_RevealTick_NeverGoesBack(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})

	env.app.Update(messages.RevealTick{Stage: messages.StageCards})
	env.app.Update(messages.RevealTick{Stage: messages.StageHeader})

	assert.Equal(t, messages.StageCards, env.app.Stage())
}

func TestApp_WithReducedMotion(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app.WithReducedMotion(true)
	app.SetDimensions(120, 40)

	view := app.View()
	assert.Contains(t, view, Wordmark)
	assert.Contains(t, view, Copyright)

	submitAndDeliver(t, &testEnv{app: app, orch: env.orch}, "/tmp/nda.txt")
	assert.False(t, app.Fading())
}

func TestApp_SubmitInstallsResult(t *testing.T) {
	env := newTestEnv(t, succeeding(ndaResult()))
	app := env.app.WithReducedMotion(true)
	app.SetDimensions(120, 40)

	submitAndDeliver(t, env, "/tmp/nda.txt")

	snap := app.Snapshot()
	assert.Equal(t, domain.PhaseReady, snap.Phase)
	require.True(t, snap.HasResult())
	assert.Equal(t, "NDA", snap.Result.Classification())
	assert.Equal(t, domain.TabClassification, app.ActiveTab())
	assert.Equal(t, status.StateResults, app.statusBar.State())

	clauses, risks := app.statusBar.Counts()
	assert.Equal(t, 2, clauses)
	assert.Equal(t, 1, risks)

	view := app.View()
	assert.Contains(t, view, "NDA")
	assert.Contains(t, view, "Clauses (2)")
	assert.Contains(t, view, "Risks (1)")
	assert.NotContains(t, view, "How it works")
}

func TestApp_ResultFadesIn(t *testing.T) {
	env := newTestEnv(t, succeeding(ndaResult()))
	app := env.app
	app.SetDimensions(120, 40)

	submitAndDeliver(t, env, "/tmp/nda.txt")

	require.True(t, app.Fading())
	seq := app.Snapshot().AppliedSeq

	_, cmd := app.Update(messages.FadeTick{Seq: seq, Step: 1})
	assert.NotNil(t, cmd)
	assert.True(t, app.Fading())

	_, cmd = app.Update(messages.FadeTick{Seq: seq + 10, Step: fadeSteps})
	assert.Nil(t, cmd)
	assert.True(t, app.Fading(), "tick for another result is ignored")

	_, cmd = app.Update(messages.FadeTick{Seq: seq, Step: fadeSteps})
	assert.Nil(t, cmd)
	assert.False(t, app.Fading())
}

func TestApp_FailureKeepsPreviousResult(t *testing.T) {
	calls := 0
	env := newTestEnv(t, &stubSubmitter{
		SubmitFunc: func(context.Context, domain.Upload, uint64) (*domain.TriageResult, error) {
			calls++
			if calls == 1 {
				return ndaResult(), nil
			}
			return nil, domain.NewServiceError(500, "")
		},
	})
	app := env.app.WithReducedMotion(true)
	app.SetDimensions(120, 40)

	submitAndDeliver(t, env, "/tmp/nda.txt")
	submitAndDeliver(t, env, "/tmp/lease.txt")

	snap := app.Snapshot()
	assert.Equal(t, domain.PhaseFailed, snap.Phase)
	require.True(t, snap.HasResult())
	assert.Equal(t, "NDA", snap.Result.Classification())
	assert.Equal(t, status.StateError, app.statusBar.State())
	assert.Contains(t, app.statusBar.Message(), "HTTP 500")

	view := app.View()
	assert.Contains(t, view, "NDA")
	assert.Contains(t, view, "HTTP 500")
}

func TestApp_SubmittingShowsPendingName(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app

	app.Update(messages.SubmitRequested{Upload: domain.NewUpload("/docs/contract.pdf")})
	// Simulate the orchestrator entering Submitting before the response.
	app.sync(domain.Snapshot{Phase: domain.PhaseSubmitting, InFlight: 1, IssuedSeq: 1})

	assert.Equal(t, status.StateSubmitting, app.statusBar.State())
	assert.Equal(t, "contract.pdf", app.statusBar.Message())
}

func TestApp_SubmitCompletedSyncsCurrentState(t *testing.T) {
	env := newTestEnv(t, succeeding(ndaResult()))
	app := env.app

	_, _ = env.orch.Submit(context.Background(), domain.NewUpload("/tmp/nda.txt"))

	// A completion carrying an older snapshot must not roll the view back.
	app.Update(messages.SubmitCompleted{
		Upload:   domain.NewUpload("/tmp/old.txt"),
		Snapshot: domain.Snapshot{Phase: domain.PhaseSubmitting},
		Err:      domain.ErrStaleResponse,
	})

	assert.Equal(t, domain.PhaseReady, app.Snapshot().Phase)
	assert.True(t, app.Snapshot().HasResult())
}

func TestApp_TypingAndEnterSubmits(t *testing.T) {
	env := newTestEnv(t, succeeding(ndaResult()))
	app := env.app
	require.True(t, app.InputFocused())

	app.Update(keyRunes("/tmp/nda.txt"))
	assert.Equal(t, "/tmp/nda.txt", app.input.Value())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Empty(t, app.input.Value(), "drop zone is cleared after submit")
	assert.Equal(t, "nda.txt", app.pending)
	assert.NoError(t, app.Err())
}

func TestApp_EnterOnEmptyDropZone(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, app.Err(), ErrNoPath)
	assert.Equal(t, status.StateError, app.statusBar.State())
	assert.Equal(t, 0, int(env.orch.Snapshot().IssuedSeq))
}

func TestApp_TypingClearsLocalError(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app

	app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Error(t, app.Err())

	app.Update(keyRunes("a"))

	assert.NoError(t, app.Err())
}

func TestApp_FocusedInputCapturesQ(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app

	app.Update(keyRunes("q"))

	assert.Equal(t, "q", app.input.Value())
}

func TestApp_EscBlursAndQQuits(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, app.InputFocused())

	_, cmd = app.Update(keyRunes("q"))
	assert.True(t, isQuit(cmd))
}

func TestApp_CtrlCQuitsWhileFocused(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	require.True(t, env.app.InputFocused())

	_, cmd := env.app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, isQuit(cmd))
}

func TestApp_QuitMessage(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})

	_, cmd := env.app.Update(messages.Quit{})

	assert.True(t, isQuit(cmd))
}

func TestApp_FocusKeys(t *testing.T) {
	for _, k := range []string{"/", "i"} {
		t.Run(k, func(t *testing.T) {
			env := newTestEnv(t, &stubSubmitter{})
			app := env.app
			app.Update(tea.KeyMsg{Type: tea.KeyEsc})
			require.False(t, app.InputFocused())

			app.Update(keyRunes(k))

			assert.True(t, app.InputFocused())
			assert.Empty(t, app.input.Value())
		})
	}
}

func TestApp_EnterWhenBlurredAndEmptyFocuses(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, app.InputFocused())
	assert.NoError(t, app.Err())
}

func TestApp_TabSelection(t *testing.T) {
	env := newTestEnv(t, succeeding(ndaResult()))
	app := env.app.WithReducedMotion(true)
	app.SetDimensions(120, 40)
	submitAndDeliver(t, env, "/tmp/nda.txt")
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	app.Update(keyRunes("3"))
	assert.Equal(t, domain.TabRisks, app.ActiveTab())
	assert.Equal(t, domain.TabRisks, env.orch.Snapshot().View.ActiveTab)
	assert.Contains(t, app.View(), "Unlimited term")

	app.Update(keyRunes("2"))
	assert.Equal(t, domain.TabClauses, app.ActiveTab())
	assert.Contains(t, app.View(), "Confidentiality")

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.TabRisks, app.ActiveTab())

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.TabClassification, app.ActiveTab(), "tab wraps around")

	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, domain.TabRisks, app.ActiveTab())

	app.Update(keyRunes("1"))
	assert.Equal(t, domain.TabClassification, app.ActiveTab())
}

func TestApp_TabKeysWhileFocused(t *testing.T) {
	env := newTestEnv(t, succeeding(ndaResult()))
	app := env.app
	submitAndDeliver(t, env, "/tmp/nda.txt")
	require.True(t, app.InputFocused())

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.TabClauses, app.ActiveTab())

	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, domain.TabClassification, app.ActiveTab())
}

func TestApp_TabsLockedBeforeResult(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	app.Update(keyRunes("2"))
	app.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, domain.TabClassification, app.ActiveTab())
	assert.NoError(t, app.Err())
}

func TestApp_NewResultResetsTab(t *testing.T) {
	env := newTestEnv(t, succeeding(ndaResult()))
	app := env.app
	submitAndDeliver(t, env, "/tmp/nda.txt")
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app.Update(keyRunes("3"))
	require.Equal(t, domain.TabRisks, app.ActiveTab())

	submitAndDeliver(t, env, "/tmp/lease.txt")

	assert.Equal(t, domain.TabClassification, app.ActiveTab())
}

func TestApp_ToggleTheme(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, domain.ThemeLight, app.ThemeMode())

	app.Update(keyRunes("t"))

	assert.Equal(t, domain.ThemeDark, app.ThemeMode())
	stored, ok, err := env.store.GetPreference(services.KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", stored)

	app.Update(keyRunes("t"))
	assert.Equal(t, domain.ThemeLight, app.ThemeMode())
}

func TestApp_ToggleThemeWhileFocused(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app
	require.True(t, app.InputFocused())

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	assert.Equal(t, domain.ThemeDark, app.ThemeMode())
	assert.Empty(t, app.input.Value())
}

func TestApp_ThemeLabel(t *testing.T) {
	assert.Equal(t, "[t] dark mode", themeLabel(domain.ThemeLight))
	assert.Equal(t, "[t] light mode", themeLabel(domain.ThemeDark))
}

func TestApp_ThemeChangedMessage(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})

	env.app.Update(messages.ThemeChanged{Mode: domain.ThemeDark})

	assert.Equal(t, domain.ThemeDark, env.app.ThemeMode())
}

func TestApp_ErrorOccurred(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	boom := errors.New("boom")

	env.app.Update(messages.ErrorOccurred{Err: boom})

	assert.ErrorIs(t, env.app.Err(), boom)
	assert.Equal(t, status.StateError, env.app.statusBar.State())
}

func TestApp_SpinnerStopsWhenIdle(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app
	app.spinning = true

	_, cmd := app.Update(app.spinner.Tick())

	assert.Nil(t, cmd)
	assert.False(t, app.spinning)
}

func TestApp_EventsClosed(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})
	app := env.app

	app.Close()
	msg := app.waitForEvent()()
	assert.IsType(t, messages.EventsClosed{}, msg)

	app.Update(msg)
	assert.Nil(t, app.waitForEvent())
}

func TestApp_CloseIsIdempotent(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})

	assert.NotPanics(t, func() {
		env.app.Close()
		env.app.Close()
	})
}

func TestApp_SetDimensions(t *testing.T) {
	env := newTestEnv(t, &stubSubmitter{})

	env.app.SetDimensions(100, 30)

	assert.True(t, env.app.Ready())
	assert.Equal(t, 100, env.app.results.Width())
	assert.Equal(t, 100, env.app.statusBar.Width())
}
