package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driving"
	"github.com/custodia-labs/minairva-cli/internal/logger"
)

// Landing screen copy.
const (
	Wordmark  = "MINAIRVA"
	Tagline   = "Legal document triage"
	Copyright = "© 2026 BY BLUE LABS"
)

const (
	// revealInterval is the delay between entrance animation stages.
	revealInterval = 120 * time.Millisecond

	// fadeInterval is the delay between result fade-in steps.
	fadeInterval = 90 * time.Millisecond

	// fadeSteps is the number of ticks a new result stays dimmed.
	fadeSteps = 3

	// eventBuffer is the orchestrator subscription buffer.
	eventBuffer = 16
)

// infoCards are shown on the landing screen until the first result arrives.
var infoCards = []struct {
	title string
	lines []string
}{
	{
		title: "How it works",
		lines: []string{
			"1. Drop a contract or paste its path",
			"2. The text is extracted and sent for analysis",
			"3. Review the classification, clauses and risks",
		},
	},
	{
		title: "Typical outputs",
		lines: []string{
			"Document type: NDA, lease, employment",
			"Key clauses: confidentiality, termination",
			"Risk flags graded high, medium and low",
		},
	},
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for submissions.
	ctx context.Context

	// styles holds the TUI styles. Theme changes swap it in place.
	styles *styles.Styles

	keymap    *keymap.KeyMap
	input     *input.PathInput
	results   *list.ResultList
	statusBar *status.Bar
	spinner   spinner.Model
	spinning  bool

	// events receives orchestrator state changes.
	events      <-chan domain.Event
	unsubscribe func()

	// snapshot is the last orchestrator state rendered.
	snapshot domain.Snapshot

	// shownSeq is the sequence number of the result in the panel.
	shownSeq uint64

	// pending is the display name of the newest submission.
	pending string

	// stage is the entrance animation progress.
	stage messages.Stage

	reducedMotion bool

	// fadeSeq is the result currently fading in, zero when none.
	fadeSeq uint64

	// err holds the last local error, such as an empty drop zone.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		input:     input.NewPathInput(s),
		results:   list.NewResultList(s),
		statusBar: status.NewBar(s, km),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		stage:     messages.StageHidden,
	}

	if ports.Settings != nil {
		a.reducedMotion = ports.Settings.Get().ReducedMotion
	}
	if a.reducedMotion {
		a.stage = messages.StageFooter
	}

	// OnApply fires once now with the stored mode.
	ports.Theme.OnApply(a.applyTheme)

	a.events, a.unsubscribe = ports.Triage.Subscribe(eventBuffer)
	a.sync(ports.Triage.Snapshot())
	a.statusBar.SetInputFocused(a.input.Focused())

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithReducedMotion disables the entrance animation and result fade-in.
func (a *App) WithReducedMotion(reduced bool) *App {
	a.reducedMotion = reduced
	if reduced {
		a.stage = messages.StageFooter
	}
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("minairva - " + Tagline),
		a.input.Init(),
		a.waitForEvent(),
	}
	if !a.stage.Final() {
		cmds = append(cmds, revealTick(a.stage+1))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.SubmitRequested:
		return a, a.submit(msg.Upload)

	case messages.SubmitCompleted:
		if msg.Err != nil && !errors.Is(msg.Err, domain.ErrStaleResponse) {
			logger.Debug("tui: submission of %s failed: %v", msg.Upload.DisplayName(), msg.Err)
		}
		a.sync(a.ports.Triage.Snapshot())
		return a, nil

	case messages.OrchestratorEvent:
		return a, tea.Batch(a.handleEvent(msg.Event), a.waitForEvent())

	case messages.EventsClosed:
		a.events = nil
		return a, nil

	case messages.RevealTick:
		if msg.Stage > a.stage {
			a.stage = msg.Stage
		}
		if a.stage.Final() {
			return a, nil
		}
		return a, revealTick(a.stage + 1)

	case messages.FadeTick:
		if msg.Seq != a.fadeSeq {
			return a, nil
		}
		if msg.Step >= fadeSteps {
			a.fadeSeq = 0
			a.results.SetDimmed(false)
			return a, nil
		}
		return a, fadeTick(msg.Seq, msg.Step+1)

	case spinner.TickMsg:
		if a.snapshot.Phase != domain.PhaseSubmitting {
			a.spinning = false
			a.statusBar.SetSpinner("")
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.statusBar.SetSpinner(a.spinner.View())
		return a, cmd

	case messages.ThemeChanged:
		a.applyTheme(msg.Mode)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.refreshStatus()
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the drop zone (cursor blink).
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKey routes a key press. While the drop zone has focus most keys
// are typed into it.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := a.keymap

	if key.Matches(msg, km.ForceQuit) {
		return a, tea.Quit
	}

	if a.input.Focused() {
		switch msg.String() {
		case "enter":
			return a, a.submitInput()
		case "esc":
			a.input.Blur()
			a.statusBar.SetInputFocused(false)
			return a, nil
		case "tab":
			a.selectTab(a.snapshot.View.Next().ActiveTab)
			return a, nil
		case "shift+tab":
			a.selectTab(a.snapshot.View.Prev().ActiveTab)
			return a, nil
		case "ctrl+t":
			a.ports.Theme.Toggle()
			return a, nil
		}
		a.err = nil
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, km.Quit):
		return a, tea.Quit
	case key.Matches(msg, km.ToggleTheme):
		a.ports.Theme.Toggle()
	case key.Matches(msg, km.Focus):
		a.statusBar.SetInputFocused(true)
		return a, a.input.Focus()
	case key.Matches(msg, km.Submit):
		if a.input.Value() == "" {
			a.statusBar.SetInputFocused(true)
			return a, a.input.Focus()
		}
		return a, a.submitInput()
	case key.Matches(msg, km.NextTab):
		a.selectTab(a.snapshot.View.Next().ActiveTab)
	case key.Matches(msg, km.PrevTab):
		a.selectTab(a.snapshot.View.Prev().ActiveTab)
	case key.Matches(msg, km.Classification):
		a.selectTab(domain.TabClassification)
	case key.Matches(msg, km.Clauses):
		a.selectTab(domain.TabClauses)
	case key.Matches(msg, km.Risks):
		a.selectTab(domain.TabRisks)
	default:
		var cmd tea.Cmd
		a.results, cmd = a.results.Update(msg)
		return a, cmd
	}
	return a, nil
}

// submitInput submits the path in the drop zone.
func (a *App) submitInput() tea.Cmd {
	upload, ok := a.input.Upload()
	if !ok {
		a.err = ErrNoPath
		a.refreshStatus()
		return nil
	}
	a.input.Reset()
	return a.submit(upload)
}

// submit starts an asynchronous submission.
func (a *App) submit(upload domain.Upload) tea.Cmd {
	a.err = nil
	a.pending = upload.DisplayName()
	logger.Debug("tui: submitting %s", upload.Path)

	cmds := []tea.Cmd{submitCmd(a.ctx, a.ports.Triage, upload)}
	if !a.spinning {
		a.spinning = true
		cmds = append(cmds, a.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// handleEvent applies an orchestrator event. Events may be delivered after
// a later SubmitCompleted, so rendering always uses the current snapshot.
func (a *App) handleEvent(ev domain.Event) tea.Cmd {
	a.sync(a.ports.Triage.Snapshot())

	switch ev.Type {
	case domain.EventSubmitting:
		if !a.spinning {
			a.spinning = true
			return a.spinner.Tick
		}
	case domain.EventResultInstalled:
		if a.reducedMotion {
			return nil
		}
		a.fadeSeq = ev.Seq
		a.results.SetDimmed(true)
		return fadeTick(ev.Seq, 1)
	case domain.EventSubmissionFailed, domain.EventStaleDiscarded, domain.EventTabSelected:
		// Rendering follows the snapshot.
	}
	return nil
}

// selectTab asks the orchestrator to switch tabs.
func (a *App) selectTab(tab domain.Tab) {
	snap, err := a.ports.Triage.SelectTab(tab)
	if err != nil {
		a.err = err
		a.refreshStatus()
		return
	}
	a.sync(snap)
}

// sync renders from an orchestrator snapshot.
func (a *App) sync(snap domain.Snapshot) {
	a.snapshot = snap
	if snap.AppliedSeq != a.shownSeq || (snap.Result == nil) != (a.results.Result() == nil) {
		a.shownSeq = snap.AppliedSeq
		a.results.SetResult(snap.Result)
	}
	a.results.SetTab(snap.View.ActiveTab)
	a.refreshStatus()
}

// refreshStatus derives the status bar from the snapshot and local error.
func (a *App) refreshStatus() {
	bar := a.statusBar
	if a.err != nil {
		bar.SetState(status.StateError)
		bar.SetMessage(a.err.Error())
		return
	}

	switch a.snapshot.Phase {
	case domain.PhaseSubmitting:
		bar.SetState(status.StateSubmitting)
		bar.SetMessage(a.pending)
	case domain.PhaseFailed:
		bar.SetState(status.StateError)
		bar.SetMessage(a.snapshot.LastError.UserMessage())
	case domain.PhaseReady:
		bar.SetState(status.StateResults)
		bar.SetMessage("")
		if r := a.snapshot.Result; r != nil {
			bar.SetCounts(len(r.Clauses), len(r.Risks))
		}
	default:
		bar.Clear()
	}
}

// applyTheme swaps the shared palette. Called by the theme service.
func (a *App) applyTheme(mode domain.ThemeMode) {
	a.styles.Apply(mode)
	if a.results != nil {
		a.results.Refresh()
	}
}

// waitForEvent returns a command that delivers the next orchestrator event.
func (a *App) waitForEvent() tea.Cmd {
	events := a.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return messages.EventsClosed{}
		}
		return messages.OrchestratorEvent{Event: ev}
	}
}

func submitCmd(ctx context.Context, orch driving.TriageOrchestrator, upload domain.Upload) tea.Cmd {
	return func() tea.Msg {
		snap, err := orch.Submit(ctx, upload)
		return messages.SubmitCompleted{Upload: upload, Snapshot: snap, Err: err}
	}
}

func revealTick(stage messages.Stage) tea.Cmd {
	return tea.Tick(revealInterval, func(time.Time) tea.Msg {
		return messages.RevealTick{Stage: stage}
	})
}

func fadeTick(seq uint64, step int) tea.Cmd {
	return tea.Tick(fadeInterval, func(time.Time) tea.Msg {
		return messages.FadeTick{Seq: seq, Step: step}
	})
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	if a.stage >= messages.StageHeader {
		sections = append(sections, a.viewHeader(), "")
	}
	if a.stage >= messages.StageDropZone {
		sections = append(sections, a.input.View(), "")
	}
	if a.snapshot.HasResult() {
		sections = append(sections, a.viewTabs(), a.results.View())
	} else if a.stage >= messages.StageCards {
		sections = append(sections, a.viewCards())
	}

	body := strings.Join(sections, "\n")

	footer := a.statusBar.View()
	if a.stage >= messages.StageFooter {
		footer += "\n" + a.styles.Footer.Width(a.width).Align(lipgloss.Center).Render(Copyright)
	}

	gap := a.height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + footer
}

// viewHeader renders the wordmark and, once revealed, the theme toggle.
func (a *App) viewHeader() string {
	left := a.styles.Wordmark.Render(Wordmark) + a.styles.Muted.Render(Tagline)
	if a.stage < messages.StageToggle {
		return left
	}

	right := a.styles.Muted.Render(themeLabel(a.ports.Theme.Get()))
	padding := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + right
}

// themeLabel names the mode the toggle switches to.
func themeLabel(mode domain.ThemeMode) string {
	if mode.IsDark() {
		return "[t] light mode"
	}
	return "[t] dark mode"
}

// viewTabs renders the result tab strip.
func (a *App) viewTabs() string {
	tabs := domain.Tabs()
	rendered := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		label := fmt.Sprintf("%d %s", i+1, tab)
		if r := a.snapshot.Result; r != nil {
			switch tab {
			case domain.TabClauses:
				label += fmt.Sprintf(" (%d)", len(r.Clauses))
			case domain.TabRisks:
				label += fmt.Sprintf(" (%d)", len(r.Risks))
			case domain.TabClassification:
			}
		}
		style := a.styles.Tab
		if tab == a.snapshot.View.ActiveTab {
			style = a.styles.ActiveTab
		}
		rendered = append(rendered, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// viewCards renders the landing info cards side by side.
func (a *App) viewCards() string {
	width := (a.width - 6) / len(infoCards)
	if width < 30 {
		width = 30
	}

	cards := make([]string, 0, len(infoCards))
	for _, c := range infoCards {
		content := a.styles.Subtitle.Render(c.title) + "\n" +
			a.styles.Normal.Render(strings.Join(c.lines, "\n"))
		cards = append(cards, a.styles.Card.Width(width).Render(content))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close stops the orchestrator subscription.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// Snapshot returns the last rendered orchestrator state.
func (a *App) Snapshot() domain.Snapshot {
	return a.snapshot
}

// ActiveTab returns the displayed result tab.
func (a *App) ActiveTab() domain.Tab {
	return a.results.Tab()
}

// Stage returns the entrance animation progress.
func (a *App) Stage() messages.Stage {
	return a.stage
}

// Fading reports whether the result panel is fading in.
func (a *App) Fading() bool {
	return a.results.Dimmed()
}

// InputFocused returns whether the drop zone has focus.
func (a *App) InputFocused() bool {
	return a.input.Focused()
}

// ThemeMode returns the palette currently rendered.
func (a *App) ThemeMode() domain.ThemeMode {
	return a.styles.Theme().Mode
}

// Err returns the last local error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and lays out the components.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.SetWidth(width)
	a.statusBar.SetWidth(width)

	// Header, drop zone, tab strip, status bar, footer and gaps.
	const chrome = 11
	a.results.SetDimensions(width, height-chrome)
}
