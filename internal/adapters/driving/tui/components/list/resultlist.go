// Package list renders the classification, clause and risk panels of a
// triage result.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

// Empty-state lines for each tab.
const (
	NoResultText   = "No document analysed yet."
	NoClassText    = "The service did not classify this document."
	NoClausesText  = "No clauses were extracted."
	NoRisksText    = "No risks were flagged."
	BlankClassText = "(blank classification)"
)

// ResultList displays one tab of a triage result in a scrollable panel.
type ResultList struct {
	result   *domain.TriageResult
	tab      domain.Tab
	styles   *styles.Styles
	viewport viewport.Model
	dimmed   bool
	width    int
	height   int
}

// NewResultList creates a new result panel.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	r := &ResultList{
		styles:   s,
		viewport: viewport.New(80, 10),
		width:    80,
		height:   10,
	}
	r.Refresh()
	return r
}

// Init initialises the result panel.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update scrolls the panel.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

// View renders the visible part of the panel.
func (r *ResultList) View() string {
	return r.viewport.View()
}

// Content renders the whole panel, ignoring the scroll position.
func (r *ResultList) Content() string {
	if r.result == nil {
		return r.styles.Muted.Render(NoResultText)
	}

	switch r.tab {
	case domain.TabClauses:
		return r.renderClauses()
	case domain.TabRisks:
		return r.renderRisks()
	default:
		return r.renderClassification()
	}
}

// Refresh re-renders the content after a state or style change.
func (r *ResultList) Refresh() {
	r.viewport.SetContent(r.Content())
}

func (r *ResultList) text() lipgloss.Style {
	if r.dimmed {
		return r.styles.Muted
	}
	return r.styles.Normal
}

func (r *ResultList) heading() lipgloss.Style {
	if r.dimmed {
		return r.styles.Muted.Bold(true)
	}
	return r.styles.Subtitle
}

func (r *ResultList) wrap(s lipgloss.Style, text string, indent int) string {
	w := r.width - indent
	if w < 20 {
		w = 20
	}
	return s.Width(w).Render(text)
}

func (r *ResultList) renderClassification() string {
	lines := []string{r.heading().Render("Document type"), ""}

	switch {
	case !r.result.HasClassification():
		lines = append(lines, r.styles.Muted.Render(NoClassText))
	case r.result.Classification() == "":
		lines = append(lines, r.styles.Muted.Render(BlankClassText))
	default:
		lines = append(lines, r.text().Bold(true).Render(r.result.Classification()))
	}

	summary := fmt.Sprintf("%d clauses extracted, %d risks flagged",
		len(r.result.Clauses), len(r.result.Risks))
	lines = append(lines, "", r.styles.Muted.Render(summary))
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderClauses() string {
	if len(r.result.Clauses) == 0 {
		return r.styles.Muted.Render(NoClausesText)
	}

	blocks := make([]string, 0, len(r.result.Clauses))
	for i, clause := range r.result.Clauses {
		title := clause.Title
		if title == "" {
			title = "Untitled clause"
		}
		header := r.heading().Render(fmt.Sprintf("%d. %s", i+1, title))
		block := header
		if clause.Body != "" {
			block += "\n" + r.wrap(r.text().PaddingLeft(3), clause.Body, 0)
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}

func (r *ResultList) renderRisks() string {
	if !r.result.HasRisks() {
		return r.styles.Success.Render(NoRisksText)
	}

	cards := make([]string, 0, len(r.result.Risks))
	for _, risk := range r.result.Risks {
		cards = append(cards, r.renderRisk(risk))
	}
	return strings.Join(cards, "\n\n")
}

func (r *ResultList) renderRisk(risk domain.Risk) string {
	label := strings.ToUpper(risk.Level.String())
	if risk.Level == domain.RiskUnknown && risk.RawLevel != "" {
		label = strings.ToUpper(risk.RawLevel)
	}

	badge := lipgloss.NewStyle().Bold(true).Foreground(r.styles.RiskColour(risk.Level)).Render(label)
	if r.dimmed {
		badge = r.styles.Muted.Bold(true).Render(label)
	}

	description := risk.Description
	if description == "" {
		description = "Unnamed risk"
	}

	lines := []string{badge + "  " + r.text().Bold(true).Render(description)}
	if risk.Explanation != "" {
		lines = append(lines, r.wrap(r.styles.Muted, risk.Explanation, 4))
	}

	card := r.styles.Risk(risk.Level)
	if r.dimmed {
		card = card.BorderForeground(r.styles.Theme().Muted)
	}
	return card.Render(strings.Join(lines, "\n"))
}

// SetResult replaces the displayed result and scrolls to the top.
func (r *ResultList) SetResult(result *domain.TriageResult) {
	r.result = result
	r.viewport.GotoTop()
	r.Refresh()
}

// Result returns the displayed result.
func (r *ResultList) Result() *domain.TriageResult {
	return r.result
}

// SetTab switches the displayed tab and scrolls to the top.
func (r *ResultList) SetTab(tab domain.Tab) {
	if tab == r.tab {
		return
	}
	r.tab = tab
	r.viewport.GotoTop()
	r.Refresh()
}

// Tab returns the displayed tab.
func (r *ResultList) Tab() domain.Tab {
	return r.tab
}

// SetDimmed renders the panel in muted colours while it fades in.
func (r *ResultList) SetDimmed(dimmed bool) {
	if dimmed == r.dimmed {
		return
	}
	r.dimmed = dimmed
	r.Refresh()
}

// Dimmed returns whether the panel is dimmed.
func (r *ResultList) Dimmed() bool {
	return r.dimmed
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	if height < 1 {
		height = 1
	}
	r.width = width
	r.height = height
	r.viewport.Width = width
	r.viewport.Height = height
	r.Refresh()
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of items on the displayed tab.
func (r *ResultList) Count() int {
	if r.result == nil {
		return 0
	}
	switch r.tab {
	case domain.TabClauses:
		return len(r.result.Clauses)
	case domain.TabRisks:
		return len(r.result.Risks)
	default:
		if r.result.HasClassification() {
			return 1
		}
		return 0
	}
}

// IsEmpty returns whether the displayed tab has no items.
func (r *ResultList) IsEmpty() bool {
	return r.Count() == 0
}
