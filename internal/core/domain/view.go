package domain

// Tab identifies a result panel.
type Tab int

// Result tabs in display order.
const (
	// TabClassification shows the document type. It is the default tab.
	TabClassification Tab = iota
	// TabClauses lists extracted clauses.
	TabClauses
	// TabRisks lists flagged risks.
	TabRisks
)

// Tabs returns every tab in display order.
func Tabs() []Tab {
	return []Tab{TabClassification, TabClauses, TabRisks}
}

// IsValid returns true if the tab is recognised.
func (t Tab) IsValid() bool {
	return t >= TabClassification && t <= TabRisks
}

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabClassification:
		return "Classification"
	case TabClauses:
		return "Clauses"
	case TabRisks:
		return "Risks"
	default:
		return "Unknown"
	}
}

// ViewState is the active result tab plus whether a result exists.
type ViewState struct {
	ActiveTab Tab
	HasResult bool
}

// Select returns the state after selecting tab.
// Clauses and Risks cannot be selected until a result exists; doing so is a
// no-op and the second return value is false.
func (v ViewState) Select(tab Tab) (ViewState, bool, error) {
	if !tab.IsValid() {
		return v, false, ErrInvalidTab
	}
	if tab != TabClassification && !v.HasResult {
		return v, false, nil
	}
	if v.ActiveTab == tab {
		return v, false, nil
	}
	v.ActiveTab = tab
	return v, true, nil
}

// Next returns the state after moving one tab to the right, wrapping around.
func (v ViewState) Next() ViewState {
	next, _, _ := v.Select(Tab((int(v.ActiveTab) + 1) % len(Tabs())))
	return next
}

// Prev returns the state after moving one tab to the left, wrapping around.
func (v ViewState) Prev() ViewState {
	n := len(Tabs())
	prev, _, _ := v.Select(Tab((int(v.ActiveTab) + n - 1) % n))
	return prev
}

// ResultViewState is the state right after a new result is installed.
func ResultViewState() ViewState {
	return ViewState{ActiveTab: TabClassification, HasResult: true}
}
