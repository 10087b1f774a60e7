// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// ForceQuit exits even while the path input has focus.
	ForceQuit key.Binding

	// Submit sends the entered path for triage.
	Submit key.Binding

	// Focus moves focus to the path input.
	Focus key.Binding

	// Blur leaves the path input.
	Blur key.Binding

	// NextTab and PrevTab cycle the result tabs.
	NextTab key.Binding
	PrevTab key.Binding

	// Classification, Clauses and Risks jump to a tab directly.
	Classification key.Binding
	Clauses        key.Binding
	Risks          key.Binding

	// ToggleTheme flips between light and dark.
	ToggleTheme key.Binding

	// Up and Down scroll the result panel.
	Up   key.Binding
	Down key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "analyse"),
		),
		Focus: key.NewBinding(
			key.WithKeys("/", "i"),
			key.WithHelp("/", "enter path"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave input"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Classification: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "classification"),
		),
		Clauses: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "clauses"),
		),
		Risks: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "risks"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("t", "ctrl+t"),
			key.WithHelp("t", "theme"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// InputHelp returns keybindings shown while the path input has focus.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Blur, k.ForceQuit}
}

// ShortHelp returns keybindings shown before a result exists.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.ToggleTheme, k.Quit}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Focus, k.ToggleTheme, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Submit, k.Blur},
		{k.NextTab, k.PrevTab, k.Classification, k.Clauses, k.Risks},
		{k.Up, k.Down},
		{k.ToggleTheme, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
