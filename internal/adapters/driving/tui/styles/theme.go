// Package styles provides the light and dark colour themes for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Mode is the presentation mode this palette renders.
	Mode domain.ThemeMode

	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Surface is the background of cards and the status bar.
	Surface lipgloss.Color

	// RiskHigh, RiskMedium and RiskLow tint risk cards by level.
	RiskHigh   lipgloss.Color
	RiskMedium lipgloss.Color
	RiskLow    lipgloss.Color
}

// LightTheme returns the light palette. It is the default.
func LightTheme() *Theme {
	return &Theme{
		Mode:       domain.ThemeLight,
		Primary:    lipgloss.Color("#1D4ED8"), // Blue
		Secondary:  lipgloss.Color("#0F766E"), // Teal
		Background: lipgloss.Color("#FFFFFF"),
		Foreground: lipgloss.Color("#111827"), // Near black
		Muted:      lipgloss.Color("#6B7280"), // Gray
		Success:    lipgloss.Color("#15803D"), // Green
		Warning:    lipgloss.Color("#B45309"), // Amber
		Error:      lipgloss.Color("#B91C1C"), // Red
		Border:     lipgloss.Color("#D1D5DB"),
		Surface:    lipgloss.Color("#F3F4F6"),
		RiskHigh:   lipgloss.Color("#DC2626"),
		RiskMedium: lipgloss.Color("#D97706"),
		RiskLow:    lipgloss.Color("#16A34A"),
	}
}

// DarkTheme returns the dark palette.
func DarkTheme() *Theme {
	return &Theme{
		Mode:       domain.ThemeDark,
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Background: lipgloss.Color("#1E1E2E"), // Dark gray
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
		Surface:    lipgloss.Color("#181825"),
		RiskHigh:   lipgloss.Color("#F38BA8"),
		RiskMedium: lipgloss.Color("#FAB387"),
		RiskLow:    lipgloss.Color("#A6E3A1"),
	}
}

// DefaultTheme returns the palette for the default mode.
func DefaultTheme() *Theme {
	return ThemeFor(domain.DefaultThemeMode)
}

// ThemeFor returns the palette for mode.
func ThemeFor(mode domain.ThemeMode) *Theme {
	if mode.IsDark() {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Wordmark style for the product name in the header.
	Wordmark lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// InputField style for the drop zone.
	InputField lipgloss.Style

	// Tab and ActiveTab style the result tab strip.
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	// Card style for info cards and clause blocks.
	Card lipgloss.Style

	// RiskCard style for risk cards; tint with RiskColour.
	RiskCard lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Footer style for the copyright line.
	Footer lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		Wordmark: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			Padding(0, 1),
		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),
		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Background).
			Background(theme.Primary),
		Error: lipgloss.NewStyle().
			Foreground(theme.Error),
		Success: lipgloss.NewStyle().
			Foreground(theme.Success),
		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			Underline(true).
			Padding(0, 2),
		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		RiskCard: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderTop(false).
			BorderRight(false).
			BorderBottom(false).
			PaddingLeft(1),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Surface).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Apply swaps the palette in place so every component sharing these
// styles picks up the new mode on its next render.
func (s *Styles) Apply(mode domain.ThemeMode) {
	*s = *NewStyles(ThemeFor(mode))
}

// RiskColour returns the accent for a risk level.
func (s *Styles) RiskColour(level domain.RiskLevel) lipgloss.Color {
	switch level {
	case domain.RiskHigh:
		return s.theme.RiskHigh
	case domain.RiskMedium:
		return s.theme.RiskMedium
	case domain.RiskLow:
		return s.theme.RiskLow
	default:
		return s.theme.Muted
	}
}

// Risk returns the card style for a risk level.
func (s *Styles) Risk(level domain.RiskLevel) lipgloss.Style {
	return s.RiskCard.BorderForeground(s.RiskColour(level))
}
