package domain

// ThemeMode is the light/dark presentation preference.
type ThemeMode string

// Available theme modes.
const (
	// ThemeLight is the default mode.
	ThemeLight ThemeMode = "light"

	// ThemeDark is the dark mode.
	ThemeDark ThemeMode = "dark"
)

// DefaultThemeMode is used when no preference has been stored.
const DefaultThemeMode = ThemeLight

// ParseThemeMode converts a stored string into a ThemeMode.
// The second return value is false for anything other than "light" or "dark".
func ParseThemeMode(s string) (ThemeMode, bool) {
	switch ThemeMode(s) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return DefaultThemeMode, false
	}
}

// IsValid returns true if the mode is recognised.
func (m ThemeMode) IsValid() bool {
	return m == ThemeLight || m == ThemeDark
}

// Toggle returns the opposite mode.
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether the mode is dark.
func (m ThemeMode) IsDark() bool {
	return m == ThemeDark
}

// String returns the string representation.
func (m ThemeMode) String() string {
	return string(m)
}
