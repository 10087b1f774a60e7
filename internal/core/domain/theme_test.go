package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseThemeMode(t *testing.T) {
	tests := []struct {
		in     string
		want   ThemeMode
		wantOK bool
	}{
		{"light", ThemeLight, true},
		{"dark", ThemeDark, true},
		{"", ThemeLight, false},
		{"DARK", ThemeLight, false},
		{"solarized", ThemeLight, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseThemeMode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestThemeMode_Toggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeLight, ThemeLight.Toggle().Toggle())
}
