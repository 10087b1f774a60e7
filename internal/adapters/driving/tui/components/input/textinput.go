// Package input provides the drop zone path input for the TUI.
package input

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

// Placeholder is shown while the drop zone is empty.
const Placeholder = "Drop a contract here or paste its path..."

// PathInput wraps a bubbles textinput as a file drop zone.
// Terminals paste a dragged file as its path, so dropping and typing
// both land here.
type PathInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewPathInput creates a new drop zone component.
func NewPathInput(s *styles.Styles) *PathInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 50

	return &PathInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (p *PathInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *PathInput) Update(msg tea.Msg) (*PathInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the drop zone.
func (p *PathInput) View() string {
	label := p.styles.Title.Render("Document: ")
	field := p.styles.InputField
	if p.textinput.Focused() {
		field = field.BorderForeground(p.styles.Theme().Primary)
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field.Render(p.textinput.View()))
}

// Value returns the raw input value.
func (p *PathInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *PathInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Upload returns the upload for the entered path.
// The second return value is false when nothing usable was entered.
func (p *PathInput) Upload() (domain.Upload, bool) {
	path, ok := ParsePath(p.textinput.Value())
	if !ok {
		return domain.Upload{}, false
	}
	return domain.NewUpload(path), true
}

// Focus sets focus on the input.
func (p *PathInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PathInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PathInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *PathInput) SetWidth(width int) {
	p.width = width
	// Account for label, border and padding
	inputWidth := width - 16
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *PathInput) Width() int {
	return p.width
}

// Reset clears the input.
func (p *PathInput) Reset() {
	p.textinput.Reset()
}

// ParsePath cleans up a pasted or dropped path.
// It accepts quoted paths, shell-escaped spaces, file:// URLs and a
// leading ~ for the home directory.
func ParsePath(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	quoted := false
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			s = s[1 : len(s)-1]
			quoted = true
		}
	}

	if strings.HasPrefix(s, "file://") {
		u, err := url.Parse(s)
		if err == nil && u.Path != "" {
			s = u.Path
		}
	} else if !quoted && filepath.Separator == '/' {
		s = unescape(s)
	}

	if s == "~" || strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, strings.TrimPrefix(s, "~"))
		}
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return filepath.Clean(s), true
}

// unescape drops the backslashes a shell adds before special characters.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
