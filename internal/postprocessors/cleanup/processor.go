// Package cleanup provides a processor that tidies extracted document text.
package cleanup

import (
	"context"
	"strings"
	"unicode"
)

// Name identifies the processor in the registry.
const Name = "cleanup"

// DefaultMaxBlankLines is the default number of consecutive blank lines kept.
const DefaultMaxBlankLines = 1

// Processor normalises line endings, drops control characters, trims
// trailing whitespace and collapses runs of blank lines.
// It implements the TextProcessor interface.
type Processor struct {
	maxBlankLines int
}

// Option configures the cleanup processor.
type Option func(*Processor)

// WithMaxBlankLines sets how many consecutive blank lines are kept.
func WithMaxBlankLines(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.maxBlankLines = n
		}
	}
}

// New creates a new cleanup processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{maxBlankLines: DefaultMaxBlankLines}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor identifier.
func (p *Processor) Name() string {
	return Name
}

// Process returns the cleaned text. Leading and trailing blank lines are removed.
func (p *Processor) Process(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Map(dropControl, text)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" {
			blank++
			if blank > p.maxBlankLines {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}

	return strings.Trim(strings.Join(out, "\n"), "\n"), nil
}

func dropControl(r rune) rune {
	if r == '\n' || r == '\t' {
		return r
	}
	if unicode.IsControl(r) || r == '\uFEFF' {
		return -1
	}
	return r
}
