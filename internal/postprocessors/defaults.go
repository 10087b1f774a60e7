package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/minairva-cli/internal/core/ports/driven"
	"github.com/custodia-labs/minairva-cli/internal/postprocessors/cleanup"
)

// NewDefaultRegistry returns a registry holding every built-in processor.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(cleanup.Name, buildCleanup)
	return r
}

// DefaultPipeline returns the pipeline used when nothing is configured.
func DefaultPipeline() *Pipeline {
	return NewPipeline(cleanup.New())
}

// buildCleanup reads max_blank_lines (default 1; 0 removes blank lines).
func buildCleanup(opts Options) (driven.TextProcessor, error) {
	n, err := opts.Int("max_blank_lines", cleanup.DefaultMaxBlankLines)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("max_blank_lines: want 0 or more, got %d", n)
	}
	return cleanup.New(cleanup.WithMaxBlankLines(n)), nil
}
