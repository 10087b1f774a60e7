package postprocessors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/minairva-cli/internal/core/ports/driven"
)

// Options looks up one processor's settings. For the cleanup processor the
// key "max_blank_lines" reads extract.cleanup.max_blank_lines.
type Options func(key string) (any, bool)

// Int returns an integer option, or def when it is not set.
// TOML integers decode as int64 and JSON numbers as float64.
func (o Options) Int(key string, def int) (int, error) {
	if o == nil {
		return def, nil
	}
	val, ok := o(key)
	if !ok {
		return def, nil
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s: want a whole number, got %v", key, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: want a number, got %T", key, val)
	}
}

// Builder creates a processor from its options.
type Builder func(opts Options) (driven.TextProcessor, error)

// Registry maps processor names, as written in extract.processors, to
// their builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a builder. A later registration under the same name wins.
func (r *Registry) Register(name string, builder Builder) {
	r.builders[name] = builder
}

// Names returns the registered processor names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pipeline builds the named processors in the order given. An empty list
// yields a pipeline that leaves text unchanged. optionsFor may be nil.
func (r *Registry) Pipeline(names []string, optionsFor func(name string) Options) (*Pipeline, error) {
	p := NewPipeline()
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		builder, ok := r.builders[name]
		if !ok {
			return nil, fmt.Errorf("unknown text processor %q (available: %s)",
				name, strings.Join(r.Names(), ", "))
		}
		if seen[name] {
			return nil, fmt.Errorf("text processor %q listed more than once", name)
		}
		seen[name] = true

		var opts Options
		if optionsFor != nil {
			opts = optionsFor(name)
		}
		processor, err := builder(opts)
		if err != nil {
			return nil, fmt.Errorf("text processor %s: %w", name, err)
		}
		p.Add(processor)
	}

	return p, nil
}
