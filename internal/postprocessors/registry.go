package postprocessors

import (
	"fmt"
	"maps"
	"slices"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
)

// BuilderFunc builds a sentence processor from its settings table, as
// decoded from config.toml. Numbers may arrive as int, int64 or float64.
type BuilderFunc func(cfg map[string]any) (driven.PostProcessor, error)

// Registry maps the processor names a pipeline config lists to builders.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]BuilderFunc)}
}

// Register binds name to builder. Registering a name twice is a
// programming error and panics.
func (r *Registry) Register(name string, builder BuilderFunc) {
	if builder == nil {
		panic("postprocessors: Register builder is nil for " + name)
	}
	if _, dup := r.builders[name]; dup {
		panic("postprocessors: Register called twice for " + name)
	}
	r.builders[name] = builder
}

// Build creates the processor registered as name.
func (r *Registry) Build(name string, cfg map[string]any) (driven.PostProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown processor %q (have %v)", domain.ErrUnsupportedType, name, r.Names())
	}
	proc, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("building %s processor: %w", name, err)
	}
	return proc, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.builders))
}
