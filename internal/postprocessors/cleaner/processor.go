// Package cleaner provides a sentence cleanup processor.
package cleaner

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// DefaultMinLength is the default minimum sentence length in characters.
const DefaultMinLength = 1

// Processor collapses whitespace inside sentences and drops sentences
// shorter than a minimum length.
type Processor struct {
	minLength int
}

// Option configures the cleaner processor.
type Option func(*Processor)

// WithMinLength sets the minimum sentence length in characters.
func WithMinLength(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.minLength = n
		}
	}
}

// New creates a new cleaner processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{minLength: DefaultMinLength}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "cleaner"
}

// Process cleans the incoming sentences. Order is preserved.
func (p *Processor) Process(_ context.Context, _ *domain.Document, in []string) ([]string, error) {
	if len(in) == 0 {
		return in, nil
	}

	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.Join(strings.Fields(s), " ")
		if utf8.RuneCountInString(s) < p.minLength {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
