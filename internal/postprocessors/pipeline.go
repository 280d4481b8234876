// Package postprocessors turns normalised document content into sentences.
package postprocessors

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
	"github.com/custodia-labs/keysent/internal/logger"
)

var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline runs post-processors in order. The first stage receives no
// sentences and segments the document content; later stages filter or
// rewrite what the previous one returned.
type Pipeline struct {
	stages []driven.PostProcessor
}

// NewPipeline returns a pipeline running stages in the order given.
func NewPipeline(stages ...driven.PostProcessor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Process segments doc and returns its sentences. It stops early when ctx
// is cancelled between stages.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]string, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}

	var sentences []string
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := stage.Process(ctx, doc, sentences)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", stage.Name(), err)
		}
		if len(out) != len(sentences) {
			logger.Debug("%s: %s %d -> %d sentences", doc.Label, stage.Name(), len(sentences), len(out))
		}
		sentences = out
	}
	return sentences, nil
}

// Add appends a stage.
func (p *Pipeline) Add(stage driven.PostProcessor) {
	p.stages = append(p.stages, stage)
}

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, stage := range p.stages {
		names[i] = stage.Name()
	}
	return names
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// String renders the stages as "segmenter -> cleaner".
func (p *Pipeline) String() string {
	return strings.Join(p.Names(), " -> ")
}
