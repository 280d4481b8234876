package driven

import (
	"context"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// PostProcessor turns document content into sentences.
// PostProcessors are chained in a pipeline (e.g., segmentation, cleanup).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document and returns sentences.
	// If the processor modifies sentences (e.g., cleaner), it receives and returns sentences.
	// If the processor creates sentences (e.g., segmenter), it receives nil and returns new ones.
	Process(ctx context.Context, doc *domain.Document, sentences []string) ([]string, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order.
	// Returns the final sentences after all processing.
	Process(ctx context.Context, doc *domain.Document) ([]string, error)
}
