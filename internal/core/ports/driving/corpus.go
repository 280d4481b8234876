package driving

import (
	"context"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// CorpusService loads articles and serves their source text.
type CorpusService interface {
	// Load reads the articles at paths into a new in-memory corpus.
	Load(ctx context.Context, paths []string) (*domain.Corpus, error)

	// Get retrieves a loaded corpus by ID.
	Get(ctx context.Context, corpusID string) (*domain.Corpus, error)

	// Content returns the full text of the document with the given label.
	Content(ctx context.Context, corpusID, label string) (string, error)

	// Labels returns the document labels of a corpus in load order.
	Labels(ctx context.Context, corpusID string) ([]string, error)

	// Reload re-reads the sources of a corpus, keeping its ID.
	Reload(ctx context.Context, corpusID string) (*domain.Corpus, error)

	// Release drops a corpus from memory.
	Release(ctx context.Context, corpusID string) error
}
