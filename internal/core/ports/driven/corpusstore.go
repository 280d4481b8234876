package driven

import (
	"context"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// CorpusStore holds loaded corpora so presentation layers can fetch source
// text for ranked sentences. Nothing is persisted.
type CorpusStore interface {
	// Save stores or replaces a corpus.
	Save(ctx context.Context, corpus *domain.Corpus) error

	// Get retrieves a corpus by ID.
	Get(ctx context.Context, id string) (*domain.Corpus, error)

	// Delete removes a corpus. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all stored corpora, oldest first.
	List(ctx context.Context) ([]domain.Corpus, error)
}
