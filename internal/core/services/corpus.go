package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
	"github.com/custodia-labs/keysent/internal/core/ports/driving"
	"github.com/custodia-labs/keysent/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService loads articles into in-memory corpora.
type CorpusService struct {
	loader driven.CorpusLoader
	store  driven.CorpusStore
	now    func() time.Time
}

// NewCorpusService creates a new corpus service.
func NewCorpusService(loader driven.CorpusLoader, store driven.CorpusStore) *CorpusService {
	return &CorpusService{
		loader: loader,
		store:  store,
		now:    time.Now,
	}
}

// Load reads the articles at paths into a new corpus.
// Duplicate labels are made unique by appending " (2)", " (3)", ...
func (s *CorpusService) Load(ctx context.Context, paths []string) (*domain.Corpus, error) {
	docs, err := s.read(ctx, paths)
	if err != nil {
		return nil, err
	}

	corpus := &domain.Corpus{
		ID:        uuid.New().String(),
		Sources:   append([]string(nil), paths...),
		Documents: docs,
		LoadedAt:  s.now(),
	}
	if err := s.store.Save(ctx, corpus); err != nil {
		return nil, fmt.Errorf("store corpus: %w", err)
	}

	logger.Info("Loaded corpus %s: %d documents, %d sentences",
		corpus.ID, len(corpus.Documents), corpus.SentenceCount())
	return corpus, nil
}

// Reload re-reads the sources of a corpus, keeping its ID.
// On failure the previously loaded corpus is left in place.
func (s *CorpusService) Reload(ctx context.Context, corpusID string) (*domain.Corpus, error) {
	existing, err := s.store.Get(ctx, corpusID)
	if err != nil {
		return nil, err
	}

	docs, err := s.read(ctx, existing.Sources)
	if err != nil {
		return nil, err
	}

	existing.Documents = docs
	existing.LoadedAt = s.now()
	if err := s.store.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("store corpus: %w", err)
	}

	logger.Info("Reloaded corpus %s: %d documents", existing.ID, len(existing.Documents))
	return existing, nil
}

func (s *CorpusService) read(ctx context.Context, paths []string) ([]domain.Document, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no source paths", domain.ErrInvalidInput)
	}

	logger.Section("Loading Corpus")
	defer logger.Timed("load")()

	var docs []domain.Document
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		loaded, err := s.loader.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		logger.Debug("%s: %d documents", path, len(loaded))
		docs = append(docs, loaded...)
	}

	domain.UniqueLabels(docs)
	return docs, nil
}

// Get retrieves a loaded corpus by ID.
func (s *CorpusService) Get(ctx context.Context, corpusID string) (*domain.Corpus, error) {
	return s.store.Get(ctx, corpusID)
}

// Content returns the full text of the document with the given label.
func (s *CorpusService) Content(ctx context.Context, corpusID, label string) (string, error) {
	corpus, err := s.store.Get(ctx, corpusID)
	if err != nil {
		return "", err
	}
	doc, ok := corpus.Document(label)
	if !ok {
		return "", fmt.Errorf("%w: document %q", domain.ErrNotFound, label)
	}
	return doc.Content, nil
}

// Labels returns the document labels of a corpus in load order.
func (s *CorpusService) Labels(ctx context.Context, corpusID string) ([]string, error) {
	corpus, err := s.store.Get(ctx, corpusID)
	if err != nil {
		return nil, err
	}
	return corpus.Labels(), nil
}

// Release drops a corpus from memory.
func (s *CorpusService) Release(ctx context.Context, corpusID string) error {
	return s.store.Delete(ctx, corpusID)
}
