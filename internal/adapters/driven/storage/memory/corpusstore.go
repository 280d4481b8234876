package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.CorpusStore.
type CorpusStore struct {
	mu      sync.RWMutex
	corpora map[string]domain.Corpus
}

// NewCorpusStore creates a new in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{
		corpora: make(map[string]domain.Corpus),
	}
}

// Save stores or replaces a corpus.
func (s *CorpusStore) Save(_ context.Context, corpus *domain.Corpus) error {
	if corpus == nil || corpus.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpora[corpus.ID] = *corpus
	return nil
}

// Get retrieves a corpus by ID.
func (s *CorpusStore) Get(_ context.Context, id string) (*domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	corpus, ok := s.corpora[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &corpus, nil
}

// Delete removes a corpus.
func (s *CorpusStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.corpora, id)
	return nil
}

// List returns all stored corpora, oldest first.
func (s *CorpusStore) List(_ context.Context) ([]domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Corpus, 0, len(s.corpora))
	for id := range s.corpora {
		result = append(result, s.corpora[id])
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LoadedAt.Equal(result[j].LoadedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].LoadedAt.Before(result[j].LoadedAt)
	})
	return result, nil
}
