package services

import (
	"context"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driving"
	"github.com/custodia-labs/keysent/internal/logger"
	"github.com/custodia-labs/keysent/internal/ranking"
)

// Ensure RankService implements the interface.
var _ driving.RankService = (*RankService)(nil)

// RankService ranks the sentences of loaded corpora.
type RankService struct {
	corpora driving.CorpusService
}

// NewRankService creates a new rank service.
func NewRankService(corpora driving.CorpusService) *RankService {
	return &RankService{corpora: corpora}
}

// Rank scores already-segmented documents.
func (s *RankService) Rank(ctx context.Context, docs []domain.Document, opts domain.RankOptions) ([]domain.ScoredSentence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Ranking")
	defer logger.Timed("rank")()

	effective := opts.WithDefaults()
	logger.Debug("Documents: %d, TopK: %d, alpha: %g, scope: %s, idf: %s, norm: %s",
		len(docs), effective.TopK, effective.LengthPenalty, effective.Scope, effective.IDF, effective.Norm)

	ranked, err := ranking.Rank(docs, opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("Ranked %d sentences", len(ranked))
	return ranked, nil
}

// RankPaths loads the articles at paths into a new corpus and ranks it.
// Options are validated before anything is loaded.
func (s *RankService) RankPaths(ctx context.Context, paths []string, opts domain.RankOptions) (*domain.RankResult, error) {
	if err := opts.WithDefaults().Validate(); err != nil {
		return nil, err
	}

	corpus, err := s.corpora.Load(ctx, paths)
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, corpus, opts)
}

// RankCorpus ranks a previously loaded corpus.
func (s *RankService) RankCorpus(ctx context.Context, corpusID string, opts domain.RankOptions) (*domain.RankResult, error) {
	corpus, err := s.corpora.Get(ctx, corpusID)
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, corpus, opts)
}

func (s *RankService) rank(ctx context.Context, corpus *domain.Corpus, opts domain.RankOptions) (*domain.RankResult, error) {
	ranked, err := s.Rank(ctx, corpus.Documents, opts)
	if err != nil {
		return nil, err
	}
	return &domain.RankResult{
		CorpusID:  corpus.ID,
		Options:   opts.WithDefaults(),
		Sentences: ranked,
	}, nil
}
