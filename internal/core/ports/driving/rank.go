package driving

import (
	"context"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// RankService ranks the sentences of articles.
type RankService interface {
	// Rank scores already-segmented documents.
	Rank(ctx context.Context, docs []domain.Document, opts domain.RankOptions) ([]domain.ScoredSentence, error)

	// RankPaths loads the articles at paths into a new corpus and ranks it.
	// The corpus stays available through CorpusService under the result's CorpusID.
	RankPaths(ctx context.Context, paths []string, opts domain.RankOptions) (*domain.RankResult, error)

	// RankCorpus ranks a previously loaded corpus.
	RankCorpus(ctx context.Context, corpusID string, opts domain.RankOptions) (*domain.RankResult, error)
}
