package driven

import (
	"context"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// CorpusLoader reads articles from a source path.
// Returned documents carry a non-empty Label, their normalised Content and
// the non-empty Sentences segmented from it.
type CorpusLoader interface {
	// Load reads every article at path. A directory is walked recursively.
	// An article file with no articles yields an empty slice, not an error.
	Load(ctx context.Context, path string) ([]domain.Document, error)

	// SupportedExtensions returns the file extensions Load accepts.
	SupportedExtensions() []string
}
