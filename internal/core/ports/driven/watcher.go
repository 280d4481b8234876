package driven

import (
	"context"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// SourceWatcher reports changes to corpus source files.
type SourceWatcher interface {
	// Watch starts watching paths. The returned channel is closed when ctx
	// is cancelled or the watcher is closed.
	Watch(ctx context.Context, paths []string) (<-chan domain.Change, error)

	// Close releases watcher resources.
	Close() error
}
