package filesystem

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// DefaultCoalesceInterval is the minimum spacing between change batches.
const DefaultCoalesceInterval = 500 * time.Millisecond

// Coalesce groups bursts of changes into batches emitted at most once per
// interval. Within a batch each path appears once, with its latest change
// type, in order of first appearance. The returned channel is closed when
// in is closed or ctx is cancelled.
func Coalesce(ctx context.Context, in <-chan domain.Change, interval time.Duration) <-chan []domain.Change {
	if interval <= 0 {
		interval = DefaultCoalesceInterval
	}
	out := make(chan []domain.Change)

	go func() {
		defer close(out)

		limiter := rate.NewLimiter(rate.Every(interval), 1)
		// Spend the initial token so the first burst also waits out an interval.
		limiter.Allow()

		for {
			var first domain.Change
			select {
			case <-ctx.Done():
				return
			case c, ok := <-in:
				if !ok {
					return
				}
				first = c
			}

			batch := newBatch(first)
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			open := batch.drain(in)

			select {
			case out <- batch.changes():
			case <-ctx.Done():
				return
			}
			if !open {
				return
			}
		}
	}()

	return out
}

type batch struct {
	order []string
	byKey map[string]domain.Change
}

func newBatch(first domain.Change) *batch {
	b := &batch{byKey: make(map[string]domain.Change)}
	b.add(first)
	return b
}

func (b *batch) add(c domain.Change) {
	if _, ok := b.byKey[c.Path]; !ok {
		b.order = append(b.order, c.Path)
	}
	b.byKey[c.Path] = c
}

// drain collects every change already queued on in. It returns false when
// in has been closed.
func (b *batch) drain(in <-chan domain.Change) bool {
	for {
		select {
		case c, ok := <-in:
			if !ok {
				return false
			}
			b.add(c)
		default:
			return true
		}
	}
}

func (b *batch) changes() []domain.Change {
	out := make([]domain.Change, len(b.order))
	for i, p := range b.order {
		out[i] = b.byKey[p]
	}
	return out
}
