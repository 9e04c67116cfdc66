// Package notify implements the polling fallbacks for clients without a
// live subscription channel: a slow batch reconciler that diffs the feed
// against a checkpoint, and a fast poller that surfaces new recognitions
// as individual notifications. Both are scheduled tasks with an injected
// clock, independent lifecycles, and restart-safe dedupe by recognition
// ID.
package notify

import (
	"context"

	"github.com/heartmarshall/kudos-backend/internal/domain"
)

const (
	// catchUpLimit bounds how many recent recognitions one tick inspects.
	// A long gap between ticks degrades to a larger catch-up window, not
	// to unbounded work.
	catchUpLimit = 100
)

// Feed lists recognitions visible to the task's viewer. Implementations
// must apply the visibility policy; the tasks only diff what they are
// given.
type Feed interface {
	ListRecognitions(ctx context.Context, limit int) ([]domain.Recognition, error)
}

// FeedFunc adapts a function to the Feed interface.
type FeedFunc func(ctx context.Context, limit int) ([]domain.Recognition, error)

func (f FeedFunc) ListRecognitions(ctx context.Context, limit int) ([]domain.Recognition, error) {
	return f(ctx, limit)
}
