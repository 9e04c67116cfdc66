package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

// DefaultBatchInterval matches the reference ten-minute batch cadence.
const DefaultBatchInterval = 10 * time.Minute

// Batch is one non-empty reconciliation result.
type Batch struct {
	At           time.Time
	Recognitions []domain.Recognition
}

// BatchHandler consumes reconciliation batches.
type BatchHandler func(Batch)

// BatchReconciler periodically diffs the viewer's feed against a
// checkpoint. A tick collects recognitions created strictly after the
// checkpoint that are addressed to the viewer or public, drops already
// seen IDs, and advances the checkpoint only when something new was
// found. An empty tick leaves the window open so the next tick catches
// up instead of losing items.
type BatchReconciler struct {
	viewerID uuid.UUID
	feed     Feed
	interval time.Duration
	clock    clockwork.Clock
	handler  BatchHandler
	log      *slog.Logger

	checkpoint time.Time
	seen       map[uuid.UUID]struct{}
}

// NewBatchReconciler creates a reconciler for one viewer. Intervals <= 0
// fall back to DefaultBatchInterval.
func NewBatchReconciler(
	log *slog.Logger,
	feed Feed,
	viewerID uuid.UUID,
	interval time.Duration,
	clock clockwork.Clock,
	handler BatchHandler,
) *BatchReconciler {
	if interval <= 0 {
		interval = DefaultBatchInterval
	}
	return &BatchReconciler{
		viewerID: viewerID,
		feed:     feed,
		interval: interval,
		clock:    clock,
		handler:  handler,
		log:      log.With("component", "batch_reconciler", "viewer_id", viewerID.String()),
		seen:     make(map[uuid.UUID]struct{}),
	}
}

// Run ticks until ctx is cancelled. The checkpoint starts at Run time on
// the first invocation and survives restarts, as does the seen set, so
// re-running never re-delivers an already-notified recognition.
func (b *BatchReconciler) Run(ctx context.Context) error {
	ctx = ctxutil.WithViewerID(ctx, b.viewerID)

	if b.checkpoint.IsZero() {
		b.checkpoint = b.clock.Now()
	}

	ticker := b.clock.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			b.tick(ctx)
		}
	}
}

func (b *BatchReconciler) tick(ctx context.Context) {
	recs, err := b.feed.ListRecognitions(ctx, catchUpLimit)
	if err != nil {
		b.log.WarnContext(ctx, "batch reconciliation failed", slog.Any("error", err))
		return
	}

	var fresh []domain.Recognition
	for _, rec := range recs {
		if !rec.CreatedAt.After(b.checkpoint) {
			continue
		}
		if rec.RecipientID != b.viewerID && rec.Visibility != domain.VisibilityPublic {
			continue
		}
		if _, dup := b.seen[rec.ID]; dup {
			continue
		}
		fresh = append(fresh, rec)
	}

	if len(fresh) == 0 {
		return
	}

	for _, rec := range fresh {
		b.seen[rec.ID] = struct{}{}
	}
	b.checkpoint = b.clock.Now()

	b.log.InfoContext(ctx, "batch notifications",
		slog.Int("count", len(fresh)),
	)
	b.handler(Batch{At: b.checkpoint, Recognitions: fresh})
}
