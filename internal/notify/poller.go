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

// DefaultPollInterval matches the reference five-second poll cadence.
const DefaultPollInterval = 5 * time.Second

// NotificationKind distinguishes why the viewer is being notified.
type NotificationKind string

const (
	// KindReceived marks recognitions addressed to the viewer.
	KindReceived NotificationKind = "received"
	// KindPublic marks public recognitions from someone else.
	KindPublic NotificationKind = "public"
)

// Notification is one new recognition surfaced by the poller.
type Notification struct {
	Recognition domain.Recognition
	Kind        NotificationKind
	At          time.Time
}

// NotificationHandler consumes poller notifications.
type NotificationHandler func(Notification)

// Poller diffs the viewer's feed by recognition ID on a short interval,
// the "real-time" fallback when the subscription channel is unavailable.
// The first tick after a cold start only primes the seen set; nothing
// already in the feed is re-announced, on this run or after a restart.
type Poller struct {
	viewerID uuid.UUID
	feed     Feed
	interval time.Duration
	clock    clockwork.Clock
	handler  NotificationHandler
	log      *slog.Logger

	seen   map[uuid.UUID]struct{}
	primed bool
}

// NewPoller creates a poller for one viewer. Intervals <= 0 fall back to
// DefaultPollInterval.
func NewPoller(
	log *slog.Logger,
	feed Feed,
	viewerID uuid.UUID,
	interval time.Duration,
	clock clockwork.Clock,
	handler NotificationHandler,
) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		viewerID: viewerID,
		feed:     feed,
		interval: interval,
		clock:    clock,
		handler:  handler,
		log:      log.With("component", "poller", "viewer_id", viewerID.String()),
		seen:     make(map[uuid.UUID]struct{}),
	}
}

// Run ticks until ctx is cancelled. Independent of any BatchReconciler:
// cancelling one never affects the other.
func (p *Poller) Run(ctx context.Context) error {
	ctx = ctxutil.WithViewerID(ctx, p.viewerID)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	recs, err := p.feed.ListRecognitions(ctx, catchUpLimit)
	if err != nil {
		p.log.WarnContext(ctx, "poll failed", slog.Any("error", err))
		return
	}

	if !p.primed {
		for _, rec := range recs {
			p.seen[rec.ID] = struct{}{}
		}
		p.primed = true
		return
	}

	now := p.clock.Now()
	for _, rec := range recs {
		if _, dup := p.seen[rec.ID]; dup {
			continue
		}
		p.seen[rec.ID] = struct{}{}

		switch {
		case rec.RecipientID == p.viewerID:
			p.handler(Notification{Recognition: rec, Kind: KindReceived, At: now})
		case rec.Visibility == domain.VisibilityPublic && !rec.Sender.Is(p.viewerID):
			p.handler(Notification{Recognition: rec, Kind: KindPublic, At: now})
		}
	}
}
