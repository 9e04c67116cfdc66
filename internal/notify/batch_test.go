package notify

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// stubFeed is a mutable in-memory Feed. Every ListRecognitions call is
// signalled on calls so tests can wait for a tick to start without
// sleeping.
type stubFeed struct {
	mu     sync.Mutex
	recs   []domain.Recognition
	err    error
	viewer uuid.UUID
	calls  chan struct{}
}

func newStubFeed() *stubFeed {
	return &stubFeed{calls: make(chan struct{}, 16)}
}

func (f *stubFeed) ListRecognitions(ctx context.Context, _ int) ([]domain.Recognition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := ctxutil.ViewerIDFromCtx(ctx); ok {
		f.viewer = id
	}
	select {
	case f.calls <- struct{}{}:
	default:
	}
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Recognition(nil), f.recs...), nil
}

func (f *stubFeed) add(rec domain.Recognition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
}

func (f *stubFeed) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *stubFeed) viewerSeen() uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewer
}

func awaitCall(t *testing.T, f *stubFeed) {
	t.Helper()
	select {
	case <-f.calls:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a feed call")
	}
}

func receiveBatch(t *testing.T, ch <-chan Batch) Batch {
	t.Helper()
	select {
	case b := <-ch:
		return b
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a batch")
		return Batch{}
	}
}

func recognitionAt(sender domain.Sender, recipientID uuid.UUID, visibility domain.Visibility, createdAt time.Time) domain.Recognition {
	return domain.Recognition{
		ID:          uuid.New(),
		Message:     "kudos",
		Visibility:  visibility,
		Sender:      sender,
		RecipientID: recipientID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func ids(recs []domain.Recognition) []uuid.UUID {
	out := make([]uuid.UUID, len(recs))
	for i, rec := range recs {
		out[i] = rec.ID
	}
	return out
}

func TestBatchReconciler_Run(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	viewer := uuid.New()
	feed := newStubFeed()
	batches := make(chan Batch, 4)

	r := NewBatchReconciler(testLogger(), feed, viewer, time.Minute, clock, func(b Batch) {
		batches <- b
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	// First tick finds an empty feed and delivers nothing.
	clock.Advance(time.Minute)
	awaitCall(t, feed)

	feed.add(recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityPrivate, clock.Now()))
	clock.Advance(time.Minute)

	batch := receiveBatch(t, batches)
	require.Len(t, batch.Recognitions, 1)
	require.Equal(t, clock.Now(), batch.At)

	// The task queries the feed as its viewer.
	require.Equal(t, viewer, feed.viewerSeen())

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestBatchReconciler_TickFilters(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	viewer := uuid.New()
	other := uuid.New()
	feed := newStubFeed()

	var batches []Batch
	r := NewBatchReconciler(testLogger(), feed, viewer, 0, clock, func(b Batch) {
		batches = append(batches, b)
	})
	require.Equal(t, DefaultBatchInterval, r.interval)

	r.checkpoint = clock.Now()
	ctx := ctxutil.WithViewerID(context.Background(), viewer)

	clock.Advance(time.Minute)
	feed.add(recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityPublic, r.checkpoint))  // not strictly after
	feed.add(recognitionAt(domain.AnonymousSender(), other, domain.VisibilityTeamOnly, clock.Now())) // not addressed, not public
	mine := recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityPrivate, clock.Now())
	feed.add(mine)
	public := recognitionAt(domain.AnonymousSender(), other, domain.VisibilityPublic, clock.Now())
	feed.add(public)

	r.tick(ctx)

	require.Len(t, batches, 1)
	require.Equal(t, []uuid.UUID{mine.ID, public.ID}, ids(batches[0].Recognitions))
	require.Equal(t, clock.Now(), r.checkpoint)
}

func TestBatchReconciler_EmptyTickKeepsWindow(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	viewer := uuid.New()
	feed := newStubFeed()

	var batches []Batch
	r := NewBatchReconciler(testLogger(), feed, viewer, time.Minute, clock, func(b Batch) {
		batches = append(batches, b)
	})

	start := clock.Now()
	r.checkpoint = start
	ctx := ctxutil.WithViewerID(context.Background(), viewer)

	clock.Advance(time.Minute)
	r.tick(ctx)
	require.Empty(t, batches)
	require.Equal(t, start, r.checkpoint, "an empty tick must not advance the checkpoint")

	// A recognition created between the ticks is still inside the window.
	late := recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityPublic, start.Add(30*time.Second))
	feed.add(late)

	clock.Advance(time.Minute)
	r.tick(ctx)
	require.Len(t, batches, 1)
	require.Equal(t, []uuid.UUID{late.ID}, ids(batches[0].Recognitions))
}

func TestBatchReconciler_RestartDoesNotRedeliver(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	viewer := uuid.New()
	feed := newStubFeed()
	batches := make(chan Batch, 4)

	r := NewBatchReconciler(testLogger(), feed, viewer, time.Minute, clock, func(b Batch) {
		batches <- b
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	// Future-dated, so the checkpoint alone would never filter it out
	// again; only the seen set keeps it from re-delivering.
	sticky := recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityPublic, clock.Now().Add(time.Hour))
	feed.add(sticky)
	clock.Advance(time.Minute)
	require.Equal(t, []uuid.UUID{sticky.ID}, ids(receiveBatch(t, batches).Recognitions))

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	go func() { done <- r.Run(ctx2) }()
	require.NoError(t, clock.BlockUntilContext(ctx2, 1))

	clock.Advance(time.Minute)
	awaitCall(t, feed)

	fresh := recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityPublic, clock.Now())
	feed.add(fresh)
	clock.Advance(time.Minute)

	batch := receiveBatch(t, batches)
	require.Equal(t, []uuid.UUID{fresh.ID}, ids(batch.Recognitions))
}

func TestBatchReconciler_FeedError(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	viewer := uuid.New()
	feed := newStubFeed()
	feed.setErr(errors.New("feed unavailable"))

	var batches []Batch
	r := NewBatchReconciler(testLogger(), feed, viewer, time.Minute, clock, func(b Batch) {
		batches = append(batches, b)
	})

	start := clock.Now()
	r.checkpoint = start
	ctx := ctxutil.WithViewerID(context.Background(), viewer)

	clock.Advance(time.Minute)
	r.tick(ctx)

	require.Empty(t, batches)
	require.Equal(t, start, r.checkpoint)
}
