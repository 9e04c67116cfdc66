package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

func receiveNotification(t *testing.T, ch <-chan Notification) Notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a notification")
		return Notification{}
	}
}

func TestPoller_Run(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	viewer := uuid.New()
	feed := newStubFeed()
	notes := make(chan Notification, 4)

	// Backlog present before the poller starts; it must stay silent.
	feed.add(recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityPublic, clock.Now()))

	p := NewPoller(testLogger(), feed, viewer, time.Second, clock, func(n Notification) {
		notes <- n
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	// First tick primes the seen set.
	clock.Advance(time.Second)
	awaitCall(t, feed)

	mine := recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityPrivate, clock.Now())
	feed.add(mine)
	clock.Advance(time.Second)

	n := receiveNotification(t, notes)
	require.Equal(t, mine.ID, n.Recognition.ID)
	require.Equal(t, KindReceived, n.Kind)
	require.Equal(t, clock.Now(), n.At)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestPoller_Kinds(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	viewer := uuid.New()
	other := uuid.New()
	feed := newStubFeed()

	var notes []Notification
	p := NewPoller(testLogger(), feed, viewer, 0, clock, func(n Notification) {
		notes = append(notes, n)
	})
	require.Equal(t, DefaultPollInterval, p.interval)

	ctx := ctxutil.WithViewerID(context.Background(), viewer)

	feed.add(recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityPublic, clock.Now()))
	p.tick(ctx)
	require.Empty(t, notes, "the priming tick must not announce the backlog")

	// Addressed to the viewer: notified whatever the visibility.
	received := recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityTeamOnly, clock.Now())
	feed.add(received)
	// Public from someone else: notified as public.
	public := recognitionAt(domain.KnownSender(other), other, domain.VisibilityPublic, clock.Now())
	feed.add(public)
	// Team-only for someone else: silent.
	feed.add(recognitionAt(domain.KnownSender(other), other, domain.VisibilityTeamOnly, clock.Now()))
	// The viewer's own public recognition: silent.
	feed.add(recognitionAt(domain.KnownSender(viewer), other, domain.VisibilityPublic, clock.Now()))

	p.tick(ctx)
	require.Len(t, notes, 2)
	require.Equal(t, received.ID, notes[0].Recognition.ID)
	require.Equal(t, KindReceived, notes[0].Kind)
	require.Equal(t, public.ID, notes[1].Recognition.ID)
	require.Equal(t, KindPublic, notes[1].Kind)

	// Nothing is announced twice.
	p.tick(ctx)
	require.Len(t, notes, 2)
}

func TestPoller_FeedErrorDelaysPriming(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	viewer := uuid.New()
	feed := newStubFeed()
	feed.setErr(errors.New("feed unavailable"))

	var notes []Notification
	p := NewPoller(testLogger(), feed, viewer, time.Second, clock, func(n Notification) {
		notes = append(notes, n)
	})

	ctx := ctxutil.WithViewerID(context.Background(), viewer)

	backlog := recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityPublic, clock.Now())
	feed.add(backlog)

	// A failed first tick must not count as priming.
	p.tick(ctx)
	require.False(t, p.primed)

	feed.setErr(nil)
	p.tick(ctx)
	require.True(t, p.primed)
	require.Empty(t, notes)

	fresh := recognitionAt(domain.AnonymousSender(), viewer, domain.VisibilityPublic, clock.Now())
	feed.add(fresh)
	p.tick(ctx)
	require.Len(t, notes, 1)
	require.Equal(t, fresh.ID, notes[0].Recognition.ID)
}
