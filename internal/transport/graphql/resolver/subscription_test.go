package resolver

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/pubsub"
)

func newBroker(t *testing.T) *pubsub.Broker {
	t.Helper()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	b := pubsub.NewBroker(log, 4)
	t.Cleanup(b.Close)
	return b
}

func receiveModel[M any](t *testing.T, ch <-chan *M) *M {
	t.Helper()
	select {
	case m, ok := <-ch:
		require.True(t, ok, "stream closed before an event arrived")
		return m
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for an event")
		return nil
	}
}

func requireStreamClosed[M any](t *testing.T, ch <-chan *M) {
	t.Helper()
	select {
	case _, ok := <-ch:
		require.False(t, ok, "expected the stream to close")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the stream to close")
	}
}

func TestRecognitionCreated_Broad(t *testing.T) {
	t.Parallel()

	broker := newBroker(t)
	resolver := &subscriptionResolver{&Resolver{events: broker}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := resolver.RecognitionCreated(ctx, nil)
	require.NoError(t, err)

	rec := &domain.Recognition{
		ID:          uuid.New(),
		Message:     "shipped it",
		Visibility:  domain.VisibilityPublic,
		Sender:      domain.AnonymousSender(),
		RecipientID: uuid.New(),
	}
	broker.PublishRecognitionCreated(rec)

	got := receiveModel(t, stream)
	require.Equal(t, rec.ID, got.ID)
	require.True(t, got.IsAnonymous)
}

func TestRecognitionCreated_ScopedToRecipient(t *testing.T) {
	t.Parallel()

	broker := newBroker(t)
	resolver := &subscriptionResolver{&Resolver{events: broker}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alice := uuid.New()
	bob := uuid.New()

	stream, err := resolver.RecognitionCreated(ctx, &alice)
	require.NoError(t, err)

	// Addressed to bob: alice's personal stream stays quiet.
	broker.PublishRecognitionCreated(&domain.Recognition{
		ID: uuid.New(), Sender: domain.AnonymousSender(), RecipientID: bob,
	})
	forAlice := &domain.Recognition{
		ID: uuid.New(), Sender: domain.AnonymousSender(), RecipientID: alice,
	}
	broker.PublishRecognitionCreated(forAlice)

	got := receiveModel(t, stream)
	require.Equal(t, forAlice.ID, got.ID)
}

func TestReactionAdded_PerRecognition(t *testing.T) {
	t.Parallel()

	broker := newBroker(t)
	resolver := &subscriptionResolver{&Resolver{events: broker}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recID := uuid.New()
	stream, err := resolver.ReactionAdded(ctx, recID)
	require.NoError(t, err)

	broker.PublishReactionAdded(&domain.Reaction{ID: uuid.New(), RecognitionID: uuid.New(), Emoji: "🙈"})
	reaction := &domain.Reaction{ID: uuid.New(), RecognitionID: recID, UserID: uuid.New(), Emoji: "🎉"}
	broker.PublishReactionAdded(reaction)

	got := receiveModel(t, stream)
	require.Equal(t, reaction.ID, got.ID)
	require.Equal(t, "🎉", got.Emoji)
}

func TestCommentAdded_PerRecognition(t *testing.T) {
	t.Parallel()

	broker := newBroker(t)
	resolver := &subscriptionResolver{&Resolver{events: broker}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recID := uuid.New()
	stream, err := resolver.CommentAdded(ctx, recID)
	require.NoError(t, err)

	comment := &domain.Comment{ID: uuid.New(), RecognitionID: recID, UserID: uuid.New(), Message: "congrats"}
	broker.PublishCommentAdded(comment)

	got := receiveModel(t, stream)
	require.Equal(t, comment.ID, got.ID)
}

func TestRecognitionUpdated_StreamClosesWithClient(t *testing.T) {
	t.Parallel()

	broker := newBroker(t)
	resolver := &subscriptionResolver{&Resolver{events: broker}}

	ctx, cancel := context.WithCancel(context.Background())

	recID := uuid.New()
	stream, err := resolver.RecognitionUpdated(ctx, recID)
	require.NoError(t, err)

	rec := &domain.Recognition{ID: recID, Message: "edited", Sender: domain.AnonymousSender(), RecipientID: uuid.New()}
	broker.PublishRecognitionUpdated(rec)
	require.Equal(t, "edited", receiveModel(t, stream).Message)

	cancel()
	requireStreamClosed(t, stream)
}

func TestRecognitionCreated_SkipsForeignPayloads(t *testing.T) {
	t.Parallel()

	broker := newBroker(t)
	resolver := &subscriptionResolver{&Resolver{events: broker}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := resolver.RecognitionCreated(ctx, nil)
	require.NoError(t, err)

	// A payload of the wrong type is dropped, not fatal to the stream.
	broker.Publish(pubsub.Unscoped(pubsub.EventRecognitionCreated), "not a recognition")

	rec := &domain.Recognition{ID: uuid.New(), Sender: domain.AnonymousSender(), RecipientID: uuid.New()}
	broker.PublishRecognitionCreated(rec)

	require.Equal(t, rec.ID, receiveModel(t, stream).ID)
}
