package recognition

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/pubsub"
)

func TestAddReaction(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "")
	recipient := f.seedUser(domain.RoleEmployee, "")
	rec := f.seedRecognition(t, domain.KnownSender(sender.ID), recipient.ID, domain.VisibilityPublic, "kudos")

	watchers := f.broker.Subscribe(context.Background(), pubsub.Scoped(pubsub.EventReactionAdded, rec.ID))

	reaction, err := f.svc.AddReaction(viewerCtx(recipient.ID), rec.ID, "🎉")
	require.NoError(t, err)
	require.Equal(t, recipient.ID, reaction.UserID)
	require.Equal(t, "🎉", reaction.Emoji)
	require.Equal(t, f.clock.Now(), reaction.CreatedAt)

	require.Equal(t, reaction.ID, receive[*domain.Reaction](t, watchers).ID)

	_, err = f.svc.AddReaction(context.Background(), rec.ID, "🎉")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.AddReaction(viewerCtx(recipient.ID), rec.ID, "  ")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.AddReaction(viewerCtx(recipient.ID), uuid.New(), "🎉")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveReaction_OnlyOwn(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "")
	recipient := f.seedUser(domain.RoleEmployee, "")
	rec := f.seedRecognition(t, domain.KnownSender(sender.ID), recipient.ID, domain.VisibilityPublic, "kudos")

	_, err := f.svc.AddReaction(viewerCtx(sender.ID), rec.ID, "🔥")
	require.NoError(t, err)
	_, err = f.svc.AddReaction(viewerCtx(recipient.ID), rec.ID, "🔥")
	require.NoError(t, err)

	// Removing someone else's reaction just finds nothing.
	removed, err := f.svc.RemoveReaction(viewerCtx(sender.ID), rec.ID, "🎉")
	require.NoError(t, err)
	require.False(t, removed)

	removed, err = f.svc.RemoveReaction(viewerCtx(sender.ID), rec.ID, "🔥")
	require.NoError(t, err)
	require.True(t, removed)

	// Idempotent: already gone is not an error.
	removed, err = f.svc.RemoveReaction(viewerCtx(sender.ID), rec.ID, "🔥")
	require.NoError(t, err)
	require.False(t, removed)

	left := f.store.ReactionsFor(rec.ID)
	require.Len(t, left, 1)
	require.Equal(t, recipient.ID, left[0].UserID)

	_, err = f.svc.RemoveReaction(context.Background(), rec.ID, "🔥")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAddComment(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "")
	recipient := f.seedUser(domain.RoleEmployee, "")
	rec := f.seedRecognition(t, domain.KnownSender(sender.ID), recipient.ID, domain.VisibilityPublic, "kudos")

	watchers := f.broker.Subscribe(context.Background(), pubsub.Scoped(pubsub.EventCommentAdded, rec.ID))

	comment, err := f.svc.AddComment(viewerCtx(recipient.ID), rec.ID, "thank you!")
	require.NoError(t, err)
	require.Equal(t, recipient.ID, comment.UserID)
	require.Equal(t, "thank you!", comment.Message)

	require.Equal(t, comment.ID, receive[*domain.Comment](t, watchers).ID)

	_, err = f.svc.AddComment(context.Background(), rec.ID, "hi")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.AddComment(viewerCtx(recipient.ID), rec.ID, "   ")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.AddComment(viewerCtx(recipient.ID), uuid.New(), "hi")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteComment(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "")
	recipient := f.seedUser(domain.RoleEmployee, "")
	bystander := f.seedUser(domain.RoleEmployee, "")
	hr := f.seedUser(domain.RoleHR, "")
	rec := f.seedRecognition(t, domain.KnownSender(sender.ID), recipient.ID, domain.VisibilityPublic, "kudos")

	author, err := f.svc.AddComment(viewerCtx(recipient.ID), rec.ID, "mine")
	require.NoError(t, err)
	moderated, err := f.svc.AddComment(viewerCtx(recipient.ID), rec.ID, "also mine")
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.DeleteComment(context.Background(), author.ID), domain.ErrUnauthorized)
	require.ErrorIs(t, f.svc.DeleteComment(viewerCtx(bystander.ID), author.ID), domain.ErrForbidden)
	require.ErrorIs(t, f.svc.DeleteComment(viewerCtx(hr.ID), uuid.New()), domain.ErrNotFound)

	require.NoError(t, f.svc.DeleteComment(viewerCtx(recipient.ID), author.ID))
	require.NoError(t, f.svc.DeleteComment(viewerCtx(hr.ID), moderated.ID))
	require.Empty(t, f.store.CommentsFor(rec.ID))
}
