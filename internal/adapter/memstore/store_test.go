package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kudos-backend/internal/domain"
)

func newUser(t *testing.T) domain.User {
	t.Helper()
	return domain.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		Name:      "Test User",
		Role:      domain.RoleEmployee,
		CreatedAt: time.Now(),
	}
}

func newRecognition(sender domain.Sender, recipientID uuid.UUID) domain.Recognition {
	return domain.Recognition{
		ID:          uuid.New(),
		Message:     "great work",
		Visibility:  domain.VisibilityPublic,
		Sender:      sender,
		RecipientID: recipientID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestStore_Ping(t *testing.T) {
	t.Parallel()
	require.NoError(t, New().Ping(context.Background()))
}

func TestPutRecognition_ReferentialChecks(t *testing.T) {
	t.Parallel()

	store := New()
	sender := store.PutUser(newUser(t))
	recipient := store.PutUser(newUser(t))

	t.Run("unknown recipient rejected, nothing written", func(t *testing.T) {
		rec := newRecognition(domain.KnownSender(sender.ID), uuid.New())
		_, err := store.PutRecognition(rec)

		require.ErrorIs(t, err, domain.ErrReferential)
		var re *domain.ReferentialError
		require.ErrorAs(t, err, &re)
		require.Equal(t, "recognition", re.Entity)
		require.Equal(t, "recipient_id", re.Field)
		require.Empty(t, store.ListRecognitions())
	})

	t.Run("unknown sender rejected", func(t *testing.T) {
		rec := newRecognition(domain.KnownSender(uuid.New()), recipient.ID)
		_, err := store.PutRecognition(rec)

		require.ErrorIs(t, err, domain.ErrReferential)
		require.Empty(t, store.ListRecognitions())
	})

	t.Run("anonymous sender needs only the recipient", func(t *testing.T) {
		rec := newRecognition(domain.AnonymousSender(), recipient.ID)
		stored, err := store.PutRecognition(rec)

		require.NoError(t, err)
		require.Equal(t, rec.ID, stored.ID)
		require.NotNil(t, store.GetRecognition(rec.ID))
	})
}

func TestPutRecognition_ReplaceKeepsPosition(t *testing.T) {
	t.Parallel()

	store := New()
	u := store.PutUser(newUser(t))

	first := newRecognition(domain.AnonymousSender(), u.ID)
	second := newRecognition(domain.AnonymousSender(), u.ID)
	_, err := store.PutRecognition(first)
	require.NoError(t, err)
	_, err = store.PutRecognition(second)
	require.NoError(t, err)

	first.Message = "edited"
	_, err = store.PutRecognition(first)
	require.NoError(t, err)

	recs := store.ListRecognitions()
	require.Len(t, recs, 2)
	require.Equal(t, first.ID, recs[0].ID)
	require.Equal(t, "edited", recs[0].Message)
	require.Equal(t, second.ID, recs[1].ID)
}

func TestListValidRecognitions_RederivesValidity(t *testing.T) {
	t.Parallel()

	store := New()
	recipient := store.PutUser(newUser(t))

	rec := newRecognition(domain.AnonymousSender(), recipient.ID)
	_, err := store.PutRecognition(rec)
	require.NoError(t, err)

	require.Len(t, store.ListValidRecognitions(), 1)

	// Removing the recipient invalidates the recognition on reads but
	// does not delete it.
	require.True(t, store.RemoveUser(recipient.ID))
	require.Empty(t, store.ListValidRecognitions())
	require.Len(t, store.ListRecognitions(), 1)

	// The user coming back revalidates it.
	store.PutUser(recipient)
	require.Len(t, store.ListValidRecognitions(), 1)
}

func TestListValidRecognitions_Idempotent(t *testing.T) {
	t.Parallel()

	store := New()
	u := store.PutUser(newUser(t))
	for n := 0; n < 3; n++ {
		_, err := store.PutRecognition(newRecognition(domain.AnonymousSender(), u.ID))
		require.NoError(t, err)
	}

	first := store.ListValidRecognitions()
	second := store.ListValidRecognitions()
	require.Equal(t, first, second)
}

func TestDeleteRecognition_Cascades(t *testing.T) {
	t.Parallel()

	store := New()
	u := store.PutUser(newUser(t))
	rec := newRecognition(domain.AnonymousSender(), u.ID)
	_, err := store.PutRecognition(rec)
	require.NoError(t, err)

	_, err = store.PutReaction(domain.Reaction{
		ID: uuid.New(), RecognitionID: rec.ID, UserID: u.ID, Emoji: "🎉",
	})
	require.NoError(t, err)
	_, err = store.PutComment(domain.Comment{
		ID: uuid.New(), RecognitionID: rec.ID, UserID: u.ID, Message: "nice",
	})
	require.NoError(t, err)

	require.True(t, store.DeleteRecognition(rec.ID))
	require.Nil(t, store.GetRecognition(rec.ID))
	require.Empty(t, store.ReactionsFor(rec.ID))
	require.Empty(t, store.CommentsFor(rec.ID))

	require.False(t, store.DeleteRecognition(rec.ID))
}

func TestReactions(t *testing.T) {
	t.Parallel()

	store := New()
	u := store.PutUser(newUser(t))
	other := store.PutUser(newUser(t))
	rec := newRecognition(domain.AnonymousSender(), u.ID)
	_, err := store.PutRecognition(rec)
	require.NoError(t, err)

	t.Run("requires existing recognition", func(t *testing.T) {
		_, err := store.PutReaction(domain.Reaction{
			ID: uuid.New(), RecognitionID: uuid.New(), UserID: u.ID, Emoji: "👍",
		})
		require.ErrorIs(t, err, domain.ErrReferential)
	})

	t.Run("requires existing user", func(t *testing.T) {
		_, err := store.PutReaction(domain.Reaction{
			ID: uuid.New(), RecognitionID: rec.ID, UserID: uuid.New(), Emoji: "👍",
		})
		require.ErrorIs(t, err, domain.ErrReferential)
	})

	t.Run("remove matches user and emoji", func(t *testing.T) {
		_, err := store.PutReaction(domain.Reaction{
			ID: uuid.New(), RecognitionID: rec.ID, UserID: u.ID, Emoji: "👍",
		})
		require.NoError(t, err)
		_, err = store.PutReaction(domain.Reaction{
			ID: uuid.New(), RecognitionID: rec.ID, UserID: other.ID, Emoji: "👍",
		})
		require.NoError(t, err)

		require.False(t, store.RemoveReaction(rec.ID, u.ID, "🎉"))
		require.True(t, store.RemoveReaction(rec.ID, u.ID, "👍"))
		require.False(t, store.RemoveReaction(rec.ID, u.ID, "👍"))

		left := store.ReactionsFor(rec.ID)
		require.Len(t, left, 1)
		require.Equal(t, other.ID, left[0].UserID)
	})
}

func TestBatchReads(t *testing.T) {
	t.Parallel()

	store := New()
	a := store.PutUser(newUser(t))
	b := store.PutUser(newUser(t))

	recA := newRecognition(domain.AnonymousSender(), a.ID)
	recB := newRecognition(domain.AnonymousSender(), b.ID)
	_, err := store.PutRecognition(recA)
	require.NoError(t, err)
	_, err = store.PutRecognition(recB)
	require.NoError(t, err)

	_, err = store.PutReaction(domain.Reaction{ID: uuid.New(), RecognitionID: recA.ID, UserID: b.ID, Emoji: "🔥"})
	require.NoError(t, err)
	_, err = store.PutComment(domain.Comment{ID: uuid.New(), RecognitionID: recB.ID, UserID: a.ID, Message: "agreed"})
	require.NoError(t, err)

	users := store.GetUsers([]uuid.UUID{a.ID, uuid.New(), b.ID})
	require.Len(t, users, 2)
	require.Contains(t, users, a.ID)
	require.Contains(t, users, b.ID)

	reactions := store.ReactionsForMany([]uuid.UUID{recA.ID, recB.ID})
	require.Len(t, reactions[recA.ID], 1)
	require.NotContains(t, reactions, recB.ID)

	comments := store.CommentsForMany([]uuid.UUID{recA.ID, recB.ID})
	require.Len(t, comments[recB.ID], 1)
	require.NotContains(t, comments, recA.ID)
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	store := New()
	keepUser := store.PutUser(newUser(t))
	goneUser := store.PutUser(newUser(t))

	keptRec := newRecognition(domain.AnonymousSender(), keepUser.ID)
	doomedRec := newRecognition(domain.KnownSender(goneUser.ID), keepUser.ID)
	_, err := store.PutRecognition(keptRec)
	require.NoError(t, err)
	_, err = store.PutRecognition(doomedRec)
	require.NoError(t, err)

	// Reaction by the doomed user on the kept recognition, and a comment
	// on the doomed recognition: both must be purged.
	_, err = store.PutReaction(domain.Reaction{ID: uuid.New(), RecognitionID: keptRec.ID, UserID: goneUser.ID, Emoji: "👋"})
	require.NoError(t, err)
	_, err = store.PutComment(domain.Comment{ID: uuid.New(), RecognitionID: doomedRec.ID, UserID: keepUser.ID, Message: "bye"})
	require.NoError(t, err)
	keptComment := domain.Comment{ID: uuid.New(), RecognitionID: keptRec.ID, UserID: keepUser.ID, Message: "stays"}
	_, err = store.PutComment(keptComment)
	require.NoError(t, err)

	require.True(t, store.RemoveUser(goneUser.ID))

	res := store.Reconcile()
	require.Equal(t, 1, res.Recognitions)
	require.Equal(t, 1, res.Reactions)
	require.Equal(t, 1, res.Comments)

	require.Nil(t, store.GetRecognition(doomedRec.ID))
	require.NotNil(t, store.GetRecognition(keptRec.ID))
	require.Empty(t, store.ReactionsFor(keptRec.ID))
	comments := store.CommentsFor(keptRec.ID)
	require.Len(t, comments, 1)
	require.Equal(t, keptComment.ID, comments[0].ID)

	// A second sweep finds nothing.
	require.Equal(t, ReconcileResult{}, store.Reconcile())
}
