package recognition

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/pubsub"
)

func TestUpdateRecognition_SenderEdits(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "")
	recipient := f.seedUser(domain.RoleEmployee, "")
	rec := f.seedRecognition(t, domain.KnownSender(sender.ID), recipient.ID, domain.VisibilityPublic, "original text")

	watchers := f.broker.Subscribe(context.Background(), pubsub.Scoped(pubsub.EventRecognitionUpdated, rec.ID))

	f.clock.Advance(time.Hour)
	msg := "edited text"
	vis := domain.VisibilityPrivate
	updated, err := f.svc.UpdateRecognition(viewerCtx(sender.ID), UpdateRecognitionInput{
		ID:         rec.ID,
		Message:    &msg,
		Visibility: &vis,
	})

	require.NoError(t, err)
	require.Equal(t, "edited text", updated.Message)
	require.Equal(t, domain.VisibilityPrivate, updated.Visibility)
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	// Untouched fields keep their values.
	require.Equal(t, rec.Keywords, updated.Keywords)
	require.Equal(t, rec.CreatedAt, updated.CreatedAt)

	require.Equal(t, rec.ID, receive[*domain.Recognition](t, watchers).ID)
}

func TestUpdateRecognition_Authorization(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "")
	recipient := f.seedUser(domain.RoleEmployee, "")
	bystander := f.seedUser(domain.RoleEmployee, "")
	manager := f.seedUser(domain.RoleManager, "")
	hr := f.seedUser(domain.RoleHR, "")

	rec := f.seedRecognition(t, domain.KnownSender(sender.ID), recipient.ID, domain.VisibilityPublic, "praise")
	msg := "changed"

	_, err := f.svc.UpdateRecognition(context.Background(), UpdateRecognitionInput{ID: rec.ID, Message: &msg})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.UpdateRecognition(viewerCtx(bystander.ID), UpdateRecognitionInput{ID: rec.ID, Message: &msg})
	require.ErrorIs(t, err, domain.ErrForbidden)

	// Managers are not moderators.
	_, err = f.svc.UpdateRecognition(viewerCtx(manager.ID), UpdateRecognitionInput{ID: rec.ID, Message: &msg})
	require.ErrorIs(t, err, domain.ErrForbidden)

	// The recipient may not edit either.
	_, err = f.svc.UpdateRecognition(viewerCtx(recipient.ID), UpdateRecognitionInput{ID: rec.ID, Message: &msg})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.UpdateRecognition(viewerCtx(hr.ID), UpdateRecognitionInput{ID: rec.ID, Message: &msg})
	require.NoError(t, err)
}

func TestUpdateRecognition_AnonymousOnlyModerators(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	creator := f.seedUser(domain.RoleEmployee, "")
	recipient := f.seedUser(domain.RoleEmployee, "")
	lead := f.seedUser(domain.RoleCrossFunctionalLead, "")

	rec := f.seedRecognition(t, domain.AnonymousSender(), recipient.ID, domain.VisibilityPublic, "anonymous praise")
	msg := "changed"

	// Anonymity is irreversible: even the actual creator cannot prove
	// authorship, so they are just another employee here.
	_, err := f.svc.UpdateRecognition(viewerCtx(creator.ID), UpdateRecognitionInput{ID: rec.ID, Message: &msg})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.UpdateRecognition(viewerCtx(lead.ID), UpdateRecognitionInput{ID: rec.ID, Message: &msg})
	require.NoError(t, err)
}

func TestUpdateRecognition_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	u := f.seedUser(domain.RoleEmployee, "")
	msg := "changed"

	_, err := f.svc.UpdateRecognition(viewerCtx(u.ID), UpdateRecognitionInput{ID: uuid.New(), Message: &msg})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRecognition(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "")
	recipient := f.seedUser(domain.RoleEmployee, "")
	bystander := f.seedUser(domain.RoleEmployee, "")

	rec := f.seedRecognition(t, domain.KnownSender(sender.ID), recipient.ID, domain.VisibilityPublic, "short lived")
	_, err := f.store.PutReaction(domain.Reaction{ID: uuid.New(), RecognitionID: rec.ID, UserID: recipient.ID, Emoji: "👍"})
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.DeleteRecognition(context.Background(), rec.ID), domain.ErrUnauthorized)
	require.ErrorIs(t, f.svc.DeleteRecognition(viewerCtx(bystander.ID), rec.ID), domain.ErrForbidden)

	require.NoError(t, f.svc.DeleteRecognition(viewerCtx(sender.ID), rec.ID))
	require.Nil(t, f.store.GetRecognition(rec.ID))
	require.Empty(t, f.store.ReactionsFor(rec.ID))

	require.ErrorIs(t, f.svc.DeleteRecognition(viewerCtx(sender.ID), rec.ID), domain.ErrNotFound)
}
