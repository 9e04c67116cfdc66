package recognition

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/pubsub"
)

func TestCreateRecognition_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "Engineering")
	recipient := f.seedUser(domain.RoleEmployee, "Engineering")

	broad := f.broker.Subscribe(context.Background(), pubsub.Unscoped(pubsub.EventRecognitionCreated))
	personal := f.broker.Subscribe(context.Background(), pubsub.Scoped(pubsub.EventRecognitionCreated, recipient.ID))

	rec, err := f.svc.CreateRecognition(viewerCtx(sender.ID), CreateRecognitionInput{
		Message:     "The launch demo was genuinely impressive",
		Emojis:      []string{"🚀"},
		Visibility:  domain.VisibilityPublic,
		RecipientID: recipient.ID,
	})

	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, rec.ID)
	require.True(t, rec.Sender.Is(sender.ID))
	require.Equal(t, recipient.ID, rec.RecipientID)
	require.Equal(t, f.clock.Now(), rec.CreatedAt)
	require.Equal(t, rec.CreatedAt, rec.UpdatedAt)

	// Keywords auto-extracted from the message.
	require.Equal(t, []string{"launch", "demo", "genuinely", "impressive"}, rec.Keywords)

	// Fanned out to both the broad and the recipient-scoped topic.
	require.Equal(t, rec.ID, receive[*domain.Recognition](t, broad).ID)
	require.Equal(t, rec.ID, receive[*domain.Recognition](t, personal).ID)
}

func TestCreateRecognition_ExplicitKeywordsKept(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "")
	recipient := f.seedUser(domain.RoleEmployee, "")

	rec, err := f.svc.CreateRecognition(viewerCtx(sender.ID), CreateRecognitionInput{
		Message:     "Great collaboration on the incident",
		Visibility:  domain.VisibilityPublic,
		RecipientID: recipient.ID,
		Keywords:    []string{"teamwork"},
	})

	require.NoError(t, err)
	require.Equal(t, []string{"teamwork"}, rec.Keywords)
}

func TestCreateRecognition_Anonymous(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "")
	recipient := f.seedUser(domain.RoleEmployee, "")

	rec, err := f.svc.CreateRecognition(viewerCtx(sender.ID), CreateRecognitionInput{
		Message:     "Thanks for the quiet help behind the scenes",
		Visibility:  domain.VisibilityPublic,
		IsAnonymous: true,
		RecipientID: recipient.ID,
	})

	require.NoError(t, err)
	require.True(t, rec.Sender.IsAnonymous())

	// Identity is never recorded, not even internally.
	_, known := rec.Sender.UserID()
	require.False(t, known)
	require.False(t, rec.Sender.Is(sender.ID))
}

func TestCreateRecognition_Unauthenticated(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	recipient := f.seedUser(domain.RoleEmployee, "")

	_, err := f.svc.CreateRecognition(context.Background(), CreateRecognitionInput{
		Message:     "hello",
		Visibility:  domain.VisibilityPublic,
		RecipientID: recipient.ID,
	})

	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateRecognition_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "")
	recipient := f.seedUser(domain.RoleEmployee, "")

	tests := []struct {
		name  string
		input CreateRecognitionInput
	}{
		{"blank message", CreateRecognitionInput{Message: "   ", Visibility: domain.VisibilityPublic, RecipientID: recipient.ID}},
		{"missing recipient", CreateRecognitionInput{Message: "hi there", Visibility: domain.VisibilityPublic}},
		{"bad visibility", CreateRecognitionInput{Message: "hi there", Visibility: "FRIENDS_ONLY", RecipientID: recipient.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateRecognition(viewerCtx(sender.ID), tt.input)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateRecognition_UnknownRecipient(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sender := f.seedUser(domain.RoleEmployee, "")

	broad := f.broker.Subscribe(context.Background(), pubsub.Unscoped(pubsub.EventRecognitionCreated))

	_, err := f.svc.CreateRecognition(viewerCtx(sender.ID), CreateRecognitionInput{
		Message:     "hello stranger",
		Visibility:  domain.VisibilityPublic,
		RecipientID: uuid.New(),
	})

	require.ErrorIs(t, err, domain.ErrReferential)
	requireNoEvent(t, broad)
}
