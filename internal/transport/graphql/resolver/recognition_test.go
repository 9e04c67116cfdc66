package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kudos-backend/internal/adapter/memstore"
	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/service/recognition"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/model"
)

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestRecognition_Success(t *testing.T) {
	t.Parallel()

	sender := uuid.New()
	recipient := uuid.New()
	rec := &domain.Recognition{
		ID:          uuid.New(),
		Message:     "great work",
		Visibility:  domain.VisibilityPublic,
		Sender:      domain.KnownSender(sender),
		RecipientID: recipient,
		CreatedAt:   time.Now(),
	}

	mock := &recognitionServiceMock{
		GetRecognitionFunc: func(_ context.Context, id uuid.UUID) (*domain.Recognition, error) {
			assert.Equal(t, rec.ID, id)
			return rec, nil
		},
	}

	resolver := &queryResolver{&Resolver{recognition: mock}}
	result, err := resolver.Recognition(context.Background(), rec.ID)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "great work", result.Message)
	assert.False(t, result.IsAnonymous)
	require.NotNil(t, result.SenderID)
	assert.Equal(t, sender, *result.SenderID)
	assert.Equal(t, recipient, result.RecipientID)
}

func TestRecognition_InvisibleIsNull(t *testing.T) {
	t.Parallel()

	mock := &recognitionServiceMock{
		GetRecognitionFunc: func(_ context.Context, _ uuid.UUID) (*domain.Recognition, error) {
			return nil, nil
		},
	}

	resolver := &queryResolver{&Resolver{recognition: mock}}
	result, err := resolver.Recognition(context.Background(), uuid.New())

	require.NoError(t, err)
	require.Nil(t, result)
}

func TestRecognitions_MapsFilterAndPaging(t *testing.T) {
	t.Parallel()

	recipient := uuid.New()
	dept := "Design"
	limit, offset := 10, 5

	mock := &recognitionServiceMock{
		ListRecognitionsFunc: func(_ context.Context, input recognition.ListInput) ([]domain.Recognition, error) {
			require.NotNil(t, input.RecipientID)
			assert.Equal(t, recipient, *input.RecipientID)
			require.NotNil(t, input.Department)
			assert.Equal(t, dept, *input.Department)
			assert.Equal(t, []string{"launch"}, input.Keywords)
			assert.Equal(t, 10, input.Limit)
			assert.Equal(t, 5, input.Offset)
			return nil, nil
		},
	}

	resolver := &queryResolver{&Resolver{recognition: mock}}
	filter := &model.RecognitionFilter{
		RecipientID: &recipient,
		Department:  &dept,
		Keywords:    []string{"launch"},
	}
	result, err := resolver.Recognitions(context.Background(), filter, &limit, &offset)

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestSearchRecognitions_Success(t *testing.T) {
	t.Parallel()

	mock := &recognitionServiceMock{
		SearchRecognitionsFunc: func(_ context.Context, query string) ([]domain.Recognition, error) {
			assert.Equal(t, "launch", query)
			return []domain.Recognition{
				{ID: uuid.New(), Message: "shipped the launch", Sender: domain.AnonymousSender()},
			}, nil
		},
	}

	resolver := &queryResolver{&Resolver{recognition: mock}}
	result, err := resolver.SearchRecognitions(context.Background(), "launch")

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].IsAnonymous)
	assert.Nil(t, result[0].SenderID)
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

func TestCreateRecognition_Success(t *testing.T) {
	t.Parallel()

	recipient := uuid.New()
	anon := true

	mock := &recognitionServiceMock{
		CreateRecognitionFunc: func(_ context.Context, input recognition.CreateRecognitionInput) (*domain.Recognition, error) {
			assert.Equal(t, "thanks!", input.Message)
			assert.Equal(t, recipient, input.RecipientID)
			assert.True(t, input.IsAnonymous)
			return &domain.Recognition{
				ID:          uuid.New(),
				Message:     input.Message,
				Visibility:  input.Visibility,
				Sender:      domain.AnonymousSender(),
				RecipientID: input.RecipientID,
			}, nil
		},
	}

	resolver := &mutationResolver{&Resolver{recognition: mock}}
	result, err := resolver.CreateRecognition(context.Background(), model.CreateRecognitionInput{
		Message:     "thanks!",
		Visibility:  domain.VisibilityPublic,
		IsAnonymous: &anon,
		RecipientID: recipient,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsAnonymous)
}

func TestCreateRecognition_AnonymousDefaultsToFalse(t *testing.T) {
	t.Parallel()

	sender := uuid.New()
	mock := &recognitionServiceMock{
		CreateRecognitionFunc: func(_ context.Context, input recognition.CreateRecognitionInput) (*domain.Recognition, error) {
			assert.False(t, input.IsAnonymous)
			return &domain.Recognition{ID: uuid.New(), Sender: domain.KnownSender(sender)}, nil
		},
	}

	resolver := &mutationResolver{&Resolver{recognition: mock}}
	result, err := resolver.CreateRecognition(context.Background(), model.CreateRecognitionInput{
		Message:     "thanks!",
		Visibility:  domain.VisibilityPublic,
		RecipientID: uuid.New(),
	})

	require.NoError(t, err)
	assert.False(t, result.IsAnonymous)
}

func TestUpdateRecognition_Error(t *testing.T) {
	t.Parallel()

	mock := &recognitionServiceMock{
		UpdateRecognitionFunc: func(_ context.Context, _ recognition.UpdateRecognitionInput) (*domain.Recognition, error) {
			return nil, domain.ErrForbidden
		},
	}

	resolver := &mutationResolver{&Resolver{recognition: mock}}
	msg := "changed"
	_, err := resolver.UpdateRecognition(context.Background(), model.UpdateRecognitionInput{ID: uuid.New(), Message: &msg})

	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteRecognition(t *testing.T) {
	t.Parallel()

	mock := &recognitionServiceMock{
		DeleteRecognitionFunc: func(_ context.Context, _ uuid.UUID) error {
			return nil
		},
	}

	resolver := &mutationResolver{&Resolver{recognition: mock}}
	ok, err := resolver.DeleteRecognition(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, ok)

	mock.DeleteRecognitionFunc = func(_ context.Context, _ uuid.UUID) error {
		return domain.ErrNotFound
	}
	ok, err = resolver.DeleteRecognition(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, ok)
}

func TestAddReaction_Success(t *testing.T) {
	t.Parallel()

	recID := uuid.New()
	mock := &recognitionServiceMock{
		AddReactionFunc: func(_ context.Context, recognitionID uuid.UUID, emoji string) (*domain.Reaction, error) {
			assert.Equal(t, recID, recognitionID)
			assert.Equal(t, "🎉", emoji)
			return &domain.Reaction{ID: uuid.New(), RecognitionID: recognitionID, Emoji: emoji}, nil
		},
	}

	resolver := &mutationResolver{&Resolver{recognition: mock}}
	result, err := resolver.AddReaction(context.Background(), model.AddReactionInput{RecognitionID: recID, Emoji: "🎉"})

	require.NoError(t, err)
	assert.Equal(t, "🎉", result.Emoji)
}

func TestRemoveReaction_Passthrough(t *testing.T) {
	t.Parallel()

	mock := &recognitionServiceMock{
		RemoveReactionFunc: func(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
			return false, nil
		},
	}

	resolver := &mutationResolver{&Resolver{recognition: mock}}
	removed, err := resolver.RemoveReaction(context.Background(), uuid.New(), "🔥")

	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAddComment_Success(t *testing.T) {
	t.Parallel()

	recID := uuid.New()
	mock := &recognitionServiceMock{
		AddCommentFunc: func(_ context.Context, recognitionID uuid.UUID, message string) (*domain.Comment, error) {
			assert.Equal(t, recID, recognitionID)
			return &domain.Comment{ID: uuid.New(), RecognitionID: recognitionID, Message: message}, nil
		},
	}

	resolver := &mutationResolver{&Resolver{recognition: mock}}
	result, err := resolver.AddComment(context.Background(), model.AddCommentInput{RecognitionID: recID, Message: "well deserved"})

	require.NoError(t, err)
	assert.Equal(t, "well deserved", result.Message)
}

func TestDeleteComment_Forbidden(t *testing.T) {
	t.Parallel()

	mock := &recognitionServiceMock{
		DeleteCommentFunc: func(_ context.Context, _ uuid.UUID) error {
			return domain.ErrForbidden
		},
	}

	resolver := &mutationResolver{&Resolver{recognition: mock}}
	ok, err := resolver.DeleteComment(context.Background(), uuid.New())

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// Edge resolvers
// ---------------------------------------------------------------------------

func seedEdgeFixture(t *testing.T) (*memstore.Store, domain.User, domain.User, domain.Recognition) {
	t.Helper()
	store := memstore.New()
	sender := store.PutUser(domain.User{ID: uuid.New(), Email: "s@example.com", Name: "Sender", Role: domain.RoleEmployee})
	recipient := store.PutUser(domain.User{ID: uuid.New(), Email: "r@example.com", Name: "Recipient", Role: domain.RoleEmployee})
	rec, err := store.PutRecognition(domain.Recognition{
		ID:          uuid.New(),
		Message:     "kudos",
		Visibility:  domain.VisibilityPublic,
		Sender:      domain.KnownSender(sender.ID),
		RecipientID: recipient.ID,
	})
	require.NoError(t, err)
	return store, sender, recipient, rec
}

func TestRecognitionResolver_SenderAndRecipient(t *testing.T) {
	t.Parallel()

	store, sender, recipient, rec := seedEdgeFixture(t)
	resolver := &recognitionResolver{&Resolver{}}
	ctx := loaderCtx(store)

	obj := model.NewRecognition(&rec)

	got, err := resolver.Sender(ctx, obj)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sender.ID, got.ID)

	got, err = resolver.Recipient(ctx, obj)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, recipient.ID, got.ID)
}

func TestRecognitionResolver_AnonymousSenderIsNull(t *testing.T) {
	t.Parallel()

	store, _, recipient, _ := seedEdgeFixture(t)
	anon, err := store.PutRecognition(domain.Recognition{
		ID:          uuid.New(),
		Message:     "secret kudos",
		Visibility:  domain.VisibilityPublic,
		Sender:      domain.AnonymousSender(),
		RecipientID: recipient.ID,
	})
	require.NoError(t, err)

	resolver := &recognitionResolver{&Resolver{}}
	got, err := resolver.Sender(loaderCtx(store), model.NewRecognition(&anon))

	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRecognitionResolver_DanglingRecipient(t *testing.T) {
	t.Parallel()

	store, _, _, _ := seedEdgeFixture(t)
	resolver := &recognitionResolver{&Resolver{}}

	// Built by hand: the store itself would refuse this write.
	obj := &model.Recognition{ID: uuid.New(), RecipientID: uuid.New()}

	_, err := resolver.Recipient(loaderCtx(store), obj)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecognitionResolver_ReactionsAndComments(t *testing.T) {
	t.Parallel()

	store, sender, recipient, rec := seedEdgeFixture(t)

	first, err := store.PutReaction(domain.Reaction{ID: uuid.New(), RecognitionID: rec.ID, UserID: sender.ID, Emoji: "👏"})
	require.NoError(t, err)
	second, err := store.PutReaction(domain.Reaction{ID: uuid.New(), RecognitionID: rec.ID, UserID: recipient.ID, Emoji: "🎉"})
	require.NoError(t, err)
	comment, err := store.PutComment(domain.Comment{ID: uuid.New(), RecognitionID: rec.ID, UserID: recipient.ID, Message: "thanks"})
	require.NoError(t, err)

	resolver := &recognitionResolver{&Resolver{}}
	ctx := loaderCtx(store)
	obj := model.NewRecognition(&rec)

	reactions, err := resolver.Reactions(ctx, obj)
	require.NoError(t, err)
	require.Len(t, reactions, 2)
	assert.Equal(t, first.ID, reactions[0].ID)
	assert.Equal(t, second.ID, reactions[1].ID)

	comments, err := resolver.Comments(ctx, obj)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)

	// The reaction and comment author edges resolve through the same loader.
	author, err := (&reactionResolver{&Resolver{}}).User(ctx, reactions[0])
	require.NoError(t, err)
	assert.Equal(t, sender.ID, author.ID)

	author, err = (&commentResolver{&Resolver{}}).User(ctx, comments[0])
	require.NoError(t, err)
	assert.Equal(t, recipient.ID, author.ID)
}
