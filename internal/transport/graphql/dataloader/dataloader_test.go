package dataloader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kudos-backend/internal/adapter/memstore"
	"github.com/heartmarshall/kudos-backend/internal/domain"
	dl "github.com/heartmarshall/kudos-backend/internal/transport/graphql/dataloader"
)

func seedStore(t *testing.T) (*memstore.Store, domain.User, domain.User, domain.Recognition) {
	t.Helper()
	store := memstore.New()
	alice := store.PutUser(domain.User{ID: uuid.New(), Email: "alice@example.com", Name: "Alice", Role: domain.RoleEmployee})
	bob := store.PutUser(domain.User{ID: uuid.New(), Email: "bob@example.com", Name: "Bob", Role: domain.RoleEmployee})
	rec, err := store.PutRecognition(domain.Recognition{
		ID:          uuid.New(),
		Message:     "kudos",
		Visibility:  domain.VisibilityPublic,
		Sender:      domain.KnownSender(alice.ID),
		RecipientID: bob.ID,
	})
	require.NoError(t, err)
	return store, alice, bob, rec
}

// ---------------------------------------------------------------------------
// Context / Middleware tests
// ---------------------------------------------------------------------------

func TestFromContext_ReturnsLoaders(t *testing.T) {
	loaders := dl.NewLoaders(memstore.New())
	ctx := dl.WithLoaders(context.Background(), loaders)

	got := dl.FromContext(ctx)
	assert.NotNil(t, got)
	assert.Equal(t, loaders, got)
}

func TestFromContext_PanicsWhenMissing(t *testing.T) {
	assert.Panics(t, func() {
		dl.FromContext(context.Background())
	})
}

func TestMiddleware_InjectsLoaders(t *testing.T) {
	mw := dl.Middleware(memstore.New())

	var gotLoaders *dl.Loaders
	handler := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotLoaders = dl.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/query", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, gotLoaders)
	assert.NotNil(t, gotLoaders.UserByID)
	assert.NotNil(t, gotLoaders.ReactionsByRecognitionID)
	assert.NotNil(t, gotLoaders.CommentsByRecognitionID)
}

// ---------------------------------------------------------------------------
// Batch function tests
// ---------------------------------------------------------------------------

func TestUserLoader_ResolvesAndMisses(t *testing.T) {
	store, alice, bob, _ := seedStore(t)
	loaders := dl.NewLoaders(store)
	ctx := context.Background()

	gotAlice, err := loaders.UserByID.Load(ctx, alice.ID)()
	require.NoError(t, err)
	require.NotNil(t, gotAlice)
	assert.Equal(t, "Alice", gotAlice.Name)

	gotBob, err := loaders.UserByID.Load(ctx, bob.ID)()
	require.NoError(t, err)
	require.NotNil(t, gotBob)
	assert.Equal(t, "Bob", gotBob.Name)

	// Unknown IDs resolve to nil without an error.
	missing, err := loaders.UserByID.Load(ctx, uuid.New())()
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReactionsLoader_GroupsByRecognitionID(t *testing.T) {
	store, alice, bob, rec := seedStore(t)
	other, err := store.PutRecognition(domain.Recognition{
		ID:          uuid.New(),
		Message:     "more kudos",
		Visibility:  domain.VisibilityPublic,
		Sender:      domain.KnownSender(bob.ID),
		RecipientID: alice.ID,
	})
	require.NoError(t, err)

	_, err = store.PutReaction(domain.Reaction{ID: uuid.New(), RecognitionID: rec.ID, UserID: alice.ID, Emoji: "🎉"})
	require.NoError(t, err)
	_, err = store.PutReaction(domain.Reaction{ID: uuid.New(), RecognitionID: rec.ID, UserID: bob.ID, Emoji: "👏"})
	require.NoError(t, err)
	_, err = store.PutReaction(domain.Reaction{ID: uuid.New(), RecognitionID: other.ID, UserID: alice.ID, Emoji: "🔥"})
	require.NoError(t, err)

	loaders := dl.NewLoaders(store)
	ctx := context.Background()

	result1, err := loaders.ReactionsByRecognitionID.Load(ctx, rec.ID)()
	require.NoError(t, err)
	assert.Len(t, result1, 2)

	result2, err := loaders.ReactionsByRecognitionID.Load(ctx, other.ID)()
	require.NoError(t, err)
	assert.Len(t, result2, 1)
}

func TestReactionsLoader_EmptyResult(t *testing.T) {
	store, _, _, rec := seedStore(t)
	loaders := dl.NewLoaders(store)

	result, err := loaders.ReactionsByRecognitionID.Load(context.Background(), rec.ID)()
	require.NoError(t, err)
	assert.NotNil(t, result, "should return empty slice, not nil")
	assert.Empty(t, result)
}

func TestCommentsLoader_GroupsByRecognitionID(t *testing.T) {
	store, alice, _, rec := seedStore(t)
	_, err := store.PutComment(domain.Comment{ID: uuid.New(), RecognitionID: rec.ID, UserID: alice.ID, Message: "nice"})
	require.NoError(t, err)

	loaders := dl.NewLoaders(store)

	result, err := loaders.CommentsByRecognitionID.Load(context.Background(), rec.ID)()
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "nice", result[0].Message)
}

func TestCommentsLoader_EmptyResult(t *testing.T) {
	store, _, _, rec := seedStore(t)
	loaders := dl.NewLoaders(store)

	result, err := loaders.CommentsByRecognitionID.Load(context.Background(), rec.ID)()
	require.NoError(t, err)
	assert.NotNil(t, result, "should return empty slice, not nil")
	assert.Empty(t, result)
}
