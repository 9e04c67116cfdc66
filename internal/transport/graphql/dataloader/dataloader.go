// Package dataloader provides per-request DataLoaders for batching GraphQL
// edge resolution into single store calls. DataLoaders read the entity
// store directly, bypassing the service layer; visibility was already
// enforced when the parent recognition was resolved.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/kudos-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// Store is the batch-read surface the loaders need from the entity store.
type Store interface {
	GetUsers(ids []uuid.UUID) map[uuid.UUID]domain.User
	ReactionsForMany(recognitionIDs []uuid.UUID) map[uuid.UUID][]domain.Reaction
	CommentsForMany(recognitionIDs []uuid.UUID) map[uuid.UUID][]domain.Comment
}

// Loaders holds all per-request DataLoader instances. Created per-request
// via NewLoaders (loaders cache results within a single request).
type Loaders struct {
	UserByID                 *dataloader.Loader[uuid.UUID, *domain.User]
	ReactionsByRecognitionID *dataloader.Loader[uuid.UUID, []domain.Reaction]
	CommentsByRecognitionID  *dataloader.Loader[uuid.UUID, []domain.Comment]
}

// NewLoaders creates a new set of DataLoaders backed by the given store.
func NewLoaders(store Store) *Loaders {
	return &Loaders{
		UserByID:                 newLoader(newUserBatchFn(store)),
		ReactionsByRecognitionID: newLoader(newReactionsBatchFn(store)),
		CommentsByRecognitionID:  newLoader(newCommentsBatchFn(store)),
	}
}

// newLoader creates a dataloader.Loader with standard batch parameters.
func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is middleware configured?")
	}
	return l
}
