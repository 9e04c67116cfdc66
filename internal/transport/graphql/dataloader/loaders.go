package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/kudos-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// User by ID (1:1 nullable)
// ---------------------------------------------------------------------------

func newUserBatchFn(store Store) dataloader.BatchFunc[uuid.UUID, *domain.User] {
	return func(_ context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.User] {
		found := store.GetUsers(keys)

		results := make([]*dataloader.Result[*domain.User], len(keys))
		for i, key := range keys {
			if u, ok := found[key]; ok {
				u := u // copy to avoid aliasing
				results[i] = &dataloader.Result[*domain.User]{Data: &u}
			} else {
				results[i] = &dataloader.Result[*domain.User]{Data: nil}
			}
		}
		return results
	}
}

// ---------------------------------------------------------------------------
// Reactions by RecognitionID
// ---------------------------------------------------------------------------

func newReactionsBatchFn(store Store) dataloader.BatchFunc[uuid.UUID, []domain.Reaction] {
	return func(_ context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.Reaction] {
		grouped := store.ReactionsForMany(keys)
		return mapResults(keys, grouped, emptySlice[domain.Reaction])
	}
}

// ---------------------------------------------------------------------------
// Comments by RecognitionID
// ---------------------------------------------------------------------------

func newCommentsBatchFn(store Store) dataloader.BatchFunc[uuid.UUID, []domain.Comment] {
	return func(_ context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.Comment] {
		grouped := store.CommentsForMany(keys)
		return mapResults(keys, grouped, emptySlice[domain.Comment])
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

// emptySlice returns a non-nil empty slice.
func emptySlice[T any]() []T {
	return []T{}
}
