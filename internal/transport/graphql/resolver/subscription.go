package resolver

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/pubsub"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/model"
)

// RecognitionCreated streams new recognitions. With userId set only
// recognitions addressed to that user arrive; without it, every new
// recognition does.
func (r *subscriptionResolver) RecognitionCreated(ctx context.Context, userID *uuid.UUID) (<-chan *model.Recognition, error) {
	topic := pubsub.Unscoped(pubsub.EventRecognitionCreated)
	if userID != nil {
		topic = pubsub.Scoped(pubsub.EventRecognitionCreated, *userID)
	}
	sub := r.events.Subscribe(ctx, topic)
	return pump(ctx, sub, model.NewRecognition), nil
}

// RecognitionUpdated streams edits to one recognition.
func (r *subscriptionResolver) RecognitionUpdated(ctx context.Context, recognitionID uuid.UUID) (<-chan *model.Recognition, error) {
	sub := r.events.Subscribe(ctx, pubsub.Scoped(pubsub.EventRecognitionUpdated, recognitionID))
	return pump(ctx, sub, model.NewRecognition), nil
}

// ReactionAdded streams reactions landing on one recognition.
func (r *subscriptionResolver) ReactionAdded(ctx context.Context, recognitionID uuid.UUID) (<-chan *model.Reaction, error) {
	sub := r.events.Subscribe(ctx, pubsub.Scoped(pubsub.EventReactionAdded, recognitionID))
	return pump(ctx, sub, model.NewReaction), nil
}

// CommentAdded streams comments landing on one recognition.
func (r *subscriptionResolver) CommentAdded(ctx context.Context, recognitionID uuid.UUID) (<-chan *model.Comment, error) {
	sub := r.events.Subscribe(ctx, pubsub.Scoped(pubsub.EventCommentAdded, recognitionID))
	return pump(ctx, sub, model.NewComment), nil
}

// pump forwards broker events onto a typed output channel until the
// subscription or the client goes away. Payloads of an unexpected type
// are skipped rather than terminating the stream.
func pump[D any, M any](ctx context.Context, sub *pubsub.Subscription, convert func(*D) *M) <-chan *M {
	out := make(chan *M, 1)
	go func() {
		defer close(out)
		defer sub.Close()
		for payload := range sub.C() {
			event, ok := payload.(*D)
			if !ok {
				continue
			}
			select {
			case out <- convert(event):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
