package pubsub

import (
	"github.com/heartmarshall/kudos-backend/internal/domain"
)

// Domain-aware publish helpers. A created recognition goes to the broad
// feed and to the recipient's personal feed; updates, reactions, and
// comments go to the per-recognition topic only.

// PublishRecognitionCreated fans a new recognition out to the unscoped
// created topic and the recipient-scoped one.
func (b *Broker) PublishRecognitionCreated(rec *domain.Recognition) {
	b.Publish(Unscoped(EventRecognitionCreated), rec)
	b.Publish(Scoped(EventRecognitionCreated, rec.RecipientID), rec)
}

// PublishRecognitionUpdated notifies watchers of one recognition.
func (b *Broker) PublishRecognitionUpdated(rec *domain.Recognition) {
	b.Publish(Scoped(EventRecognitionUpdated, rec.ID), rec)
}

// PublishReactionAdded notifies watchers of the reacted-to recognition.
func (b *Broker) PublishReactionAdded(reaction *domain.Reaction) {
	b.Publish(Scoped(EventReactionAdded, reaction.RecognitionID), reaction)
}

// PublishCommentAdded notifies watchers of the commented-on recognition.
func (b *Broker) PublishCommentAdded(comment *domain.Comment) {
	b.Publish(Scoped(EventCommentAdded, comment.RecognitionID), comment)
}
