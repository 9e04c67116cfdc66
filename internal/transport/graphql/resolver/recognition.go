package resolver

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/service/recognition"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/dataloader"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/model"
)

// Recognition returns a recognition by ID. Invisible or unknown
// recognitions resolve to null rather than an error, so probing IDs
// reveals nothing.
func (r *queryResolver) Recognition(ctx context.Context, id uuid.UUID) (*model.Recognition, error) {
	rec, err := r.recognition.GetRecognition(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.NewRecognition(rec), nil
}

// Recognitions lists visible recognitions, newest first.
func (r *queryResolver) Recognitions(ctx context.Context, filter *model.RecognitionFilter, limit, offset *int) ([]*model.Recognition, error) {
	input := recognition.ListInput{}
	if filter != nil {
		input.RecipientID = filter.RecipientID
		input.SenderID = filter.SenderID
		input.Visibility = filter.Visibility
		input.Department = filter.Department
		input.Keywords = filter.Keywords
	}
	if limit != nil {
		input.Limit = *limit
	}
	if offset != nil {
		input.Offset = *offset
	}

	recs, err := r.recognition.ListRecognitions(ctx, input)
	if err != nil {
		return nil, err
	}
	return model.NewRecognitions(recs), nil
}

// SearchRecognitions finds visible recognitions whose message or
// keywords match the query.
func (r *queryResolver) SearchRecognitions(ctx context.Context, query string) ([]*model.Recognition, error) {
	recs, err := r.recognition.SearchRecognitions(ctx, query)
	if err != nil {
		return nil, err
	}
	return model.NewRecognitions(recs), nil
}

// CreateRecognition creates a recognition on behalf of the viewer.
func (r *mutationResolver) CreateRecognition(ctx context.Context, input model.CreateRecognitionInput) (*model.Recognition, error) {
	in := recognition.CreateRecognitionInput{
		Message:     input.Message,
		Emojis:      input.Emojis,
		Visibility:  input.Visibility,
		RecipientID: input.RecipientID,
		Keywords:    input.Keywords,
	}
	if input.IsAnonymous != nil {
		in.IsAnonymous = *input.IsAnonymous
	}

	rec, err := r.recognition.CreateRecognition(ctx, in)
	if err != nil {
		return nil, err
	}
	return model.NewRecognition(rec), nil
}

// UpdateRecognition patches a recognition the viewer may edit.
func (r *mutationResolver) UpdateRecognition(ctx context.Context, input model.UpdateRecognitionInput) (*model.Recognition, error) {
	rec, err := r.recognition.UpdateRecognition(ctx, recognition.UpdateRecognitionInput{
		ID:         input.ID,
		Message:    input.Message,
		Emojis:     input.Emojis,
		Visibility: input.Visibility,
		Keywords:   input.Keywords,
	})
	if err != nil {
		return nil, err
	}
	return model.NewRecognition(rec), nil
}

// DeleteRecognition removes a recognition and its reactions and comments.
func (r *mutationResolver) DeleteRecognition(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := r.recognition.DeleteRecognition(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// AddReaction reacts to a recognition with an emoji.
func (r *mutationResolver) AddReaction(ctx context.Context, input model.AddReactionInput) (*model.Reaction, error) {
	reaction, err := r.recognition.AddReaction(ctx, input.RecognitionID, input.Emoji)
	if err != nil {
		return nil, err
	}
	return model.NewReaction(reaction), nil
}

// RemoveReaction removes the viewer's own reaction. Returns false when
// no matching reaction existed.
func (r *mutationResolver) RemoveReaction(ctx context.Context, recognitionID uuid.UUID, emoji string) (bool, error) {
	return r.recognition.RemoveReaction(ctx, recognitionID, emoji)
}

// AddComment comments on a recognition.
func (r *mutationResolver) AddComment(ctx context.Context, input model.AddCommentInput) (*model.Comment, error) {
	comment, err := r.recognition.AddComment(ctx, input.RecognitionID, input.Message)
	if err != nil {
		return nil, err
	}
	return model.NewComment(comment), nil
}

// DeleteComment removes a comment the viewer authored or may moderate.
func (r *mutationResolver) DeleteComment(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := r.recognition.DeleteComment(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Edge resolvers
// ---------------------------------------------------------------------------

// Sender resolves to null for anonymous recognitions and for senders that
// no longer exist.
func (r *recognitionResolver) Sender(ctx context.Context, obj *model.Recognition) (*model.User, error) {
	if obj.SenderID == nil {
		return nil, nil
	}
	u, err := dataloader.FromContext(ctx).UserByID.Load(ctx, *obj.SenderID)()
	if err != nil {
		return nil, err
	}
	return model.NewUser(u), nil
}

// Recipient resolves the mandatory recipient edge. A dangling recipient
// is a referential-integrity fault, surfaced as not-found.
func (r *recognitionResolver) Recipient(ctx context.Context, obj *model.Recognition) (*model.User, error) {
	u, err := dataloader.FromContext(ctx).UserByID.Load(ctx, obj.RecipientID)()
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return model.NewUser(u), nil
}

// Reactions resolves all reactions on the recognition, oldest first.
func (r *recognitionResolver) Reactions(ctx context.Context, obj *model.Recognition) ([]*model.Reaction, error) {
	reactions, err := dataloader.FromContext(ctx).ReactionsByRecognitionID.Load(ctx, obj.ID)()
	if err != nil {
		return nil, err
	}
	out := make([]*model.Reaction, 0, len(reactions))
	for i := range reactions {
		out = append(out, model.NewReaction(&reactions[i]))
	}
	return out, nil
}

// Comments resolves all comments on the recognition, oldest first.
func (r *recognitionResolver) Comments(ctx context.Context, obj *model.Recognition) ([]*model.Comment, error) {
	comments, err := dataloader.FromContext(ctx).CommentsByRecognitionID.Load(ctx, obj.ID)()
	if err != nil {
		return nil, err
	}
	out := make([]*model.Comment, 0, len(comments))
	for i := range comments {
		out = append(out, model.NewComment(&comments[i]))
	}
	return out, nil
}

// User resolves the reacting user. Dangling reactors surface as not-found.
func (r *reactionResolver) User(ctx context.Context, obj *model.Reaction) (*model.User, error) {
	u, err := dataloader.FromContext(ctx).UserByID.Load(ctx, obj.UserID)()
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return model.NewUser(u), nil
}

// User resolves the comment author. Dangling authors surface as not-found.
func (r *commentResolver) User(ctx context.Context, obj *model.Comment) (*model.User, error) {
	u, err := dataloader.FromContext(ctx).UserByID.Load(ctx, obj.UserID)()
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return model.NewUser(u), nil
}
