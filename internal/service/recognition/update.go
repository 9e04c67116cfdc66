package recognition

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

// UpdateRecognition patches a recognition. Only the original sender or a
// moderating role (HR, cross-functional lead) may edit; anonymous
// recognitions have no sender, so only moderators can touch them.
func (s *Service) UpdateRecognition(ctx context.Context, input UpdateRecognitionInput) (*domain.Recognition, error) {
	viewerID, ok := ctxutil.ViewerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	rec := s.store.GetRecognition(input.ID)
	if rec == nil {
		return nil, fmt.Errorf("recognition %s: %w", input.ID, domain.ErrNotFound)
	}

	if !rec.Sender.Is(viewerID) && !s.canModerate(viewerID) {
		return nil, domain.ErrForbidden
	}

	updated := *rec
	if input.Message != nil {
		updated.Message = *input.Message
	}
	if input.Emojis != nil {
		updated.Emojis = input.Emojis
	}
	if input.Visibility != nil {
		updated.Visibility = *input.Visibility
	}
	if input.Keywords != nil {
		updated.Keywords = input.Keywords
	}
	updated.UpdatedAt = s.clock.Now()

	stored, err := s.store.PutRecognition(updated)
	if err != nil {
		return nil, fmt.Errorf("put recognition: %w", err)
	}

	s.events.PublishRecognitionUpdated(&stored)

	s.log.InfoContext(ctx, "recognition updated",
		slog.String("recognition_id", stored.ID.String()),
		slog.String("viewer_id", viewerID.String()),
	)

	return &stored, nil
}

// DeleteRecognition removes a recognition and its reactions and comments.
// Authorization mirrors UpdateRecognition.
func (s *Service) DeleteRecognition(ctx context.Context, id uuid.UUID) error {
	viewerID, ok := ctxutil.ViewerIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	rec := s.store.GetRecognition(id)
	if rec == nil {
		return fmt.Errorf("recognition %s: %w", id, domain.ErrNotFound)
	}

	if !rec.Sender.Is(viewerID) && !s.canModerate(viewerID) {
		return domain.ErrForbidden
	}

	s.store.DeleteRecognition(id)

	s.log.InfoContext(ctx, "recognition deleted",
		slog.String("recognition_id", id.String()),
		slog.String("viewer_id", viewerID.String()),
	)

	return nil
}
