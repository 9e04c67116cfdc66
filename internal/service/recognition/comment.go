package recognition

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

// AddComment persists a comment on a recognition and publishes it to the
// recognition's watchers.
func (s *Service) AddComment(ctx context.Context, recognitionID uuid.UUID, message string) (*domain.Comment, error) {
	viewerID, ok := ctxutil.ViewerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if strings.TrimSpace(message) == "" {
		return nil, domain.NewValidationError("message", "required")
	}

	if s.store.GetRecognition(recognitionID) == nil {
		return nil, fmt.Errorf("recognition %s: %w", recognitionID, domain.ErrNotFound)
	}

	comment, err := s.store.PutComment(domain.Comment{
		ID:            uuid.New(),
		RecognitionID: recognitionID,
		UserID:        viewerID,
		Message:       message,
		CreatedAt:     s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("put comment: %w", err)
	}

	s.events.PublishCommentAdded(&comment)

	s.log.InfoContext(ctx, "comment added",
		slog.String("recognition_id", recognitionID.String()),
		slog.String("user_id", viewerID.String()),
	)

	return &comment, nil
}

// DeleteComment removes a comment. Only its author or a moderating role
// may delete it.
func (s *Service) DeleteComment(ctx context.Context, id uuid.UUID) error {
	viewerID, ok := ctxutil.ViewerIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	comment := s.store.GetComment(id)
	if comment == nil {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}

	if comment.UserID != viewerID && !s.canModerate(viewerID) {
		return domain.ErrForbidden
	}

	s.store.RemoveComment(id)

	s.log.InfoContext(ctx, "comment deleted",
		slog.String("comment_id", id.String()),
		slog.String("viewer_id", viewerID.String()),
	)

	return nil
}
