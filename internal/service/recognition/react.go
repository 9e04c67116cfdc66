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

// AddReaction records the caller's emoji reaction on a recognition and
// publishes it to the recognition's watchers.
func (s *Service) AddReaction(ctx context.Context, recognitionID uuid.UUID, emoji string) (*domain.Reaction, error) {
	viewerID, ok := ctxutil.ViewerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if strings.TrimSpace(emoji) == "" {
		return nil, domain.NewValidationError("emoji", "required")
	}

	if s.store.GetRecognition(recognitionID) == nil {
		return nil, fmt.Errorf("recognition %s: %w", recognitionID, domain.ErrNotFound)
	}

	reaction, err := s.store.PutReaction(domain.Reaction{
		ID:            uuid.New(),
		RecognitionID: recognitionID,
		UserID:        viewerID,
		Emoji:         emoji,
		CreatedAt:     s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("put reaction: %w", err)
	}

	s.events.PublishReactionAdded(&reaction)

	s.log.InfoContext(ctx, "reaction added",
		slog.String("recognition_id", recognitionID.String()),
		slog.String("user_id", viewerID.String()),
	)

	return &reaction, nil
}

// RemoveReaction deletes the caller's reaction with the given emoji.
// Removing a reaction that does not exist is not an error.
func (s *Service) RemoveReaction(ctx context.Context, recognitionID uuid.UUID, emoji string) (bool, error) {
	viewerID, ok := ctxutil.ViewerIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}

	removed := s.store.RemoveReaction(recognitionID, viewerID, emoji)
	if removed {
		s.log.InfoContext(ctx, "reaction removed",
			slog.String("recognition_id", recognitionID.String()),
			slog.String("user_id", viewerID.String()),
		)
	}
	return removed, nil
}
