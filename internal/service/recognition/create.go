package recognition

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

// CreateRecognition stores a new recognition from the authenticated caller
// and fans the created event out to the broad and recipient-scoped topics.
// Anonymous recognitions never record the caller's identity.
func (s *Service) CreateRecognition(ctx context.Context, input CreateRecognitionInput) (*domain.Recognition, error) {
	viewerID, ok := ctxutil.ViewerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	keywords := input.Keywords
	if len(keywords) == 0 {
		keywords = domain.ExtractKeywords(input.Message)
	}

	sender := domain.AnonymousSender()
	if !input.IsAnonymous {
		sender = domain.KnownSender(viewerID)
	}

	now := s.clock.Now()
	rec, err := s.store.PutRecognition(domain.Recognition{
		ID:          uuid.New(),
		Message:     input.Message,
		Emojis:      input.Emojis,
		Visibility:  input.Visibility,
		Sender:      sender,
		RecipientID: input.RecipientID,
		Keywords:    keywords,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("put recognition: %w", err)
	}

	s.events.PublishRecognitionCreated(&rec)

	s.log.InfoContext(ctx, "recognition created",
		slog.String("recognition_id", rec.ID.String()),
		slog.String("recipient_id", rec.RecipientID.String()),
		slog.Bool("anonymous", rec.Sender.IsAnonymous()),
		slog.String("visibility", rec.Visibility.String()),
	)

	return &rec, nil
}
