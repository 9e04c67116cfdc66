package recognition

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
)

// CreateRecognitionInput carries the fields for a new recognition.
type CreateRecognitionInput struct {
	Message     string
	Emojis      []string
	Visibility  domain.Visibility
	IsAnonymous bool
	RecipientID uuid.UUID
	// Keywords, when empty, are auto-extracted from Message.
	Keywords []string
}

func (in CreateRecognitionInput) Validate() error {
	if strings.TrimSpace(in.Message) == "" {
		return domain.NewValidationError("message", "required")
	}
	if in.RecipientID == uuid.Nil {
		return domain.NewValidationError("recipient_id", "required")
	}
	if !in.Visibility.IsValid() {
		return domain.NewValidationError("visibility", "must be PUBLIC, PRIVATE, or TEAM_ONLY")
	}
	return nil
}

// UpdateRecognitionInput patches an existing recognition. Nil fields keep
// their current value.
type UpdateRecognitionInput struct {
	ID         uuid.UUID
	Message    *string
	Emojis     []string
	Visibility *domain.Visibility
	Keywords   []string
}

func (in UpdateRecognitionInput) Validate() error {
	if in.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	if in.Message != nil && strings.TrimSpace(*in.Message) == "" {
		return domain.NewValidationError("message", "cannot be empty")
	}
	if in.Visibility != nil && !in.Visibility.IsValid() {
		return domain.NewValidationError("visibility", "must be PUBLIC, PRIVATE, or TEAM_ONLY")
	}
	return nil
}

// ListInput filters and paginates the recognition listing. Filters
// combine conjunctively; Keywords match by case-insensitive substring,
// OR'ed across the list.
type ListInput struct {
	RecipientID *uuid.UUID
	SenderID    *uuid.UUID
	Visibility  *domain.Visibility
	Department  *string
	Keywords    []string
	Limit       int
	Offset      int
}
