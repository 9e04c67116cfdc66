// Package recognition implements the recognition write and read paths:
// creation with keyword auto-extraction, visibility-filtered listing and
// search, moderated update/delete, and reactions/comments. Every read
// passes candidates through domain.CanView before returning them.
package recognition

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/kudos-backend/internal/domain"
)

// DefaultLimit is the page size used when the caller supplies none.
const DefaultLimit = 20

type entityStore interface {
	GetUser(id uuid.UUID) *domain.User

	PutRecognition(r domain.Recognition) (domain.Recognition, error)
	GetRecognition(id uuid.UUID) *domain.Recognition
	ListValidRecognitions() []domain.Recognition
	DeleteRecognition(id uuid.UUID) bool

	PutReaction(r domain.Reaction) (domain.Reaction, error)
	RemoveReaction(recognitionID, userID uuid.UUID, emoji string) bool

	PutComment(c domain.Comment) (domain.Comment, error)
	GetComment(id uuid.UUID) *domain.Comment
	RemoveComment(id uuid.UUID) bool
}

type eventPublisher interface {
	PublishRecognitionCreated(rec *domain.Recognition)
	PublishRecognitionUpdated(rec *domain.Recognition)
	PublishReactionAdded(reaction *domain.Reaction)
	PublishCommentAdded(comment *domain.Comment)
}

// Service provides recognition operations.
type Service struct {
	store  entityStore
	events eventPublisher
	clock  clockwork.Clock
	log    *slog.Logger
}

// NewService creates a recognition Service.
func NewService(log *slog.Logger, store entityStore, events eventPublisher, clock clockwork.Clock) *Service {
	return &Service{
		store:  store,
		events: events,
		clock:  clock,
		log:    log.With("service", "recognition"),
	}
}

// canView applies the visibility policy with this service's user lookup.
func (s *Service) canView(rec *domain.Recognition, viewerID uuid.UUID) bool {
	return domain.CanView(rec, viewerID, s.store.GetUser)
}

// canModerate reports whether the viewer holds a moderating role.
func (s *Service) canModerate(viewerID uuid.UUID) bool {
	viewer := s.store.GetUser(viewerID)
	return viewer != nil && viewer.Role.CanModerate()
}
