package resolver

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/pubsub"
	"github.com/heartmarshall/kudos-backend/internal/service/recognition"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/generated"
)

// recognitionService defines what resolver needs from Recognition service.
type recognitionService interface {
	CreateRecognition(ctx context.Context, input recognition.CreateRecognitionInput) (*domain.Recognition, error)
	UpdateRecognition(ctx context.Context, input recognition.UpdateRecognitionInput) (*domain.Recognition, error)
	DeleteRecognition(ctx context.Context, id uuid.UUID) error
	GetRecognition(ctx context.Context, id uuid.UUID) (*domain.Recognition, error)
	ListRecognitions(ctx context.Context, input recognition.ListInput) ([]domain.Recognition, error)
	SearchRecognitions(ctx context.Context, query string) ([]domain.Recognition, error)
	AddReaction(ctx context.Context, recognitionID uuid.UUID, emoji string) (*domain.Reaction, error)
	RemoveReaction(ctx context.Context, recognitionID uuid.UUID, emoji string) (bool, error)
	AddComment(ctx context.Context, recognitionID uuid.UUID, message string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// analyticsService defines what resolver needs from Analytics service.
type analyticsService interface {
	ComputeAnalytics(ctx context.Context, filter domain.AnalyticsFilter) (*domain.AnalyticsReport, error)
}

// userService defines what resolver needs from User service.
type userService interface {
	Me(ctx context.Context) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context, role *domain.Role, department *string) ([]domain.User, error)
}

// eventSource defines what resolver needs from the event broker.
type eventSource interface {
	Subscribe(ctx context.Context, topic pubsub.Topic) *pubsub.Subscription
}

// Resolver is the root resolver containing all service dependencies.
type Resolver struct {
	recognition recognitionService
	analytics   analyticsService
	user        userService
	events      eventSource
	log         *slog.Logger
}

// NewResolver creates a new Resolver with all service dependencies.
func NewResolver(
	log *slog.Logger,
	recognition recognitionService,
	analytics analyticsService,
	user userService,
	events eventSource,
) *Resolver {
	return &Resolver{
		recognition: recognition,
		analytics:   analytics,
		user:        user,
		events:      events,
		log:         log.With("component", "graphql"),
	}
}

// Query returns generated.QueryResolver implementation.
func (r *Resolver) Query() generated.QueryResolver { return &queryResolver{r} }

// Mutation returns generated.MutationResolver implementation.
func (r *Resolver) Mutation() generated.MutationResolver { return &mutationResolver{r} }

// Subscription returns generated.SubscriptionResolver implementation.
func (r *Resolver) Subscription() generated.SubscriptionResolver { return &subscriptionResolver{r} }

// Recognition returns generated.RecognitionResolver implementation.
func (r *Resolver) Recognition() generated.RecognitionResolver { return &recognitionResolver{r} }

// User returns generated.UserResolver implementation.
func (r *Resolver) User() generated.UserResolver { return &userResolver{r} }

// Reaction returns generated.ReactionResolver implementation.
func (r *Resolver) Reaction() generated.ReactionResolver { return &reactionResolver{r} }

// Comment returns generated.CommentResolver implementation.
func (r *Resolver) Comment() generated.CommentResolver { return &commentResolver{r} }

type queryResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }
type subscriptionResolver struct{ *Resolver }
type recognitionResolver struct{ *Resolver }
type userResolver struct{ *Resolver }
type reactionResolver struct{ *Resolver }
type commentResolver struct{ *Resolver }
