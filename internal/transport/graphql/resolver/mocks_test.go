package resolver

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/adapter/memstore"
	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/service/recognition"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/dataloader"
)

var (
	_ recognitionService = &recognitionServiceMock{}
	_ analyticsService   = &analyticsServiceMock{}
	_ userService        = &userServiceMock{}
)

type recognitionServiceMock struct {
	CreateRecognitionFunc  func(ctx context.Context, input recognition.CreateRecognitionInput) (*domain.Recognition, error)
	UpdateRecognitionFunc  func(ctx context.Context, input recognition.UpdateRecognitionInput) (*domain.Recognition, error)
	DeleteRecognitionFunc  func(ctx context.Context, id uuid.UUID) error
	GetRecognitionFunc     func(ctx context.Context, id uuid.UUID) (*domain.Recognition, error)
	ListRecognitionsFunc   func(ctx context.Context, input recognition.ListInput) ([]domain.Recognition, error)
	SearchRecognitionsFunc func(ctx context.Context, query string) ([]domain.Recognition, error)
	AddReactionFunc        func(ctx context.Context, recognitionID uuid.UUID, emoji string) (*domain.Reaction, error)
	RemoveReactionFunc     func(ctx context.Context, recognitionID uuid.UUID, emoji string) (bool, error)
	AddCommentFunc         func(ctx context.Context, recognitionID uuid.UUID, message string) (*domain.Comment, error)
	DeleteCommentFunc      func(ctx context.Context, id uuid.UUID) error
}

func (m *recognitionServiceMock) CreateRecognition(ctx context.Context, input recognition.CreateRecognitionInput) (*domain.Recognition, error) {
	return m.CreateRecognitionFunc(ctx, input)
}

func (m *recognitionServiceMock) UpdateRecognition(ctx context.Context, input recognition.UpdateRecognitionInput) (*domain.Recognition, error) {
	return m.UpdateRecognitionFunc(ctx, input)
}

func (m *recognitionServiceMock) DeleteRecognition(ctx context.Context, id uuid.UUID) error {
	return m.DeleteRecognitionFunc(ctx, id)
}

func (m *recognitionServiceMock) GetRecognition(ctx context.Context, id uuid.UUID) (*domain.Recognition, error) {
	return m.GetRecognitionFunc(ctx, id)
}

func (m *recognitionServiceMock) ListRecognitions(ctx context.Context, input recognition.ListInput) ([]domain.Recognition, error) {
	return m.ListRecognitionsFunc(ctx, input)
}

func (m *recognitionServiceMock) SearchRecognitions(ctx context.Context, query string) ([]domain.Recognition, error) {
	return m.SearchRecognitionsFunc(ctx, query)
}

func (m *recognitionServiceMock) AddReaction(ctx context.Context, recognitionID uuid.UUID, emoji string) (*domain.Reaction, error) {
	return m.AddReactionFunc(ctx, recognitionID, emoji)
}

func (m *recognitionServiceMock) RemoveReaction(ctx context.Context, recognitionID uuid.UUID, emoji string) (bool, error) {
	return m.RemoveReactionFunc(ctx, recognitionID, emoji)
}

func (m *recognitionServiceMock) AddComment(ctx context.Context, recognitionID uuid.UUID, message string) (*domain.Comment, error) {
	return m.AddCommentFunc(ctx, recognitionID, message)
}

func (m *recognitionServiceMock) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return m.DeleteCommentFunc(ctx, id)
}

type analyticsServiceMock struct {
	ComputeAnalyticsFunc func(ctx context.Context, filter domain.AnalyticsFilter) (*domain.AnalyticsReport, error)
}

func (m *analyticsServiceMock) ComputeAnalytics(ctx context.Context, filter domain.AnalyticsFilter) (*domain.AnalyticsReport, error) {
	return m.ComputeAnalyticsFunc(ctx, filter)
}

type userServiceMock struct {
	MeFunc        func(ctx context.Context) (*domain.User, error)
	GetUserFunc   func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsersFunc func(ctx context.Context, role *domain.Role, department *string) ([]domain.User, error)
}

func (m *userServiceMock) Me(ctx context.Context) (*domain.User, error) {
	return m.MeFunc(ctx)
}

func (m *userServiceMock) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetUserFunc(ctx, id)
}

func (m *userServiceMock) ListUsers(ctx context.Context, role *domain.Role, department *string) ([]domain.User, error) {
	return m.ListUsersFunc(ctx, role, department)
}

// loaderCtx carries per-request dataloaders over a real store, the way
// the HTTP middleware sets them up for edge resolvers.
func loaderCtx(store *memstore.Store) context.Context {
	return dataloader.WithLoaders(context.Background(), dataloader.NewLoaders(store))
}
