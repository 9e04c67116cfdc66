// Package user serves user queries. Users are seeded at bootstrap and
// immutable afterwards, so this service is read-only.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

type entityStore interface {
	GetUser(id uuid.UUID) *domain.User
	ListUsers() []domain.User
}

// Service provides user read operations.
type Service struct {
	store entityStore
	log   *slog.Logger
}

// NewService creates a user Service.
func NewService(log *slog.Logger, store entityStore) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "user"),
	}
}

// Me returns the caller's own user record.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	viewerID, ok := ctxutil.ViewerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u := s.store.GetUser(viewerID)
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", viewerID, domain.ErrNotFound)
	}
	return u, nil
}

// GetUser returns a user by ID, or nil when unknown.
func (s *Service) GetUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	return s.store.GetUser(id), nil
}

// ListUsers returns users filtered by role and department, both optional
// and combined conjunctively.
func (s *Service) ListUsers(_ context.Context, role *domain.Role, department *string) ([]domain.User, error) {
	users := s.store.ListUsers()

	kept := users[:0]
	for _, u := range users {
		if role != nil && u.Role != *role {
			continue
		}
		if department != nil && (!u.HasDepartment() || *u.Department != *department) {
			continue
		}
		kept = append(kept, u)
	}
	return kept, nil
}
