package resolver

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/dataloader"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/model"
)

// Me returns the authenticated viewer.
func (r *queryResolver) Me(ctx context.Context) (*model.User, error) {
	u, err := r.user.Me(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewUser(u), nil
}

// User returns a user by ID, or null when unknown.
func (r *queryResolver) User(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := r.user.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.NewUser(u), nil
}

// Users lists users, optionally narrowed by role and department.
func (r *queryResolver) Users(ctx context.Context, role *domain.Role, department *string) ([]*model.User, error) {
	users, err := r.user.ListUsers(ctx, role, department)
	if err != nil {
		return nil, err
	}
	return model.NewUsers(users), nil
}

// Manager resolves the user's manager edge through the dataloader.
// Unknown manager IDs resolve to null.
func (r *userResolver) Manager(ctx context.Context, obj *model.User) (*model.User, error) {
	if obj.ManagerID == nil {
		return nil, nil
	}
	u, err := dataloader.FromContext(ctx).UserByID.Load(ctx, *obj.ManagerID)()
	if err != nil {
		return nil, err
	}
	return model.NewUser(u), nil
}
