package resolver

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kudos-backend/internal/adapter/memstore"
	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/model"
)

func TestMe_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	mock := &userServiceMock{
		MeFunc: func(_ context.Context) (*domain.User, error) {
			return &domain.User{ID: userID, Email: "alice@example.com", Name: "Alice"}, nil
		},
	}

	resolver := &queryResolver{&Resolver{user: mock}}
	result, err := resolver.Me(context.Background())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, userID, result.ID)
	assert.Equal(t, "alice@example.com", result.Email)
}

func TestMe_Unauthorized(t *testing.T) {
	t.Parallel()

	mock := &userServiceMock{
		MeFunc: func(_ context.Context) (*domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	}

	resolver := &queryResolver{&Resolver{user: mock}}
	_, err := resolver.Me(context.Background())

	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUser_UnknownIsNull(t *testing.T) {
	t.Parallel()

	mock := &userServiceMock{
		GetUserFunc: func(_ context.Context, _ uuid.UUID) (*domain.User, error) {
			return nil, nil
		},
	}

	resolver := &queryResolver{&Resolver{user: mock}}
	result, err := resolver.User(context.Background(), uuid.New())

	require.NoError(t, err)
	require.Nil(t, result)
}

func TestUsers_ForwardsFilters(t *testing.T) {
	t.Parallel()

	role := domain.RoleManager
	dept := "Engineering"

	mock := &userServiceMock{
		ListUsersFunc: func(_ context.Context, gotRole *domain.Role, gotDept *string) ([]domain.User, error) {
			require.NotNil(t, gotRole)
			require.NotNil(t, gotDept)
			assert.Equal(t, role, *gotRole)
			assert.Equal(t, dept, *gotDept)
			return []domain.User{
				{ID: uuid.New(), Name: "Alice", Role: role, Department: &dept},
			}, nil
		},
	}

	resolver := &queryResolver{&Resolver{user: mock}}
	result, err := resolver.Users(context.Background(), &role, &dept)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Alice", result[0].Name)
}

func TestUserResolver_Manager(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	manager := store.PutUser(domain.User{ID: uuid.New(), Email: "boss@example.com", Name: "Boss", Role: domain.RoleManager})
	employee := store.PutUser(domain.User{ID: uuid.New(), Email: "emp@example.com", Name: "Emp", Role: domain.RoleEmployee, ManagerID: &manager.ID})

	resolver := &userResolver{&Resolver{}}
	ctx := loaderCtx(store)

	result, err := resolver.Manager(ctx, model.NewUser(&employee))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, manager.ID, result.ID)

	// No manager: the edge is null without touching the loader.
	result, err = resolver.Manager(ctx, model.NewUser(&manager))
	require.NoError(t, err)
	require.Nil(t, result)

	// A manager ID that no longer resolves is null too.
	gone := uuid.New()
	result, err = resolver.Manager(ctx, &model.User{ID: uuid.New(), ManagerID: &gone})
	require.NoError(t, err)
	require.Nil(t, result)
}
