package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSender(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	t.Run("known", func(t *testing.T) {
		t.Parallel()

		s := KnownSender(id)
		require.False(t, s.IsAnonymous())
		require.True(t, s.Is(id))
		require.False(t, s.Is(uuid.New()))

		got, known := s.UserID()
		require.True(t, known)
		require.Equal(t, id, got)
	})

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		s := AnonymousSender()
		require.True(t, s.IsAnonymous())
		require.False(t, s.Is(id))
		require.False(t, s.Is(uuid.Nil))

		got, known := s.UserID()
		require.False(t, known)
		require.Equal(t, uuid.Nil, got)
	})

	t.Run("zero value is anonymous", func(t *testing.T) {
		t.Parallel()

		var s Sender
		require.True(t, s.IsAnonymous())
	})
}

func TestVisibilityIsValid(t *testing.T) {
	t.Parallel()

	require.True(t, VisibilityPublic.IsValid())
	require.True(t, VisibilityPrivate.IsValid())
	require.True(t, VisibilityTeamOnly.IsValid())
	require.False(t, Visibility("").IsValid())
	require.False(t, Visibility("public").IsValid())
}

func TestRoleCapabilities(t *testing.T) {
	t.Parallel()

	require.False(t, RoleEmployee.CanAccessAnalytics())
	require.True(t, RoleManager.CanAccessAnalytics())
	require.True(t, RoleHR.CanAccessAnalytics())
	require.True(t, RoleCrossFunctionalLead.CanAccessAnalytics())

	require.False(t, RoleEmployee.CanModerate())
	require.False(t, RoleManager.CanModerate())
	require.True(t, RoleHR.CanModerate())
	require.True(t, RoleCrossFunctionalLead.CanModerate())
}
