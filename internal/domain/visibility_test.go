package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCanView(t *testing.T) {
	t.Parallel()

	eng := "Engineering"
	design := "Design"

	sender := User{ID: uuid.New(), Department: &eng}
	recipient := User{ID: uuid.New(), Department: &eng}
	teammate := User{ID: uuid.New(), Department: &eng}
	outsider := User{ID: uuid.New(), Department: &design}
	deptless := User{ID: uuid.New()}

	users := map[uuid.UUID]User{
		sender.ID:    sender,
		recipient.ID: recipient,
		teammate.ID:  teammate,
		outsider.ID:  outsider,
		deptless.ID:  deptless,
	}
	lookup := func(id uuid.UUID) *User {
		if u, ok := users[id]; ok {
			return &u
		}
		return nil
	}

	rec := func(vis Visibility, s Sender) *Recognition {
		return &Recognition{
			ID:          uuid.New(),
			Visibility:  vis,
			Sender:      s,
			RecipientID: recipient.ID,
		}
	}

	tests := []struct {
		name   string
		rec    *Recognition
		viewer uuid.UUID
		want   bool
	}{
		{"unauthenticated sees nothing", rec(VisibilityPublic, KnownSender(sender.ID)), uuid.Nil, false},
		{"public visible to outsider", rec(VisibilityPublic, KnownSender(sender.ID)), outsider.ID, true},
		{"public visible to unknown viewer id", rec(VisibilityPublic, KnownSender(sender.ID)), uuid.New(), true},
		{"private visible to sender", rec(VisibilityPrivate, KnownSender(sender.ID)), sender.ID, true},
		{"private visible to recipient", rec(VisibilityPrivate, KnownSender(sender.ID)), recipient.ID, true},
		{"private hidden from teammate", rec(VisibilityPrivate, KnownSender(sender.ID)), teammate.ID, false},
		{"anonymous private visible only to recipient", rec(VisibilityPrivate, AnonymousSender()), recipient.ID, true},
		{"anonymous private hidden from everyone else", rec(VisibilityPrivate, AnonymousSender()), sender.ID, false},
		{"team visible to same department", rec(VisibilityTeamOnly, KnownSender(sender.ID)), teammate.ID, true},
		{"team hidden from other department", rec(VisibilityTeamOnly, KnownSender(sender.ID)), outsider.ID, false},
		{"team hidden from viewer without department", rec(VisibilityTeamOnly, KnownSender(sender.ID)), deptless.ID, false},
		{"team hidden from unresolved viewer", rec(VisibilityTeamOnly, KnownSender(sender.ID)), uuid.New(), false},
		{"unknown visibility fails closed", rec(Visibility("SECRET"), KnownSender(sender.ID)), recipient.ID, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, CanView(tt.rec, tt.viewer, lookup))
		})
	}
}

func TestCanView_TeamOnlyRecipientWithoutDepartment(t *testing.T) {
	t.Parallel()

	viewer := User{ID: uuid.New(), Department: ptr("Engineering")}
	recipient := User{ID: uuid.New()}

	lookup := func(id uuid.UUID) *User {
		switch id {
		case viewer.ID:
			return &viewer
		case recipient.ID:
			return &recipient
		}
		return nil
	}

	rec := &Recognition{
		Visibility:  VisibilityTeamOnly,
		Sender:      AnonymousSender(),
		RecipientID: recipient.ID,
	}

	require.False(t, CanView(rec, viewer.ID, lookup))
}

func ptr[T any](v T) *T { return &v }
