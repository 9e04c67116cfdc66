package app

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/kudos-backend/internal/adapter/memstore"
	"github.com/heartmarshall/kudos-backend/internal/domain"
)

// SeedResult counts the entities a demo seed created.
type SeedResult struct {
	Users        int
	Recognitions int
}

// SeedDemo loads a small cross-department team plus a few recognitions
// into the store, then runs a reconciliation sweep so the seed never
// leaves dangling references behind. Meant for local development and
// demos, gated by server.seed_demo.
func SeedDemo(store *memstore.Store, clock clockwork.Clock) (SeedResult, error) {
	var res SeedResult

	eng := "Engineering"
	design := "Design"
	people := "People"

	alice := domain.User{
		ID:         uuid.MustParse("6f1a2b3c-0000-4000-8000-000000000001"),
		Email:      "alice@example.com",
		Name:       "Alice Nguyen",
		Role:       domain.RoleManager,
		Department: &eng,
		CreatedAt:  clock.Now(),
	}
	bob := domain.User{
		ID:         uuid.MustParse("6f1a2b3c-0000-4000-8000-000000000002"),
		Email:      "bob@example.com",
		Name:       "Bob Castillo",
		Role:       domain.RoleEmployee,
		Department: &eng,
		ManagerID:  &alice.ID,
		CreatedAt:  clock.Now(),
	}
	carol := domain.User{
		ID:         uuid.MustParse("6f1a2b3c-0000-4000-8000-000000000003"),
		Email:      "carol@example.com",
		Name:       "Carol Weiss",
		Role:       domain.RoleEmployee,
		Department: &design,
		CreatedAt:  clock.Now(),
	}
	dana := domain.User{
		ID:         uuid.MustParse("6f1a2b3c-0000-4000-8000-000000000004"),
		Email:      "dana@example.com",
		Name:       "Dana Osei",
		Role:       domain.RoleHR,
		Department: &people,
		CreatedAt:  clock.Now(),
	}

	for _, u := range []domain.User{alice, bob, carol, dana} {
		store.PutUser(u)
		res.Users++
	}

	recognitions := []domain.Recognition{
		{
			ID:          uuid.MustParse("7e2b3c4d-0000-4000-8000-000000000001"),
			Message:     "Huge thanks for untangling the deploy pipeline last week",
			Emojis:      []string{"🚀"},
			Visibility:  domain.VisibilityPublic,
			Sender:      domain.KnownSender(alice.ID),
			RecipientID: bob.ID,
		},
		{
			ID:          uuid.MustParse("7e2b3c4d-0000-4000-8000-000000000002"),
			Message:     "Appreciate the thoughtful design review, it caught real problems",
			Emojis:      []string{"🎨", "🙏"},
			Visibility:  domain.VisibilityTeamOnly,
			Sender:      domain.KnownSender(bob.ID),
			RecipientID: alice.ID,
		},
		{
			ID:          uuid.MustParse("7e2b3c4d-0000-4000-8000-000000000003"),
			Message:     "Thank you for staying late to help with onboarding",
			Visibility:  domain.VisibilityPublic,
			Sender:      domain.AnonymousSender(),
			RecipientID: carol.ID,
		},
	}

	for _, rec := range recognitions {
		rec.Keywords = domain.ExtractKeywords(rec.Message)
		rec.CreatedAt = clock.Now()
		rec.UpdatedAt = rec.CreatedAt
		if _, err := store.PutRecognition(rec); err != nil {
			return res, fmt.Errorf("seed recognition %s: %w", rec.ID, err)
		}
		res.Recognitions++
	}

	store.Reconcile()
	return res, nil
}
