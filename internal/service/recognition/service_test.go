package recognition

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kudos-backend/internal/adapter/memstore"
	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/pubsub"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

// The store and broker are in-process components, so service tests run
// against the real ones instead of mocks.
type fixture struct {
	svc    *Service
	store  *memstore.Store
	broker *pubsub.Broker
	clock  *clockwork.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := memstore.New()
	broker := pubsub.NewBroker(log, 16)
	t.Cleanup(broker.Close)
	clock := clockwork.NewFakeClock()

	return &fixture{
		svc:    NewService(log, store, broker, clock),
		store:  store,
		broker: broker,
		clock:  clock,
	}
}

func (f *fixture) seedUser(role domain.Role, department string) domain.User {
	u := domain.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		Name:      "Test User",
		Role:      role,
		CreatedAt: f.clock.Now(),
	}
	if department != "" {
		u.Department = &department
	}
	return f.store.PutUser(u)
}

// seedRecognition stores a recognition directly, bypassing the service.
func (f *fixture) seedRecognition(t *testing.T, sender domain.Sender, recipientID uuid.UUID, vis domain.Visibility, message string) domain.Recognition {
	t.Helper()

	rec, err := f.store.PutRecognition(domain.Recognition{
		ID:          uuid.New(),
		Message:     message,
		Visibility:  vis,
		Sender:      sender,
		RecipientID: recipientID,
		Keywords:    domain.ExtractKeywords(message),
		CreatedAt:   f.clock.Now(),
		UpdatedAt:   f.clock.Now(),
	})
	require.NoError(t, err)
	return rec
}

func viewerCtx(id uuid.UUID) context.Context {
	return ctxutil.WithViewerID(context.Background(), id)
}

func receive[T any](t *testing.T, sub *pubsub.Subscription) T {
	t.Helper()
	select {
	case v, ok := <-sub.C():
		require.True(t, ok, "subscription closed")
		payload, isT := v.(T)
		require.True(t, isT, "unexpected payload type %T", v)
		return payload
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		panic("unreachable")
	}
}

func requireNoEvent(t *testing.T, sub *pubsub.Subscription) {
	t.Helper()
	select {
	case v := <-sub.C():
		t.Fatalf("unexpected event %v", v)
	default:
	}
}
