// Package app wires the application together: configuration, logging,
// the entity store, the event broker, services, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/kudos-backend/internal/adapter/memstore"
	"github.com/heartmarshall/kudos-backend/internal/config"
	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/notify"
	"github.com/heartmarshall/kudos-backend/internal/pubsub"
	"github.com/heartmarshall/kudos-backend/internal/service/analytics"
	"github.com/heartmarshall/kudos-backend/internal/service/recognition"
	"github.com/heartmarshall/kudos-backend/internal/service/user"
	gqlpkg "github.com/heartmarshall/kudos-backend/internal/transport/graphql"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/dataloader"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/generated"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/resolver"
	"github.com/heartmarshall/kudos-backend/internal/transport/middleware"
	"github.com/heartmarshall/kudos-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, builds the
// store, broker, and services, and serves the GraphQL API until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	clock := clockwork.NewRealClock()

	store := memstore.New()
	if cfg.Server.SeedDemo {
		seeded, err := SeedDemo(store, clock)
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		logger.Info("seeded demo data",
			slog.Int("users", seeded.Users),
			slog.Int("recognitions", seeded.Recognitions),
		)
	}

	broker := pubsub.NewBroker(logger, cfg.PubSub.Buffer)
	defer broker.Close()

	recognitionService := recognition.NewService(logger, store, broker, clock)
	analyticsService := analytics.NewService(logger, store)
	userService := user.NewService(logger, store)

	res := resolver.NewResolver(logger, recognitionService, analyticsService, userService, broker)
	schema := generated.NewExecutableSchema(generated.Config{Resolvers: res})
	gqlHandler := gqlpkg.NewHandler(schema, logger, cfg.GraphQL)

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Identity,
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(clock, time.Minute)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.RateLimit.PerMinute))
	}
	mws = append(mws, dataloader.Middleware(store))
	queryHandler := middleware.Chain(mws...)(gqlHandler)

	mux := http.NewServeMux()

	healthHandler := rest.NewHealthHandler(store, BuildVersion())
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)
	// Subscriptions upgrade to a websocket via GET, so /query stays
	// method-agnostic.
	mux.Handle("/query", queryHandler)

	if cfg.GraphQL.PlaygroundEnabled {
		mux.Handle("GET /", playground.Handler("Kudos", "/query"))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := runDigestWorkers(ctx, g, logger, cfg.Notify, clock, recognitionService); err != nil {
		return err
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runDigestWorkers starts the batch and poll fallback workers for every
// configured digest user. Workers log what a push channel would deliver.
func runDigestWorkers(
	ctx context.Context,
	g *errgroup.Group,
	logger *slog.Logger,
	cfg config.NotifyConfig,
	clock clockwork.Clock,
	svc *recognition.Service,
) error {
	ids, err := cfg.DigestUserIDs()
	if err != nil {
		return fmt.Errorf("notify.digest_users: %w", err)
	}

	feed := notify.FeedFunc(func(ctx context.Context, limit int) ([]domain.Recognition, error) {
		return svc.ListRecognitions(ctx, recognition.ListInput{Limit: limit})
	})

	for _, id := range ids {
		reconciler := notify.NewBatchReconciler(logger, feed, id, cfg.BatchInterval, clock, func(b notify.Batch) {
			for _, rec := range b.Recognitions {
				logger.Info("digest item",
					slog.String("recognition_id", rec.ID.String()),
					slog.String("recipient_id", rec.RecipientID.String()),
				)
			}
		})
		poller := notify.NewPoller(logger, feed, id, cfg.PollInterval, clock, func(n notify.Notification) {
			logger.Info("notification",
				slog.String("kind", string(n.Kind)),
				slog.String("recognition_id", n.Recognition.ID.String()),
			)
		})

		g.Go(func() error {
			if err := reconciler.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			if err := poller.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	return nil
}
