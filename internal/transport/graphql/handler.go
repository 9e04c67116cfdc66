package graphql

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql"
	gqlhandler "github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/kudos-backend/internal/config"
)

// NewHandler wires the gqlgen server around the generated executable
// schema: POST and websocket transports (subscriptions ride the
// websocket), query cache, error presenter, and optional introspection
// and complexity limiting per config.
func NewHandler(es graphql.ExecutableSchema, log *slog.Logger, cfg config.GraphQLConfig) http.Handler {
	srv := gqlhandler.New(es)

	srv.AddTransport(transport.Websocket{
		KeepAlivePingInterval: 10 * time.Second,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	})
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.POST{})

	srv.SetQueryCache(lru.New(1000))
	srv.SetErrorPresenter(NewErrorPresenter(log))

	if cfg.IntrospectionEnabled {
		srv.Use(extension.Introspection{})
	}
	if cfg.ComplexityLimit > 0 {
		srv.Use(extension.FixedComplexityLimit(cfg.ComplexityLimit))
	}

	return srv
}
