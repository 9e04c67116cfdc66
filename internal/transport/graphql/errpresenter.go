// Package graphql provides the GraphQL transport layer for the kudos
// backend: error presentation, handler configuration, and (via gqlgen)
// the schema-generated execution layer. Run `go generate ./...` after
// editing schema.graphqls.
package graphql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

// NewErrorPresenter returns a gqlgen error presenter that maps domain
// errors to GraphQL error codes. Authentication, authorization, and
// not-found failures stay distinguishable so clients can render
// "please sign in" vs "permission denied" vs "missing".
func NewErrorPresenter(log *slog.Logger) graphql.ErrorPresenterFunc {
	return func(ctx context.Context, err error) *gqlerror.Error {
		// Get original error (gqlgen wraps errors)
		gqlErr := graphql.DefaultErrorPresenter(ctx, err)

		var origErr error
		if unwrapped := errors.Unwrap(err); unwrapped != nil {
			origErr = unwrapped
		} else {
			origErr = err
		}

		switch {
		case errors.Is(origErr, domain.ErrUnauthorized):
			gqlErr.Extensions = map[string]interface{}{"code": "UNAUTHENTICATED"}

		case errors.Is(origErr, domain.ErrForbidden):
			gqlErr.Extensions = map[string]interface{}{"code": "FORBIDDEN"}

		case errors.Is(origErr, domain.ErrNotFound):
			gqlErr.Extensions = map[string]interface{}{"code": "NOT_FOUND"}

		case errors.Is(origErr, domain.ErrReferential):
			gqlErr.Extensions = map[string]interface{}{"code": "REFERENTIAL_INTEGRITY"}
			var re *domain.ReferentialError
			if errors.As(err, &re) {
				gqlErr.Extensions["entity"] = re.Entity
				gqlErr.Extensions["field"] = re.Field
			}

		case errors.Is(origErr, domain.ErrValidation):
			gqlErr.Extensions = map[string]interface{}{"code": "VALIDATION"}
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				gqlErr.Extensions["fields"] = ve.Errors
			}

		default:
			// Unexpected error - log it, return generic message to client
			log.ErrorContext(ctx, "unexpected GraphQL error",
				slog.String("error", origErr.Error()),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			)
			gqlErr.Message = "internal error"
			gqlErr.Extensions = map[string]interface{}{"code": "INTERNAL"}
		}

		return gqlErr
	}
}
