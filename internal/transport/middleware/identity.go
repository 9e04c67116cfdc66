package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

// identityHeader carries the caller's user ID, set by a trusted upstream
// (gateway or session layer). The core never authenticates it: requests
// without the header proceed anonymously and are rejected per-operation
// by the services, so "please sign in" and "permission denied" stay
// distinguishable.
const identityHeader = "X-User-Id"

// Identity extracts the opaque caller identity into the request context.
// A malformed ID is a client error, not an anonymous request.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(identityHeader)
		if raw == "" {
			next.ServeHTTP(w, r) // anonymous
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		ctx := ctxutil.WithViewerID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
