package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	viewerIDKey  ctxKey = "viewer_id"
	requestIDKey ctxKey = "request_id"
)

// WithViewerID stores the caller's user ID in the context. The ID is
// supplied by a trusted upstream; it is never authenticated here.
func WithViewerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, viewerIDKey, id)
}

// ViewerIDFromCtx extracts the caller's user ID from the context.
// Returns uuid.Nil and false when the value is missing, nil, or mistyped.
func ViewerIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(viewerIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
