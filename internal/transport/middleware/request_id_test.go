package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

func TestRequestID_Generated(t *testing.T) {
	var ctxID string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := RequestID(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if ctxID == "" {
		t.Error("expected a generated request ID in context")
	}
	if got := rec.Header().Get("X-Request-Id"); got != ctxID {
		t.Errorf("expected response header %q, got %q", ctxID, got)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	var ctxID string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := RequestID(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "upstream-request-42")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if ctxID != "upstream-request-42" {
		t.Errorf("expected inbound request ID to be kept, got %q", ctxID)
	}
	if got := rec.Header().Get("X-Request-Id"); got != "upstream-request-42" {
		t.Errorf("expected response header upstream-request-42, got %q", got)
	}
}
