package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/kudos-backend/internal/config"
)

func corsTestConfig() config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigins:   "https://kudos.example.com,https://admin.example.com",
		AllowedMethods:   "GET,POST,OPTIONS",
		AllowedHeaders:   "X-User-Id,X-Request-Id,Content-Type",
		AllowCredentials: true,
		MaxAge:           86400,
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := CORS(corsTestConfig())(handler)

	req := httptest.NewRequest(http.MethodPost, "/query", nil)
	req.Header.Set("Origin", "https://kudos.example.com")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://kudos.example.com" {
		t.Errorf("expected allowed origin to be echoed, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials header true, got %q", got)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := CORS(corsTestConfig())(handler)

	req := httptest.NewRequest(http.MethodPost, "/query", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow-origin header, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected the request itself to pass through, got %d", rec.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for preflight")
	})

	wrappedHandler := CORS(corsTestConfig())(handler)

	req := httptest.NewRequest(http.MethodOptions, "/query", nil)
	req.Header.Set("Origin", "https://kudos.example.com")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET,POST,OPTIONS" {
		t.Errorf("unexpected allow-methods header %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Errorf("unexpected max-age header %q", got)
	}
}

func TestCORS_Wildcard(t *testing.T) {
	cfg := corsTestConfig()
	cfg.AllowedOrigins = "*"

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := CORS(cfg)(handler)

	req := httptest.NewRequest(http.MethodGet, "/query", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://anywhere.example.com" {
		t.Errorf("expected wildcard to echo the origin, got %q", got)
	}
}
