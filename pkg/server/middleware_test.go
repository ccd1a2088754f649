package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func newTestServer() *Server {
	cfg := NewConfig()
	return &Server{
		config:      cfg,
		rateLimiter: rate.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst),
		cors:        newCORS(cfg.AllowedOrigins),
	}
}

func TestRequestIDMiddleware_GeneratesNewID(t *testing.T) {
	s := newTestServer()

	var captured string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	if _, err := uuid.Parse(captured); err != nil {
		t.Errorf("expected valid UUID, got: %q", captured)
	}
	if rec.Header().Get("X-Request-Id") != captured {
		t.Errorf("expected X-Request-Id header to be %s, got %s", captured, rec.Header().Get("X-Request-Id"))
	}
}

func TestRequestIDMiddleware_UsesProvidedID(t *testing.T) {
	s := newTestServer()
	const provided = "550e8400-e29b-41d4-a716-446655440000"

	var captured string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", provided)
	handler(httptest.NewRecorder(), req)

	if captured != provided {
		t.Errorf("expected request ID %s, got %s", provided, captured)
	}
}

func TestRequestIDMiddleware_RegeneratesInvalidID(t *testing.T) {
	s := newTestServer()

	var captured string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", "not-a-valid-uuid")
	handler(httptest.NewRecorder(), req)

	if captured == "not-a-valid-uuid" {
		t.Error("expected invalid request ID to be regenerated")
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Errorf("expected valid UUID, got: %q", captured)
	}
}

func TestVersionMiddleware(t *testing.T) {
	s := newTestServer()

	var captured string
	handler := s.versionMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = r.Context().Value(contextKeyAPIVersion).(string)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if captured != DefaultAPIVersion {
		t.Errorf("expected context version %s, got %s", DefaultAPIVersion, captured)
	}
	if rec.Header().Get("X-API-Version") != DefaultAPIVersion {
		t.Errorf("expected X-API-Version %s, got %s", DefaultAPIVersion, rec.Header().Get("X-API-Version"))
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := newTestServer()

	handler := s.panicRecoveryMiddleware(func(_ http.ResponseWriter, _ *http.Request) {
		panic("test panic")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d after panic recovery, got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer()
	s.config.RateLimit = 1
	s.config.RateLimitBurst = 1
	s.rateLimiter = rate.NewLimiter(1, 1)

	handler := s.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec1 := httptest.NewRecorder()
	handler(rec1, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}
	if rec1.Header().Get("X-RateLimit-Limit") != "1" {
		t.Errorf("expected X-RateLimit-Limit 1, got %q", rec1.Header().Get("X-RateLimit-Limit"))
	}

	rec2 := httptest.NewRecorder()
	handler(rec2, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rec2.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rec2.Code)
	}
	if rec2.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header to be set")
	}
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("wildcard origin", func(t *testing.T) {
		s := newTestServer()
		handler := s.corsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/get_plats", nil)
		req.Header.Set("Origin", "https://example.org")
		rec := httptest.NewRecorder()
		handler(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("expected Access-Control-Allow-Origin *, got %q", got)
		}
	})

	t.Run("preflight is answered without calling handler", func(t *testing.T) {
		s := newTestServer()
		called := false
		handler := s.corsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodOptions, "/recommendations/create", nil)
		req.Header.Set("Origin", "https://example.org")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
		rec := httptest.NewRecorder()
		handler(rec, req)

		if called {
			t.Error("expected preflight not to reach the handler")
		}
		if rec.Header().Get("Access-Control-Allow-Origin") == "" {
			t.Error("expected Access-Control-Allow-Origin on preflight")
		}
	})

	t.Run("restricted origin", func(t *testing.T) {
		s := newTestServer()
		s.cors = newCORS([]string{"https://plats.example"})
		handler := s.corsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/get_plats", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		handler(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("expected no Access-Control-Allow-Origin, got %q", got)
		}
	})
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)

	if rw.Status() != http.StatusTeapot {
		t.Errorf("expected first status to stick, got %d", rw.Status())
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected recorder status %d, got %d", http.StatusTeapot, rec.Code)
	}
}
