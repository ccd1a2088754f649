package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/globetraiteurs/plats/pkg/errors"
	"github.com/globetraiteurs/plats/pkg/serializer"
)

// handleHealth handles GET /health and GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeMethodNotAllowed(w, r, http.MethodGet)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleReady handles GET /ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeMethodNotAllowed(w, r, http.MethodGet)
		return
	}

	if !s.isReady() {
		serializer.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "not_ready",
			Timestamp: time.Now().UTC(),
			Reason:    "service is initializing",
		})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
	})
}

// handleRoot lists the registered routes. Unknown paths fall through to it
// from the ServeMux and get a 404.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound,
			"Not found", false, map[string]any{"path": r.URL.Path})
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeMethodNotAllowed(w, r, http.MethodGet)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, RouteIndex{
		Service: s.config.Name,
		Version: s.config.Version,
		Routes:  s.routes(),
	})
}

// routes returns every registered path in sorted order.
func (s *Server) routes() []string {
	routes := make([]string, 0, len(s.config.Handlers)+len(systemRoutes))
	for path := range s.config.Handlers {
		routes = append(routes, path)
	}
	for _, path := range systemRoutes {
		if _, ok := s.config.Handlers[path]; !ok {
			routes = append(routes, path)
		}
	}
	slices.Sort(routes)
	return routes
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
}

// RequireMethod reports whether r uses method and writes a 405 otherwise.
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	writeMethodNotAllowed(w, r, method)
	return false
}
