package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	pathHealth    = "/health"
	pathAPIHealth = "/api/health"
	pathReady     = "/ready"
	pathMetrics   = "/metrics"
)

var systemRoutes = []string{pathHealth, pathAPIHealth, pathReady, pathMetrics}

// setupRoutes registers system endpoints and application handlers.
// Application handlers win over system endpoints registered at the same path.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	system := map[string]http.HandlerFunc{
		pathHealth:    s.handleHealth,
		pathAPIHealth: s.withMiddleware(pathAPIHealth, s.handleHealth),
		pathReady:     s.handleReady,
		pathMetrics:   promhttp.Handler().ServeHTTP,
	}
	for path, handler := range system {
		if _, ok := s.config.Handlers[path]; !ok {
			mux.HandleFunc(path, handler)
		}
	}

	for path, handler := range s.config.Handlers {
		mux.HandleFunc(path, s.withMiddleware(path, handler))
	}

	return mux
}
