// Package server provides the HTTP runtime shared by the plats daemon.
//
// The server is a stateless net/http ServeMux with a fixed middleware chain:
//
//   - Prometheus RED metrics per route
//   - API version negotiation via the Accept header
//   - Request ID propagation (X-Request-Id)
//   - Panic recovery
//   - CORS (github.com/rs/cors)
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Request logging (log/slog)
//
// Application routes are registered through WithHandler. Protected routes
// are wrapped with BearerAuth before registration:
//
//	s := server.New(
//	    server.WithName("platsd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/api/get_plats":          svc.HandleGetPlats,
//	        "/recommendations/create": server.BearerAuth(token, svc.HandleCreateRecommendations),
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Built-in endpoints:
//
//	GET /             route listing
//	GET /health       liveness, {"status":"ok"}
//	GET /api/health   liveness, {"status":"ok"}
//	GET /ready        readiness
//	GET /metrics      Prometheus exposition
//
// Errors are written as a JSON ErrorResponse whose "error" key carries the
// human-readable message and "detail" carries a machine-readable reason when
// one applies.
package server
