// Package defaults provides centralized configuration constants for the plats service.
//
// This package defines timeout values, query limits and sampling sizes used
// across the codebase. Centralizing these values ensures consistency and makes
// tuning easier.
//
// # Categories
//
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - HTTP client timeouts: For outbound calls to the record store
//   - Record store query limits: page size and error body caps
//   - Sampling limits: number of dishes per response
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/globetraiteurs/plats/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(r.Context(), defaults.DishesHandlerTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - HTTP handlers: 30s for the two sequential store calls
//   - Outbound HTTP: 20s total per call, 5s connect
//   - Server shutdown: 30s for graceful shutdown
package defaults
