// Package api wires the plats HTTP service: configuration, logging, the
// record store client, the dish pipeline and the HTTP server.
//
// Usage:
//
//	import (
//	    "log"
//	    "github.com/globetraiteurs/plats/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Routes:
//
//	GET  /api/health
//	GET  /api/get_plats?submission_id=ID[&envelope=true]
//	POST /recommendations/create     (only when BEARER_TOKEN is set)
//
// Build metadata is injected with ldflags:
//
//	go build -ldflags="-X 'github.com/globetraiteurs/plats/pkg/api.version=1.0.0'"
package api
