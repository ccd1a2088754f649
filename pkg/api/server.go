package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/globetraiteurs/plats/pkg/airtable"
	"github.com/globetraiteurs/plats/pkg/config"
	"github.com/globetraiteurs/plats/pkg/defaults"
	"github.com/globetraiteurs/plats/pkg/dishes"
	"github.com/globetraiteurs/plats/pkg/logging"
	"github.com/globetraiteurs/plats/pkg/server"
)

const (
	name           = "platsd"
	versionDefault = "dev"

	routeGetPlats        = "/api/get_plats"
	routeRecommendations = "/recommendations/create"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve loads configuration from the environment, starts the API server and
// blocks until shutdown.
func Serve() error {
	return ServeContext(context.Background())
}

// ServeContext is Serve bound to ctx. Extra options are applied to the
// server after the defaults.
func ServeContext(ctx context.Context, opts ...server.Option) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}
	slog.Info("configuration loaded", "config", cfg)

	s, err := NewServer(cfg, opts...)
	if err != nil {
		slog.Error("failed to build server", "error", err)
		return err
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// NewServer builds the HTTP server for cfg without starting it.
func NewServer(cfg *config.Config, opts ...server.Option) (*server.Server, error) {
	svc, err := NewService(cfg)
	if err != nil {
		return nil, err
	}
	return newServer(cfg, svc, opts...), nil
}

// newServer mounts svc. The write deadline always outlasts the pipeline
// budget so timeouts still reach the caller as JSON.
func newServer(cfg *config.Config, svc *dishes.Service, opts ...server.Option) *server.Server {
	base := []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithAllowedOrigins(cfg.AllowedOrigins...),
		server.WithPort(cfg.Port),
		server.WithHandler(Routes(cfg, svc)),
	}
	opts = append(append(base, opts...),
		server.WithMinWriteTimeout(svc.Timeout()+defaults.ResponseWriteMargin))
	return server.New(opts...)
}

// NewService builds the dish pipeline backed by the store client for cfg.
func NewService(cfg *config.Config, opts ...dishes.Option) (*dishes.Service, error) {
	client, err := airtable.New(cfg.APIURL, cfg.BaseID, cfg.AirtableToken,
		airtable.WithPageSize(cfg.PageSize),
		airtable.WithUserAgent(name+"/"+version),
	)
	if err != nil {
		return nil, err
	}

	return dishes.NewService(client, dishes.Tables{
		Tally:    cfg.TallyTable,
		Plats:    cfg.PlatsTable,
		Dishes:   cfg.DishesTable,
		Cultures: cfg.CulturesTable,
	}, opts...), nil
}

// Routes returns the application routes for cfg. The recommendations route
// is only mounted when a bearer token is configured.
func Routes(cfg *config.Config, svc *dishes.Service) map[string]http.HandlerFunc {
	routes := map[string]http.HandlerFunc{
		routeGetPlats: svc.HandleGetPlats,
	}

	if cfg.RecommendationsEnabled() {
		routes[routeRecommendations] = server.BearerAuth(cfg.BearerToken, svc.HandleCreateRecommendations)
	} else {
		slog.Warn("bearer token not configured, route disabled",
			"route", routeRecommendations,
			"env", config.EnvBearerToken,
		)
	}
	return routes
}
