package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/globetraiteurs/plats/pkg/api"
	"github.com/globetraiteurs/plats/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Description: `Starts the API server with configuration read from the environment
(and a .env file outside production). Routes:

  GET  /api/health
  GET  /api/get_plats?submission_id=ID
  POST /recommendations/create   (when BEARER_TOKEN is set)`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8080,
				Usage:   "Listen port",
				Sources: cli.EnvVars("PORT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return api.ServeContext(ctx, server.WithPort(cmd.Int("port")))
		},
	}
}
