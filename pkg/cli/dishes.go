package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/globetraiteurs/plats/pkg/api"
	"github.com/globetraiteurs/plats/pkg/config"
	"github.com/globetraiteurs/plats/pkg/dishes"
)

func newService() (*dishes.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return api.NewService(cfg)
}

func dishesCmd() *cli.Command {
	return &cli.Command{
		Name:  "dishes",
		Usage: "Suggest dishes for a submission",
		Description: `Looks up the submission, resolves its culture and prints up to three
random dishes from the Plats table, as GET /api/get_plats does.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "submission-id",
				Aliases:  []string{"s"},
				Usage:    "Submission identifier in the Tally table",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "envelope",
				Usage: "Include submission id, cultures and count in the output",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			svc, err := newService()
			if err != nil {
				return err
			}

			result, err := svc.Plats(ctx, cmd.String("submission-id"))
			if err != nil {
				return fmt.Errorf("failed to get dishes: %w", err)
			}

			if cmd.Bool("envelope") {
				return writeOutput(ctx, cmd, result)
			}
			return writeOutput(ctx, cmd, result.Plats)
		},
	}
}

func recommendCmd() *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Pick three dishes for a culture",
		Description: `Matches the Dishes table case-insensitively and prints three random
dishes with their record identifiers, as POST /recommendations/create does.
Fails when fewer than three dishes match.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "submission-id",
				Aliases:  []string{"s"},
				Usage:    "Submission identifier echoed in the output",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "culture",
				Aliases:  []string{"c"},
				Usage:    "Culture to match (comma separated for several)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "Submission source recorded with the recommendation log entry",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			svc, err := newService()
			if err != nil {
				return err
			}

			req := dishes.RecommendRequest{
				SubmissionID: cmd.String("submission-id"),
				Culture:      cmd.String("culture"),
			}
			if src := cmd.String("source"); src != "" {
				req.Source = &src
			}

			result, err := svc.Recommend(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create recommendation: %w", err)
			}
			return writeOutput(ctx, cmd, result)
		},
	}
}
