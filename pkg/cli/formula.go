package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/globetraiteurs/plats/pkg/dishes"
	"github.com/globetraiteurs/plats/pkg/formula"
)

func formulaCmd() *cli.Command {
	return &cli.Command{
		Name:  "formula",
		Usage: "Print the filter formula for one or more cultures",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "culture",
				Aliases: []string{"c"},
				Usage:   "Culture value, repeatable or comma separated",
			},
			&cli.StringFlag{
				Name:  "field",
				Value: "culture",
				Usage: "Field holding the culture",
			},
			&cli.BoolFlag{
				Name:  "linked",
				Usage: "Match a linked record or lookup field by list containment",
			},
			&cli.BoolFlag{
				Name:  "ignore-case",
				Usage: "Compare case-insensitively",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			fold := cmd.Bool("ignore-case")
			m := formula.Match{
				Field:           cmd.String("field"),
				Linked:          cmd.Bool("linked"),
				CaseInsensitive: fold,
			}
			_, err := fmt.Fprintln(cmd.Root().Writer, m.Build(dishes.NormalizeLabels(cmd.StringSlice("culture"), fold)))
			return err
		},
	}
}
