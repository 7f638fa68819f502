package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/coppahp/planner/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newKOCmd(app *App, s *scope) *cobra.Command {
	var dpNo, weightsFlag string

	cmd := &cobra.Command{
		Use:   "ko",
		Short: "Weight a DP's tasks by pairwise comparison",
		Long: `ko asks which of every pair of the DP's tasks matters more and turns
the wins into percentage weights. Without a terminal, pass the weights
directly with --weights in task order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			project, err := s.requireProject()
			if err != nil {
				return err
			}
			team := s.teamName()

			tasks, err := app.KO.Tasks(ctx, project, team, dpNo)
			if err != nil {
				return err
			}

			var weights []float64
			switch {
			case weightsFlag != "":
				if weights, err = parseWeights(weightsFlag); err != nil {
					return err
				}
				if err := app.KO.Apply(ctx, project, team, dpNo, weights); err != nil {
					return err
				}
			case app.interactive():
				n := len(tasks)
				weights, err = app.KO.Run(ctx, project, team, dpNo, promptChooser(dpNo, n*(n-1)/2))
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("not a terminal: pass --weights for the %d tasks of DP %s", len(tasks), dpNo)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.Header("DP "+strings.TrimSpace(dpNo)+" weights"))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeights(tasks, weights))
			return nil
		},
	}

	cmd.Flags().StringVar(&dpNo, "dp", "", "DP number")
	cmd.Flags().StringVar(&weightsFlag, "weights", "", "Comma-separated weights in task order")
	_ = cmd.MarkFlagRequired("dp")

	return cmd
}

func parseWeights(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", p, err)
		}
		out = append(out, w)
	}
	return out, nil
}
