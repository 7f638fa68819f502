package cli

import (
	"context"
	"fmt"

	"github.com/coppahp/planner/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App, s *scope) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show progress and RAG status for every force, or one with --team",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			project, err := s.requireProject()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("team") {
				tp, err := app.Progress.Team(ctx, project, s.teamName())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTeamProgress(tp, app.Thresholds))
				return nil
			}

			ov, err := app.Progress.Overview(ctx, project)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgressOverview(ov))
			return nil
		},
	}
}
