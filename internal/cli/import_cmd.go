package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/coppahp/planner/internal/cli/formatter"
	"github.com/coppahp/planner/internal/service"
	"github.com/coppahp/planner/internal/workbook"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App, s *scope) *cobra.Command {
	var dryRun, showDiff, watch bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import an .xlsx workbook into a force's plan",
		Long: `Import reads either the single-sheet layout (one row per task with
phase, objective and DP columns) or the multi-sheet layout (Phases,
Objectives, Dps, Tasks). Every recognised list replaces the stored one;
lists the workbook does not contain are left alone.

With --watch the workbook is imported again every time it is saved, until
interrupted. A failed import is reported and the stored plan is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := s.requireProject()
			if err != nil {
				return err
			}
			req := service.ImportRequest{
				Project: project,
				Team:    s.teamName(),
				Source:  filepath.Base(args[0]),
				DryRun:  dryRun,
			}
			if !watch {
				return runImport(cmd.Context(), cmd, app, args[0], req, dryRun || showDiff)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			reimport := func(ctx context.Context) {
				if err := runImport(ctx, cmd, app, args[0], req, dryRun || showDiff); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", formatter.StyleRed.Render("Import failed:"), err)
				}
			}
			reimport(ctx)
			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", args[0])
			return workbook.Watch(ctx, args[0], workbook.DefaultSettle, reimport)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without saving")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Print the plan diff")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-import whenever the file is saved")

	return cmd
}

func runImport(ctx context.Context, cmd *cobra.Command, app *App, path string, req service.ImportRequest, diff bool) error {
	book, err := workbook.OpenXLSX(path)
	if err != nil {
		return err
	}
	req.Book = book

	res, err := app.Imports.Import(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if diff {
		fmt.Fprint(out, formatter.FormatDiff(res.Diff))
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%s\n", formatter.FormatImportResult(res))
	return nil
}

func newImportsCmd(app *App, s *scope) *cobra.Command {
	return &cobra.Command{
		Use:   "imports",
		Short: "Show the import history of a force's plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := s.requireProject()
			if err != nil {
				return err
			}
			history, err := app.Imports.History(context.Background(), project, s.teamName())
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No imports recorded.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportHistory(history))
			return nil
		},
	}
}
