package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"
	formatZip  = "zip"
)

func newExportCmd(app *App, s *scope) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a force's plan as JSON or XLSX, or every force as a zip",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			project, err := s.requireProject()
			if err != nil {
				return err
			}
			team := s.teamName()

			var write func(w io.Writer) error
			switch format {
			case formatJSON:
				write = func(w io.Writer) error { return app.Exports.JSON(ctx, project, team, w) }
			case formatXLSX:
				write = func(w io.Writer) error { return app.Exports.XLSX(ctx, project, team, w) }
			case formatZip:
				write = func(w io.Writer) error { return app.Exports.Zip(ctx, project, w) }
			default:
				return fmt.Errorf("unknown format %q (want json, xlsx or zip)", format)
			}

			if out == "" {
				out = defaultExportName(project, team, format)
			}
			if out == "-" {
				return write(cmd.OutOrStdout())
			}
			if err := writeFile(out, write); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "json, xlsx or zip")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path, - for stdout")

	return cmd
}

func defaultExportName(project, team, format string) string {
	if format == formatZip {
		return project + ".zip"
	}
	return fmt.Sprintf("%s_%s.%s", project, team, format)
}

// writeFile creates path and removes it again if write fails.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(f)
}
