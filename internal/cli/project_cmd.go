package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/coppahp/planner/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectCreateCmd(app),
		newProjectArchiveCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background(), all)
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")

	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create [NAME]",
		Short: "Create a project with an empty plan for every force",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else if app.interactive() {
				if err := projectForm(&name, &description).Run(); err != nil {
					return err
				}
			} else {
				return fmt.Errorf("project name is required")
			}
			name = strings.TrimSpace(name)

			if err := app.Projects.Create(context.Background(), name, strings.TrimSpace(description)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", formatter.Bold(name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")

	return cmd
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive NAME",
		Short: "Move every force's plan for a project to the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Projects.Archive(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived project %s\n", args[0])
			return nil
		},
	}
}

func newForceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Manage the force roster",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List forces",
			RunE: func(cmd *cobra.Command, args []string) error {
				roster, err := app.Forces.List(context.Background())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatForceList(roster))
				return nil
			},
		},
		&cobra.Command{
			Use:   "add NAME",
			Short: "Add a force and seed its plan in every active project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Forces.Add(context.Background(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added force %s\n", formatter.ForceBadge(strings.ToLower(args[0])))
				return nil
			},
		},
		&cobra.Command{
			Use:     "remove NAME",
			Aliases: []string{"rm"},
			Short:   "Remove a force from the roster; its plans are kept",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Forces.Remove(context.Background(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed force %s\n", strings.ToLower(args[0]))
				return nil
			},
		},
	)

	return cmd
}
