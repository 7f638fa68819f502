package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/coppahp/planner/internal/progress"
	"github.com/coppahp/planner/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Forces   service.ForceService
	Plans    service.PlanService
	Imports  service.ImportService
	Progress service.ProgressService
	KO       service.KOService
	Exports  service.ExportService

	Thresholds progress.Thresholds

	// IsInteractive reports whether prompts can be shown.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// scope carries the persistent --project and --team flags.
type scope struct {
	project string
	team    string
}

func (s *scope) requireProject() (string, error) {
	p := strings.TrimSpace(s.project)
	if p == "" {
		return "", fmt.Errorf("--project is required")
	}
	return p, nil
}

func (s *scope) teamName() string {
	return strings.ToLower(strings.TrimSpace(s.team))
}

// target resolves the teams an edit applies to. allForces expands to the
// whole roster.
func (s *scope) target(ctx context.Context, app *App, allForces bool) (service.Target, error) {
	project, err := s.requireProject()
	if err != nil {
		return service.Target{}, err
	}
	if !allForces {
		return service.Target{Project: project, Teams: []string{s.teamName()}}, nil
	}
	roster, err := app.Forces.List(ctx)
	if err != nil {
		return service.Target{}, err
	}
	return service.Target{Project: project, Teams: roster.Forces}, nil
}

// NewRootCmd creates the top-level "ahp" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	s := &scope{}

	root := &cobra.Command{
		Use:           "ahp",
		Short:         "Campaign plan tracker: phases, objectives, decisive points and tasks per force",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&s.project, "project", "p", "", "Project name")
	root.PersistentFlags().StringVarP(&s.team, "team", "t", "blue", "Force the plan belongs to")

	root.AddCommand(
		newProjectCmd(app),
		newForceCmd(app),
		newPhaseCmd(app, s),
		newObjectiveCmd(app, s),
		newDPCmd(app, s),
		newTaskCmd(app, s),
		newPlanCmd(app, s),
		newImportCmd(app, s),
		newImportsCmd(app, s),
		newProgressCmd(app, s),
		newDashboardCmd(app, s),
		newKOCmd(app, s),
		newExportCmd(app, s),
	)

	return root
}
