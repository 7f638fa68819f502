package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/coppahp/planner/internal/cli/formatter"
	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// entityCmd builds the shared "<kind> add|rm|list" command group.
func entityCmd(app *App, s *scope, kind domain.EntityKind, short string, add *cobra.Command, list func(*domain.ProjectRecord) string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
	}
	cmd.AddCommand(add, newRemoveCmd(app, s, kind), newListCmd(app, s, kind, list))
	return cmd
}

func newRemoveCmd(app *App, s *scope, kind domain.EntityKind) *cobra.Command {
	var allForces bool

	cmd := &cobra.Command{
		Use:     "rm REF",
		Aliases: []string{"remove"},
		Short:   fmt.Sprintf("Delete a %s and everything beneath it", kind),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := s.target(ctx, app, allForces)
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, t, kind, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s %s\n", kind, args[0], teamsLabel(t))
			return nil
		},
	}
	addAllForcesFlag(cmd.Flags(), &allForces)
	return cmd
}

func newListCmd(app *App, s *scope, kind domain.EntityKind, list func(*domain.ProjectRecord) string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := s.requireProject()
			if err != nil {
				return err
			}
			rec, err := app.Plans.Get(context.Background(), project, s.teamName())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), list(rec))
			return nil
		},
	}
}

func addAllForcesFlag(fs *pflag.FlagSet, v *bool) {
	fs.BoolVar(v, "all-forces", false, "Apply to every force on the roster")
}

func teamsLabel(t service.Target) string {
	return formatter.Dim("(" + strings.Join(t.Teams, ", ") + ")")
}

// optionalInt returns nil unless the flag was set.
func optionalInt(fs *pflag.FlagSet, name string, v int) *int {
	if !fs.Changed(name) {
		return nil
	}
	return &v
}

func newPhaseCmd(app *App, s *scope) *cobra.Command {
	var (
		name      string
		no        int
		allForces bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := s.target(ctx, app, allForces)
			if err != nil {
				return err
			}
			p := domain.Phase{Name: strings.TrimSpace(name), PhaseNo: optionalInt(cmd.Flags(), "no", no)}
			if err := app.Plans.AddPhase(ctx, t, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added phase %s %s\n", formatter.Bold(p.Name), teamsLabel(t))
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Phase name")
	add.Flags().IntVar(&no, "no", 0, "Phase number")
	addAllForcesFlag(add.Flags(), &allForces)
	_ = add.MarkFlagRequired("name")

	return entityCmd(app, s, domain.KindPhase, "Manage phases", add, formatter.FormatPhases)
}

func newObjectiveCmd(app *App, s *scope) *cobra.Command {
	var (
		name, phase string
		no          int
		allForces   bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an objective",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := s.target(ctx, app, allForces)
			if err != nil {
				return err
			}
			o := domain.Objective{
				Name:        strings.TrimSpace(name),
				Phase:       strings.TrimSpace(phase),
				ObjectiveNo: optionalInt(cmd.Flags(), "no", no),
			}
			if err := app.Plans.AddObjective(ctx, t, o); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added objective %s %s\n", formatter.Bold(o.Name), teamsLabel(t))
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Objective name")
	add.Flags().StringVar(&phase, "phase", "", "Phase the objective belongs to")
	add.Flags().IntVar(&no, "no", 0, "Objective number")
	addAllForcesFlag(add.Flags(), &allForces)
	_ = add.MarkFlagRequired("name")

	return entityCmd(app, s, domain.KindObjective, "Manage objectives", add, formatter.FormatObjectives)
}

func newDPCmd(app *App, s *scope) *cobra.Command {
	var (
		dp        domain.DecisivePoint
		no        string
		weight    string
		allForces bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a decisive point",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := s.target(ctx, app, allForces)
			if err != nil {
				return err
			}
			dp.DPNo = domain.Number(strings.TrimSpace(no))
			dp.Weight = domain.Number(strings.TrimSpace(weight))
			if dp.DPNo.IsZero() {
				n, err := app.Plans.SuggestDPNo(ctx, t.Project, t.Teams[0])
				if err != nil {
					return err
				}
				dp.DPNo = domain.Number(strconv.Itoa(n))
			}
			if err := app.Plans.AddDP(ctx, t, dp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added DP %s %s %s\n", dp.DPNo, formatter.Bold(dp.Name), teamsLabel(t))
			return nil
		},
	}
	add.Flags().StringVar(&no, "no", "", "DP number (next free number when omitted)")
	add.Flags().StringVar(&dp.Name, "name", "", "DP name")
	add.Flags().StringVar(&dp.Objective, "objective", "", "Objective the DP serves")
	add.Flags().StringVar(&dp.Phase, "phase", "", "Phase (defaults to the objective's phase)")
	add.Flags().StringVar(&weight, "weight", "", "Weight")
	add.Flags().StringVar(&dp.ForceGroup, "force-group", "", "Force group assigned")
	addAllForcesFlag(add.Flags(), &allForces)
	_ = add.MarkFlagRequired("name")

	cmd := entityCmd(app, s, domain.KindDP, "Manage decisive points", add, func(rec *domain.ProjectRecord) string {
		return formatter.FormatDPs(rec, app.Thresholds)
	})
	cmd.AddCommand(newDPCheckCmd(app, s))
	return cmd
}

func newDPCheckCmd(app *App, s *scope) *cobra.Command {
	return &cobra.Command{
		Use:   "check [NO]",
		Short: "Check whether a DP number is free and suggest the next one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			project, err := s.requireProject()
			if err != nil {
				return err
			}
			team := s.teamName()

			next, err := app.Plans.SuggestDPNo(ctx, project, team)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if err := app.Plans.CheckDPNo(ctx, project, team, args[0]); err != nil {
					return fmt.Errorf("%w (next free: %d)", err, next)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s DP number %s is free\n", formatter.StyleGreen.Render("✔"), strings.TrimSpace(args[0]))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Next DP number: %d\n", next)
			return nil
		},
	}
}

// parseTaskType accepts T/tangible and I/IN/intangible in any case.
func parseTaskType(s string) (domain.TaskType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "T", "TANGIBLE":
		return domain.TaskTangible, nil
	case "I", "IN", "INTANGIBLE":
		return domain.TaskIntangible, nil
	}
	return "", fmt.Errorf("invalid task type %q (want T or I)", s)
}

func parseLevel(s string) (domain.IntangibleLevel, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	level, ok := domain.ParseIntangibleLevel(s)
	if !ok {
		return "", fmt.Errorf("invalid intangible level %q (want nil, partial or complete)", s)
	}
	return level, nil
}

func newTaskCmd(app *App, s *scope) *cobra.Command {
	var (
		task                            domain.Task
		no, dpNo, weight, prog, typ, lv string
		allForces                       bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a decisive point",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := s.target(ctx, app, allForces)
			if err != nil {
				return err
			}
			if task.Type, err = parseTaskType(typ); err != nil {
				return err
			}
			level, err := parseLevel(lv)
			if err != nil {
				return err
			}
			task.Intangible = domain.IntangibleNil
			if task.Type == domain.TaskIntangible && level != "" {
				task.Intangible = level
			}
			task.TaskNo = domain.Number(strings.TrimSpace(no))
			task.DPNo = domain.Number(strings.TrimSpace(dpNo))
			task.Weight = domain.Number(strings.TrimSpace(weight))
			task.Progress = domain.Number(strings.TrimSpace(prog))

			if err := app.Plans.AddTask(ctx, t, task); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s to DP %s %s\n", formatter.Bold(task.Label()), task.DPNo, teamsLabel(t))
			return nil
		},
	}
	add.Flags().StringVar(&task.Name, "name", "", "Task description")
	add.Flags().StringVar(&dpNo, "dp", "", "DP number the task belongs to")
	add.Flags().StringVar(&no, "no", "", "Task number")
	add.Flags().StringVar(&weight, "weight", "", "Weight")
	add.Flags().StringVar(&prog, "progress", "", "Progress (0-100)")
	add.Flags().StringVar(&typ, "type", "T", "Task type: T (tangible) or I (intangible)")
	add.Flags().StringVar(&lv, "level", "", "Intangible level: nil, partial or complete")
	add.Flags().StringVar(&task.Criteria, "criteria", "", "Criteria of success")
	add.Flags().StringVar(&task.ForceGroup, "force-group", "", "Force group assigned")
	addAllForcesFlag(add.Flags(), &allForces)
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("dp")

	cmd := entityCmd(app, s, domain.KindTask, "Manage tasks", add, func(rec *domain.ProjectRecord) string {
		return formatter.FormatTasks(rec, app.Thresholds)
	})
	cmd.AddCommand(newTaskProgressCmd(app, s))
	return cmd
}

func newTaskProgressCmd(app *App, s *scope) *cobra.Command {
	var lv string

	cmd := &cobra.Command{
		Use:   "progress REF VALUE",
		Short: "Set a task's progress; intangible tasks must stay within their level's band",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := s.requireProject()
			if err != nil {
				return err
			}
			value, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(args[1]), "%"), 64)
			if err != nil {
				return fmt.Errorf("invalid progress %q: %w", args[1], err)
			}
			level, err := parseLevel(lv)
			if err != nil {
				return err
			}
			if err := app.Plans.SetTaskProgress(context.Background(), project, s.teamName(), args[0], value, level); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s progress set to %s\n", args[0], formatter.Pct(value))
			return nil
		},
	}
	cmd.Flags().StringVar(&lv, "level", "", "Intangible level: nil, partial or complete")
	return cmd
}

func newPlanCmd(app *App, s *scope) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show a force's plan as a tree with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := s.requireProject()
			if err != nil {
				return err
			}
			rec, err := app.Plans.Get(context.Background(), project, s.teamName())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanTree(rec, s.teamName(), app.Thresholds))
			return nil
		},
	}
}
