package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/progress"
	"github.com/coppahp/planner/internal/repository"
)

type planService struct {
	records  repository.RecordStore
	tx       repository.Transactor
	observer UseCaseObserver
}

func NewPlanService(records repository.RecordStore, tx repository.Transactor, observers ...UseCaseObserver) PlanService {
	return &planService{
		records:  records,
		tx:       tx,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Get(ctx context.Context, project, team string) (*domain.ProjectRecord, error) {
	return s.records.Load(ctx, project, team)
}

// edit applies fn to the record of every team in t and saves them together.
func (s *planService) edit(ctx context.Context, name string, t Target, fields map[string]any, fn func(rec *domain.ProjectRecord) error) (err error) {
	startedAt := time.Now().UTC()
	fields["project"] = t.Project
	fields["teams"] = len(t.Teams)
	defer observe(ctx, s.observer, name, startedAt, fields, &err)

	if err = validateTarget(t); err != nil {
		return err
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Stores) error {
		for _, team := range t.Teams {
			rec, err := st.Records.Load(ctx, t.Project, team)
			if err != nil {
				return err
			}
			if err := fn(rec); err != nil {
				if len(t.Teams) > 1 {
					return fmt.Errorf("team %s: %w", team, err)
				}
				return err
			}
			if err := st.Records.Save(ctx, t.Project, team, rec); err != nil {
				return err
			}
		}
		return nil
	})
	return err
}

func (s *planService) AddPhase(ctx context.Context, t Target, p domain.Phase) error {
	return s.edit(ctx, "add-phase", t, map[string]any{"phase": p.Name}, func(rec *domain.ProjectRecord) error {
		return rec.AddPhase(p)
	})
}

func (s *planService) AddObjective(ctx context.Context, t Target, o domain.Objective) error {
	return s.edit(ctx, "add-objective", t, map[string]any{"objective": o.Name}, func(rec *domain.ProjectRecord) error {
		return rec.AddObjective(o)
	})
}

// AddDP fills the DP's phase from its objective when the caller left it
// blank.
func (s *planService) AddDP(ctx context.Context, t Target, dp domain.DecisivePoint) error {
	return s.edit(ctx, "add-dp", t, map[string]any{"dp_no": dp.DPNo.Key()}, func(rec *domain.ProjectRecord) error {
		if dp.Phase == "" {
			dp.Phase = rec.ObjectivePhases()[dp.Objective]
		}
		return rec.AddDP(dp)
	})
}

func (s *planService) AddTask(ctx context.Context, t Target, task domain.Task) error {
	return s.edit(ctx, "add-task", t, map[string]any{"dp_no": task.DPNo.Key()}, func(rec *domain.ProjectRecord) error {
		if task.Type == "" {
			task.Type = domain.TaskTangible
		}
		return rec.AddTask(task)
	})
}

func (s *planService) Delete(ctx context.Context, t Target, kind domain.EntityKind, ref string) error {
	fields := map[string]any{"kind": string(kind), "ref": ref}
	return s.edit(ctx, "delete-"+string(kind), t, fields, func(rec *domain.ProjectRecord) error {
		switch kind {
		case domain.KindPhase:
			return rec.DeletePhase(ref)
		case domain.KindObjective:
			return rec.DeleteObjective(ref)
		case domain.KindDP:
			return rec.DeleteDP(ref)
		case domain.KindTask:
			return rec.DeleteTask(ref)
		default:
			return fmt.Errorf("unknown entity kind %q", kind)
		}
	})
}

func (s *planService) CheckDPNo(ctx context.Context, project, team, dpNo string) error {
	rec, err := s.readOnly(ctx, project, team)
	if err != nil {
		return err
	}
	return rec.CheckDPNo(dpNo)
}

func (s *planService) SuggestDPNo(ctx context.Context, project, team string) (int, error) {
	rec, err := s.readOnly(ctx, project, team)
	if err != nil {
		return 0, err
	}
	return rec.SuggestDPNo(), nil
}

func (s *planService) readOnly(ctx context.Context, project, team string) (*domain.ProjectRecord, error) {
	if err := validateTarget(Target{Project: project, Teams: []string{team}}); err != nil {
		return nil, err
	}
	return loadOrNew(ctx, s.records, project, team)
}

func (s *planService) SetTaskProgress(ctx context.Context, project, team, taskRef string, value float64, level domain.IntangibleLevel) error {
	t := Target{Project: project, Teams: []string{team}}
	fields := map[string]any{"task": taskRef, "progress": value}
	return s.edit(ctx, "set-task-progress", t, fields, func(rec *domain.ProjectRecord) error {
		i := rec.FindTask(taskRef)
		if i < 0 {
			return fmt.Errorf("task %q: %w", taskRef, domain.ErrNotFound)
		}
		task := &rec.Tasks[i]

		band := progress.Band{Min: 0, Max: 100}
		if task.Type == domain.TaskIntangible {
			if level == "" {
				level = task.Intangible
			}
			band = progress.Range(level)
		} else if level != "" && level != domain.IntangibleNil {
			return fmt.Errorf("task %q is tangible; intangible level %q does not apply", task.Label(), level)
		}
		if err := band.Check(value); err != nil {
			return fmt.Errorf("task %q: %w", task.Label(), err)
		}

		task.Progress = domain.NumberOf(value)
		if task.Type == domain.TaskIntangible {
			task.Intangible = level
		}
		return nil
	})
}
