package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/repository"
	"github.com/coppahp/planner/internal/weighting"
)

type koService struct {
	records  repository.RecordStore
	tx       repository.Transactor
	observer UseCaseObserver
}

func NewKOService(records repository.RecordStore, tx repository.Transactor, observers ...UseCaseObserver) KOService {
	return &koService{
		records:  records,
		tx:       tx,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *koService) Tasks(ctx context.Context, project, team, dpNo string) ([]domain.Task, error) {
	rec, err := s.records.Load(ctx, project, team)
	if err != nil {
		return nil, err
	}
	return dpTasks(rec, dpNo)
}

func dpTasks(rec *domain.ProjectRecord, dpNo string) ([]domain.Task, error) {
	found := false
	for _, dp := range rec.DPs {
		if domain.SameKey(dp.DPNo.Key(), dpNo) {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("DP %s: %w", dpNo, domain.ErrNotFound)
	}
	idx := rec.TasksForDP(dpNo)
	if len(idx) == 0 {
		return nil, fmt.Errorf("DP %s: %w", dpNo, weighting.ErrNoItems)
	}
	tasks := make([]domain.Task, len(idx))
	for i, j := range idx {
		tasks[i] = rec.Tasks[j]
	}
	return tasks, nil
}

func (s *koService) Run(ctx context.Context, project, team, dpNo string, choose Chooser) (weights []float64, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": project, "team": team, "dp_no": dpNo}
	defer observe(ctx, s.observer, "ko-run", startedAt, fields, &err)

	tasks, err := s.Tasks(ctx, project, team, dpNo)
	if err != nil {
		return nil, err
	}
	ko, err := weighting.NewKO(len(tasks))
	if err != nil {
		return nil, err
	}
	for {
		pair, ok := ko.Next()
		if !ok {
			break
		}
		aWins, err := choose(ctx, tasks[pair.A], tasks[pair.B])
		if err != nil {
			return nil, fmt.Errorf("comparing tasks: %w", err)
		}
		winner := pair.B
		if aWins {
			winner = pair.A
		}
		if err := ko.Choose(winner); err != nil {
			return nil, err
		}
	}
	_, total := ko.Progress()
	fields["comparisons"] = total

	weights, err = ko.Weights()
	if err != nil {
		return nil, err
	}
	if err = s.Apply(ctx, project, team, dpNo, weights); err != nil {
		return nil, err
	}
	return weights, nil
}

// Apply writes weights to the DP's tasks in record order.
func (s *koService) Apply(ctx context.Context, project, team, dpNo string, weights []float64) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": project, "team": team, "dp_no": dpNo, "tasks": len(weights)}
	defer observe(ctx, s.observer, "ko-apply", startedAt, fields, &err)

	return s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Stores) error {
		rec, err := st.Records.Load(ctx, project, team)
		if err != nil {
			return err
		}
		if _, err := dpTasks(rec, dpNo); err != nil {
			return err
		}
		idx := rec.TasksForDP(dpNo)
		if len(idx) != len(weights) {
			return fmt.Errorf("DP %s has %d tasks, got %d weights", dpNo, len(idx), len(weights))
		}
		for i, j := range idx {
			rec.Tasks[j].Weight = domain.NumberOf(weights[i])
		}
		return st.Records.Save(ctx, project, team, rec)
	})
}
