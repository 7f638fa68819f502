package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/progress"
	"github.com/coppahp/planner/internal/repository"
	"golang.org/x/sync/errgroup"
)

type progressService struct {
	records    repository.RecordStore
	roster     RosterStore
	thresholds progress.Thresholds
	observer   UseCaseObserver
}

func NewProgressService(records repository.RecordStore, roster RosterStore, thresholds progress.Thresholds, observers ...UseCaseObserver) ProgressService {
	return &progressService{
		records:    records,
		roster:     roster,
		thresholds: thresholds,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Overview computes progress for every roster force that has a record for
// the project. Forces without one are skipped rather than created.
func (s *progressService) Overview(ctx context.Context, project string) (overview *ProgressOverview, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": project}
	defer observe(ctx, s.observer, "progress-overview", startedAt, fields, &err)

	roster, err := s.roster.Load()
	if err != nil {
		return nil, fmt.Errorf("loading forces: %w", err)
	}

	// One goroutine per force; slots keep roster order.
	slots := make([]*TeamProgress, len(roster.Forces))
	g, gctx := errgroup.WithContext(ctx)
	for i, team := range roster.Forces {
		g.Go(func() error {
			ok, err := s.records.Exists(gctx, project, team)
			if err != nil || !ok {
				return err
			}
			rec, err := s.records.Load(gctx, project, team)
			if err != nil {
				return err
			}
			tp := s.teamProgress(team, rec)
			slots[i] = &tp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview = &ProgressOverview{Project: project, Thresholds: s.thresholds}
	for _, tp := range slots {
		if tp != nil {
			overview.Teams = append(overview.Teams, *tp)
		}
	}
	fields["teams"] = len(overview.Teams)
	if len(overview.Teams) == 0 {
		return nil, fmt.Errorf("project %q: %w", project, domain.ErrNotFound)
	}
	return overview, nil
}

func (s *progressService) Team(ctx context.Context, project, team string) (tp *TeamProgress, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": project, "team": team}
	defer observe(ctx, s.observer, "progress-team", startedAt, fields, &err)

	ok, err := s.records.Exists(ctx, project, team)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("record %s/%s: %w", project, team, domain.ErrNotFound)
	}
	rec, err := s.records.Load(ctx, project, team)
	if err != nil {
		return nil, err
	}
	result := s.teamProgress(team, rec)
	fields["dps"] = len(result.Result.DP)
	return &result, nil
}

func (s *progressService) teamProgress(team string, rec *domain.ProjectRecord) TeamProgress {
	res := progress.Compute(rec)
	levels := map[domain.EntityKind]map[string]float64{
		domain.KindDP:        res.DP,
		domain.KindObjective: res.Objective,
		domain.KindPhase:     res.Phase,
	}
	tp := TeamProgress{
		Team:    team,
		Result:  res,
		RAG:     make(map[domain.EntityKind]progress.RAGCount, len(levels)),
		Average: make(map[domain.EntityKind]float64, len(levels)),
	}
	for kind, values := range levels {
		tp.RAG[kind] = s.thresholds.CountRAG(values)
		tp.Average[kind] = progress.Average(values)
	}
	return tp
}
