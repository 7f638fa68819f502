package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coppahp/planner/internal/config"
	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/repository"
)

type projectService struct {
	records  repository.RecordStore
	tx       repository.Transactor
	roster   RosterStore
	observer UseCaseObserver
}

func NewProjectService(records repository.RecordStore, tx repository.Transactor, roster RosterStore, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		records:  records,
		tx:       tx,
		roster:   roster,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) List(ctx context.Context, includeArchived bool) ([]repository.ProjectSummary, error) {
	return s.records.ListProjects(ctx, includeArchived)
}

func (s *projectService) Create(ctx context.Context, project, description string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": project}
	defer observe(ctx, s.observer, "create-project", startedAt, fields, &err)

	if err = domain.ValidateProjectName(project); err != nil {
		return err
	}
	roster, err := s.roster.Load()
	if err != nil {
		return fmt.Errorf("loading forces: %w", err)
	}
	fields["teams"] = len(roster.Forces)

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Stores) error {
		for _, team := range roster.Forces {
			exists, err := st.Records.Exists(ctx, project, team)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("project %q already exists for team %s", project, team)
			}
			rec := domain.NewProjectRecord(project, startedAt)
			rec.Metadata.Description = description
			if err := st.Records.Save(ctx, project, team, rec); err != nil {
				return fmt.Errorf("creating record for %s: %w", team, err)
			}
		}
		return nil
	})
	return err
}

func (s *projectService) Archive(ctx context.Context, project string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": project}
	defer observe(ctx, s.observer, "archive-project", startedAt, fields, &err)

	return s.records.Archive(ctx, project)
}

type forceService struct {
	records  repository.RecordStore
	tx       repository.Transactor
	roster   RosterStore
	observer UseCaseObserver
}

func NewForceService(records repository.RecordStore, tx repository.Transactor, roster RosterStore, observers ...UseCaseObserver) ForceService {
	return &forceService{
		records:  records,
		tx:       tx,
		roster:   roster,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *forceService) List(ctx context.Context) (config.ForceRoster, error) {
	return s.roster.Load()
}

func (s *forceService) Add(ctx context.Context, name string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"force": name}
	defer observe(ctx, s.observer, "add-force", startedAt, fields, &err)

	current, err := s.roster.Load()
	if err != nil {
		return fmt.Errorf("loading forces: %w", err)
	}
	next, err := current.Add(name)
	if err != nil {
		return err
	}
	added := next.Forces[len(next.Forces)-1]

	projects, err := s.records.ListProjects(ctx, false)
	if err != nil {
		return err
	}
	fields["projects"] = len(projects)

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Stores) error {
		for _, p := range projects {
			if _, err := st.Records.Load(ctx, p.Name, added); err != nil {
				return fmt.Errorf("seeding %s for %s: %w", p.Name, added, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.roster.Save(next)
}

// Remove takes the force off the roster. Its records stay in the store.
func (s *forceService) Remove(ctx context.Context, name string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"force": name}
	defer observe(ctx, s.observer, "remove-force", startedAt, fields, &err)

	current, err := s.roster.Load()
	if err != nil {
		return fmt.Errorf("loading forces: %w", err)
	}
	next, err := current.Remove(name)
	if err != nil {
		return err
	}
	return s.roster.Save(next)
}
