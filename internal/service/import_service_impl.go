package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coppahp/planner/internal/importer"
	"github.com/coppahp/planner/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	records  repository.RecordStore
	imports  repository.ImportJournal
	tx       repository.Transactor
	observer UseCaseObserver
}

func NewImportService(records repository.RecordStore, imports repository.ImportJournal, tx repository.Transactor, observers ...UseCaseObserver) ImportService {
	return &importService{
		records:  records,
		imports:  imports,
		tx:       tx,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Import applies the workbook to the (project, team) record. The record and
// its journal entry are saved together or not at all; a dry run saves
// neither.
func (s *importService) Import(ctx context.Context, req ImportRequest) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project": req.Project,
		"team":    req.Team,
		"source":  req.Source,
		"dry_run": req.DryRun,
	}
	defer observe(ctx, s.observer, "import-workbook", startedAt, fields, &err)

	if err = validateTarget(Target{Project: req.Project, Teams: []string{req.Team}}); err != nil {
		return nil, err
	}
	if req.Book == nil {
		return nil, fmt.Errorf("import of %s/%s: no workbook", req.Project, req.Team)
	}

	if req.DryRun {
		result, err = s.apply(ctx, s.records, req)
		if err != nil {
			return nil, err
		}
		fields["mode"] = string(result.Mode)
		fields["warnings"] = len(result.Warnings)
		return result, nil
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Stores) error {
		r, err := s.apply(ctx, st.Records, req)
		if err != nil {
			return err
		}
		if err := st.Records.Save(ctx, req.Project, req.Team, r.Record); err != nil {
			return fmt.Errorf("saving imported record: %w", err)
		}
		batch := &repository.ImportBatch{
			ID:        uuid.New().String(),
			Project:   req.Project,
			Team:      req.Team,
			Source:    req.Source,
			Mode:      string(r.Mode),
			Sheets:    r.Sheets,
			Replaced:  r.Replaced,
			CreatedAt: startedAt,
		}
		if err := st.Imports.Append(ctx, batch); err != nil {
			return fmt.Errorf("journaling import: %w", err)
		}
		r.BatchID = batch.ID
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["mode"] = string(result.Mode)
	fields["batch_id"] = result.BatchID
	fields["warnings"] = len(result.Warnings)
	for k, n := range result.Counts {
		fields[string(k)+"_count"] = n
	}
	return result, nil
}

func (s *importService) apply(ctx context.Context, records repository.RecordStore, req ImportRequest) (*ImportResult, error) {
	existing, err := loadOrNew(ctx, records, req.Project, req.Team)
	if err != nil {
		return nil, err
	}
	updated, rep, err := importer.Import(existing, req.Book)
	if err != nil {
		return nil, err
	}
	diff, err := planDiff(existing, updated, "current", req.Source)
	if err != nil {
		return nil, err
	}
	return &ImportResult{
		Mode:     rep.Mode,
		Sheets:   rep.Sheets,
		Replaced: rep.Replaced,
		Counts:   rep.Counts(updated),
		Skipped:  rep.Skipped,
		Warnings: importer.LintRecord(updated),
		Diff:     diff,
		Record:   updated,
	}, nil
}

func (s *importService) History(ctx context.Context, project, team string) ([]repository.ImportBatch, error) {
	batches, err := s.imports.List(ctx, project, team)
	if err != nil {
		return nil, fmt.Errorf("listing imports of %s/%s: %w", project, team, err)
	}
	return batches, nil
}

