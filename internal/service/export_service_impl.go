package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/repository"
	"github.com/coppahp/planner/internal/workbook"
)

type exportService struct {
	records  repository.RecordStore
	roster   RosterStore
	observer UseCaseObserver
}

func NewExportService(records repository.RecordStore, roster RosterStore, observers ...UseCaseObserver) ExportService {
	return &exportService{
		records:  records,
		roster:   roster,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *exportService) stored(ctx context.Context, project, team string) (*domain.ProjectRecord, error) {
	ok, err := s.records.Exists(ctx, project, team)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("record %s/%s: %w", project, team, domain.ErrNotFound)
	}
	return s.records.Load(ctx, project, team)
}

func (s *exportService) JSON(ctx context.Context, project, team string, w io.Writer) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": project, "team": team, "format": "json"}
	defer observe(ctx, s.observer, "export", startedAt, fields, &err)

	rec, err := s.stored(ctx, project, team)
	if err != nil {
		return err
	}
	data, err := repository.EncodeLegacy(rec)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (s *exportService) XLSX(ctx context.Context, project, team string, w io.Writer) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": project, "team": team, "format": "xlsx"}
	defer observe(ctx, s.observer, "export", startedAt, fields, &err)

	rec, err := s.stored(ctx, project, team)
	if err != nil {
		return err
	}
	return workbook.WriteXLSX(w, RecordWorkbook(rec))
}

// Zip writes <project>_<team>.json and .xlsx for every roster force with a
// stored record.
func (s *exportService) Zip(ctx context.Context, project string, w io.Writer) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": project, "format": "zip"}
	defer observe(ctx, s.observer, "export", startedAt, fields, &err)

	roster, err := s.roster.Load()
	if err != nil {
		return fmt.Errorf("loading forces: %w", err)
	}

	zw := zip.NewWriter(w)
	written := 0
	for _, team := range roster.Forces {
		ok, err := s.records.Exists(ctx, project, team)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		rec, err := s.records.Load(ctx, project, team)
		if err != nil {
			return err
		}

		data, err := repository.EncodeLegacy(rec)
		if err != nil {
			return err
		}
		var book bytes.Buffer
		if err := workbook.WriteXLSX(&book, RecordWorkbook(rec)); err != nil {
			return err
		}

		base := project + "_" + team
		entries := []struct {
			name string
			body []byte
		}{
			{base + ".json", data},
			{base + ".xlsx", book.Bytes()},
		}
		for _, e := range entries {
			f, err := zw.Create(e.name)
			if err != nil {
				return fmt.Errorf("adding %s: %w", e.name, err)
			}
			if _, err := f.Write(e.body); err != nil {
				return fmt.Errorf("writing %s: %w", e.name, err)
			}
		}
		written++
	}
	fields["teams"] = written
	if written == 0 {
		return fmt.Errorf("project %q: %w", project, domain.ErrNotFound)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing zip: %w", err)
	}
	return nil
}

// RecordWorkbook lays the record out as Phases, Objectives, Dps and Tasks
// sheets, the multi-sheet shape the importer reads back. Extra fields
// become trailing columns in sorted order.
func RecordWorkbook(rec *domain.ProjectRecord) *workbook.Workbook {
	wb := workbook.New()

	phaseExtras := extraHeaders(rec.Phases, func(p domain.Phase) map[string]string { return p.Extra })
	phases := wb.AddSheet("Phases", append([]string{"Name", "Phase No"}, phaseExtras...)...)
	for _, p := range rec.Phases {
		phases.AppendRow(append([]any{p.Name, optionalInt(p.PhaseNo)}, extraValues(p.Extra, phaseExtras)...)...)
	}

	objExtras := extraHeaders(rec.Objectives, func(o domain.Objective) map[string]string { return o.Extra })
	objectives := wb.AddSheet("Objectives", append([]string{"Name", "Phase", "Objective No"}, objExtras...)...)
	for _, o := range rec.Objectives {
		objectives.AppendRow(append([]any{o.Name, o.Phase, optionalInt(o.ObjectiveNo)}, extraValues(o.Extra, objExtras)...)...)
	}

	dpExtras := extraHeaders(rec.DPs, func(dp domain.DecisivePoint) map[string]string { return dp.Extra })
	dps := wb.AddSheet("Dps", append([]string{"DP No", "Name", "Objective", "Phase", "Weight", "Force Group"}, dpExtras...)...)
	for _, dp := range rec.DPs {
		dps.AppendRow(append([]any{dp.DPNo, dp.Name, dp.Objective, dp.Phase, dp.Weight, dp.ForceGroup}, extraValues(dp.Extra, dpExtras)...)...)
	}

	taskExtras := extraHeaders(rec.Tasks, func(t domain.Task) map[string]string { return t.Extra })
	tasks := wb.AddSheet("Tasks", append([]string{
		"Task No", "Name", "DP No", "Weight", "Progress", "Type", "Intangible", "Criteria", "Force Group",
	}, taskExtras...)...)
	for _, t := range rec.Tasks {
		tasks.AppendRow(append([]any{
			t.TaskNo, t.Name, t.DPNo, t.Weight, t.Progress, string(t.Type), string(t.Intangible), t.Criteria, t.ForceGroup,
		}, extraValues(t.Extra, taskExtras)...)...)
	}
	return wb
}

func extraHeaders[T any](items []T, extra func(T) map[string]string) []string {
	seen := make(map[string]bool)
	for _, it := range items {
		for k := range extra(it) {
			seen[k] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func extraValues(extra map[string]string, headers []string) []any {
	out := make([]any, len(headers))
	for i, h := range headers {
		out[i] = extra[h]
	}
	return out
}

func optionalInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
