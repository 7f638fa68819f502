package testutil

import (
	"time"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/workbook"
)

// FixedTime is the creation time stamped on fixture records.
var FixedTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type RecordOption func(*domain.ProjectRecord)

func WithPhase(name string) RecordOption {
	return func(r *domain.ProjectRecord) {
		r.Phases = append(r.Phases, domain.Phase{Name: name})
	}
}

func WithObjective(name, phase string) RecordOption {
	return func(r *domain.ProjectRecord) {
		r.Objectives = append(r.Objectives, domain.Objective{Name: name, Phase: phase})
	}
}

func WithDP(no, name, objective string) RecordOption {
	return func(r *domain.ProjectRecord) {
		r.DPs = append(r.DPs, domain.DecisivePoint{
			DPNo:      domain.Number(no),
			Name:      name,
			Objective: objective,
			Phase:     r.ObjectivePhases()[objective],
		})
	}
}

// TaskOption adjusts a task added by WithTask.
type TaskOption func(*domain.Task)

func Intangible(level domain.IntangibleLevel) TaskOption {
	return func(t *domain.Task) {
		t.Type = domain.TaskIntangible
		t.Intangible = level
	}
}

func Weight(w string) TaskOption {
	return func(t *domain.Task) {
		t.Weight = domain.Number(w)
	}
}

func WithTask(no, name, dpNo, progress string, opts ...TaskOption) RecordOption {
	return func(r *domain.ProjectRecord) {
		t := domain.Task{
			TaskNo:     domain.Number(no),
			Name:       name,
			DPNo:       domain.Number(dpNo),
			Progress:   domain.Number(progress),
			Type:       domain.TaskTangible,
			Intangible: domain.IntangibleNil,
		}
		for _, opt := range opts {
			opt(&t)
		}
		r.Tasks = append(r.Tasks, t)
	}
}

func NewTestRecord(project string, opts ...RecordOption) *domain.ProjectRecord {
	r := domain.NewProjectRecord(project, FixedTime)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SampleRecord has DP 1 at 45%, DP 2 at 70%, Obj A and Phase 1 at 57.5%.
func SampleRecord(project string) *domain.ProjectRecord {
	return NewTestRecord(project,
		WithPhase("Phase 1"),
		WithPhase("Phase 2"),
		WithObjective("Obj A", "Phase 1"),
		WithObjective("Obj B", "Phase 2"),
		WithDP("1", "Build bridge", "Obj A"),
		WithDP("2", "Open road", "Obj A"),
		WithDP("3", "Secure port", "Obj B"),
		WithTask("1", "Survey site", "1", "40"),
		WithTask("2", "Liaise locals", "1", "20", Intangible(domain.IntangiblePartial)),
		WithTask("3", "Pave road", "2", "70"),
	)
}

// CombinedHeaders is the header row of the single-sheet workbook layout.
var CombinedHeaders = []string{
	"Phase", "Objective", "DP No", "Description of DP", "Force Group Asigned",
	"Task No", "Task Description", "Task Tangible / Intangible (T/IN)",
	"Weightage Factor (1-5) (W)", "Criteria of Success",
}

// CombinedWorkbook returns a one-sheet workbook with the given data rows.
func CombinedWorkbook(rows ...[]any) *workbook.Workbook {
	wb := workbook.New()
	s := wb.AddSheet("Sheet1", CombinedHeaders...)
	for _, r := range rows {
		s.AppendRow(r...)
	}
	return wb
}
