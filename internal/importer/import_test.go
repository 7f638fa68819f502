package importer

import (
	"errors"
	"testing"
	"time"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/workbook"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var combinedHeaders = []string{
	"Phase", "Objective", "DP No", "Description of DP", "Force Group Asigned",
	"Task No", "Task Description", "Task Tangible / Intangible (T/IN)",
	"Weightage Factor (1-5) (W)", "Criteria of Success",
}

func existingRecord() *domain.ProjectRecord {
	rec := domain.NewProjectRecord("Op North", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	rec.Phases = []domain.Phase{{Name: "Old Phase"}}
	rec.Objectives = []domain.Objective{{Name: "Old Obj", Phase: "Old Phase"}}
	rec.DPs = []domain.DecisivePoint{{DPNo: "9", Name: "Old DP", Objective: "Old Obj"}}
	rec.Tasks = []domain.Task{{TaskNo: "1", Name: "Old task", DPNo: "9", Progress: "30"}}
	return rec
}

func TestImport_CombinedSheet(t *testing.T) {
	wb := workbook.New()
	s := wb.AddSheet("Sheet1", combinedHeaders...)
	s.AppendRow("Phase 1", "Obj A", "1", "Build bridge", "Engineers", "1", "Survey site", "T", "3", "Site surveyed")

	got, rep, err := Import(existingRecord(), wb)
	require.NoError(t, err)
	assert.Equal(t, ModeCombined, rep.Mode)
	assert.Equal(t, domain.EntityKinds, rep.Replaced)

	want := existingRecord()
	want.Phases = []domain.Phase{{Name: "Phase 1"}}
	want.Objectives = []domain.Objective{{Name: "Obj A", Phase: "Phase 1"}}
	want.DPs = []domain.DecisivePoint{{
		DPNo: "1", Name: "Build bridge", Objective: "Obj A", Phase: "Phase 1",
		ForceGroup: "Engineers", Weight: "3",
	}}
	want.Tasks = []domain.Task{{
		TaskNo: "1", Name: "Survey site", DPNo: "1", Weight: "3",
		Type: domain.TaskTangible, Intangible: domain.IntangibleNil,
		ForceGroup: "Engineers", Criteria: "Site surveyed",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("imported record mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_CombinedNumericCells(t *testing.T) {
	wb := workbook.New()
	s := wb.AddSheet("Plan", combinedHeaders...)
	s.AppendRow("Phase 1", "Obj A", 1, "Build bridge", "Engineers", 1, "Survey site", "I", 3.5, nil)

	got, _, err := Import(existingRecord(), wb)
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, domain.Number("1"), got.Tasks[0].DPNo, "numeric 1 reads as \"1\"")
	assert.Equal(t, domain.Number("3.5"), got.Tasks[0].Weight)
	assert.Equal(t, domain.IntangiblePartial, got.Tasks[0].Intangible)
}

func TestImport_CombinedDedupe(t *testing.T) {
	wb := workbook.New()
	s := wb.AddSheet("Sheet1", combinedHeaders...)
	s.AppendRow("Phase 1", "Obj A", "1", "Bridge", "Engineers", "1", "Survey", "T", "3", "")
	s.AppendRow("Phase 1", "Obj A", "1", "Bridge", "Engineers", "2", "Build", "T", "3", "")
	s.AppendRow("Phase 1", "Obj A", "1", "Bridge", "Infantry", "3", "Guard", "I", "3", "")
	s.AppendRow("Phase 2", "Obj B", "2", "Port", "Navy", "", "", "", "2", "")
	s.AppendRow(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	got, rep, err := Import(domain.NewProjectRecord("p", time.Now()), wb)
	require.NoError(t, err)

	assert.Equal(t, []domain.Phase{{Name: "Phase 1"}, {Name: "Phase 2"}}, got.Phases)
	assert.Len(t, got.Objectives, 2)
	require.Len(t, got.DPs, 3, "differing force group text yields a distinct DP")
	assert.Equal(t, "Infantry", got.DPs[1].ForceGroup)
	assert.Len(t, got.Tasks, 3)
	assert.Equal(t, 1, rep.Skipped[domain.KindTask])
}

func TestImport_CombinedObjectiveNeedsPhase(t *testing.T) {
	wb := workbook.New()
	s := wb.AddSheet("Sheet1", combinedHeaders...)
	s.AppendRow("Phase 1", "Obj A", "1", "Bridge", "", "1", "Survey", "T", "3", "")
	s.AppendRow(nil, "Obj B", "2", "Port", "", "2", "Sail", "T", "3", "")

	got, _, err := Import(domain.NewProjectRecord("p", time.Now()), wb)
	require.NoError(t, err)
	assert.Equal(t, []domain.Objective{{Name: "Obj A", Phase: "Phase 1"}}, got.Objectives)
	assert.Len(t, got.DPs, 2)

	wb = workbook.New()
	wb.AddSheet("Sheet1", "Objective", "DP No", "Description of DP", "Task No", "Task Description").
		AppendRow("Obj A", "1", "Bridge", "1", "Survey")

	got, _, err = Import(domain.NewProjectRecord("p", time.Now()), wb)
	require.NoError(t, err)
	assert.Empty(t, got.Objectives, "no Phase column")
	require.Len(t, got.DPs, 1)
	assert.Equal(t, "Obj A", got.DPs[0].Objective)
}

func TestImport_CombinedBareWeightIsDPOnly(t *testing.T) {
	wb := workbook.New()
	wb.AddSheet("Sheet1", "Phase", "Objective", "DP No", "Description of DP", "Task No", "Task Description", "Weight").
		AppendRow("Phase 1", "Obj A", "1", "Bridge", "1", "Survey", 4)

	got, _, err := Import(domain.NewProjectRecord("p", time.Now()), wb)
	require.NoError(t, err)
	require.Len(t, got.DPs, 1)
	assert.Equal(t, domain.Number("4"), got.DPs[0].Weight)
	require.Len(t, got.Tasks, 1)
	assert.True(t, got.Tasks[0].Weight.IsZero())
}

func TestImport_MultiSheetMissingTasksKeepsTasks(t *testing.T) {
	wb := workbook.New()
	wb.AddSheet("phases", "Name").AppendRow("Phase 1")
	wb.AddSheet("OBJECTIVES", "Name", "Phase").AppendRow("Obj A", "Phase 1")
	wb.AddSheet("DPs", "DP No", "Name", "Objective", "Weight").AppendRow("1", "Bridge", "Obj A", 4)

	existing := existingRecord()
	got, rep, err := Import(existing, wb)
	require.NoError(t, err)

	assert.Equal(t, ModeMultiSheet, rep.Mode)
	assert.Equal(t, []domain.EntityKind{domain.KindPhase, domain.KindObjective, domain.KindDP}, rep.Replaced)
	assert.Equal(t, []domain.Phase{{Name: "Phase 1"}}, got.Phases)
	assert.Equal(t, []domain.Objective{{Name: "Obj A", Phase: "Phase 1"}}, got.Objectives)
	require.Len(t, got.DPs, 1)
	assert.Equal(t, "Phase 1", got.DPs[0].Phase, "phase backfilled from objective")
	assert.Equal(t, domain.Number("4"), got.DPs[0].Weight)

	if diff := cmp.Diff(existing.Tasks, got.Tasks); diff != "" {
		t.Errorf("tasks changed (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, len(rep.Counts(got)))
}

func TestImport_ObjectivesOnlyBackfillsExistingDPs(t *testing.T) {
	wb := workbook.New()
	wb.AddSheet("Objective", "Objective", "Phase").AppendRow("Old Obj", "New Phase")

	existing := existingRecord()
	got, _, err := Import(existing, wb)
	require.NoError(t, err)

	require.Len(t, got.DPs, 1)
	assert.Equal(t, "New Phase", got.DPs[0].Phase)
	assert.Empty(t, existing.DPs[0].Phase, "input record untouched")
}

func TestImport_SheetWithoutCombinedSignalsFallsThrough(t *testing.T) {
	wb := workbook.New()
	wb.AddSheet("Sheet1", "Name").AppendRow("ignored")
	wb.AddSheet("Tasks", "Task No", "Name", "DP No", "Progress").AppendRow(1, "Dig", 1, 40)

	got, rep, err := Import(existingRecord(), wb)
	require.NoError(t, err)
	assert.Equal(t, ModeMultiSheet, rep.Mode)
	assert.Equal(t, []string{"Tasks"}, rep.Sheets)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, domain.Number("40"), got.Tasks[0].Progress)
	assert.Equal(t, existingRecord().Phases, got.Phases)
}

func TestImport_SkipsRowsMissingMinimumFields(t *testing.T) {
	wb := workbook.New()
	dps := wb.AddSheet("DPs", "DP No", "Name")
	dps.AppendRow("1", "Bridge")
	dps.AppendRow("2", "")
	dps.AppendRow(nil, nil)

	got, rep, err := Import(existingRecord(), wb)
	require.NoError(t, err)
	assert.Len(t, got.DPs, 1)
	assert.Equal(t, 1, rep.Skipped[domain.KindDP], "blank rows are dropped, not skipped")
}

func TestImport_ZeroSheets(t *testing.T) {
	existing := existingRecord()
	got, rep, err := Import(existing, workbook.New())
	require.NoError(t, err)
	assert.Empty(t, rep.Replaced)
	assert.Equal(t, existing, got)
	assert.NotSame(t, existing, got)
}

type failingSource struct {
	names []string
}

func (f failingSource) SheetNames() []string { return f.names }

func (f failingSource) Sheet(name string) (*workbook.Sheet, error) {
	return nil, errors.New("corrupt cell")
}

func TestImport_SheetErrorIsIngestError(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"combined candidate", []string{"Sheet1"}},
		{"multi-sheet", []string{"Phases", "Tasks"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := existingRecord()
			got, _, err := Import(existing, failingSource{names: tt.names})
			require.Error(t, err)
			assert.Nil(t, got)

			var ingest *IngestError
			require.ErrorAs(t, err, &ingest)
			assert.Equal(t, tt.names[0], ingest.Sheet)
			assert.Contains(t, err.Error(), "corrupt cell")
			assert.Equal(t, existingRecord(), existing)
		})
	}
}

func TestLintRecord(t *testing.T) {
	rec := existingRecord()
	rec.DPs = append(rec.DPs, domain.DecisivePoint{DPNo: " 9", Name: "Twin", Weight: "heavy"})
	rec.Tasks = append(rec.Tasks, domain.Task{Name: "Orphan", DPNo: "42", Progress: "n/a"})

	errs := LintRecord(rec)
	require.Len(t, errs, 4)

	var dup *domain.DuplicateDPError
	assert.True(t, errors.As(errs[0], &dup))
	assert.Equal(t, "9", dup.DPNo)
	assert.Contains(t, errs[1].Error(), "weight")
	assert.Contains(t, errs[2].Error(), "dp 42 not found")
	assert.Contains(t, errs[3].Error(), "progress")
}
