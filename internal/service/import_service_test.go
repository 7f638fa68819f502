package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/importer"
	"github.com/coppahp/planner/internal/repository"
	"github.com/coppahp/planner/internal/testutil"
	"github.com/coppahp/planner/internal/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func combinedBook() *workbook.Workbook {
	return testutil.CombinedWorkbook(
		[]any{"Phase 1", "Seize ridge", 1, "Ridge held", "Alpha", 1, "Recce ridge", "T", 3, "Eyes on"},
		[]any{"Phase 1", "Seize ridge", 1, "Ridge held", "Alpha", 2, "Win locals", "IN", 2, "Support"},
		[]any{"Phase 1", "Seize ridge", 2, "Road open", "Bravo", 3, "Clear road", "T", 5, "Traffic moves"},
	)
}

func TestImportService_CombinedWorkbook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seed(t, "Op North", "blue")

	res, err := env.importer().Import(ctx, ImportRequest{
		Project: "Op North", Team: "blue", Source: "plan.xlsx", Book: combinedBook(),
	})
	require.NoError(t, err)
	assert.Equal(t, importer.ModeCombined, res.Mode)
	assert.Equal(t, domain.EntityKinds, res.Replaced)
	assert.Equal(t, 3, res.Counts[domain.KindDP], "rows 1 and 2 differ in weight")
	assert.Equal(t, 3, res.Counts[domain.KindTask])
	assert.NotEmpty(t, res.BatchID)
	assert.Contains(t, res.Diff, "--- current")
	assert.Contains(t, res.Diff, "+++ plan.xlsx")
	assert.Contains(t, res.Diff, `+      "name": "Recce ridge",`)

	rec, err := env.records.Load(ctx, "Op North", "blue")
	require.NoError(t, err)
	require.Len(t, rec.Tasks, 3)
	assert.Equal(t, domain.TaskIntangible, rec.Tasks[1].Type)

	history, err := env.importer().History(ctx, "Op North", "blue")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, res.BatchID, history[0].ID)
	assert.Equal(t, []string{"Sheet1"}, history[0].Sheets)

	ev := env.observer.last()
	assert.Equal(t, "import-workbook", ev.Name)
	assert.Equal(t, 3, ev.Fields["task_count"])
}

func TestImportService_DryRunSavesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.importer().Import(ctx, ImportRequest{
		Project: "Op North", Team: "blue", Source: "plan.xlsx", Book: combinedBook(), DryRun: true,
	})
	require.NoError(t, err)
	assert.Empty(t, res.BatchID)
	assert.NotEmpty(t, res.Diff)
	assert.Len(t, res.Record.Tasks, 3)

	ok, err := env.records.Exists(ctx, "Op North", "blue")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImportService_PartialWorkbookKeepsOtherLists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seed(t, "Op North", "blue")

	wb := workbook.New()
	wb.AddSheet("Tasks", "Task No", "Task", "DP No", "Progress").AppendRow(9, "New task", 3, "15")

	res, err := env.importer().Import(ctx, ImportRequest{Project: "Op North", Team: "blue", Source: "tasks.xlsx", Book: wb})
	require.NoError(t, err)
	assert.Equal(t, []domain.EntityKind{domain.KindTask}, res.Replaced)
	assert.Empty(t, res.Warnings)

	rec, err := env.records.Load(ctx, "Op North", "blue")
	require.NoError(t, err)
	assert.Len(t, rec.DPs, 3, "DPs untouched")
	require.Len(t, rec.Tasks, 1)
	assert.Equal(t, "New task", rec.Tasks[0].Name)
}

func TestImportService_WarnsOnDanglingReferences(t *testing.T) {
	env := newTestEnv(t)
	wb := workbook.New()
	wb.AddSheet("Tasks", "Task", "DP No").AppendRow("Orphan", 42)

	res, err := env.importer().Import(context.Background(), ImportRequest{Project: "Op North", Team: "blue", Book: wb, DryRun: true})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Error(), "dp 42 not found")
	assert.Equal(t, 1, env.observer.last().Fields["warnings"])
}

func TestLogUseCaseObserver_WarnsOnImportWarnings(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "import-workbook",
		Success: true,
		Fields:  map[string]any{"warnings": 2, "team": "blue", "project": "Op North"},
	})

	line := buf.String()
	assert.Contains(t, line, "level=WARN")
	assert.Less(t, strings.Index(line, "project="), strings.Index(line, "team="), "fields are logged in key order")
	assert.Less(t, strings.Index(line, "team="), strings.Index(line, "warnings="))
}

type brokenSource struct{}

func (brokenSource) SheetNames() []string { return []string{"Tasks"} }

func (brokenSource) Sheet(string) (*workbook.Sheet, error) { return nil, errors.New("corrupt") }

func TestImportService_IngestErrorPersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seed(t, "Op North", "blue")

	_, err := env.importer().Import(ctx, ImportRequest{Project: "Op North", Team: "blue", Book: brokenSource{}})
	var ingest *importer.IngestError
	require.ErrorAs(t, err, &ingest)
	assert.Equal(t, "Tasks", ingest.Sheet)

	rec, err := env.records.Load(ctx, "Op North", "blue")
	require.NoError(t, err)
	assert.Len(t, rec.Tasks, 3)
	assert.False(t, env.observer.last().Success)
}

func TestImportService_RollbackOnJournalFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seed(t, "Op North", "blue")

	env.tx = repository.NewSQLiteTransactor(&testutil.FailingUoW{
		DB:    env.db,
		Table: "import_batches",
		Err:   errors.New("injected batch failure"),
	})

	_, err := env.importer().Import(ctx, ImportRequest{Project: "Op North", Team: "blue", Source: "plan.xlsx", Book: combinedBook()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected batch failure")

	rec, err := env.records.Load(ctx, "Op North", "blue")
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleRecord("Op North").Tasks, rec.Tasks, "record save rolled back")

	history, err := env.importer().History(ctx, "Op North", "blue")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestImportService_RequiresWorkbook(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.importer().Import(context.Background(), ImportRequest{Project: "Op North", Team: "blue"})
	assert.Error(t, err)
}
