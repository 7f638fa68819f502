package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/coppahp/planner/internal/config"
	"github.com/coppahp/planner/internal/progress"
	"github.com/coppahp/planner/internal/repository"
	"github.com/coppahp/planner/internal/testutil"
	"github.com/stretchr/testify/require"
)

type memRoster struct {
	roster config.ForceRoster
	saves  int
}

func newMemRoster(forces ...string) *memRoster {
	if len(forces) == 0 {
		return &memRoster{roster: config.DefaultRoster()}
	}
	return &memRoster{roster: config.ForceRoster{Forces: forces}}
}

func (m *memRoster) Load() (config.ForceRoster, error) { return m.roster, nil }

func (m *memRoster) Save(r config.ForceRoster) error {
	m.roster = r
	m.saves++
	return nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type testEnv struct {
	db       *sql.DB
	records  *repository.SQLiteRecordStore
	imports  *repository.SQLiteImportJournal
	tx       repository.Transactor
	roster   *memRoster
	observer *recordingObserver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		records:  repository.NewSQLiteRecordStore(database),
		imports:  repository.NewSQLiteImportJournal(database),
		tx:       repository.NewSQLiteTransactor(testutil.NewTestUoW(database)),
		roster:   newMemRoster(),
		observer: &recordingObserver{},
	}
}

func (e *testEnv) projects() ProjectService {
	return NewProjectService(e.records, e.tx, e.roster, e.observer)
}

func (e *testEnv) forces() ForceService {
	return NewForceService(e.records, e.tx, e.roster, e.observer)
}

func (e *testEnv) plans() PlanService {
	return NewPlanService(e.records, e.tx, e.observer)
}

func (e *testEnv) importer() ImportService {
	return NewImportService(e.records, e.imports, e.tx, e.observer)
}

func (e *testEnv) progress() ProgressService {
	return NewProgressService(e.records, e.roster, progress.DefaultThresholds(), e.observer)
}

func (e *testEnv) ko() KOService {
	return NewKOService(e.records, e.tx, e.observer)
}

func (e *testEnv) exports() ExportService {
	return NewExportService(e.records, e.roster, e.observer)
}

// seed stores the sample plan for each team.
func (e *testEnv) seed(t *testing.T, project string, teams ...string) {
	t.Helper()
	for _, team := range teams {
		require.NoError(t, e.records.Save(context.Background(), project, team, testutil.SampleRecord(project)))
	}
}
