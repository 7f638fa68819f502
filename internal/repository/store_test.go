package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/coppahp/planner/internal/db"
	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFactory struct {
	name string
	open func(t *testing.T) RecordStore
}

func storeFactories() []storeFactory {
	return []storeFactory{
		{"sqlite", func(t *testing.T) RecordStore {
			return NewSQLiteRecordStore(testutil.NewTestDB(t))
		}},
		{"sqlite file", func(t *testing.T) RecordStore {
			database, err := db.OpenDB(filepath.Join(t.TempDir(), "ahp.db"))
			require.NoError(t, err)
			t.Cleanup(func() { database.Close() })
			return NewSQLiteRecordStore(database)
		}},
		{"file", func(t *testing.T) RecordStore {
			dir := t.TempDir()
			s, err := NewFileRecordStore(filepath.Join(dir, "projects"), filepath.Join(dir, "archive"))
			require.NoError(t, err)
			return s
		}},
	}
}

// ignoreTimes drops metadata timestamps, which the stores stamp themselves.
var ignoreTimes = cmpopts.IgnoreFields(domain.Metadata{}, "Created", "Modified")

func TestRecordStore_LoadCreatesDefault(t *testing.T) {
	for _, f := range storeFactories() {
		t.Run(f.name, func(t *testing.T) {
			store := f.open(t)
			ctx := context.Background()

			ok, err := store.Exists(ctx, "Op North", "blue")
			require.NoError(t, err)
			assert.False(t, ok)

			rec, err := store.Load(ctx, "Op North", "blue")
			require.NoError(t, err)
			assert.Equal(t, "Op North", rec.Metadata.Name)
			assert.Equal(t, domain.ProjectActive, rec.Metadata.Status)
			assert.False(t, rec.Metadata.Created.IsZero())
			assert.Empty(t, rec.Tasks)

			ok, err = store.Exists(ctx, "Op North", "blue")
			require.NoError(t, err)
			assert.True(t, ok, "default record is persisted")
		})
	}
}

func TestRecordStore_SaveLoadRoundTrip(t *testing.T) {
	for _, f := range storeFactories() {
		t.Run(f.name, func(t *testing.T) {
			store := f.open(t)
			ctx := context.Background()

			rec := testutil.SampleRecord("Op North")
			rec.Tasks[0].Extra = map[string]string{"Remarks": "muddy"}
			seven := 7
			rec.Phases[0].PhaseNo = &seven
			rec.DPs[0].ForceGroup = "Engineers"
			rec.DPs[0].Weight = "3"
			require.NoError(t, store.Save(ctx, "Op North", "blue", rec))
			assert.False(t, rec.Metadata.Modified.Before(testutil.FixedTime), "save stamps modified")

			got, err := store.Load(ctx, "Op North", "blue")
			require.NoError(t, err)
			if diff := cmp.Diff(rec, got, ignoreTimes); diff != "" {
				t.Errorf("record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecordStore_TeamsAreIndependent(t *testing.T) {
	for _, f := range storeFactories() {
		t.Run(f.name, func(t *testing.T) {
			store := f.open(t)
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, "Op North", "blue", testutil.SampleRecord("Op North")))
			require.NoError(t, store.Save(ctx, "Op North", "red", testutil.NewTestRecord("Op North")))

			red, err := store.Load(ctx, "Op North", "red")
			require.NoError(t, err)
			assert.Empty(t, red.DPs)

			blue, err := store.Load(ctx, "Op North", "blue")
			require.NoError(t, err)
			assert.Len(t, blue.DPs, 3)

			teams, err := store.ListTeams(ctx, "Op North")
			require.NoError(t, err)
			assert.Equal(t, []string{"blue", "red"}, teams)
		})
	}
}

func TestRecordStore_LastWriteWins(t *testing.T) {
	for _, f := range storeFactories() {
		t.Run(f.name, func(t *testing.T) {
			store := f.open(t)
			ctx := context.Background()

			first := testutil.SampleRecord("Op North")
			second := testutil.NewTestRecord("Op North", testutil.WithPhase("Only"))
			require.NoError(t, store.Save(ctx, "Op North", "blue", first))
			require.NoError(t, store.Save(ctx, "Op North", "blue", second))

			got, err := store.Load(ctx, "Op North", "blue")
			require.NoError(t, err)
			assert.Equal(t, []domain.Phase{{Name: "Only"}}, got.Phases)
			assert.Empty(t, got.Tasks)
		})
	}
}

func TestRecordStore_ListAndArchive(t *testing.T) {
	for _, f := range storeFactories() {
		t.Run(f.name, func(t *testing.T) {
			store := f.open(t)
			ctx := context.Background()

			for _, pair := range [][2]string{{"Op North", "blue"}, {"Op North", "red"}, {"Op South", "blue"}} {
				_, err := store.Load(ctx, pair[0], pair[1])
				require.NoError(t, err)
			}

			projects, err := store.ListProjects(ctx, false)
			require.NoError(t, err)
			require.Len(t, projects, 2)
			assert.Equal(t, "Op North", projects[0].Name)
			assert.Equal(t, []string{"blue", "red"}, projects[0].Teams)
			assert.Equal(t, domain.ProjectActive, projects[0].Status)

			require.NoError(t, store.Archive(ctx, "Op North"))

			projects, err = store.ListProjects(ctx, false)
			require.NoError(t, err)
			require.Len(t, projects, 1)
			assert.Equal(t, "Op South", projects[0].Name)

			all, err := store.ListProjects(ctx, true)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, domain.ProjectArchived, all[0].Status)

			err = store.Archive(ctx, "Op North")
			assert.ErrorIs(t, err, domain.ErrNotFound, "nothing left to archive")
			assert.ErrorIs(t, store.Archive(ctx, "Nowhere"), domain.ErrNotFound)
		})
	}
}

func TestRecordStore_RejectsBadNames(t *testing.T) {
	for _, f := range storeFactories() {
		t.Run(f.name, func(t *testing.T) {
			store := f.open(t)
			ctx := context.Background()

			_, err := store.Load(ctx, "Op_North", "blue")
			assert.Error(t, err, "underscore is the file name separator")
			_, err = store.Load(ctx, "Op North", "")
			assert.Error(t, err)
			assert.Error(t, store.Save(ctx, "../etc", "blue", testutil.NewTestRecord("x")))
		})
	}
}

func TestSummarize_ModifiedIsLatest(t *testing.T) {
	early := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	got := summarize([]ProjectSummary{
		{Name: "B", Teams: []string{"red"}, Status: domain.ProjectArchived, Modified: late},
		{Name: "A", Teams: []string{"red"}, Status: domain.ProjectActive, Modified: early},
		{Name: "B", Teams: []string{"blue"}, Status: domain.ProjectActive, Modified: early},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, []string{"blue", "red"}, got[1].Teams)
	assert.Equal(t, late, got[1].Modified)
	assert.Equal(t, domain.ProjectActive, got[1].Status, "any active team keeps the project active")
}
