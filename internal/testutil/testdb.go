package testutil

import (
	"database/sql"
	"testing"

	"github.com/coppahp/planner/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory record database that is closed
// with the test.
func NewTestDB(tb testing.TB) *sql.DB {
	tb.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(tb, err, "open record database")
	tb.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW wraps database in the production unit of work.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
