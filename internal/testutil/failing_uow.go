package testutil

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/coppahp/planner/internal/db"
)

// FailingUoW is a UnitOfWork whose Nth write matching Table returns Err
// instead of executing. Table "" matches every write and Nth 0 means the
// first match. The transaction is rolled back, so nothing fn wrote before
// the failure survives.
type FailingUoW struct {
	DB    *sql.DB
	Table string
	Nth   int32
	Err   error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	nth := max(u.Nth, 1)
	if err := fn(ctx, &failingExec{DBTX: tx, table: u.Table, nth: nth, err: u.Err}); err != nil {
		return errors.Join(err, ignoreDone(tx.Rollback()))
	}
	return tx.Commit()
}

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

type failingExec struct {
	db.DBTX
	table string
	nth   int32
	seen  atomic.Int32
	err   error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.table) && f.seen.Add(1) == f.nth {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
