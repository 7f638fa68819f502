package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coppahp/planner/internal/db"
	"github.com/coppahp/planner/internal/domain"
	"github.com/google/uuid"
)

// SQLiteRecordStore implements RecordStore with one row per (project, team)
// holding the record as JSON.
type SQLiteRecordStore struct {
	db db.DBTX
}

func NewSQLiteRecordStore(db db.DBTX) *SQLiteRecordStore {
	return &SQLiteRecordStore{db: db}
}

func (r *SQLiteRecordStore) Load(ctx context.Context, project, team string) (*domain.ProjectRecord, error) {
	if err := validatePair(project, team); err != nil {
		return nil, err
	}
	var body string
	err := r.db.QueryRowContext(ctx,
		`SELECT body FROM project_records WHERE project = ? AND team = ?`, project, team).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		rec := newRecord(project)
		if err := r.Save(ctx, project, team, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading record %s/%s: %w", project, team, err)
	}

	var rec domain.ProjectRecord
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, fmt.Errorf("decoding record %s/%s: %w", project, team, err)
	}
	return &rec, nil
}

func (r *SQLiteRecordStore) Save(ctx context.Context, project, team string, rec *domain.ProjectRecord) error {
	if err := validatePair(project, team); err != nil {
		return err
	}
	now := time.Now().UTC()
	stamp(rec, project, now)

	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record %s/%s: %w", project, team, err)
	}

	query := `INSERT INTO project_records (id, project, team, status, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project, team) DO UPDATE SET
			status = excluded.status,
			body = excluded.body,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		uuid.New().String(),
		project,
		team,
		string(rec.Metadata.Status),
		string(body),
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving record %s/%s: %w", project, team, err)
	}
	return nil
}

func (r *SQLiteRecordStore) Exists(ctx context.Context, project, team string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_records WHERE project = ? AND team = ?`, project, team).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking record %s/%s: %w", project, team, err)
	}
	return n > 0, nil
}

func (r *SQLiteRecordStore) ListProjects(ctx context.Context, includeArchived bool) ([]ProjectSummary, error) {
	query := `SELECT project, team, status, updated_at FROM project_records WHERE status = 'active' ORDER BY project, team`
	if includeArchived {
		query = `SELECT project, team, status, updated_at FROM project_records ORDER BY project, team`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var pairs []ProjectSummary
	for rows.Next() {
		var project, team, status, updatedAt string
		if err := rows.Scan(&project, &team, &status, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		modified, err := time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		pairs = append(pairs, ProjectSummary{
			Name:     project,
			Teams:    []string{team},
			Status:   domain.ProjectStatus(status),
			Modified: modified,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return summarize(pairs), nil
}

func (r *SQLiteRecordStore) ListTeams(ctx context.Context, project string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT team FROM project_records WHERE project = ? ORDER BY team`, project)
	if err != nil {
		return nil, fmt.Errorf("listing teams of %s: %w", project, err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var team string
		if err := rows.Scan(&team); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams: %w", err)
	}
	return teams, nil
}

func (r *SQLiteRecordStore) Archive(ctx context.Context, project string) error {
	now := nowUTC()
	query := `UPDATE project_records
		SET status = 'archived',
			archived_at = ?,
			updated_at = ?,
			body = json_set(body, '$.metadata.status', 'archived')
		WHERE project = ? AND status = 'active'`
	res, err := r.db.ExecContext(ctx, query, now, now, project)
	if err != nil {
		return fmt.Errorf("archiving project %s: %w", project, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archiving project %s: %w", project, err)
	}
	if n == 0 {
		return fmt.Errorf("active project %q: %w", project, domain.ErrNotFound)
	}
	return nil
}

// ArchivedAt reports when the (project, team) record was archived, nil if
// it is active or missing.
func (r *SQLiteRecordStore) ArchivedAt(ctx context.Context, project, team string) (*time.Time, error) {
	var archivedAt sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT archived_at FROM project_records WHERE project = ? AND team = ?`, project, team).Scan(&archivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading archived_at: %w", err)
	}
	return parseNullableTime(archivedAt, time.RFC3339), nil
}

// SQLiteImportJournal stores import batches against their record row.
type SQLiteImportJournal struct {
	db db.DBTX
}

func NewSQLiteImportJournal(db db.DBTX) *SQLiteImportJournal {
	return &SQLiteImportJournal{db: db}
}

func (j *SQLiteImportJournal) Append(ctx context.Context, b *ImportBatch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	replaced := make([]string, len(b.Replaced))
	for i, k := range b.Replaced {
		replaced[i] = string(k)
	}

	query := `INSERT INTO import_batches (id, record_id, source, mode, sheets, replaced, created_at)
		SELECT ?, id, ?, ?, ?, ?, ? FROM project_records WHERE project = ? AND team = ?`
	res, err := j.db.ExecContext(ctx, query,
		b.ID,
		b.Source,
		b.Mode,
		joinList(b.Sheets),
		joinList(replaced),
		b.CreatedAt.Format(time.RFC3339),
		b.Project,
		b.Team,
	)
	if err != nil {
		return fmt.Errorf("inserting import batch: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("import batch for %s/%s: record %w", b.Project, b.Team, domain.ErrNotFound)
	}
	return nil
}

func (j *SQLiteImportJournal) List(ctx context.Context, project, team string) ([]ImportBatch, error) {
	query := `SELECT b.id, b.source, b.mode, b.sheets, b.replaced, b.created_at
		FROM import_batches b JOIN project_records r ON r.id = b.record_id
		WHERE r.project = ? AND r.team = ?
		ORDER BY b.created_at, b.rowid`
	rows, err := j.db.QueryContext(ctx, query, project, team)
	if err != nil {
		return nil, fmt.Errorf("listing import batches: %w", err)
	}
	defer rows.Close()

	var out []ImportBatch
	for rows.Next() {
		b := ImportBatch{Project: project, Team: team}
		var sheets, replaced, createdAt string
		if err := rows.Scan(&b.ID, &b.Source, &b.Mode, &sheets, &replaced, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning import batch: %w", err)
		}
		b.Sheets = splitList(sheets)
		for _, k := range splitList(replaced) {
			b.Replaced = append(b.Replaced, domain.EntityKind(k))
		}
		b.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating import batches: %w", err)
	}
	return out, nil
}

// SQLiteTransactor binds a record store and import journal to one
// transaction.
type SQLiteTransactor struct {
	uow db.UnitOfWork
}

func NewSQLiteTransactor(uow db.UnitOfWork) *SQLiteTransactor {
	return &SQLiteTransactor{uow: uow}
}

func (t *SQLiteTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error {
	return t.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, Stores{
			Records: NewSQLiteRecordStore(tx),
			Imports: NewSQLiteImportJournal(tx),
		})
	})
}
