package repository

import (
	"context"
	"time"

	"github.com/coppahp/planner/internal/domain"
)

// RecordStore persists one ProjectRecord per (project, team). Saves replace
// the whole record; the last writer wins.
type RecordStore interface {
	// Load returns the record, creating and saving a default one when the
	// pair has never been stored.
	Load(ctx context.Context, project, team string) (*domain.ProjectRecord, error)
	// Save stamps metadata.modified and writes the record.
	Save(ctx context.Context, project, team string, rec *domain.ProjectRecord) error
	Exists(ctx context.Context, project, team string) (bool, error)
	ListProjects(ctx context.Context, includeArchived bool) ([]ProjectSummary, error)
	ListTeams(ctx context.Context, project string) ([]string, error)
	// Archive moves every team record of the project out of the active set.
	Archive(ctx context.Context, project string) error
}

// ProjectSummary is one row of the project list.
type ProjectSummary struct {
	Name     string
	Teams    []string
	Status   domain.ProjectStatus
	Modified time.Time
}

// ImportBatch records one successful workbook import.
type ImportBatch struct {
	ID        string
	Project   string
	Team      string
	Source    string
	Mode      string
	Sheets    []string
	Replaced  []domain.EntityKind
	CreatedAt time.Time
}

type ImportJournal interface {
	Append(ctx context.Context, b *ImportBatch) error
	List(ctx context.Context, project, team string) ([]ImportBatch, error)
}

// Stores groups the repositories that change together.
type Stores struct {
	Records RecordStore
	Imports ImportJournal
}

// Transactor runs fn with stores bound to a single unit of work.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
