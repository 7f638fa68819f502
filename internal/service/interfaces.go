package service

import (
	"context"
	"io"

	"github.com/coppahp/planner/internal/config"
	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/importer"
	"github.com/coppahp/planner/internal/progress"
	"github.com/coppahp/planner/internal/repository"
)

// RosterStore reads and writes the force roster.
type RosterStore interface {
	Load() (config.ForceRoster, error)
	Save(config.ForceRoster) error
}

type ProjectService interface {
	List(ctx context.Context, includeArchived bool) ([]repository.ProjectSummary, error)
	// Create stores an empty record for every force on the roster.
	Create(ctx context.Context, project, description string) error
	Archive(ctx context.Context, project string) error
}

type ForceService interface {
	List(ctx context.Context) (config.ForceRoster, error)
	// Add puts the force on the roster and seeds a record for it in every
	// active project.
	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
}

// Target names the records an edit applies to: one project, one or more
// teams. Multi-team edits are all-or-nothing where the store supports it.
type Target struct {
	Project string
	Teams   []string
}

type PlanService interface {
	Get(ctx context.Context, project, team string) (*domain.ProjectRecord, error)
	AddPhase(ctx context.Context, t Target, p domain.Phase) error
	AddObjective(ctx context.Context, t Target, o domain.Objective) error
	AddDP(ctx context.Context, t Target, dp domain.DecisivePoint) error
	AddTask(ctx context.Context, t Target, task domain.Task) error
	// Delete removes one entity and everything beneath it.
	Delete(ctx context.Context, t Target, kind domain.EntityKind, ref string) error
	CheckDPNo(ctx context.Context, project, team, dpNo string) error
	SuggestDPNo(ctx context.Context, project, team string) (int, error)
	// SetTaskProgress validates progress against the band of the task's
	// intangible level. level may be empty to keep the current one.
	SetTaskProgress(ctx context.Context, project, team, taskRef string, value float64, level domain.IntangibleLevel) error
}

// ImportRequest describes one workbook import.
type ImportRequest struct {
	Project string
	Team    string
	Source  string
	Book    importer.Source
	DryRun  bool
}

// ImportResult holds the outcome of a workbook import.
type ImportResult struct {
	Mode     importer.Mode
	Sheets   []string
	Replaced []domain.EntityKind
	Counts   map[domain.EntityKind]int
	Skipped  map[domain.EntityKind]int
	Warnings []error
	// Diff is a unified diff of the plan before and after.
	Diff    string
	BatchID string
	Record  *domain.ProjectRecord
}

type ImportService interface {
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
	History(ctx context.Context, project, team string) ([]repository.ImportBatch, error)
}

// TeamProgress is one team's computed progress.
type TeamProgress struct {
	Team   string
	Result progress.Result
	RAG    map[domain.EntityKind]progress.RAGCount
	// Average per level, keyed like RAG.
	Average map[domain.EntityKind]float64
}

type ProgressOverview struct {
	Project    string
	Thresholds progress.Thresholds
	Teams      []TeamProgress
}

type ProgressService interface {
	Overview(ctx context.Context, project string) (*ProgressOverview, error)
	Team(ctx context.Context, project, team string) (*TeamProgress, error)
}

// Chooser asks which of two tasks matters more. It returns true when a
// wins.
type Chooser func(ctx context.Context, a, b domain.Task) (bool, error)

type KOService interface {
	// Tasks returns the DP's tasks in record order.
	Tasks(ctx context.Context, project, team, dpNo string) ([]domain.Task, error)
	// Run compares every pair through choose and applies the weights.
	Run(ctx context.Context, project, team, dpNo string, choose Chooser) ([]float64, error)
	Apply(ctx context.Context, project, team, dpNo string, weights []float64) error
}

type ExportService interface {
	JSON(ctx context.Context, project, team string, w io.Writer) error
	XLSX(ctx context.Context, project, team string, w io.Writer) error
	// Zip bundles JSON and XLSX for every stored team of the project.
	Zip(ctx context.Context, project string, w io.Writer) error
}
