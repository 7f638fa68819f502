package importer

import (
	"fmt"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/workbook"
)

// Source is the tabular workbook the importer reads. *workbook.Workbook
// satisfies it.
type Source interface {
	SheetNames() []string
	Sheet(name string) (*workbook.Sheet, error)
}

// IngestError reports a workbook that could not be read. Callers must not
// persist anything when Import returns one.
type IngestError struct {
	Sheet string
	Err   error
}

func (e *IngestError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("ingesting workbook: %v", e.Err)
	}
	return fmt.Sprintf("ingesting sheet %q: %v", e.Sheet, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

type Mode string

const (
	ModeCombined   Mode = "combined"
	ModeMultiSheet Mode = "multi-sheet"
)

// Report describes what an import did.
type Report struct {
	Mode     Mode
	Sheets   []string
	Replaced []domain.EntityKind
	Skipped  map[domain.EntityKind]int
}

// Counts returns the size of each replaced list in rec.
func (r *Report) Counts(rec *domain.ProjectRecord) map[domain.EntityKind]int {
	all := map[domain.EntityKind]int{
		domain.KindPhase:     len(rec.Phases),
		domain.KindObjective: len(rec.Objectives),
		domain.KindDP:        len(rec.DPs),
		domain.KindTask:      len(rec.Tasks),
	}
	out := make(map[domain.EntityKind]int, len(r.Replaced))
	for _, k := range r.Replaced {
		out[k] = all[k]
	}
	return out
}

// Import applies a workbook to a copy of existing and returns the copy.
// existing is never modified, so a failed import leaves the caller's record
// intact. Lists are replaced wholesale per kind, never merged.
func Import(existing *domain.ProjectRecord, src Source) (*domain.ProjectRecord, *Report, error) {
	if existing == nil {
		return nil, nil, fmt.Errorf("importing workbook: nil record")
	}
	rec := existing.Clone()
	rep := &Report{Skipped: make(map[domain.EntityKind]int)}

	if name, ok := combinedSheet(src); ok {
		sheet, err := src.Sheet(name)
		if err != nil {
			return nil, nil, &IngestError{Sheet: name, Err: err}
		}
		if isCombined(sheet.Headers) {
			rep.Mode = ModeCombined
			rep.Sheets = []string{name}
			extractCombined(rec, sheet, rep)
			return rec, rep, nil
		}
	}

	rep.Mode = ModeMultiSheet
	if err := importMultiSheet(rec, src, rep); err != nil {
		return nil, nil, err
	}
	return rec, rep, nil
}
