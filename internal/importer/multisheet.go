package importer

import (
	"slices"
	"strings"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/workbook"
)

// findSheet matches a kind's accepted sheet names case-insensitively.
func findSheet(src Source, kind domain.EntityKind) (string, bool) {
	for _, want := range sheetNames[kind] {
		for _, have := range src.SheetNames() {
			if strings.EqualFold(strings.TrimSpace(have), want) {
				return have, true
			}
		}
	}
	return "", false
}

// importMultiSheet replaces each kind whose sheet is present and leaves the
// rest of the record alone.
func importMultiSheet(rec *domain.ProjectRecord, src Source, rep *Report) error {
	sheets := make(map[domain.EntityKind]*workbook.Sheet)
	for _, kind := range domain.EntityKinds {
		name, ok := findSheet(src, kind)
		if !ok {
			continue
		}
		sheet, err := src.Sheet(name)
		if err != nil {
			return &IngestError{Sheet: name, Err: err}
		}
		sheets[kind] = sheet
		rep.Sheets = append(rep.Sheets, name)
	}

	if s, ok := sheets[domain.KindPhase]; ok {
		rec.Phases = normalizeRows(s, domain.KindPhase, rep, (*Normalizer).Phase, nil)
		rep.Replaced = append(rep.Replaced, domain.KindPhase)
	}
	if s, ok := sheets[domain.KindObjective]; ok {
		rec.Objectives = normalizeRows(s, domain.KindObjective, rep, (*Normalizer).Objective, nil)
		rep.Replaced = append(rep.Replaced, domain.KindObjective)
	}

	lookup := rec.ObjectivePhases()
	if s, ok := sheets[domain.KindDP]; ok {
		rec.DPs = normalizeRows(s, domain.KindDP, rep, (*Normalizer).DP, lookup)
		rep.Replaced = append(rep.Replaced, domain.KindDP)
	} else if slices.Contains(rep.Replaced, domain.KindObjective) {
		n := NewNormalizer(lookup)
		for i := range rec.DPs {
			n.backfillPhase(&rec.DPs[i])
		}
	}
	if s, ok := sheets[domain.KindTask]; ok {
		rec.Tasks = normalizeRows(s, domain.KindTask, rep, (*Normalizer).Task, nil)
		rep.Replaced = append(rep.Replaced, domain.KindTask)
	}
	return nil
}

func normalizeRows[T any](
	sheet *workbook.Sheet,
	kind domain.EntityKind,
	rep *Report,
	normalize func(*Normalizer, []workbook.Cell, *Mapping) (T, bool),
	objectivePhase map[string]string,
) []T {
	m := Resolve(sheet.Headers, kind)
	n := NewNormalizer(objectivePhase)

	out := []T{}
	for _, row := range sheet.Rows {
		if blankRow(row) {
			continue
		}
		v, ok := normalize(n, row, m)
		if !ok {
			rep.Skipped[kind]++
			continue
		}
		out = append(out, v)
	}
	return out
}
