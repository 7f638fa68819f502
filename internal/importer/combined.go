package importer

import (
	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/workbook"
)

// combinedSheet picks the sheet to inspect for the combined layout: the one
// named "Sheet1" if present, otherwise the only sheet.
func combinedSheet(src Source) (string, bool) {
	names := src.SheetNames()
	for _, n := range names {
		if n == "Sheet1" {
			return n, true
		}
	}
	if len(names) == 1 {
		return names[0], true
	}
	return "", false
}

// isCombined reports whether any header signals the combined layout.
func isCombined(headers []string) bool {
	m := ResolveTable(headers, combinedSignals)
	return len(m.columns) > 0
}

type dpProjection struct {
	dpNo, objective, phase, name, forceGroup, weight string
}

type objectivePair struct {
	name, phase string
}

// extractCombined rebuilds all four lists from one denormalized sheet.
// Duplicates are removed on exact trimmed tuples, so two rows that differ
// only in Force Group text yield two DPs. Objectives need both an
// objective and a phase on the row.
func extractCombined(rec *domain.ProjectRecord, sheet *workbook.Sheet, rep *Report) {
	m := ResolveTable(sheet.Headers, combinedTable)
	dpWeight := FieldWeight
	if !m.Has(FieldWeight) {
		dpWeight = FieldDPWeight
	}

	phases := []domain.Phase{}
	objectives := []domain.Objective{}
	dps := []domain.DecisivePoint{}
	tasks := []domain.Task{}

	seenPhase := make(map[string]bool)
	seenObjective := make(map[objectivePair]bool)
	seenDP := make(map[dpProjection]bool)

	for _, row := range sheet.Rows {
		if blankRow(row) {
			continue
		}

		phase := m.Value(row, FieldPhase)
		if phase != "" && !seenPhase[phase] {
			seenPhase[phase] = true
			phases = append(phases, domain.Phase{Name: phase})
		}

		obj := objectivePair{name: m.Value(row, FieldObjective), phase: phase}
		if obj.name != "" && obj.phase != "" && !seenObjective[obj] {
			seenObjective[obj] = true
			objectives = append(objectives, domain.Objective{Name: obj.name, Phase: obj.phase})
		}

		dp := dpProjection{
			dpNo:       m.Value(row, FieldDPNo),
			objective:  obj.name,
			phase:      phase,
			name:       m.Value(row, FieldDPName),
			forceGroup: m.Value(row, FieldForceGroup),
			weight:     m.Value(row, dpWeight),
		}
		if (dp.dpNo != "" || dp.name != "") && !seenDP[dp] {
			seenDP[dp] = true
			dps = append(dps, domain.DecisivePoint{
				DPNo:       domain.Number(dp.dpNo),
				Name:       dp.name,
				Objective:  dp.objective,
				Phase:      dp.phase,
				Weight:     domain.Number(dp.weight),
				ForceGroup: dp.forceGroup,
			})
		}

		task, ok := combinedTask(row, m)
		if !ok {
			rep.Skipped[domain.KindTask]++
			continue
		}
		tasks = append(tasks, task)
	}

	rec.Phases = phases
	rec.Objectives = objectives
	rec.DPs = dps
	rec.Tasks = tasks
	rep.Replaced = append(rep.Replaced, domain.EntityKinds...)
}

func combinedTask(row []workbook.Cell, m *Mapping) (domain.Task, bool) {
	t := domain.Task{
		TaskNo:     domain.Number(m.Value(row, FieldTaskNo)),
		Name:       m.Value(row, FieldTaskName),
		DPNo:       domain.Number(m.Value(row, FieldDPNo)),
		Weight:     domain.Number(m.Value(row, FieldWeight)),
		Criteria:   m.Value(row, FieldCriteria),
		ForceGroup: m.Value(row, FieldForceGroup),
		Extra:      m.Extras(row),
	}
	if t.TaskNo.IsZero() && t.Name == "" {
		return domain.Task{}, false
	}
	if raw := m.Value(row, FieldType); raw != "" {
		t.Type, t.Intangible, _ = NormalizeTaskType(raw)
	}
	return t, true
}

func blankRow(row []workbook.Cell) bool {
	for _, c := range row {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}
