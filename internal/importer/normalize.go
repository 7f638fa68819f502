package importer

import (
	"strings"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/workbook"
)

var (
	tangibleTokens   = []string{"T", "TANGIBLE", "TAN"}
	intangibleTokens = []string{"I", "IN", "INTANGIBLE", "INT"}
)

// NormalizeTaskType maps a free-text Type cell to T or I. The value is
// uppercased and checked for any tangible token as a substring, then any
// intangible token; tangible is checked first. Unmatched values come back
// uppercased with ok=false and no intangible level.
func NormalizeTaskType(raw string) (domain.TaskType, domain.IntangibleLevel, bool) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" {
		return "", "", false
	}
	for _, tok := range tangibleTokens {
		if strings.Contains(v, tok) {
			return domain.TaskTangible, domain.IntangibleNil, true
		}
	}
	for _, tok := range intangibleTokens {
		if strings.Contains(v, tok) {
			return domain.TaskIntangible, domain.IntangiblePartial, true
		}
	}
	return domain.TaskType(v), "", false
}

// Normalizer converts resolved rows into canonical records. The objective
// to phase lookup backfills DPs that carry an Objective but no Phase.
type Normalizer struct {
	objectivePhase map[string]string
}

// NewNormalizer takes the objective name to phase name lookup, which may
// be nil.
func NewNormalizer(objectivePhase map[string]string) *Normalizer {
	return &Normalizer{objectivePhase: objectivePhase}
}

func (n *Normalizer) Phase(row []workbook.Cell, m *Mapping) (domain.Phase, bool) {
	name := m.Value(row, FieldName)
	if name == "" {
		return domain.Phase{}, false
	}
	return domain.Phase{
		Name:    name,
		PhaseNo: parseOptionalInt(m.Value(row, FieldPhaseNo)),
		Extra:   m.Extras(row),
	}, true
}

func (n *Normalizer) Objective(row []workbook.Cell, m *Mapping) (domain.Objective, bool) {
	name := m.Value(row, FieldName)
	if name == "" {
		return domain.Objective{}, false
	}
	return domain.Objective{
		Name:        name,
		Phase:       m.Value(row, FieldPhase),
		ObjectiveNo: parseOptionalInt(m.Value(row, FieldObjectiveNo)),
		Extra:       m.Extras(row),
	}, true
}

func (n *Normalizer) DP(row []workbook.Cell, m *Mapping) (domain.DecisivePoint, bool) {
	name := m.Value(row, FieldName)
	if name == "" {
		return domain.DecisivePoint{}, false
	}
	dp := domain.DecisivePoint{
		DPNo:       domain.Number(m.Value(row, FieldDPNo)),
		Name:       name,
		Objective:  m.Value(row, FieldObjective),
		Phase:      m.Value(row, FieldPhase),
		Weight:     domain.Number(m.Value(row, FieldWeight)),
		ForceGroup: m.Value(row, FieldForceGroup),
		Extra:      m.Extras(row),
	}
	n.backfillPhase(&dp)
	return dp, true
}

func (n *Normalizer) Task(row []workbook.Cell, m *Mapping) (domain.Task, bool) {
	t := domain.Task{
		TaskNo:     domain.Number(m.Value(row, FieldTaskNo)),
		Name:       m.Value(row, FieldName),
		DPNo:       domain.Number(m.Value(row, FieldDPNo)),
		Weight:     domain.Number(m.Value(row, FieldWeight)),
		Progress:   domain.Number(m.Value(row, FieldProgress)),
		Criteria:   m.Value(row, FieldCriteria),
		ForceGroup: m.Value(row, FieldForceGroup),
		Extra:      m.Extras(row),
	}
	if t.Name == "" && t.TaskNo.IsZero() {
		return domain.Task{}, false
	}

	if raw := m.Value(row, FieldType); raw != "" {
		t.Type, t.Intangible, _ = NormalizeTaskType(raw)
	}
	if t.Type == domain.TaskIntangible {
		if level, ok := domain.ParseIntangibleLevel(m.Value(row, FieldIntangible)); ok {
			t.Intangible = level
		}
	}

	inferNumericExtras(&t)
	return t, true
}

func (n *Normalizer) backfillPhase(dp *domain.DecisivePoint) {
	if dp.Phase != "" || dp.Objective == "" || n.objectivePhase == nil {
		return
	}
	dp.Phase = n.objectivePhase[dp.Objective]
}

var (
	weightHints   = []string{"weight", "wt", "importance"}
	progressHints = []string{"progress", "achieve", "complete", "done", "%", "status"}
)

// inferNumericExtras fills Weight or Progress from a numeric pass-through
// column whose header hints at it. The extra itself is left in place.
func inferNumericExtras(t *domain.Task) {
	for header, v := range t.Extra {
		if !looksNumeric(v) {
			continue
		}
		h := strings.ToLower(header)
		if t.Weight.IsZero() && containsAny(h, weightHints) {
			t.Weight = domain.Number(v)
			continue
		}
		if t.Progress.IsZero() && containsAny(h, progressHints) {
			t.Progress = domain.Number(v)
		}
	}
}

func looksNumeric(v string) bool {
	s := strings.NewReplacer(".", "", "%", "").Replace(v)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func parseOptionalInt(s string) *int {
	f, ok := domain.Number(s).Parse()
	if !ok || f != float64(int(f)) {
		return nil
	}
	v := int(f)
	return &v
}
