// Package progress computes completion percentages over a project record.
// Everything here is pure: results are recomputed from the record on every
// call and nothing is cached.
package progress

import (
	"strings"

	"github.com/coppahp/planner/internal/domain"
)

// Result holds completion percentages keyed by DP number, objective name
// and phase name. Keys are trimmed.
type Result struct {
	DP        map[string]float64 `json:"dp"`
	Objective map[string]float64 `json:"objective"`
	Phase     map[string]float64 `json:"phase"`
}

// Compute rolls task progress up to DPs, DPs up to objectives and
// objectives up to phases. A parent with no children scores 0. Dangling
// references contribute nothing and never fail.
func Compute(rec *domain.ProjectRecord) Result {
	res := Result{
		DP:        make(map[string]float64, len(rec.DPs)),
		Objective: make(map[string]float64, len(rec.Objectives)),
		Phase:     make(map[string]float64, len(rec.Phases)),
	}

	for _, dp := range rec.DPs {
		key := dp.DPNo.Key()
		if key == "" {
			// Tasks without a DP number are orphans, not children of an
			// unnumbered DP.
			res.DP[key] = 0
			continue
		}
		var values []float64
		for _, t := range rec.Tasks {
			if t.DPNo.Key() == key {
				values = append(values, EffectiveProgress(t))
			}
		}
		res.DP[key] = mean(values)
	}

	for _, o := range rec.Objectives {
		name := strings.TrimSpace(o.Name)
		var values []float64
		for _, dp := range rec.DPs {
			if strings.TrimSpace(dp.Objective) == name {
				values = append(values, res.DP[dp.DPNo.Key()])
			}
		}
		res.Objective[name] = mean(values)
	}

	for _, p := range rec.Phases {
		name := strings.TrimSpace(p.Name)
		var values []float64
		for _, o := range rec.Objectives {
			if strings.TrimSpace(o.Phase) == name {
				values = append(values, res.Objective[strings.TrimSpace(o.Name)])
			}
		}
		res.Phase[name] = mean(values)
	}

	return res
}

// EffectiveProgress applies the intangible assessment to a task's stored
// progress: complete counts as 100, partial is floored at 50, anything else
// is taken as stored. Unparseable progress counts as 0.
func EffectiveProgress(t domain.Task) float64 {
	stored := t.Progress.Float()
	switch t.Intangible {
	case domain.IntangibleComplete:
		return 100
	case domain.IntangiblePartial:
		return max(stored, 50)
	default:
		return stored
	}
}

// Average is the mean of a level's values, 0 when empty.
func Average(values map[string]float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
