package importer

import (
	"fmt"

	"github.com/coppahp/planner/internal/domain"
)

// LintRecord lists the soft problems in an imported record: duplicate DP
// numbers, dangling references and numeric cells that do not parse. None of
// them block an import; they are reported so the user can fix the sheet.
func LintRecord(rec *domain.ProjectRecord) []error {
	var errs []error

	phases := make(map[string]bool, len(rec.Phases))
	for _, p := range rec.Phases {
		phases[p.Name] = true
	}
	objectives := make(map[string]bool, len(rec.Objectives))
	for _, o := range rec.Objectives {
		objectives[o.Name] = true
		if o.Phase != "" && !phases[o.Phase] {
			errs = append(errs, fmt.Errorf("objective %q: phase %q not found", o.Name, o.Phase))
		}
	}

	dpNos := make(map[string]bool, len(rec.DPs))
	for _, dp := range rec.DPs {
		key := dp.DPNo.Key()
		if key != "" {
			if dpNos[key] {
				errs = append(errs, fmt.Errorf("dp %q: %w", dp.Name, &domain.DuplicateDPError{DPNo: key}))
			}
			dpNos[key] = true
		}
		if dp.Objective != "" && !objectives[dp.Objective] {
			errs = append(errs, fmt.Errorf("dp %s: objective %q not found", key, dp.Objective))
		}
		if !dp.Weight.IsZero() {
			if _, ok := dp.Weight.Parse(); !ok {
				errs = append(errs, fmt.Errorf("dp %s: weight %q is not a number", key, dp.Weight))
			}
		}
	}

	for _, t := range rec.Tasks {
		if !t.DPNo.IsZero() && !dpNos[t.DPNo.Key()] {
			errs = append(errs, fmt.Errorf("task %q: dp %s not found", t.Label(), t.DPNo.Key()))
		}
		for field, n := range map[string]domain.Number{"weight": t.Weight, "progress": t.Progress} {
			if n.IsZero() {
				continue
			}
			if _, ok := n.Parse(); !ok {
				errs = append(errs, fmt.Errorf("task %q: %s %q is not a number", t.Label(), field, n))
			}
		}
	}
	return errs
}
