package repository

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/coppahp/planner/internal/domain"
)

// Legacy project files spell each field several ways at once. The alias
// lists below are written in full on encode; on decode the first non-blank
// alias wins and anything unrecognised lands in Extra.
var (
	taskNoAliases     = []string{"Task No", "task_no"}
	taskNameAliases   = []string{"Name", "Desc", "description", "Task Name", "desc", "name"}
	dpNoAliases       = []string{"DP No", "dp_no"}
	weightAliases     = []string{"Weight", "weight", "stated", "Stated %"}
	progressAliases   = []string{"Achieved %", "progress", "achieved"}
	typeAliases       = []string{"Type"}
	intangibleAliases = []string{"Intangible"}
	criteriaAliases   = []string{"Criteria", "Criteria of Success"}
	forceAliases      = []string{"Force Group", "Force TG Assigned"}

	nameAliases        = []string{"Name", "name"}
	phaseAliases       = []string{"Phase", "phase"}
	objectiveAliases   = []string{"Objective", "objective"}
	phaseNoAliases     = []string{"Phase No", "phase_no"}
	objectiveNoAliases = []string{"Objective No", "objective_no"}
	dpForceAliases     = []string{"Force Group", "force_group"}
	dpWeightAliases    = []string{"Weight", "weight"}
)

var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

const legacyTimeLayout = "2006-01-02T15:04:05.000000"

type legacyMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Created     string `json:"created"`
	Modified    string `json:"modified"`
}

type legacyFile struct {
	Metadata   legacyMetadata   `json:"metadata"`
	Phases     []map[string]any `json:"phases"`
	Objectives []map[string]any `json:"objectives"`
	DPs        []map[string]any `json:"dps"`
	Tasks      []map[string]any `json:"tasks"`
	KO         map[string]any   `json:"ko"`
	Progress   map[string]any   `json:"progress"`
	Control    map[string]any   `json:"control"`
}

// EncodeLegacy writes rec in the multi-alias layout older dashboards read.
func EncodeLegacy(rec *domain.ProjectRecord) ([]byte, error) {
	f := legacyFile{
		Metadata: legacyMetadata{
			Name:        rec.Metadata.Name,
			Description: rec.Metadata.Description,
			Status:      string(rec.Metadata.Status),
			Created:     formatLegacyTime(rec.Metadata.Created),
			Modified:    formatLegacyTime(rec.Metadata.Modified),
		},
		Phases:     make([]map[string]any, 0, len(rec.Phases)),
		Objectives: make([]map[string]any, 0, len(rec.Objectives)),
		DPs:        make([]map[string]any, 0, len(rec.DPs)),
		Tasks:      make([]map[string]any, 0, len(rec.Tasks)),
		KO:         map[string]any{},
		Progress:   map[string]any{},
		Control:    map[string]any{},
	}

	for _, p := range rec.Phases {
		m := extrasMap(p.Extra)
		m["Name"] = p.Name
		if p.PhaseNo != nil {
			m["Phase No"] = *p.PhaseNo
		}
		f.Phases = append(f.Phases, m)
	}
	for _, o := range rec.Objectives {
		m := extrasMap(o.Extra)
		m["Name"] = o.Name
		m["Phase"] = o.Phase
		if o.ObjectiveNo != nil {
			m["Objective No"] = *o.ObjectiveNo
		}
		f.Objectives = append(f.Objectives, m)
	}
	for _, dp := range rec.DPs {
		m := extrasMap(dp.Extra)
		m["DP No"] = dp.DPNo.String()
		m["Name"] = dp.Name
		m["Objective"] = dp.Objective
		m["Phase"] = dp.Phase
		putIfSet(m, []string{"Weight"}, dp.Weight.String())
		putIfSet(m, []string{"Force Group"}, dp.ForceGroup)
		f.DPs = append(f.DPs, m)
	}
	for _, t := range rec.Tasks {
		m := extrasMap(t.Extra)
		putIfSet(m, taskNoAliases, t.TaskNo.String())
		putIfSet(m, taskNameAliases[:4], t.Name)
		putIfSet(m, dpNoAliases, t.DPNo.String())
		putIfSet(m, weightAliases, t.Weight.String())
		putIfSet(m, progressAliases, t.Progress.String())
		putIfSet(m, typeAliases, string(t.Type))
		putIfSet(m, intangibleAliases, string(t.Intangible))
		putIfSet(m, criteriaAliases, t.Criteria)
		putIfSet(m, forceAliases, t.ForceGroup)
		f.Tasks = append(f.Tasks, m)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding legacy record: %w", err)
	}
	return data, nil
}

// DecodeLegacy reads a legacy project file. Numbers and strings are both
// accepted wherever a value is expected.
func DecodeLegacy(data []byte) (*domain.ProjectRecord, error) {
	var f legacyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding legacy record: %w", err)
	}

	rec := &domain.ProjectRecord{
		Metadata: domain.Metadata{
			Name:        f.Metadata.Name,
			Description: f.Metadata.Description,
			Status:      domain.ProjectStatus(f.Metadata.Status),
			Created:     parseLegacyTime(f.Metadata.Created),
			Modified:    parseLegacyTime(f.Metadata.Modified),
		},
		Phases:     make([]domain.Phase, 0, len(f.Phases)),
		Objectives: make([]domain.Objective, 0, len(f.Objectives)),
		DPs:        make([]domain.DecisivePoint, 0, len(f.DPs)),
		Tasks:      make([]domain.Task, 0, len(f.Tasks)),
	}

	for _, m := range f.Phases {
		a := newAliasReader(m)
		rec.Phases = append(rec.Phases, domain.Phase{
			Name:    a.take(nameAliases),
			PhaseNo: a.takeInt(phaseNoAliases),
			Extra:   a.rest(),
		})
	}
	for _, m := range f.Objectives {
		a := newAliasReader(m)
		rec.Objectives = append(rec.Objectives, domain.Objective{
			Name:        a.take(nameAliases),
			Phase:       a.take(phaseAliases),
			ObjectiveNo: a.takeInt(objectiveNoAliases),
			Extra:       a.rest(),
		})
	}
	for _, m := range f.DPs {
		a := newAliasReader(m)
		rec.DPs = append(rec.DPs, domain.DecisivePoint{
			DPNo:       domain.Number(a.take(dpNoAliases)),
			Name:       a.take(nameAliases),
			Objective:  a.take(objectiveAliases),
			Phase:      a.take(phaseAliases),
			Weight:     domain.Number(a.take(dpWeightAliases)),
			ForceGroup: a.take(dpForceAliases),
			Extra:      a.rest(),
		})
	}
	for _, m := range f.Tasks {
		a := newAliasReader(m)
		rec.Tasks = append(rec.Tasks, domain.Task{
			TaskNo:     domain.Number(a.take(taskNoAliases)),
			Name:       a.take(taskNameAliases),
			DPNo:       domain.Number(a.take(dpNoAliases)),
			Weight:     domain.Number(a.take(weightAliases)),
			Progress:   domain.Number(a.take(progressAliases)),
			Type:       domain.TaskType(a.take(typeAliases)),
			Intangible: domain.IntangibleLevel(a.take(intangibleAliases)),
			Criteria:   a.take(criteriaAliases),
			ForceGroup: a.take(forceAliases),
			Extra:      a.rest(),
		})
	}
	return rec, nil
}

// aliasReader consumes keys from one legacy object.
type aliasReader struct {
	m    map[string]any
	used map[string]bool
}

func newAliasReader(m map[string]any) *aliasReader {
	return &aliasReader{m: m, used: make(map[string]bool)}
}

// take returns the first non-blank alias and marks every alias consumed.
func (a *aliasReader) take(aliases []string) string {
	vals := make([]string, 0, len(aliases))
	for _, k := range aliases {
		v, ok := a.m[k]
		if !ok {
			continue
		}
		a.used[k] = true
		vals = append(vals, legacyString(v))
	}
	return domain.CoalesceTrimmed(vals...)
}

func (a *aliasReader) takeInt(aliases []string) *int {
	s := a.take(aliases)
	if s == "" {
		return nil
	}
	f, ok := domain.Number(s).Parse()
	if !ok || f != float64(int(f)) {
		return nil
	}
	v := int(f)
	return &v
}

// rest returns the unconsumed non-blank keys as strings.
func (a *aliasReader) rest() map[string]string {
	var extra map[string]string
	for k, v := range a.m {
		if a.used[k] {
			continue
		}
		s := legacyString(v)
		if s == "" {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[k] = s
	}
	return extra
}

func legacyString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return domain.FormatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

func extrasMap(extra map[string]string) map[string]any {
	m := make(map[string]any, len(extra)+8)
	for k, v := range maps.All(extra) {
		m[k] = v
	}
	return m
}

func putIfSet(m map[string]any, keys []string, v string) {
	if v == "" {
		return
	}
	for _, k := range keys {
		m[k] = v
	}
}

func formatLegacyTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(legacyTimeLayout)
}

func parseLegacyTime(s string) time.Time {
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
