package domain

import (
	"maps"
	"strings"
	"time"
)

type Phase struct {
	Name    string            `json:"name"`
	PhaseNo *int              `json:"phase_no,omitempty"`
	Extra   map[string]string `json:"extra_fields,omitempty"`
}

// Objective references its Phase by name. The reference is soft: an
// objective may name a phase that does not exist.
type Objective struct {
	Name        string            `json:"name"`
	Phase       string            `json:"phase"`
	ObjectiveNo *int              `json:"objective_no,omitempty"`
	Extra       map[string]string `json:"extra_fields,omitempty"`
}

type DecisivePoint struct {
	DPNo       Number            `json:"dp_no"`
	Name       string            `json:"name"`
	Objective  string            `json:"objective"`
	Phase      string            `json:"phase"`
	Weight     Number            `json:"weight"`
	ForceGroup string            `json:"force_group,omitempty"`
	Extra      map[string]string `json:"extra_fields,omitempty"`
}

type Task struct {
	TaskNo     Number            `json:"task_no,omitempty"`
	Name       string            `json:"name"`
	DPNo       Number            `json:"dp_no"`
	Weight     Number            `json:"weight"`
	Progress   Number            `json:"progress"`
	Type       TaskType          `json:"type,omitempty"`
	Intangible IntangibleLevel   `json:"intangible,omitempty"`
	ForceGroup string            `json:"force_group,omitempty"`
	Criteria   string            `json:"criteria,omitempty"`
	Extra      map[string]string `json:"extra_fields,omitempty"`
}

// Label returns the best human-readable identifier for the task.
func (t Task) Label() string {
	if t.Name != "" {
		return t.Name
	}
	if !t.TaskNo.IsZero() {
		return "Task " + t.TaskNo.Key()
	}
	return "Task"
}

type Metadata struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Created     time.Time     `json:"created"`
	Modified    time.Time     `json:"modified"`
}

// ProjectRecord is one team's complete plan for one project.
type ProjectRecord struct {
	Metadata   Metadata        `json:"metadata"`
	Phases     []Phase         `json:"phases"`
	Objectives []Objective     `json:"objectives"`
	DPs        []DecisivePoint `json:"dps"`
	Tasks      []Task          `json:"tasks"`
}

// NewProjectRecord returns an empty active record named after the project.
func NewProjectRecord(project string, now time.Time) *ProjectRecord {
	return &ProjectRecord{
		Metadata: Metadata{
			Name:     project,
			Status:   ProjectActive,
			Created:  now,
			Modified: now,
		},
		Phases:     []Phase{},
		Objectives: []Objective{},
		DPs:        []DecisivePoint{},
		Tasks:      []Task{},
	}
}

// Clone returns a deep copy; mutating the copy never touches r.
func (r *ProjectRecord) Clone() *ProjectRecord {
	if r == nil {
		return nil
	}
	c := &ProjectRecord{Metadata: r.Metadata}

	c.Phases = make([]Phase, len(r.Phases))
	for i, p := range r.Phases {
		p.PhaseNo = cloneInt(p.PhaseNo)
		p.Extra = maps.Clone(p.Extra)
		c.Phases[i] = p
	}
	c.Objectives = make([]Objective, len(r.Objectives))
	for i, o := range r.Objectives {
		o.ObjectiveNo = cloneInt(o.ObjectiveNo)
		o.Extra = maps.Clone(o.Extra)
		c.Objectives[i] = o
	}
	c.DPs = make([]DecisivePoint, len(r.DPs))
	for i, dp := range r.DPs {
		dp.Extra = maps.Clone(dp.Extra)
		c.DPs[i] = dp
	}
	c.Tasks = make([]Task, len(r.Tasks))
	for i, t := range r.Tasks {
		t.Extra = maps.Clone(t.Extra)
		c.Tasks[i] = t
	}
	return c
}

// TasksForDP returns the indexes of tasks whose DP number matches dpNo.
// A blank dpNo matches nothing.
func (r *ProjectRecord) TasksForDP(dpNo string) []int {
	if strings.TrimSpace(dpNo) == "" {
		return nil
	}
	var idx []int
	for i, t := range r.Tasks {
		if SameKey(t.DPNo.Key(), dpNo) {
			idx = append(idx, i)
		}
	}
	return idx
}

// ObjectivePhases maps objective name to phase name. Duplicate names keep
// the last phase seen.
func (r *ProjectRecord) ObjectivePhases() map[string]string {
	m := make(map[string]string, len(r.Objectives))
	for _, o := range r.Objectives {
		m[o.Name] = o.Phase
	}
	return m
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
