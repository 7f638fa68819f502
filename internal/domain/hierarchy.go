package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckDPNo returns a *DuplicateDPError when dpNo is already used by a DP
// in the record. Blank numbers are rejected as well.
func (r *ProjectRecord) CheckDPNo(dpNo string) error {
	key := strings.TrimSpace(dpNo)
	if key == "" {
		return fmt.Errorf("DP number is required")
	}
	for _, dp := range r.DPs {
		if dp.DPNo.Key() == key {
			return &DuplicateDPError{DPNo: key}
		}
	}
	return nil
}

// SuggestDPNo returns the smallest positive integer not yet used as a DP
// number. Non-integer DP numbers are ignored.
func (r *ProjectRecord) SuggestDPNo() int {
	used := make(map[int]bool, len(r.DPs))
	for _, dp := range r.DPs {
		if n, err := strconv.Atoi(dp.DPNo.Key()); err == nil {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return n
}

func (r *ProjectRecord) AddPhase(p Phase) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("phase name is required")
	}
	for _, existing := range r.Phases {
		if existing.Name == p.Name {
			return fmt.Errorf("phase %q already exists", p.Name)
		}
	}
	r.Phases = append(r.Phases, p)
	return nil
}

func (r *ProjectRecord) AddObjective(o Objective) error {
	o.Name = strings.TrimSpace(o.Name)
	if o.Name == "" {
		return fmt.Errorf("objective name is required")
	}
	r.Objectives = append(r.Objectives, o)
	return nil
}

// AddDP enforces DP number uniqueness within the record.
func (r *ProjectRecord) AddDP(dp DecisivePoint) error {
	if strings.TrimSpace(dp.Name) == "" {
		return fmt.Errorf("DP name is required")
	}
	if err := r.CheckDPNo(dp.DPNo.Key()); err != nil {
		return err
	}
	dp.DPNo = Number(dp.DPNo.Key())
	r.DPs = append(r.DPs, dp)
	return nil
}

func (r *ProjectRecord) AddTask(t Task) error {
	if strings.TrimSpace(t.Name) == "" && t.TaskNo.IsZero() {
		return fmt.Errorf("task name or number is required")
	}
	if t.Type == TaskTangible && t.Intangible == "" {
		t.Intangible = IntangibleNil
	}
	if t.Type == TaskIntangible && t.Intangible == "" {
		t.Intangible = IntangiblePartial
	}
	r.Tasks = append(r.Tasks, t)
	return nil
}

// DeletePhase removes the phase and cascades to its objectives.
func (r *ProjectRecord) DeletePhase(name string) error {
	kept := r.Phases[:0:0]
	found := false
	for _, p := range r.Phases {
		if SameKey(p.Name, name) {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("phase %q: %w", name, ErrNotFound)
	}
	r.Phases = kept

	var doomed []string
	for _, o := range r.Objectives {
		if SameKey(o.Phase, name) {
			doomed = append(doomed, o.Name)
		}
	}
	for _, o := range doomed {
		_ = r.DeleteObjective(o)
	}
	return nil
}

// DeleteObjective removes the objective and cascades to its DPs.
func (r *ProjectRecord) DeleteObjective(name string) error {
	kept := r.Objectives[:0:0]
	found := false
	for _, o := range r.Objectives {
		if SameKey(o.Name, name) {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return fmt.Errorf("objective %q: %w", name, ErrNotFound)
	}
	r.Objectives = kept

	// DPs go by position: unnumbered DPs under other objectives share the
	// blank key and must survive.
	dps := r.DPs[:0:0]
	for _, dp := range r.DPs {
		if SameKey(dp.Objective, name) {
			r.dropTasksFor(dp.DPNo.Key())
			continue
		}
		dps = append(dps, dp)
	}
	r.DPs = dps
	return nil
}

// DeleteDP removes the DP and every task that references it. Blank numbers
// identify no DP.
func (r *ProjectRecord) DeleteDP(dpNo string) error {
	if strings.TrimSpace(dpNo) == "" {
		return fmt.Errorf("DP number is required")
	}
	kept := r.DPs[:0:0]
	found := false
	for _, dp := range r.DPs {
		if SameKey(dp.DPNo.Key(), dpNo) {
			found = true
			continue
		}
		kept = append(kept, dp)
	}
	if !found {
		return fmt.Errorf("DP %s: %w", dpNo, ErrNotFound)
	}
	r.DPs = kept
	r.dropTasksFor(dpNo)
	return nil
}

// dropTasksFor removes the tasks filed under dpNo. Tasks without a DP
// number belong to no DP and are left alone.
func (r *ProjectRecord) dropTasksFor(dpNo string) {
	if strings.TrimSpace(dpNo) == "" {
		return
	}
	tasks := r.Tasks[:0:0]
	for _, t := range r.Tasks {
		if !SameKey(t.DPNo.Key(), dpNo) {
			tasks = append(tasks, t)
		}
	}
	r.Tasks = tasks
}

// FindTask locates a task by task number, falling back to an exact name
// match. It returns -1 when nothing matches.
func (r *ProjectRecord) FindTask(ref string) int {
	for i, t := range r.Tasks {
		if !t.TaskNo.IsZero() && SameKey(t.TaskNo.Key(), ref) {
			return i
		}
	}
	for i, t := range r.Tasks {
		if SameKey(t.Name, ref) {
			return i
		}
	}
	return -1
}

// DeleteTask removes the task located by FindTask.
func (r *ProjectRecord) DeleteTask(ref string) error {
	i := r.FindTask(ref)
	if i < 0 {
		return fmt.Errorf("task %q: %w", ref, ErrNotFound)
	}
	r.Tasks = append(r.Tasks[:i:i], r.Tasks[i+1:]...)
	return nil
}
