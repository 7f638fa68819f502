package formatter

import (
	"fmt"
	"strings"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/progress"
)

const unassigned = "Unassigned"

type planNode struct {
	item     TreeItem
	children []*planNode
}

func flattenPlan(nodes []*planNode, level int, out []TreeItem) []TreeItem {
	for i, n := range nodes {
		n.item.Level = level
		n.item.IsLast = i == len(nodes)-1
		out = append(out, n.item)
		out = flattenPlan(n.children, level+1, out)
	}
	return out
}

// FormatPlanTree renders a team's plan as Phase > Objective > DP > Task
// with a progress badge on every line. Entities whose parent is missing
// are collected under "Unassigned".
func FormatPlanTree(rec *domain.ProjectRecord, team string, th progress.Thresholds) string {
	res := progress.Compute(rec)
	badge := func(v float64) string {
		return RAGColor(th.Classify(v)).Render(fmt.Sprintf("%6s", Pct(v)))
	}

	phaseNames := make(map[string]bool, len(rec.Phases))
	for _, p := range rec.Phases {
		phaseNames[strings.TrimSpace(p.Name)] = true
	}
	objectiveNames := make(map[string]bool, len(rec.Objectives))
	for _, o := range rec.Objectives {
		objectiveNames[strings.TrimSpace(o.Name)] = true
	}
	dpNos := make(map[string]bool, len(rec.DPs))
	for _, dp := range rec.DPs {
		dpNos[dp.DPNo.Key()] = true
	}

	taskNodes := func(dpNo string) []*planNode {
		var nodes []*planNode
		for _, i := range rec.TasksForDP(dpNo) {
			nodes = append(nodes, taskNode(rec.Tasks[i], badge))
		}
		return nodes
	}
	dpNode := func(dp domain.DecisivePoint) *planNode {
		v := res.DP[dp.DPNo.Key()]
		return &planNode{
			item:     TreeItem{Title: fmt.Sprintf("DP %s  %s", dp.DPNo.Key(), dp.Name), Done: v >= 100, Detail: badge(v)},
			children: taskNodes(dp.DPNo.Key()),
		}
	}
	objectiveNode := func(o domain.Objective) *planNode {
		name := strings.TrimSpace(o.Name)
		n := &planNode{item: TreeItem{Title: o.Name, Done: res.Objective[name] >= 100, Detail: badge(res.Objective[name])}}
		for _, dp := range rec.DPs {
			if strings.TrimSpace(dp.Objective) == name {
				n.children = append(n.children, dpNode(dp))
			}
		}
		return n
	}

	var phases []*planNode
	for _, p := range rec.Phases {
		name := strings.TrimSpace(p.Name)
		n := &planNode{item: TreeItem{Title: StyleHeader.Render(p.Name), Detail: badge(res.Phase[name])}}
		for _, o := range rec.Objectives {
			if strings.TrimSpace(o.Phase) == name {
				n.children = append(n.children, objectiveNode(o))
			}
		}
		phases = append(phases, n)
	}

	orphans := &planNode{item: TreeItem{Title: Dim(unassigned)}}
	for _, o := range rec.Objectives {
		if !phaseNames[strings.TrimSpace(o.Phase)] {
			orphans.children = append(orphans.children, objectiveNode(o))
		}
	}
	for _, dp := range rec.DPs {
		if !objectiveNames[strings.TrimSpace(dp.Objective)] {
			orphans.children = append(orphans.children, dpNode(dp))
		}
	}
	for _, t := range rec.Tasks {
		if !dpNos[t.DPNo.Key()] {
			orphans.children = append(orphans.children, taskNode(t, badge))
		}
	}
	if len(orphans.children) > 0 {
		phases = append(phases, orphans)
	}

	root := &planNode{
		item:     TreeItem{Title: fmt.Sprintf("%s  %s", rec.Metadata.Name, ForceBadge(team))},
		children: phases,
	}
	if len(phases) == 0 {
		return RenderTree(flattenPlan([]*planNode{root}, 0, nil)) + Dim("  (empty plan)") + "\n"
	}
	return RenderTree(flattenPlan([]*planNode{root}, 0, nil))
}

func taskNode(t domain.Task, badge func(float64) string) *planNode {
	v := progress.EffectiveProgress(t)
	title := t.Label()
	if !t.TaskNo.IsZero() && t.Name != "" {
		title = t.TaskNo.Key() + ". " + t.Name
	}
	if t.Type == domain.TaskIntangible {
		title += " " + StylePurple.Render("["+string(t.Intangible)+"]")
	}
	return &planNode{item: TreeItem{Title: title, Done: v >= 100, Detail: badge(v)}}
}

// FormatPhases renders the phase list.
func FormatPhases(rec *domain.ProjectRecord) string {
	res := progress.Compute(rec)
	rows := make([][]string, 0, len(rec.Phases))
	for _, p := range rec.Phases {
		no := "--"
		if p.PhaseNo != nil {
			no = fmt.Sprint(*p.PhaseNo)
		}
		rows = append(rows, []string{no, Bold(p.Name), Pct(res.Phase[strings.TrimSpace(p.Name)])})
	}
	return RenderTable([]string{"NO", "PHASE", "PROGRESS"}, rows)
}

func FormatObjectives(rec *domain.ProjectRecord) string {
	res := progress.Compute(rec)
	rows := make([][]string, 0, len(rec.Objectives))
	for _, o := range rec.Objectives {
		no := "--"
		if o.ObjectiveNo != nil {
			no = fmt.Sprint(*o.ObjectiveNo)
		}
		rows = append(rows, []string{no, Bold(o.Name), Or(o.Phase), Pct(res.Objective[strings.TrimSpace(o.Name)])})
	}
	return RenderTable([]string{"NO", "OBJECTIVE", "PHASE", "PROGRESS"}, rows)
}

func FormatDPs(rec *domain.ProjectRecord, th progress.Thresholds) string {
	res := progress.Compute(rec)
	rows := make([][]string, 0, len(rec.DPs))
	for _, dp := range rec.DPs {
		v := res.DP[dp.DPNo.Key()]
		rows = append(rows, []string{
			dp.DPNo.Key(),
			Bold(dp.Name),
			Or(dp.Objective),
			Or(dp.Phase),
			Or(dp.Weight.String()),
			Or(dp.ForceGroup),
			RAGColor(th.Classify(v)).Render(Pct(v)),
		})
	}
	return RenderTable([]string{"DP", "NAME", "OBJECTIVE", "PHASE", "WEIGHT", "FORCE GROUP", "PROGRESS"}, rows)
}

func FormatTasks(rec *domain.ProjectRecord, th progress.Thresholds) string {
	rows := make([][]string, 0, len(rec.Tasks))
	for _, t := range rec.Tasks {
		v := progress.EffectiveProgress(t)
		level := ""
		if t.Type == domain.TaskIntangible {
			level = string(t.Intangible)
		}
		rows = append(rows, []string{
			Or(t.TaskNo.Key()),
			Bold(t.Label()),
			Or(t.DPNo.Key()),
			string(t.Type),
			Or(level),
			Or(t.Weight.String()),
			RAGColor(th.Classify(v)).Render(Pct(v)),
		})
	}
	return RenderTable([]string{"NO", "TASK", "DP", "TYPE", "LEVEL", "WEIGHT", "PROGRESS"}, rows)
}
