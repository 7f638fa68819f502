package formatter

import "github.com/coppahp/planner/internal/domain"

// FormatWeights lists KO weights beside their tasks.
func FormatWeights(tasks []domain.Task, weights []float64) string {
	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		w := Dim("--")
		if i < len(weights) {
			w = domain.FormatFloat(weights[i])
		}
		rows = append(rows, []string{Or(t.TaskNo.Key()), Bold(t.Label()), w})
	}
	return RenderTable([]string{"NO", "TASK", "WEIGHT"}, rows)
}
