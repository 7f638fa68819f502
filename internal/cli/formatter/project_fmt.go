package formatter

import (
	"strings"

	"github.com/coppahp/planner/internal/config"
	"github.com/coppahp/planner/internal/repository"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []repository.ProjectSummary) string {
	headers := []string{"NAME", "FORCES", "STATUS", "MODIFIED"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		teams := make([]string, len(p.Teams))
		for i, t := range p.Teams {
			teams[i] = ForceBadge(t)
		}
		rows = append(rows, []string{
			Bold(p.Name),
			Or(strings.Join(teams, Dim(", "))),
			StatusPill(p.Status),
			HumanTimestamp(p.Modified),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatForceList renders the roster; default forces are marked.
func FormatForceList(r config.ForceRoster) string {
	var b strings.Builder
	for _, f := range r.Forces {
		b.WriteString(StyleDim.Render("● ") + ForceBadge(f))
		for _, d := range config.DefaultForces {
			if d == f {
				b.WriteString(Dim("  (default)"))
			}
		}
		b.WriteString("\n")
	}
	return RenderBox("Forces", b.String())
}
