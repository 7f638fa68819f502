package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/progress"
	"github.com/coppahp/planner/internal/service"
)

const progressBarWidth = 12

// levels shown on the dashboard, broadest first.
var dashboardLevels = []domain.EntityKind{domain.KindPhase, domain.KindObjective, domain.KindDP}

// FormatProgressOverview renders one card per team: average progress and
// RAG counts for each level, then per-phase bars.
func FormatProgressOverview(ov *service.ProgressOverview) string {
	var b strings.Builder
	b.WriteString(Header(ov.Project) + "\n")
	b.WriteString(Dim(fmt.Sprintf("red < %s  amber < %s  green otherwise",
		Pct(ov.Thresholds.Red), Pct(ov.Thresholds.Amber))) + "\n\n")

	for _, tp := range ov.Teams {
		b.WriteString(FormatTeamProgress(&tp, ov.Thresholds))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTeamProgress renders a single team card.
func FormatTeamProgress(tp *service.TeamProgress, th progress.Thresholds) string {
	rows := make([][]string, 0, len(dashboardLevels))
	for _, kind := range dashboardLevels {
		c := tp.RAG[kind]
		rows = append(rows, []string{
			levelLabel(kind),
			RenderProgress(tp.Average[kind], progressBarWidth, th),
			StyleRed.Render(fmt.Sprint(c.Red)),
			StyleYellow.Render(fmt.Sprint(c.Amber)),
			StyleGreen.Render(fmt.Sprint(c.Green)),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"LEVEL", "AVERAGE", "R", "A", "G"}, rows))

	if len(tp.Result.Phase) > 0 {
		b.WriteString("\n")
		names := make([]string, 0, len(tp.Result.Phase))
		for name := range tp.Result.Phase {
			names = append(names, name)
		}
		slices.Sort(names)
		width := 0
		for _, n := range names {
			width = max(width, len(n))
		}
		for _, n := range names {
			v := tp.Result.Phase[n]
			b.WriteString(fmt.Sprintf("%-*s  %s  %s\n", width, n, RenderProgress(v, progressBarWidth, th), RAGPill(th.Classify(v))))
		}
	}

	return RenderBox(tp.Team, b.String()) + "\n"
}

func levelLabel(kind domain.EntityKind) string {
	switch kind {
	case domain.KindPhase:
		return "Phases"
	case domain.KindObjective:
		return "Objectives"
	case domain.KindDP:
		return "DPs"
	default:
		return string(kind)
	}
}
