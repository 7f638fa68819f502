package formatter

import (
	"fmt"
	"strings"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/repository"
	"github.com/coppahp/planner/internal/service"
)

// FormatImportResult summarises an import: mode, replaced lists with
// their sizes, skipped rows and lint warnings. The diff is rendered
// separately by FormatDiff.
func FormatImportResult(res *service.ImportResult) string {
	var b strings.Builder

	mode := StyleBlue.Render(string(res.Mode))
	if res.BatchID == "" {
		mode += "  " + StyleYellowBold.Render("DRY RUN")
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("MODE  "), mode))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SHEETS"), Or(strings.Join(res.Sheets, ", "))))
	if res.BatchID != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("BATCH "), Dim(res.BatchID)))
	}
	b.WriteString("\n")

	if len(res.Replaced) == 0 {
		b.WriteString(Dim("No recognised sheets; nothing replaced.") + "\n")
	} else {
		rows := make([][]string, 0, len(res.Replaced))
		for _, kind := range domain.EntityKinds {
			if !replaced(res.Replaced, kind) {
				continue
			}
			skipped := Dim("0")
			if n := res.Skipped[kind]; n > 0 {
				skipped = StyleYellow.Render(fmt.Sprint(n))
			}
			rows = append(rows, []string{levelName(kind), fmt.Sprint(res.Counts[kind]), skipped})
		}
		b.WriteString(RenderTable([]string{"LIST", "ROWS", "SKIPPED"}, rows))
	}

	if len(res.Warnings) > 0 {
		b.WriteString("\n" + StyleYellowBold.Render(fmt.Sprintf("%d warning(s)", len(res.Warnings))) + "\n")
		for _, w := range res.Warnings {
			b.WriteString(StyleYellow.Render("  ▲ ") + w.Error() + "\n")
		}
	}

	return RenderBox("Import", b.String())
}

func replaced(kinds []domain.EntityKind, k domain.EntityKind) bool {
	for _, r := range kinds {
		if r == k {
			return true
		}
	}
	return false
}

func levelName(kind domain.EntityKind) string {
	if kind == domain.KindTask {
		return "Tasks"
	}
	return levelLabel(kind)
}

// FormatDiff colours a unified diff line by line.
func FormatDiff(diff string) string {
	if diff == "" {
		return Dim("No changes.") + "\n"
	}
	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		trimmed := strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(Bold(trimmed))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(StyleBlue.Render(trimmed))
		case strings.HasPrefix(line, "+"):
			b.WriteString(StyleGreen.Render(trimmed))
		case strings.HasPrefix(line, "-"):
			b.WriteString(StyleRed.Render(trimmed))
		default:
			b.WriteString(trimmed)
		}
		if strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatImportHistory lists journal entries newest first.
func FormatImportHistory(batches []repository.ImportBatch) string {
	rows := make([][]string, 0, len(batches))
	for i := len(batches) - 1; i >= 0; i-- {
		ib := batches[i]
		kinds := make([]string, len(ib.Replaced))
		for j, k := range ib.Replaced {
			kinds[j] = string(k)
		}
		id := ib.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, []string{
			Dim(id),
			HumanTimestamp(ib.CreatedAt),
			Or(ib.Source),
			ib.Mode,
			strings.Join(kinds, ", "),
		})
	}
	return RenderTable([]string{"BATCH", "WHEN", "SOURCE", "MODE", "REPLACED"}, rows)
}
