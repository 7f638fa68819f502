package formatter

import (
	"fmt"
	"strings"

	"github.com/coppahp/planner/internal/progress"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% for a percentage in
// 0-100. The bar takes the RAG colour the thresholds assign to the value.
func RenderProgress(pct float64, width int, t progress.Thresholds) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := min(int(pct/100*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	return fmt.Sprintf("[%s] %3.0f%%", RAGColor(t.Classify(pct)).Render(bar), pct)
}

// RenderCompactBar renders the bar alone with no brackets or label. A
// dimmed bar ignores the RAG colour.
func RenderCompactBar(pct float64, width int, t progress.Thresholds, dim bool) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := min(int(pct/100*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if dim {
		return StyleDim.Render(bar)
	}
	return RAGColor(t.Classify(pct)).Render(bar)
}
