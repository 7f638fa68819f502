package formatter

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/coppahp/planner/internal/domain"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + strings.TrimRight(content, "\n"))
	}
	return boxStyle.Render(strings.TrimRight(content, "\n"))
}

// HumanTimestamp describes when a record was last saved: relative within
// the last day, otherwise the date. A zero time renders as "--".
func HumanTimestamp(t time.Time) string {
	return humanTimestampAt(t, time.Now())
}

func humanTimestampAt(t, now time.Time) string {
	if t.IsZero() {
		return "--"
	}
	switch diff := now.Sub(t); {
	case diff < 0:
		return humanDateAt(t, now)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	return humanDateAt(t, now)
}

// HumanDate returns "Today", "Yesterday", the month and day for this year,
// or the full date.
func HumanDate(t time.Time) string {
	return humanDateAt(t, time.Now())
}

func humanDateAt(t, now time.Time) string {
	t = t.In(now.Location())
	switch {
	case sameDay(t, now):
		return "Today"
	case sameDay(t, now.AddDate(0, 0, -1)):
		return "Yesterday"
	case t.Year() == now.Year():
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2, 2006")
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// ForceBadge renders a force name in its colour.
func ForceBadge(force string) string {
	return ForceColor(force).Render(force)
}

// Pct formats a percentage with at most one decimal place.
func Pct(v float64) string {
	return domain.FormatFloat(math.Round(v*10)/10) + "%"
}

// Or returns s, or a dimmed "--" when s is blank.
func Or(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
