package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/coppahp/planner/internal/cli/formatter"
	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/service"
)

// plannerHuhTheme returns a huh theme using the formatter palette.
func plannerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// promptChooser asks each KO comparison through a two-option select.
func promptChooser(dpNo string, total int) service.Chooser {
	asked := 0
	return func(ctx context.Context, a, b domain.Task) (bool, error) {
		asked++
		var pick string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("DP %s  (%d/%d)  Which task matters more?", dpNo, asked, total)).
					Options(
						huh.NewOption(a.Label(), "a"),
						huh.NewOption(b.Label(), "b"),
					).
					Value(&pick),
			),
		).WithTheme(plannerHuhTheme()).WithShowHelp(false)

		if err := form.RunWithContext(ctx); err != nil {
			return false, fmt.Errorf("comparison cancelled: %w", err)
		}
		return pick == "a", nil
	}
}

// projectForm collects a name and description for a new project.
func projectForm(name, description *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Placeholder("Op North").
				Value(name).
				Validate(func(s string) error {
					return domain.ValidateProjectName(strings.TrimSpace(s))
				}),
			huh.NewText().
				Title("Description").
				Value(description),
		),
	).WithTheme(plannerHuhTheme()).WithShowHelp(false)
}
