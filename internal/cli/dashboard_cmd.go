package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coppahp/planner/internal/cli/formatter"
	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/service"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App, s *scope) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive progress dashboard with a tab per force",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := s.requireProject()
			if err != nil {
				return err
			}
			if !app.interactive() {
				return fmt.Errorf("dashboard needs a terminal; use 'ahp progress' instead")
			}
			_, err = tea.NewProgram(newDashboardModel(app, project), tea.WithAltScreen()).Run()
			return err
		},
	}
}

// ── keys ─────────────────────────────────────────────────────────────────────

type dashboardKeys struct {
	Next    key.Binding
	Prev    key.Binding
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next force")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev force")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Refresh, k.Quit}
}

func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Up, k.Down}, {k.Refresh, k.Quit}}
}

// ── messages ─────────────────────────────────────────────────────────────────

type dashboardLoadedMsg struct {
	overview *service.ProgressOverview
	plans    map[string]*domain.ProjectRecord
	err      error
}

// ── model ────────────────────────────────────────────────────────────────────

const dashboardChrome = 6 // title, tabs, summary and help lines

type dashboardModel struct {
	app     *App
	project string

	overview *service.ProgressOverview
	plans    map[string]*domain.ProjectRecord
	loading  bool
	err      error

	tab      int
	keys     dashboardKeys
	help     help.Model
	viewport viewport.Model
	width    int
}

func newDashboardModel(app *App, project string) *dashboardModel {
	return &dashboardModel{
		app:      app,
		project:  project,
		loading:  true,
		keys:     defaultDashboardKeys(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		width:    80,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m *dashboardModel) load() tea.Cmd {
	app, project := m.app, m.project
	return func() tea.Msg {
		ctx := context.Background()
		ov, err := app.Progress.Overview(ctx, project)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		plans := make(map[string]*domain.ProjectRecord, len(ov.Teams))
		for _, tp := range ov.Teams {
			rec, err := app.Plans.Get(ctx, project, tp.Team)
			if err != nil {
				return dashboardLoadedMsg{err: err}
			}
			plans[tp.Team] = rec
		}
		return dashboardLoadedMsg{overview: ov, plans: plans}
	}
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.overview, m.plans = msg.overview, msg.plans
			if m.tab >= len(m.overview.Teams) {
				m.tab = 0
			}
			m.refreshContent()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-dashboardChrome, 3)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load()
		case key.Matches(msg, m.keys.Next):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchTab(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *dashboardModel) switchTab(delta int) {
	if m.overview == nil || len(m.overview.Teams) == 0 {
		return
	}
	n := len(m.overview.Teams)
	m.tab = (m.tab + delta + n) % n
	m.refreshContent()
}

func (m *dashboardModel) refreshContent() {
	if m.overview == nil || len(m.overview.Teams) == 0 {
		m.viewport.SetContent("")
		return
	}
	team := m.overview.Teams[m.tab].Team
	m.viewport.SetContent(formatter.FormatPlanTree(m.plans[team], team, m.overview.Thresholds))
	m.viewport.GotoTop()
}

func (m *dashboardModel) selectedTeam() *service.TeamProgress {
	if m.overview == nil || m.tab >= len(m.overview.Teams) {
		return nil
	}
	return &m.overview.Teams[m.tab]
}

func (m *dashboardModel) View() string {
	if m.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n\n  " + m.help.View(m.keys)
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(strings.ToUpper(m.project)) + "\n")
	b.WriteString(m.renderTabs() + "\n")
	if tp := m.selectedTeam(); tp != nil {
		b.WriteString(m.renderSummary(tp) + "\n\n")
	}
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *dashboardModel) renderTabs() string {
	active := lipgloss.NewStyle().Bold(true).Underline(true)
	tabs := make([]string, len(m.overview.Teams))
	for i, tp := range m.overview.Teams {
		label := formatter.ForceColor(tp.Team).Render(tp.Team)
		if i == m.tab {
			label = active.Render("▸ ") + active.Inherit(formatter.ForceColor(tp.Team)).Render(tp.Team)
		} else {
			label = "  " + label
		}
		tabs[i] = label
	}
	return strings.Join(tabs, formatter.Dim("  │"))
}

func (m *dashboardModel) renderSummary(tp *service.TeamProgress) string {
	th := m.overview.Thresholds
	parts := make([]string, 0, 3)
	for _, kind := range []domain.EntityKind{domain.KindPhase, domain.KindObjective, domain.KindDP} {
		c := tp.RAG[kind]
		parts = append(parts, fmt.Sprintf("%s %s %s",
			formatter.Dim(strings.ToUpper(string(kind))),
			formatter.RenderCompactBar(tp.Average[kind], 10, th, false),
			formatter.Dim(fmt.Sprintf("%d/%d/%d", c.Red, c.Amber, c.Green)),
		))
	}
	return strings.Join(parts, "   ")
}
