package repository

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/coppahp/planner/internal/domain"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// newRecord is the record Load hands out for a pair never saved before.
func newRecord(project string) *domain.ProjectRecord {
	return domain.NewProjectRecord(project, time.Now().UTC())
}

// stamp sets the modified time and fills in anything a hand-edited or
// legacy record left empty.
func stamp(rec *domain.ProjectRecord, project string, now time.Time) {
	rec.Metadata.Modified = now
	if rec.Metadata.Name == "" {
		rec.Metadata.Name = project
	}
	if rec.Metadata.Status == "" {
		rec.Metadata.Status = domain.ProjectActive
	}
	if rec.Metadata.Created.IsZero() {
		rec.Metadata.Created = now
	}
	if rec.Phases == nil {
		rec.Phases = []domain.Phase{}
	}
	if rec.Objectives == nil {
		rec.Objectives = []domain.Objective{}
	}
	if rec.DPs == nil {
		rec.DPs = []domain.DecisivePoint{}
	}
	if rec.Tasks == nil {
		rec.Tasks = []domain.Task{}
	}
}

func validatePair(project, team string) error {
	if err := domain.ValidateProjectName(project); err != nil {
		return err
	}
	return domain.ValidateTeamName(team)
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// summarize folds (project, team) rows into one summary per project,
// sorted by name.
func summarize(rows []ProjectSummary) []ProjectSummary {
	byName := make(map[string]*ProjectSummary)
	var order []string
	for _, r := range rows {
		s, ok := byName[r.Name]
		if !ok {
			s = &ProjectSummary{Name: r.Name, Status: r.Status}
			byName[r.Name] = s
			order = append(order, r.Name)
		}
		s.Teams = append(s.Teams, r.Teams...)
		if r.Modified.After(s.Modified) {
			s.Modified = r.Modified
		}
		if r.Status == domain.ProjectActive {
			s.Status = domain.ProjectActive
		}
	}
	sort.Strings(order)
	out := make([]ProjectSummary, 0, len(order))
	for _, name := range order {
		s := byName[name]
		sort.Strings(s.Teams)
		out = append(out, *s)
	}
	return out
}
