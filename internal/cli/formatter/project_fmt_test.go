package formatter

import (
	"testing"
	"time"

	"github.com/coppahp/planner/internal/config"
	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestFormatProjectList(t *testing.T) {
	out := stripANSI(FormatProjectList([]repository.ProjectSummary{
		{Name: "Op North", Teams: []string{"blue", "red"}, Status: domain.ProjectActive, Modified: time.Now()},
		{Name: "Op South", Status: domain.ProjectArchived},
	}))

	assert.Contains(t, out, "PROJECTS")
	assert.Contains(t, out, "Op North")
	assert.Contains(t, out, "blue, red")
	assert.Contains(t, out, "Just now")
	assert.Contains(t, out, "Archived")
}

func TestFormatForceList_MarksDefaults(t *testing.T) {
	out := stripANSI(FormatForceList(config.ForceRoster{Forces: []string{"blue", "red", "green"}}))

	assert.Contains(t, out, "blue  (default)")
	assert.Contains(t, out, "red  (default)")
	assert.Contains(t, out, "green")
	assert.NotContains(t, out, "green  (default)")
}
