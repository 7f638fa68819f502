package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *ProjectRecord {
	r := NewProjectRecord("Thunder", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	r.Phases = []Phase{{Name: "Phase 1"}, {Name: "Phase 2"}}
	r.Objectives = []Objective{
		{Name: "Obj A", Phase: "Phase 1"},
		{Name: "Obj B", Phase: "Phase 2"},
	}
	r.DPs = []DecisivePoint{
		{DPNo: "1", Name: "Bridge", Objective: "Obj A", Phase: "Phase 1"},
		{DPNo: "2", Name: "Ridge", Objective: "Obj A", Phase: "Phase 1"},
		{DPNo: "3", Name: "Port", Objective: "Obj B", Phase: "Phase 2"},
	}
	r.Tasks = []Task{
		{TaskNo: "1", Name: "Survey", DPNo: "1"},
		{TaskNo: "2", Name: "Build", DPNo: "1"},
		{TaskNo: "3", Name: "Hold", DPNo: "2"},
		{TaskNo: "4", Name: "Secure", DPNo: "3"},
	}
	return r
}

func TestCheckDPNo_ReportsCollision(t *testing.T) {
	r := sampleRecord()

	err := r.CheckDPNo(" 2 ")
	require.Error(t, err)
	var dup *DuplicateDPError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "2", dup.DPNo)
	assert.Equal(t, "DP number 2 already exists", err.Error())

	assert.NoError(t, r.CheckDPNo("4"))
	assert.Error(t, r.CheckDPNo(""))
}

func TestAddDP_RejectsDuplicate(t *testing.T) {
	r := sampleRecord()
	err := r.AddDP(DecisivePoint{DPNo: "1", Name: "Again"})
	var dup *DuplicateDPError
	require.ErrorAs(t, err, &dup)
	assert.Len(t, r.DPs, 3)

	require.NoError(t, r.AddDP(DecisivePoint{DPNo: " 7 ", Name: "New"}))
	assert.Equal(t, Number("7"), r.DPs[3].DPNo)
}

func TestSuggestDPNo(t *testing.T) {
	r := sampleRecord()
	assert.Equal(t, 4, r.SuggestDPNo())

	r.DPs = []DecisivePoint{{DPNo: "2"}, {DPNo: "x"}}
	assert.Equal(t, 1, r.SuggestDPNo())
}

func TestAddTask_DefaultsIntangible(t *testing.T) {
	r := sampleRecord()
	require.NoError(t, r.AddTask(Task{Name: "Talk", DPNo: "1", Type: TaskIntangible}))
	require.NoError(t, r.AddTask(Task{Name: "Dig", DPNo: "1", Type: TaskTangible}))
	assert.Equal(t, IntangiblePartial, r.Tasks[4].Intangible)
	assert.Equal(t, IntangibleNil, r.Tasks[5].Intangible)

	assert.Error(t, r.AddTask(Task{DPNo: "1"}))
}

func TestDeletePhase_Cascades(t *testing.T) {
	r := sampleRecord()
	require.NoError(t, r.DeletePhase("Phase 1"))

	assert.Equal(t, []Phase{{Name: "Phase 2"}}, r.Phases)
	require.Len(t, r.Objectives, 1)
	assert.Equal(t, "Obj B", r.Objectives[0].Name)
	require.Len(t, r.DPs, 1)
	assert.Equal(t, Number("3"), r.DPs[0].DPNo)
	require.Len(t, r.Tasks, 1)
	assert.Equal(t, "Secure", r.Tasks[0].Name)
}

func TestDeleteDP_RemovesTasks(t *testing.T) {
	r := sampleRecord()
	require.NoError(t, r.DeleteDP("1"))
	assert.Len(t, r.DPs, 2)
	assert.Len(t, r.Tasks, 2)

	err := r.DeleteDP("99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteObjective_KeepsOtherUnnumberedDPs(t *testing.T) {
	r := NewProjectRecord("Thunder", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	r.Objectives = []Objective{{Name: "A"}, {Name: "B"}}
	r.DPs = []DecisivePoint{
		{Name: "x", Objective: "A"},
		{Name: "y", Objective: "B"},
		{DPNo: "4", Name: "z", Objective: "A"},
	}
	r.Tasks = []Task{
		{Name: "loose"},
		{Name: "under z", DPNo: "4"},
	}

	require.NoError(t, r.DeleteObjective("A"))
	require.Len(t, r.Objectives, 1)
	require.Len(t, r.DPs, 1)
	assert.Equal(t, "y", r.DPs[0].Name)
	require.Len(t, r.Tasks, 1)
	assert.Equal(t, "loose", r.Tasks[0].Name)
}

func TestDeleteDP_BlankNumberIsRejected(t *testing.T) {
	r := sampleRecord()
	r.DPs = append(r.DPs, DecisivePoint{Name: "Unnumbered", Objective: "Obj B"})
	r.Tasks = append(r.Tasks, Task{Name: "loose"})

	require.Error(t, r.DeleteDP("  "))
	assert.Len(t, r.DPs, 4)
	assert.Len(t, r.Tasks, 5)
	assert.Empty(t, r.TasksForDP(""))
}

func TestDeleteTask_ByNumberOrName(t *testing.T) {
	r := sampleRecord()
	require.NoError(t, r.DeleteTask("2"))
	require.NoError(t, r.DeleteTask("Hold"))
	assert.Len(t, r.Tasks, 2)
	assert.ErrorIs(t, r.DeleteTask("nope"), ErrNotFound)
}

func TestClone_IsDeep(t *testing.T) {
	r := sampleRecord()
	r.Tasks[0].Extra = map[string]string{"Remarks": "x"}
	c := r.Clone()

	c.Tasks[0].Extra["Remarks"] = "changed"
	c.Phases[0].Name = "renamed"
	c.DPs = append(c.DPs, DecisivePoint{DPNo: "9"})

	assert.Equal(t, "x", r.Tasks[0].Extra["Remarks"])
	assert.Equal(t, "Phase 1", r.Phases[0].Name)
	assert.Len(t, r.DPs, 3)
}

func TestObjectivePhases_LastWriteWins(t *testing.T) {
	r := sampleRecord()
	r.Objectives = append(r.Objectives, Objective{Name: "Obj A", Phase: "Phase 9"})
	assert.Equal(t, "Phase 9", r.ObjectivePhases()["Obj A"])
}
