package importer

import (
	"testing"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_DPNoVariantsFirstWins(t *testing.T) {
	m := Resolve([]string{"DP  No", "dp_no", "DPNO"}, domain.KindDP)

	h, ok := m.Header(FieldDPNo)
	require.True(t, ok)
	assert.Equal(t, "DP  No", h)
	assert.Empty(t, m.PassThrough, "later matches are ignored, not passed through")

	row := []workbook.Cell{workbook.TextCell("7"), workbook.TextCell("8"), workbook.TextCell("9")}
	assert.Equal(t, "7", m.Value(row, FieldDPNo))
}

func TestResolve_CaseInsensitiveAndTrimmed(t *testing.T) {
	m := Resolve([]string{"  task name ", "WEIGHT", "achieved %"}, domain.KindTask)

	assert.True(t, m.Has(FieldName))
	assert.True(t, m.Has(FieldWeight))
	assert.True(t, m.Has(FieldProgress))
	assert.False(t, m.Has(FieldCriteria))
}

func TestResolve_PassThroughKeepsHeaderText(t *testing.T) {
	m := Resolve([]string{"Name", " Remarks ", "", "Owner"}, domain.KindPhase)

	require.Len(t, m.PassThrough, 2)
	assert.Equal(t, Column{Header: "Remarks", Index: 1}, m.PassThrough[0])
	assert.Equal(t, Column{Header: "Owner", Index: 3}, m.PassThrough[1])

	row := []workbook.Cell{workbook.TextCell("Phase 1"), workbook.TextCell(" see note "), workbook.TextCell("x"), {}}
	assert.Equal(t, map[string]string{"Remarks": "see note"}, m.Extras(row))
}

func TestResolve_EarliestGroupClaimsSharedSynonym(t *testing.T) {
	// "DP" names the DP in the DP table but is the DP number in the task table.
	dp := Resolve([]string{"DP"}, domain.KindDP)
	assert.True(t, dp.Has(FieldName))

	task := Resolve([]string{"DP"}, domain.KindTask)
	assert.True(t, task.Has(FieldDPNo))
	assert.False(t, task.Has(FieldName))
}

func TestResolve_EveryKindHasATable(t *testing.T) {
	for _, kind := range domain.EntityKinds {
		assert.NotEmpty(t, TableFor(kind), kind)
	}
}

func TestMapping_ValueOutOfRange(t *testing.T) {
	m := Resolve([]string{"Name", "Phase No"}, domain.KindPhase)
	assert.Equal(t, "", m.Value([]workbook.Cell{workbook.TextCell("P")}, FieldPhaseNo))
	assert.Equal(t, map[Field]string{FieldName: "Name", FieldPhaseNo: "Phase No"}, m.Headers())
}
