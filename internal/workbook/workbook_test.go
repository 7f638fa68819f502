package workbook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_String(t *testing.T) {
	assert.Equal(t, "1", NumberCell(1).String())
	assert.Equal(t, "2.5", NumberCell(2.5).String())
	assert.Equal(t, "Obj A", TextCell("Obj A").String())
	assert.Equal(t, "", Cell{}.String())
}

func TestCell_IsBlank(t *testing.T) {
	assert.True(t, Cell{}.IsBlank())
	assert.True(t, TextCell("   ").IsBlank())
	assert.True(t, Cell{Kind: Text, Str: " \t"}.IsBlank())
	assert.False(t, NumberCell(0).IsBlank())
	assert.False(t, TextCell("x").IsBlank())
}

func TestSheet_AppendRowAndLookup(t *testing.T) {
	wb := New()
	s := wb.AddSheet("Tasks", "Task No", "Name", "Weight")
	s.AppendRow(1, "Survey", 3.5)
	s.AppendRow("2", nil)

	assert.Equal(t, "1", s.Cell(0, 0).String())
	assert.Equal(t, "3.5", s.Cell(0, 2).String())
	assert.True(t, s.Cell(1, 1).IsBlank())
	assert.True(t, s.Cell(1, 2).IsBlank(), "short rows read as blank")
	assert.True(t, s.Cell(5, 0).IsBlank())

	got, err := wb.Sheet("Tasks")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = wb.Sheet("tasks")
	assert.Error(t, err, "lookup is exact")
	assert.Equal(t, []string{"Tasks"}, wb.SheetNames())
}

func TestXLSX_RoundTrip(t *testing.T) {
	wb := New()
	phases := wb.AddSheet("Phases", "Name", "Phase No")
	phases.AppendRow("Phase 1", 1)
	phases.AppendRow("Phase 2", 2)
	tasks := wb.AddSheet("Tasks", "Task No", "Name", "DP No", "Weight")
	tasks.AppendRow(1, "Survey site", 1, "3")
	tasks.AppendRow(2, nil, 1, 2.5)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, wb))

	got, err := ReadXLSX(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Equal(t, []string{"Phases", "Tasks"}, got.SheetNames())

	p, err := got.Sheet("Phases")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Phase No"}, p.Headers)
	require.Len(t, p.Rows, 2)
	assert.Equal(t, "Phase 2", p.Cell(1, 0).String())
	assert.Equal(t, "2", p.Cell(1, 1).String())

	ts, err := got.Sheet("Tasks")
	require.NoError(t, err)
	require.Len(t, ts.Rows, 2)
	assert.Equal(t, "Survey site", ts.Cell(0, 1).String())
	assert.Equal(t, "3", ts.Cell(0, 3).String())
	assert.True(t, ts.Cell(1, 1).IsBlank())
	assert.Equal(t, "2.5", ts.Cell(1, 3).String())
}

func TestReadXLSX_RejectsGarbage(t *testing.T) {
	data := []byte("not a spreadsheet")
	_, err := ReadXLSX(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}
