package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"NAME", "WEIGHT"},
		[][]string{{"Survey", "50"}, {"Build bridge", "16.67"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "NAME          WEIGHT", lines[0])
	assert.Equal(t, "────────────  ──────", lines[1])
	assert.Equal(t, "Survey            50", lines[2], "numeric column is right-aligned")
	assert.Equal(t, "Build bridge   16.67", lines[3])
}

func TestRenderTable_MixedColumnIsLeftAligned(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"DP", "NAME"},
		[][]string{{"1", "a"}, {"x", "b"}},
	))
	assert.Contains(t, out, "1   a")
	assert.Contains(t, out, "x   b")
}

func TestRenderTable_ShortRowsAndNoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))

	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"left"}}))
	assert.Contains(t, out, "left")
}

func TestIsNumericCell(t *testing.T) {
	assert.True(t, isNumericCell("45%"))
	assert.True(t, isNumericCell(StyleRed.Render("12.5%")))
	assert.True(t, isNumericCell(Dim("--")))
	assert.False(t, isNumericCell("Phase 1"))
}
