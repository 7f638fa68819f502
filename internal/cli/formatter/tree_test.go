package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree_Connectors(t *testing.T) {
	out := stripANSI(RenderTree([]TreeItem{
		{Title: "Op North", Level: 0, IsLast: true},
		{Title: "Phase 1", Level: 1},
		{Title: "Obj A", Level: 2, IsLast: true},
		{Title: "Phase 2", Level: 1, IsLast: true},
		{Title: "Obj B", Level: 2, IsLast: true, Done: true},
	}))

	assert.Equal(t, strings.Join([]string{
		"Op North",
		"├─ Phase 1",
		"│  └─ Obj A",
		"└─ Phase 2",
		"   └─ ✔ Obj B",
	}, "\n")+"\n", out)
}

func TestRenderTree_RightAlignsDetails(t *testing.T) {
	out := stripANSI(RenderTree([]TreeItem{
		{Title: "Short", Level: 1, Detail: "45%"},
		{Title: "Much longer", Level: 1, IsLast: true, Detail: "70%"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "├─ Short        45%", lines[0])
	assert.Equal(t, "└─ Much longer  70%", lines[1])
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}
