package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProjectName_Valid(t *testing.T) {
	cases := []string{"Op Thunder", "exercise-2025", "A", "Plan.v2"}
	for _, name := range cases {
		assert.NoError(t, ValidateProjectName(name), "should accept %q", name)
	}
}

func TestValidateProjectName_Empty(t *testing.T) {
	err := ValidateProjectName("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateProjectName_RejectsSeparator(t *testing.T) {
	for _, name := range []string{"op_thunder", "../etc", "-lead", "a/b"} {
		assert.Error(t, ValidateProjectName(name), "should reject %q", name)
	}
}

func TestValidateTeamName(t *testing.T) {
	assert.NoError(t, ValidateTeamName("blue"))
	require.Error(t, ValidateTeamName(""))
	assert.Error(t, ValidateTeamName("blue_red"))
}

func TestCoalesceTrimmed(t *testing.T) {
	assert.Equal(t, "b", CoalesceTrimmed("", "  ", " b ", "c"))
	assert.Equal(t, "", CoalesceTrimmed())
	assert.Equal(t, "", CoalesceTrimmed(" ", "\t"))
}
