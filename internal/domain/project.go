package domain

import (
	"fmt"
	"regexp"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 .-]{0,63}$`)

// ValidateProjectName checks that a project name is usable as a store key.
// Underscores are reserved as the project/team separator in file names.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name is required (use --project flag)")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("project name %q must start with a letter or digit and contain only letters, digits, spaces, '.' or '-'", name)
	}
	return nil
}

// ValidateTeamName applies the same rules to a force/team identifier.
func ValidateTeamName(team string) error {
	if team == "" {
		return fmt.Errorf("team is required (use --team flag)")
	}
	if !namePattern.MatchString(team) {
		return fmt.Errorf("team %q must start with a letter or digit and contain only letters, digits, spaces, '.' or '-'", team)
	}
	return nil
}
