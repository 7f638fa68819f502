package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an edit names an entity the record lacks.
var ErrNotFound = errors.New("not found")

// DuplicateDPError reports a DP number that is already taken in the
// (project, team) record.
type DuplicateDPError struct {
	DPNo string
}

func (e *DuplicateDPError) Error() string {
	return fmt.Sprintf("DP number %s already exists", e.DPNo)
}
