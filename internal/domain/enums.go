package domain

import "strings"

type EntityKind string

const (
	KindPhase     EntityKind = "phase"
	KindObjective EntityKind = "objective"
	KindDP        EntityKind = "dp"
	KindTask      EntityKind = "task"
)

// EntityKinds lists the hierarchy levels broadest first.
var EntityKinds = []EntityKind{KindPhase, KindObjective, KindDP, KindTask}

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

type TaskType string

const (
	TaskTangible   TaskType = "T"
	TaskIntangible TaskType = "I"
)

// IntangibleLevel is the qualitative assessment applied to an intangible task.
type IntangibleLevel string

const (
	IntangibleNil      IntangibleLevel = "nil"
	IntangiblePartial  IntangibleLevel = "partial"
	IntangibleComplete IntangibleLevel = "complete"
)

// ParseIntangibleLevel accepts any casing and surrounding whitespace.
// Unknown values report ok=false.
func ParseIntangibleLevel(s string) (IntangibleLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nil":
		return IntangibleNil, true
	case "partial":
		return IntangiblePartial, true
	case "complete":
		return IntangibleComplete, true
	}
	return "", false
}
