package progress

import (
	"fmt"

	"github.com/coppahp/planner/internal/domain"
)

// Band is the input range offered for an intangible assessment.
type Band struct {
	Min, Max, Default float64
}

// Range returns the slider band for an intangible level. It constrains what
// a user may enter and is separate from the floor Compute applies.
func Range(level domain.IntangibleLevel) Band {
	switch level {
	case domain.IntangiblePartial:
		return Band{Min: 34, Max: 66, Default: 34}
	case domain.IntangibleComplete:
		return Band{Min: 67, Max: 100, Default: 67}
	default:
		return Band{Min: 0, Max: 33, Default: 0}
	}
}

func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Check returns an error naming the band when v falls outside it.
func (b Band) Check(v float64) error {
	if !b.Contains(v) {
		return fmt.Errorf("progress %s outside %s-%s",
			domain.FormatFloat(v), domain.FormatFloat(b.Min), domain.FormatFloat(b.Max))
	}
	return nil
}
