package progress

import "fmt"

type RAG string

const (
	Red   RAG = "red"
	Amber RAG = "amber"
	Green RAG = "green"
)

// Thresholds splits percentages into red, amber and green. A value below
// Red is red, below Amber is amber, anything else green.
type Thresholds struct {
	Red   float64 `yaml:"red"`
	Amber float64 `yaml:"amber"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{Red: 40, Amber: 70}
}

func (t Thresholds) Validate() error {
	if t.Red < 0 || t.Amber > 100 || t.Red > t.Amber {
		return fmt.Errorf("invalid RAG thresholds: red %v, amber %v", t.Red, t.Amber)
	}
	return nil
}

func (t Thresholds) Classify(v float64) RAG {
	switch {
	case v < t.Red:
		return Red
	case v < t.Amber:
		return Amber
	default:
		return Green
	}
}

// RAGCount tallies classified values.
type RAGCount struct {
	Red, Amber, Green int
}

func (c RAGCount) Total() int { return c.Red + c.Amber + c.Green }

func (t Thresholds) CountRAG(values map[string]float64) RAGCount {
	var c RAGCount
	for _, v := range values {
		switch t.Classify(v) {
		case Red:
			c.Red++
		case Amber:
			c.Amber++
		default:
			c.Green++
		}
	}
	return c
}
