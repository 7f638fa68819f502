package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric leaf that keeps the text it was authored with.
// Spreadsheets mix "3", 3 and "3%" in the same column, so the value is
// parsed on read and never assumed to be numeric.
type Number string

// NumberOf formats f without a trailing ".0" for integral values.
func NumberOf(f float64) Number {
	return Number(FormatFloat(f))
}

// Float parses the number, tolerating surrounding whitespace and a trailing
// percent sign. Anything unparseable is 0.
func (n Number) Float() float64 {
	f, _ := n.Parse()
	return f
}

// Parse is Float with an ok flag for callers that must tell 0 from garbage.
func (n Number) Parse() (float64, bool) {
	s := strings.TrimSpace(string(n))
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Key is the trimmed text used for identity comparisons (DP No, Task No).
func (n Number) Key() string {
	return strings.TrimSpace(string(n))
}

func (n Number) IsZero() bool {
	return n.Key() == ""
}

func (n Number) String() string {
	return string(n)
}

// MarshalJSON always writes a string so the authored text survives.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

// UnmarshalJSON accepts a JSON string, number or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding number text: %w", err)
		}
		*n = Number(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decoding number: %w", err)
	}
	*n = NumberOf(f)
	return nil
}

// FormatFloat renders integral values as integers and everything else in
// the shortest representation.
func FormatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SameKey reports whether two identity values match after trimming.
func SameKey(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
