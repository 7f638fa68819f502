package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_Float(t *testing.T) {
	tests := []struct {
		in   Number
		want float64
		ok   bool
	}{
		{"40", 40, true},
		{" 12.5 ", 12.5, true},
		{"75%", 75, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, ok := tt.in.Parse()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, tt.in.Float())
		})
	}
}

func TestNumber_UnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	var v struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 3, "b": "3", "c": 2.5, "d": null}`), &v))
	assert.Equal(t, Number("3"), v.A)
	assert.Equal(t, Number("3"), v.B)
	assert.Equal(t, Number("2.5"), v.C)
	assert.True(t, v.D.IsZero())
}

func TestNumber_MarshalKeepsText(t *testing.T) {
	data, err := json.Marshal(struct {
		W Number `json:"w"`
	}{W: "3"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"w":"3"}`, string(data))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1", FormatFloat(1.0))
	assert.Equal(t, "-4", FormatFloat(-4))
	assert.Equal(t, "57.5", FormatFloat(57.5))
	assert.Equal(t, "33.33", FormatFloat(33.33))
}

func TestSameKey(t *testing.T) {
	assert.True(t, SameKey(" 1", "1 "))
	assert.False(t, SameKey("1", "01"))
}
