package formatter

import (
	"testing"
	"time"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/progress"
	"github.com/stretchr/testify/assert"
)

func TestHumanDate(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now.Add(-3 * time.Hour), "Today"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"this year", time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC), "Jan 15"},
		{"earlier year", time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC), "Sep 30, 2022"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanDateAt(tt.input, now))
		})
	}
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", humanTimestampAt(now, now))
	assert.Equal(t, "5m ago", humanTimestampAt(now.Add(-5*time.Minute), now))
	assert.Equal(t, "2h ago", humanTimestampAt(now.Add(-2*time.Hour), now))
	assert.Equal(t, "Feb 5", humanTimestampAt(now.Add(-48*time.Hour), now))
	assert.Equal(t, "Today", humanTimestampAt(now.Add(time.Hour), now), "future saves show the date")
	assert.Equal(t, "--", HumanTimestamp(time.Time{}))
}

func TestStatusPill(t *testing.T) {
	assert.Contains(t, StatusPill(domain.ProjectActive), "Active")
	assert.Contains(t, StatusPill(domain.ProjectArchived), "Archived")
	assert.Contains(t, StatusPill("mothballed"), "mothballed")
}

func TestRAGPill(t *testing.T) {
	tests := []struct {
		rag  progress.RAG
		want string
	}{
		{progress.Red, "● RED"},
		{progress.Amber, "● AMBER"},
		{progress.Green, "● GREEN"},
		{"", "● --"},
	}
	for _, tt := range tests {
		t.Run(string(tt.rag), func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RAGPill(tt.rag)))
		})
	}
}

func TestPct(t *testing.T) {
	assert.Equal(t, "45%", Pct(45))
	assert.Equal(t, "57.5%", Pct(57.5))
	assert.Equal(t, "33.3%", Pct(100.0/3))
}

func TestOr(t *testing.T) {
	assert.Equal(t, "x", Or("x"))
	assert.Equal(t, "--", stripANSI(Or("  ")))
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("forces", "content here\n")
	assert.Contains(t, result, "FORCES")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}
