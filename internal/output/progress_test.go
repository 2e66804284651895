package output

import (
	"strings"
	"testing"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		score  float64
		filled int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{150, 10}, // clamped
	}
	for _, tc := range tests {
		bar := ScoreBar(tc.score, 10)
		if got := strings.Count(bar, "█"); got != tc.filled {
			t.Errorf("ScoreBar(%v) filled = %d, want %d", tc.score, got, tc.filled)
		}
	}
}

func TestGoalBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	bar := GoalBar(3, 5, "notes", 10)
	if !strings.Contains(bar, "3/5 notes") {
		t.Errorf("GoalBar label missing, got %q", bar)
	}
	if got := strings.Count(bar, "█"); got != 6 {
		t.Errorf("filled = %d, want 6", got)
	}

	done := GoalBar(7, 5, "notes", 10)
	if got := strings.Count(done, "█"); got != 10 {
		t.Errorf("overshoot filled = %d, want 10", got)
	}

	zero := GoalBar(2, 0, "", 10)
	if got := strings.Count(zero, "█"); got != 0 {
		t.Errorf("zero-target filled = %d, want 0", got)
	}
}

func TestTrendArrowPercent(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if got := TrendArrowPercent(0, true); got != "─" {
		t.Errorf("zero delta = %q, want dash", got)
	}
	if got := TrendArrowPercent(12, true); !strings.Contains(got, "▲ +12%") {
		t.Errorf("up arrow = %q", got)
	}
	if got := TrendArrowPercent(-8, true); !strings.Contains(got, "▼ -8%") {
		t.Errorf("down arrow = %q", got)
	}
}
