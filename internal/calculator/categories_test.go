package calculator

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"Standup notes for Tuesday", "Meetings"},
		{"What if we cached the transcript client-side?", "Ideas"},
		{"TODO: renew passport before deadline", "Tasks"},
		{"Lecture summary, chapter 4", "Notes"},
		{"Sprint 12 release checklist", "Projects"},
		{"Grocery list: milk, eggs", "General"},
		{"", "General"},
	}
	for _, tt := range tests {
		if got := Categorize(tt.content); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	// Contains both a meetings keyword and a tasks keyword; Meetings is
	// listed first.
	if got := Categorize("meeting follow up"); got != "Meetings" {
		t.Errorf("Categorize() = %q, want Meetings", got)
	}
}

func TestCountCategories(t *testing.T) {
	counts := CountCategories([]string{
		"weekly sync agenda",
		"idea: dark mode",
		"random scribble",
	})
	if counts["Meetings"] != 1 || counts["Ideas"] != 1 || counts["General"] != 1 {
		t.Errorf("CountCategories() = %v", counts)
	}
}
