package calculator

import "strings"

// CategoryGeneral is the fallback when no keyword rule matches.
const CategoryGeneral = "General"

// categoryRule pairs a category name with the substrings that select it.
type categoryRule struct {
	name     string
	keywords []string
}

// categoryRules are checked in order; the first matching category wins.
var categoryRules = []categoryRule{
	{"Meetings", []string{"meeting", "standup", "sync", "call", "agenda", "minutes"}},
	{"Ideas", []string{"idea", "brainstorm", "concept", "what if", "inspiration"}},
	{"Tasks", []string{"todo", "to do", "task", "deadline", "reminder", "follow up"}},
	{"Notes", []string{"note", "summary", "recap", "lecture"}},
	{"Projects", []string{"project", "milestone", "roadmap", "sprint", "release"}},
}

// Categorize classifies free-text content into a fixed category set using
// case-insensitive substring containment. The default is General.
func Categorize(content string) string {
	lowered := strings.ToLower(content)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.name
			}
		}
	}
	return CategoryGeneral
}

// CountCategories classifies each content string and tallies the results.
func CountCategories(contents []string) map[string]int {
	counts := make(map[string]int)
	for _, c := range contents {
		counts[Categorize(c)]++
	}
	return counts
}
